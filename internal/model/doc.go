// Package model defines the domain records (Location, Sake, Review, User),
// request payloads, and the RFC 9457 problem document used for API errors.
//
// Records carry their SurrealDB record ID as a plain string in the
// "table:id" form. Relations are stored as record ID references: a
// Location's AuthorID points at a user, a Review's SakeID at a sake, and a
// User's Hearts set holds sake IDs.
package model
