// Package service implements the business logic layer for sakewalk.
//
// Services own validation, slug derivation, and the in-process halves of the
// aggregation contracts; repositories own the SurrealQL. Each service
// defines its own repository interface so tests can substitute mocks.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with
//     repository dependencies
//   - Methods take a context.Context and return explicit errors
//   - Errors are the sentinel values in errors.go, checked with errors.Is
//     (PageOutOfRangeError is the one typed error, checked with errors.As)
//
// # Aggregation Split
//
// Tag counting and the geospatial filter/sort are delegated to the store;
// the service re-applies the stable tag ordering and computes payload
// distances. Top-rated ranking runs in rankTopRated over the store's
// sake-to-ratings join so the min-review filter and mean semantics live in
// one testable function.
package service
