// Package repository implements the data access layer for sakewalk.
//
// Each repository struct handles the SurrealQL for one domain entity. All
// repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database.Database
//   - Parameterized queries with $variable syntax, never interpolation
//   - type::record() for safe ID handling, time::now() for timestamps
//   - Rows are parsed into model structs by package-local parse helpers
//
// # Query Patterns
//
//   - Slug collision lookups use string::matches with the anchored pattern
//     the slug package builds
//   - Tag aggregation flattens tag arrays with SPLIT before GROUP BY
//   - The reviews join on a sake is an explicit correlated subquery invoked
//     only by the read paths that need it, not an implicit hook on every find
//   - The heart toggle is a single conditional UPDATE, relying on
//     per-document atomicity
//   - The geospatial query orders by geo::distance against a 2D-sphere point
//     with coordinates in longitude, latitude order
package repository
