// Package database provides the SurrealDB abstraction layer for sakewalk.
//
// The Database interface exposes three query methods:
//   - Query: returns the rows of a single-statement query
//   - QueryOne: returns the first row, or ErrNotFound
//   - Execute: runs a mutation, discarding any result
//
// All queries are parameterized with $variable syntax; callers never
// interpolate user input into query strings.
//
// # Atomicity
//
// sakewalk relies only on SurrealDB's per-document atomicity for single
// UPDATE statements (the heart toggle is one conditional UPDATE). There is
// no multi-statement transaction support here because no operation in the
// application needs one.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique constraint violation
//   - ErrConnection: connection issues
//   - ErrQuery: query execution failure
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
