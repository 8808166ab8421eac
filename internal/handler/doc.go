// Package handler provides HTTP request handlers for the Sakewalk API.
//
// Each handler struct encapsulates the dependencies needed to serve requests
// for a feature area (auth, locations, sakes, reviews, uploads).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts a config struct with dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Service errors are mapped to RFC 9457 Problem Details via MapServiceError
//
// # Authentication
//
// Protected handlers run behind the auth middleware, which resolves the
// bearer session token and attaches the user to the request context.
package handler
