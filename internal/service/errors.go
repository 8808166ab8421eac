package service

import (
	"errors"
	"fmt"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Account Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
)

// ===== Location Errors =====
var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrNotOwner            = errors.New("you must own this location to edit it")
	ErrAddressRequired     = errors.New("address is required")
	ErrCoordinatesRequired = errors.New("coordinates are required")
	ErrInvalidCoordinates  = errors.New("coordinates must be finite numbers in range")
	ErrSearchQueryRequired = errors.New("search query is required")
)

// ===== Sake Errors =====
var (
	ErrSakeNotFound = errors.New("sake not found")
	ErrNameRequired = errors.New("name is required")
)

// ===== Review Errors =====
var (
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
)

// PageOutOfRangeError reports a listing page beyond the last one, carrying
// the last valid page so the handler can redirect to it.
type PageOutOfRangeError struct {
	Requested int
	Last      int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d does not exist, last page is %d", e.Requested, e.Last)
}
