package handler

import (
	"errors"

	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrLocationNotFound):
		return model.NewNotFoundError("location")
	case errors.Is(err, service.ErrSakeNotFound):
		return model.NewNotFoundError("sake")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrCoordinatesRequired),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrSearchQueryRequired),
		errors.Is(err, service.ErrInvalidRating):
		return model.NewValidationError([]model.FieldError{
			{Field: "", Message: err.Error()},
		})

	// ===== Everything Else → 500 =====
	default:
		return model.NewInternalError("")
	}
}
