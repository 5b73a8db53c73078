package api

import (
	"errors"
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on the
// error type, so handlers never leak internal error strings to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message based on the
// error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrContactNotFound):
		return "Contact not found"

	case errors.Is(err, store.ErrPhoneNumberNotFound):
		return "Phone number not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrNoFieldsToUpdate):
		return "No valid fields to update"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced entity does not exist"

	case errors.Is(err, store.ErrConflict):
		return "Conflicting entity state"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrValidation):
		// Domain validation messages are written for end users and carry no
		// internal detail, so the wrapped cause is safe to surface.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps a service error to a status code and safe message,
// writes the failure envelope, and logs the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
