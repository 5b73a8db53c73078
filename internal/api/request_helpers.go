package api

import (
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// getQueryUUID extracts a UUID from a query parameter. The second return
// reports whether the parameter was present at all; a present but malformed
// value yields an error.
func getQueryUUID(r *http.Request, paramName string) (uuid.UUID, bool, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, true, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, true, nil
}

// requireQueryUUID extracts a mandatory UUID query parameter, writing a 400
// response when it is missing or malformed. The bool reports success.
func requireQueryUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, present, err := getQueryUUID(r, paramName)
	if !present {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Must provide "+paramName)
		return uuid.Nil, false
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into v and runs struct validation,
// writing the 400 response itself on failure. The bool reports success.
func decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	validate *validator.Validate,
	v interface{},
) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := validate.Struct(v); err != nil {
		shared.RespondWithValidationErrors(w, r, "Validation failed", shared.ViolationsFromError(err))
		return false
	}
	return true
}
