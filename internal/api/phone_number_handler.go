package api

import (
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// PhoneNumberHandler handles phone-number-related HTTP requests.
type PhoneNumberHandler struct {
	phoneService service.PhoneNumberService
	validator    *validator.Validate
}

// NewPhoneNumberHandler creates a new PhoneNumberHandler.
func NewPhoneNumberHandler(phoneService service.PhoneNumberService) *PhoneNumberHandler {
	return &PhoneNumberHandler{
		phoneService: phoneService,
		validator:    validator.New(),
	}
}

// Create handles POST /phone-numbers requests.
func (h *PhoneNumberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePhoneNumberRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	pn, err := h.phoneService.CreatePhoneNumber(r.Context(), service.CreatePhoneNumberInput{
		ContactID:   req.ContactID,
		PhoneNumber: req.PhoneNumber,
		PhoneType:   domain.PhoneType(req.PhoneType),
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "Phone number created successfully", pn)
}

// Get handles GET /phone-numbers requests, identified either by ?id= (single
// number) or ?contact_id= (all of a contact's numbers).
func (h *PhoneNumberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, idPresent, idErr := getQueryUUID(r, "id")
	contactID, contactPresent, contactErr := getQueryUUID(r, "contact_id")

	switch {
	case idPresent:
		if idErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id format")
			return
		}
		pn, err := h.phoneService.GetPhoneNumber(r.Context(), id)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, pn)

	case contactPresent:
		if contactErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid contact_id format")
			return
		}
		numbers, err := h.phoneService.ListPhoneNumbersByContact(r.Context(), contactID)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, numbers)

	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Must provide either id or contact_id")
	}
}

// Update handles PUT /phone-numbers?id= requests. Setting is_primary to true
// demotes every other number of the same contact atomically.
func (h *PhoneNumberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePhoneNumberRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patch := domain.PhoneNumberPatch{
		PhoneNumber: req.PhoneNumber,
		IsPrimary:   req.IsPrimary,
	}
	if req.PhoneType != nil {
		phoneType := domain.PhoneType(*req.PhoneType)
		patch.PhoneType = &phoneType
	}

	pn, err := h.phoneService.UpdatePhoneNumber(r.Context(), id, patch)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Phone number updated successfully", pn)
}

// Delete handles DELETE /phone-numbers?id= requests. Deleting the primary
// number does not promote another one.
func (h *PhoneNumberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.phoneService.DeletePhoneNumber(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondNoContent(w, r)
}
