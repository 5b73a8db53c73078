package api

import (
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// ContactHandler handles contact-related HTTP requests.
type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator.New(),
	}
}

// Create handles POST /contacts requests. The payload may carry an initial
// phone-number batch; contact and batch are created atomically.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	input := service.CreateContactInput{
		UserID:       req.UserID,
		Name:         req.Name,
		IsEmergency:  req.IsEmergency,
		Relationship: req.Relationship,
		Image:        req.Image,
	}
	for _, pn := range req.PhoneNumbers {
		input.PhoneNumbers = append(input.PhoneNumbers, service.PhoneNumberInput{
			PhoneNumber: pn.PhoneNumber,
			PhoneType:   domain.PhoneType(pn.PhoneType),
			IsPrimary:   pn.IsPrimary,
		})
	}

	contact, err := h.contactService.CreateContact(r.Context(), input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "Contact created successfully", contact)
}

// Get handles GET /contacts requests, identified either by ?id= (single
// contact) or ?user_id= (all of a user's contacts).
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, idPresent, idErr := getQueryUUID(r, "id")
	userID, userPresent, userErr := getQueryUUID(r, "user_id")

	switch {
	case idPresent:
		if idErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id format")
			return
		}
		contact, err := h.contactService.GetContact(r.Context(), id)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, contact)

	case userPresent:
		if userErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id format")
			return
		}
		contacts, err := h.contactService.ListContactsByUser(r.Context(), userID)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, contacts)

	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Must provide either id or user_id")
	}
}

// Update handles PUT /contacts?id= requests.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateContactRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(r.Context(), id, domain.ContactPatch{
		Name:         req.Name,
		IsEmergency:  req.IsEmergency,
		Relationship: req.Relationship,
		Image:        req.Image,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Contact updated successfully", contact)
}

// Delete handles DELETE /contacts?id= requests. The contact's phone numbers
// are deleted in the same transaction.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondNoContent(w, r)
}
