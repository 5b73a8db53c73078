package api

import (
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// Register handles POST /users requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	registered, err := h.userService.Register(r.Context(), service.RegisterUserInput{
		Name:        req.Name,
		Password:    req.Password,
		Age:         req.Age,
		MAC:         req.MAC,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "User registered successfully",
		RegisterUserResponse{
			User:  userToResponse(registered.User),
			Token: registered.Token,
		})
}

// Get handles GET /users?id= requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PUT /users?id= requests.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, service.UpdateUserInput{
		Name:        req.Name,
		Password:    req.Password,
		Age:         req.Age,
		MAC:         req.MAC,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "User updated successfully", userToResponse(user))
}

// Delete handles DELETE /users?id= requests. Deleting a user removes all
// owned contacts and their phone numbers.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireQueryUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondNoContent(w, r)
}
