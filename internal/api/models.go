package api

import (
	"time"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// Request payloads. Pointer fields on update requests distinguish "absent"
// (nil, keep stored value) from "set".

// RegisterUserRequest defines the payload for user registration.
type RegisterUserRequest struct {
	Name        string  `json:"name"         validate:"required"`
	Password    string  `json:"password"     validate:"required,min=6"`
	Age         *int    `json:"age"          validate:"omitempty,gt=0"`
	MAC         *string `json:"mac"          validate:"omitempty,mac"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1"`
	Image       *string `json:"image"        validate:"omitempty,url"`
}

// UpdateUserRequest defines the payload for a partial user update.
type UpdateUserRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=1"`
	Password    *string `json:"password"     validate:"omitempty,min=6"`
	Age         *int    `json:"age"          validate:"omitempty,gt=0"`
	MAC         *string `json:"mac"          validate:"omitempty,mac"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1"`
	Image       *string `json:"image"        validate:"omitempty,url"`
}

// PhoneNumberPayload describes one phone number in a contact-creation batch.
type PhoneNumberPayload struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	PhoneType   string `json:"phone_type"   validate:"omitempty,oneof=mobile home work"`
	IsPrimary   bool   `json:"is_primary"`
}

// CreateContactRequest defines the payload for contact creation, optionally
// with an initial phone-number batch.
type CreateContactRequest struct {
	UserID       uuid.UUID            `json:"user_id"       validate:"required"`
	Name         string               `json:"name"          validate:"required"`
	IsEmergency  bool                 `json:"is_emergency"`
	Relationship *string              `json:"relationship"  validate:"omitempty,min=1"`
	Image        *string              `json:"image"         validate:"omitempty,url"`
	PhoneNumbers []PhoneNumberPayload `json:"phone_numbers" validate:"omitempty,dive"`
}

// UpdateContactRequest defines the payload for a partial contact update.
type UpdateContactRequest struct {
	Name         *string `json:"name"         validate:"omitempty,min=1"`
	IsEmergency  *bool   `json:"is_emergency"`
	Relationship *string `json:"relationship" validate:"omitempty,min=1"`
	Image        *string `json:"image"        validate:"omitempty,url"`
}

// CreatePhoneNumberRequest defines the payload for adding a phone number to
// an existing contact.
type CreatePhoneNumberRequest struct {
	ContactID   uuid.UUID `json:"contact_id"   validate:"required"`
	PhoneNumber string    `json:"phone_number" validate:"required"`
	PhoneType   string    `json:"phone_type"   validate:"omitempty,oneof=mobile home work"`
	IsPrimary   bool      `json:"is_primary"`
}

// UpdatePhoneNumberRequest defines the payload for a partial phone-number
// update.
type UpdatePhoneNumberRequest struct {
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1"`
	PhoneType   *string `json:"phone_type"   validate:"omitempty,oneof=mobile home work"`
	IsPrimary   *bool   `json:"is_primary"`
}

// UserResponse is the serialized form of a user. The password hash never
// appears here.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Age         *int      `json:"age,omitempty"`
	MAC         *string   `json:"mac,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterUserResponse pairs the created user with its bearer token.
type RegisterUserResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// userToResponse converts a domain.User to its serialized form.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Age:         user.Age,
		MAC:         user.MAC,
		PhoneNumber: user.PhoneNumber,
		Image:       user.Image,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
