package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Contact. All wrap ErrValidation.
var (
	ErrEmptyContactID     = fmt.Errorf("%w: contact ID cannot be empty", ErrValidation)
	ErrEmptyContactUserID = fmt.Errorf("%w: contact user ID cannot be empty", ErrValidation)
	ErrEmptyContactName   = fmt.Errorf("%w: contact name cannot be empty", ErrValidation)
)

// Contact represents a directory entry owned by exactly one user.
// Emergency contacts sort ahead of regular ones when listing.
type Contact struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Name         string         `json:"name"`
	IsEmergency  bool           `json:"is_emergency"`
	Relationship *string        `json:"relationship,omitempty"`
	Image        *string        `json:"image,omitempty"`
	PhoneNumbers []*PhoneNumber `json:"phone_numbers,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewContact creates a new Contact belonging to the given user.
// It generates a new UUID for the contact ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewContact(userID uuid.UUID, name string, isEmergency bool) (*Contact, error) {
	now := time.Now().UTC()
	contact := &Contact{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		IsEmergency: isEmergency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

// Validate checks if the Contact has valid data.
// Returns an error if any field fails validation.
func (c *Contact) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyContactID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyContactUserID
	}

	if c.Name == "" {
		return ErrEmptyContactName
	}

	return nil
}

// ContactPatch describes a partial update to a contact. A nil field means the
// field was not supplied and the stored value is kept (coalesce semantics).
type ContactPatch struct {
	Name         *string
	IsEmergency  *bool
	Relationship *string
	Image        *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.IsEmergency == nil &&
		p.Relationship == nil &&
		p.Image == nil
}
