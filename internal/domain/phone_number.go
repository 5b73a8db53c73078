package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhoneType classifies a contact's phone number.
type PhoneType string

// Possible phone type values
const (
	PhoneTypeMobile PhoneType = "mobile"
	PhoneTypeHome   PhoneType = "home"
	PhoneTypeWork   PhoneType = "work"
)

// Common validation errors for PhoneNumber. All wrap ErrValidation.
var (
	ErrEmptyPhoneNumberID        = fmt.Errorf("%w: phone number ID cannot be empty", ErrValidation)
	ErrEmptyPhoneNumberContactID = fmt.Errorf("%w: phone number contact ID cannot be empty", ErrValidation)
	ErrEmptyPhoneNumberValue     = fmt.Errorf("%w: phone number cannot be empty", ErrValidation)
	ErrInvalidPhoneType          = fmt.Errorf("%w: invalid phone type", ErrValidation)
)

// PhoneNumber represents a phone number attached to a contact.
// At most one phone number per contact may be flagged primary; the store and
// service layers cooperate to maintain that invariant.
type PhoneNumber struct {
	ID          uuid.UUID `json:"id"`
	ContactID   uuid.UUID `json:"contact_id"`
	PhoneNumber string    `json:"phone_number"`
	PhoneType   PhoneType `json:"phone_type"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPhoneNumber creates a new PhoneNumber for the given contact.
// An empty phoneType defaults to mobile. Returns an error if validation fails.
func NewPhoneNumber(
	contactID uuid.UUID,
	number string,
	phoneType PhoneType,
	isPrimary bool,
) (*PhoneNumber, error) {
	if phoneType == "" {
		phoneType = PhoneTypeMobile
	}

	now := time.Now().UTC()
	pn := &PhoneNumber{
		ID:          uuid.New(),
		ContactID:   contactID,
		PhoneNumber: SanitizePhoneNumber(number),
		PhoneType:   phoneType,
		IsPrimary:   isPrimary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := pn.Validate(); err != nil {
		return nil, err
	}

	return pn, nil
}

// Validate checks if the PhoneNumber has valid data.
// Returns an error if any field fails validation.
func (p *PhoneNumber) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPhoneNumberID
	}

	if p.ContactID == uuid.Nil {
		return ErrEmptyPhoneNumberContactID
	}

	if p.PhoneNumber == "" {
		return ErrEmptyPhoneNumberValue
	}

	if !isValidPhoneType(p.PhoneType) {
		return ErrInvalidPhoneType
	}

	return nil
}

// isValidPhoneType checks if the given type is a valid PhoneType.
func isValidPhoneType(t PhoneType) bool {
	switch t {
	case PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork:
		return true
	default:
		return false
	}
}

// PhoneNumberPatch describes a partial update to a phone number. A nil field
// means the field was not supplied and the stored value is kept.
type PhoneNumberPatch struct {
	PhoneNumber *string
	PhoneType   *PhoneType
	IsPrimary   *bool
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p PhoneNumberPatch) IsEmpty() bool {
	return p.PhoneNumber == nil &&
		p.PhoneType == nil &&
		p.IsPrimary == nil
}

// SanitizePhoneNumber strips everything but digits and a leading plus sign
// from a phone number, leaving the canonical stored form.
func SanitizePhoneNumber(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
