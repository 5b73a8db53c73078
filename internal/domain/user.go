package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User. All wrap ErrValidation.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUserName       = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	ErrInvalidAge          = fmt.Errorf("%w: age must be a positive integer", ErrValidation)
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 6

// User represents a registered owner of a contacts directory.
// The plaintext password only exists transiently during registration or a
// password change; only the bcrypt hash is ever persisted.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext, transient; never persisted or serialized
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Age            *int      `json:"age,omitempty"`
	MAC            *string   `json:"mac,omitempty"`
	PhoneNumber    *string   `json:"phone_number,omitempty"`
	Image          *string   `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name and plaintext password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(name, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
	} else if u.HashedPassword == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	if u.Age != nil && *u.Age <= 0 {
		return ErrInvalidAge
	}

	return nil
}

// UserPatch describes a partial update to a user. A nil field means the field
// was not supplied and the stored value is kept.
type UserPatch struct {
	Name           *string
	HashedPassword *string
	Age            *int
	MAC            *string
	PhoneNumber    *string
	Image          *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.HashedPassword == nil &&
		p.Age == nil &&
		p.MAC == nil &&
		p.PhoneNumber == nil &&
		p.Image == nil
}
