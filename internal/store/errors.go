package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when an operation would violate a uniqueness
	// constraint, such as the single-primary index on phone numbers.
	ErrConflict = errors.New("entity conflict")

	// ErrInvalidEntity is returned when an entity fails validation or
	// references a parent that does not exist (foreign key violation).
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrNoFieldsToUpdate is returned when a partial update supplies no
	// recognized fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrContactNotFound indicates that the requested contact does not exist.
	ErrContactNotFound = fmt.Errorf("%w: contact", ErrNotFound)

	// ErrPhoneNumberNotFound indicates that the requested phone number does
	// not exist.
	ErrPhoneNumberNotFound = fmt.Errorf("%w: phone number", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
