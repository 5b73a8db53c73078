package store

import (
	"context"
	"database/sql"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext is never persisted.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user never contains a plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update applies the supplied fields of the patch to an existing user and
	// returns the updated row. Unset (nil) fields are left unchanged.
	// Returns ErrNoFieldsToUpdate if the patch is empty and ErrUserNotFound
	// if the user does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete removes the user row only; it does not touch owned contacts.
	// Cascade deletion is orchestrated by the service inside one transaction.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction, so that
	// multiple operations can execute atomically. The transaction lifecycle
	// is managed by the caller (typically a service through a TxRunner).
	WithTx(tx *sql.Tx) UserStore
}
