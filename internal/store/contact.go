package store

import (
	"context"
	"database/sql"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// ContactStore defines the interface for contact data persistence.
type ContactStore interface {
	// Create saves a new contact to the store.
	// Returns ErrInvalidEntity if the referenced user does not exist.
	Create(ctx context.Context, contact *domain.Contact) error

	// GetByID retrieves a contact by its unique ID, without nested phone
	// numbers. Returns ErrContactNotFound if the contact does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)

	// ListByUser retrieves all contacts owned by the given user, ordered by
	// is_emergency descending then name ascending. Returns an empty slice
	// when the user has no contacts; the user's existence is not verified.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Contact, error)

	// Update applies the supplied fields of the patch with coalesce
	// semantics and returns the updated row.
	// Returns ErrContactNotFound if the contact does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error)

	// Delete removes the contact row only; owned phone numbers are deleted
	// separately by the service inside the same transaction.
	// Returns ErrContactNotFound if the contact does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every contact owned by the given user and reports
	// how many rows were deleted. Deleting zero contacts is not an error.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// LockForUpdate takes a row-level lock on the contact for the duration of
	// the enclosing transaction. It serializes concurrent primary-flag
	// writers for the same contact. Returns ErrContactNotFound if the
	// contact does not exist. Only meaningful on a transaction-bound store.
	LockForUpdate(ctx context.Context, id uuid.UUID) error

	// WithTx returns a ContactStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ContactStore
}
