package store

import (
	"context"
	"database/sql"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// PhoneNumberStore defines the interface for phone number data persistence.
//
// The primary-flag invariant (at most one primary phone number per contact)
// is maintained by the service layer composing ClearPrimary /
// ClearPrimaryExcept with Create / Update inside a single transaction, under
// a per-contact row lock taken through ContactStore.LockForUpdate. The
// database schema additionally enforces the invariant with a partial unique
// index as a backstop.
type PhoneNumberStore interface {
	// Create saves a new phone number to the store.
	// Returns ErrInvalidEntity if the referenced contact does not exist.
	Create(ctx context.Context, pn *domain.PhoneNumber) error

	// GetByID retrieves a phone number by its unique ID.
	// Returns ErrPhoneNumberNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error)

	// GetContactID resolves the owning contact of a phone number.
	// Returns ErrPhoneNumberNotFound if the phone number does not exist.
	GetContactID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// ListByContact retrieves all phone numbers for the given contact,
	// ordered by is_primary descending then phone_type ascending. Returns an
	// empty slice for an unmatched contact.
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*domain.PhoneNumber, error)

	// Update applies the supplied fields of the patch with coalesce
	// semantics and returns the updated row.
	// Returns ErrPhoneNumberNotFound if the phone number does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.PhoneNumberPatch) (*domain.PhoneNumber, error)

	// Delete removes a phone number by its ID.
	// Returns ErrPhoneNumberNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByContact removes every phone number owned by the given contact
	// and reports how many rows were deleted.
	DeleteByContact(ctx context.Context, contactID uuid.UUID) (int64, error)

	// DeleteByUser removes every phone number owned by any contact of the
	// given user and reports how many rows were deleted.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ClearPrimary clears the primary flag on every phone number of the
	// given contact.
	ClearPrimary(ctx context.Context, contactID uuid.UUID) error

	// ClearPrimaryExcept clears the primary flag on every phone number of
	// the given contact except the one identified by exceptID.
	ClearPrimaryExcept(ctx context.Context, contactID, exceptID uuid.UUID) error

	// WithTx returns a PhoneNumberStore bound to the provided transaction.
	WithTx(tx *sql.Tx) PhoneNumberStore
}
