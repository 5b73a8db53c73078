package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/platform/logger"
	"github.com/fieldstone/contacts-api/internal/store"
	"github.com/google/uuid"
)

// CreatePhoneNumberInput carries the fields accepted when adding a phone
// number to a contact.
type CreatePhoneNumberInput struct {
	ContactID   uuid.UUID
	PhoneNumber string
	PhoneType   domain.PhoneType // empty defaults to mobile
	IsPrimary   bool
}

// PhoneNumberService provides phone-number operations and maintains the
// invariant that a contact has at most one primary phone number.
//
// Both invariant-preserving write paths run inside one transaction and take a
// row lock on the owning contact before touching primary flags, so two
// concurrent primary-set requests for the same contact serialize instead of
// interleaving their clear-then-write sequences.
type PhoneNumberService interface {
	// CreatePhoneNumber adds a phone number. When the new number is primary,
	// every existing primary flag for the contact is cleared first, inside
	// the same transaction.
	CreatePhoneNumber(ctx context.Context, input CreatePhoneNumberInput) (*domain.PhoneNumber, error)

	// GetPhoneNumber retrieves a phone number by its ID.
	GetPhoneNumber(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error)

	// ListPhoneNumbersByContact retrieves a contact's phone numbers, primary
	// first, then by phone type.
	ListPhoneNumbersByContact(ctx context.Context, contactID uuid.UUID) ([]*domain.PhoneNumber, error)

	// UpdatePhoneNumber applies a partial update with coalesce semantics.
	// When is_primary is explicitly set to true, every other number of the
	// same contact is cleared first, inside the same transaction.
	UpdatePhoneNumber(ctx context.Context, id uuid.UUID, patch domain.PhoneNumberPatch) (*domain.PhoneNumber, error)

	// DeletePhoneNumber removes a phone number. Deleting the current primary
	// leaves the contact with no primary; no re-election occurs.
	DeletePhoneNumber(ctx context.Context, id uuid.UUID) error
}

// phoneNumberServiceImpl implements the PhoneNumberService interface.
type phoneNumberServiceImpl struct {
	contactStore store.ContactStore
	phoneStore   store.PhoneNumberStore
	txRunner     store.TxRunner
	logger       *slog.Logger
}

// NewPhoneNumberService creates a new PhoneNumberService.
func NewPhoneNumberService(
	contactStore store.ContactStore,
	phoneStore store.PhoneNumberStore,
	txRunner store.TxRunner,
	log *slog.Logger,
) PhoneNumberService {
	if log == nil {
		log = slog.Default()
	}
	return &phoneNumberServiceImpl{
		contactStore: contactStore,
		phoneStore:   phoneStore,
		txRunner:     txRunner,
		logger:       log.With(slog.String("component", "phone_number_service")),
	}
}

// CreatePhoneNumber implements PhoneNumberService.CreatePhoneNumber
func (s *phoneNumberServiceImpl) CreatePhoneNumber(
	ctx context.Context,
	input CreatePhoneNumberInput,
) (*domain.PhoneNumber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pn, err := domain.NewPhoneNumber(input.ContactID, input.PhoneNumber, input.PhoneType, input.IsPrimary)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txPhones := s.phoneStore.WithTx(tx)

		if input.IsPrimary {
			// Serialize against other primary-flag writers for this contact
			// before clearing, then insert as the single primary.
			if err := s.contactStore.WithTx(tx).LockForUpdate(ctx, input.ContactID); err != nil {
				return err
			}
			if err := txPhones.ClearPrimary(ctx, input.ContactID); err != nil {
				return err
			}
		}

		return txPhones.Create(ctx, pn)
	})
	if err != nil {
		log.Error("failed to create phone number",
			"error", err,
			"contact_id", input.ContactID)
		return nil, fmt.Errorf("failed to create phone number: %w", err)
	}

	log.Info("phone number created",
		"phone_number_id", pn.ID,
		"contact_id", pn.ContactID,
		"is_primary", pn.IsPrimary)
	return pn, nil
}

// GetPhoneNumber implements PhoneNumberService.GetPhoneNumber
func (s *phoneNumberServiceImpl) GetPhoneNumber(
	ctx context.Context,
	id uuid.UUID,
) (*domain.PhoneNumber, error) {
	pn, err := s.phoneStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve phone number: %w", err)
	}
	return pn, nil
}

// ListPhoneNumbersByContact implements PhoneNumberService.ListPhoneNumbersByContact
func (s *phoneNumberServiceImpl) ListPhoneNumbersByContact(
	ctx context.Context,
	contactID uuid.UUID,
) ([]*domain.PhoneNumber, error) {
	numbers, err := s.phoneStore.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phone numbers: %w", err)
	}
	return numbers, nil
}

// UpdatePhoneNumber implements PhoneNumberService.UpdatePhoneNumber
func (s *phoneNumberServiceImpl) UpdatePhoneNumber(
	ctx context.Context,
	id uuid.UUID,
	patch domain.PhoneNumberPatch,
) (*domain.PhoneNumber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.PhoneNumber != nil {
		sanitized := domain.SanitizePhoneNumber(*patch.PhoneNumber)
		patch.PhoneNumber = &sanitized
	}

	var updated *domain.PhoneNumber
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txPhones := s.phoneStore.WithTx(tx)

		if patch.IsPrimary != nil && *patch.IsPrimary {
			contactID, err := txPhones.GetContactID(ctx, id)
			if err != nil {
				return err
			}
			if err := s.contactStore.WithTx(tx).LockForUpdate(ctx, contactID); err != nil {
				return err
			}
			if err := txPhones.ClearPrimaryExcept(ctx, contactID, id); err != nil {
				return err
			}
		}

		var err error
		updated, err = txPhones.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("phone number not found for update", "phone_number_id", id)
		} else {
			log.Error("failed to update phone number", "error", err, "phone_number_id", id)
		}
		return nil, fmt.Errorf("failed to update phone number: %w", err)
	}

	log.Info("phone number updated",
		"phone_number_id", id,
		"is_primary", updated.IsPrimary)
	return updated, nil
}

// DeletePhoneNumber implements PhoneNumberService.DeletePhoneNumber
func (s *phoneNumberServiceImpl) DeletePhoneNumber(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.phoneStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete phone number: %w", err)
	}

	log.Info("phone number deleted", "phone_number_id", id)
	return nil
}
