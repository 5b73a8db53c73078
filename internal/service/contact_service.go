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

// PhoneNumberInput describes one phone number in a contact-creation batch.
type PhoneNumberInput struct {
	PhoneNumber string
	PhoneType   domain.PhoneType // empty defaults to mobile
	IsPrimary   bool
}

// CreateContactInput carries the fields accepted when creating a contact,
// optionally together with an initial batch of phone numbers.
type CreateContactInput struct {
	UserID       uuid.UUID
	Name         string
	IsEmergency  bool
	Relationship *string
	Image        *string
	PhoneNumbers []PhoneNumberInput
}

// ContactService provides contact-related operations.
type ContactService interface {
	// CreateContact inserts the contact and every phone number of the batch
	// inside a single transaction; any failure rolls the whole operation
	// back. The returned contact carries the phone-number set re-read after
	// commit.
	CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error)

	// GetContact retrieves a contact with its nested phone numbers. The two
	// reads are not atomic; concurrent writers may interleave.
	GetContact(ctx context.Context, contactID uuid.UUID) (*domain.Contact, error)

	// ListContactsByUser retrieves all of a user's contacts with nested
	// phone numbers, emergency contacts first, alphabetical within each
	// group. The user's existence is not verified; an unknown user yields an
	// empty list.
	ListContactsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Contact, error)

	// UpdateContact applies a partial update with coalesce semantics.
	UpdateContact(ctx context.Context, contactID uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error)

	// DeleteContact atomically deletes the contact and its phone numbers.
	// A missing contact rolls back the phone-number deletes and reports
	// store.ErrContactNotFound.
	DeleteContact(ctx context.Context, contactID uuid.UUID) error
}

// contactServiceImpl implements the ContactService interface.
type contactServiceImpl struct {
	contactStore store.ContactStore
	phoneStore   store.PhoneNumberStore
	txRunner     store.TxRunner
	logger       *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(
	contactStore store.ContactStore,
	phoneStore store.PhoneNumberStore,
	txRunner store.TxRunner,
	log *slog.Logger,
) ContactService {
	if log == nil {
		log = slog.Default()
	}
	return &contactServiceImpl{
		contactStore: contactStore,
		phoneStore:   phoneStore,
		txRunner:     txRunner,
		logger:       log.With(slog.String("component", "contact_service")),
	}
}

// CreateContact implements ContactService.CreateContact
func (s *contactServiceImpl) CreateContact(
	ctx context.Context,
	input CreateContactInput,
) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	contact, err := domain.NewContact(input.UserID, input.Name, input.IsEmergency)
	if err != nil {
		return nil, err
	}
	contact.Relationship = input.Relationship
	contact.Image = input.Image

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txContacts := s.contactStore.WithTx(tx)
		txPhones := s.phoneStore.WithTx(tx)

		if err := txContacts.Create(ctx, contact); err != nil {
			return err
		}

		for _, in := range input.PhoneNumbers {
			pn, err := domain.NewPhoneNumber(contact.ID, in.PhoneNumber, in.PhoneType, in.IsPrimary)
			if err != nil {
				return err
			}
			if err := txPhones.Create(ctx, pn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create contact",
			"error", err,
			"user_id", input.UserID)
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	// Re-read the committed phone-number set for the response rather than
	// trusting transaction-local state.
	phones, err := s.phoneStore.ListByContact(ctx, contact.ID)
	if err != nil {
		log.Error("failed to read back phone numbers",
			"error", err,
			"contact_id", contact.ID)
		return nil, fmt.Errorf("failed to read back phone numbers: %w", err)
	}
	contact.PhoneNumbers = phones

	log.Info("contact created",
		"contact_id", contact.ID,
		"user_id", contact.UserID,
		"phone_count", len(phones))
	return contact, nil
}

// GetContact implements ContactService.GetContact
func (s *contactServiceImpl) GetContact(
	ctx context.Context,
	contactID uuid.UUID,
) (*domain.Contact, error) {
	contact, err := s.contactStore.GetByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contact: %w", err)
	}

	phones, err := s.phoneStore.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve phone numbers: %w", err)
	}
	contact.PhoneNumbers = phones

	return contact, nil
}

// ListContactsByUser implements ContactService.ListContactsByUser
func (s *contactServiceImpl) ListContactsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Contact, error) {
	contacts, err := s.contactStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	for _, contact := range contacts {
		phones, err := s.phoneStore.ListByContact(ctx, contact.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve phone numbers: %w", err)
		}
		contact.PhoneNumbers = phones
	}

	return contacts, nil
}

// UpdateContact implements ContactService.UpdateContact
func (s *contactServiceImpl) UpdateContact(
	ctx context.Context,
	contactID uuid.UUID,
	patch domain.ContactPatch,
) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	contact, err := s.contactStore.Update(ctx, contactID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	log.Info("contact updated", "contact_id", contactID)
	return contact, nil
}

// DeleteContact implements ContactService.DeleteContact
func (s *contactServiceImpl) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.phoneStore.WithTx(tx).DeleteByContact(ctx, contactID); err != nil {
			return err
		}
		// A zero-row contact delete fails here and rolls the phone-number
		// deletes back.
		return s.contactStore.WithTx(tx).Delete(ctx, contactID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("contact not found for delete", "contact_id", contactID)
		} else {
			log.Error("failed to delete contact", "error", err, "contact_id", contactID)
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	log.Info("contact deleted with phone numbers", "contact_id", contactID)
	return nil
}
