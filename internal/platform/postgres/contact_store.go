package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/platform/logger"
	"github.com/fieldstone/contacts-api/internal/store"
	"github.com/google/uuid"
)

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the
// ContactStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresContactStore(db store.DBTX, log *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresContactStore{
		db:     db,
		logger: log.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore interface
var _ store.ContactStore = (*PostgresContactStore)(nil)

// WithTx implements store.ContactStore.WithTx
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ContactStore.Create
// Returns store.ErrInvalidEntity if the referenced user does not exist
// (foreign key violation).
func (s *PostgresContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during create",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return err
	}

	query := `
		INSERT INTO contacts (id, user_id, name, is_emergency, relationship, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.IsEmergency,
		nullString(contact.Relationship),
		nullString(contact.Image),
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during contact creation",
				slog.String("error", err.Error()),
				slog.String("contact_id", contact.ID.String()),
				slog.String("user_id", contact.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, contact.UserID)
		}

		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()),
			slog.String("user_id", contact.UserID.String()))
		return err
	}

	log.Info("contact created successfully",
		slog.String("contact_id", contact.ID.String()),
		slog.String("user_id", contact.UserID.String()))
	return nil
}

// GetByID implements store.ContactStore.GetByID
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, is_emergency, relationship, image, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found", slog.String("contact_id", id.String()))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact by ID",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return nil, err
	}

	return contact, nil
}

// ListByUser implements store.ContactStore.ListByUser
// Emergency contacts surface first, alphabetical within each group.
func (s *PostgresContactStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, is_emergency, relationship, image, created_at, updated_at
		FROM contacts
		WHERE user_id = $1
		ORDER BY is_emergency DESC, name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list contacts by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	contacts := []*domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error("failed to scan contact row",
				slog.String("error", err.Error()))
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return contacts, nil
}

// Update implements store.ContactStore.Update
// Unset patch fields keep their stored values (COALESCE semantics).
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ContactPatch,
) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contacts
		SET name = COALESCE($1, name),
		    is_emergency = COALESCE($2, is_emergency),
		    relationship = COALESCE($3, relationship),
		    image = COALESCE($4, image),
		    updated_at = $5
		WHERE id = $6
		RETURNING id, user_id, name, is_emergency, relationship, image, created_at, updated_at
	`

	var isEmergency sql.NullBool
	if patch.IsEmergency != nil {
		isEmergency = sql.NullBool{Bool: *patch.IsEmergency, Valid: true}
	}

	contact, err := scanContact(s.db.QueryRowContext(
		ctx,
		query,
		nullString(patch.Name),
		isEmergency,
		nullString(patch.Relationship),
		nullString(patch.Image),
		time.Now().UTC(),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found for update", slog.String("contact_id", id.String()))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return nil, err
	}

	log.Info("contact updated successfully", slog.String("contact_id", id.String()))
	return contact, nil
}

// Delete implements store.ContactStore.Delete
// It removes the contact row only. Returns store.ErrContactNotFound if the
// contact does not exist, so a caller running inside a transaction can roll
// back the companion phone-number deletes.
func (s *PostgresContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("contact not found for delete", slog.String("contact_id", id.String()))
		return store.ErrContactNotFound
	}

	log.Info("contact deleted successfully", slog.String("contact_id", id.String()))
	return nil
}

// DeleteByUser implements store.ContactStore.DeleteByUser
// Deleting zero contacts is not an error.
func (s *PostgresContactStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete contacts by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	log.Debug("contacts deleted by user",
		slog.String("user_id", userID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// LockForUpdate implements store.ContactStore.LockForUpdate
// The row lock is held until the enclosing transaction resolves, serializing
// concurrent primary-flag writers for the same contact.
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var lockedID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id FROM contacts WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found for lock", slog.String("contact_id", id.String()))
			return store.ErrContactNotFound
		}
		log.Error("failed to lock contact row",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return err
	}

	return nil
}

// scanContact reads one contacts row into a domain.Contact.
func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		contact      domain.Contact
		relationship sql.NullString
		image        sql.NullString
	)

	err := row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.IsEmergency,
		&relationship,
		&image,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.Relationship = stringPtr(relationship)
	contact.Image = stringPtr(image)
	return &contact, nil
}
