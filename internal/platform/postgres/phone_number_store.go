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

// PostgresPhoneNumberStore implements the store.PhoneNumberStore interface
// using a PostgreSQL database as the storage backend.
//
// The contact_phone_numbers table carries a partial unique index on
// (contact_id) WHERE is_primary, so even a caller that skips the
// clear-then-write protocol cannot commit two primary rows for one contact.
type PostgresPhoneNumberStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPhoneNumberStore creates a new PostgreSQL implementation of the
// PhoneNumberStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPhoneNumberStore(db store.DBTX, log *slog.Logger) *PostgresPhoneNumberStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresPhoneNumberStore{
		db:     db,
		logger: log.With(slog.String("component", "phone_number_store")),
	}
}

// Ensure PostgresPhoneNumberStore implements store.PhoneNumberStore interface
var _ store.PhoneNumberStore = (*PostgresPhoneNumberStore)(nil)

// WithTx implements store.PhoneNumberStore.WithTx
func (s *PostgresPhoneNumberStore) WithTx(tx *sql.Tx) store.PhoneNumberStore {
	return &PostgresPhoneNumberStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PhoneNumberStore.Create
// Returns store.ErrInvalidEntity if the referenced contact does not exist and
// store.ErrConflict if the insert collides with an existing primary row.
func (s *PostgresPhoneNumberStore) Create(ctx context.Context, pn *domain.PhoneNumber) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := pn.Validate(); err != nil {
		log.Warn("phone number validation failed during create",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", pn.ID.String()))
		return err
	}

	query := `
		INSERT INTO contact_phone_numbers (id, contact_id, phone_number, phone_type, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		pn.ID,
		pn.ContactID,
		pn.PhoneNumber,
		pn.PhoneType,
		pn.IsPrimary,
		pn.CreatedAt,
		pn.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during phone number creation",
				slog.String("error", err.Error()),
				slog.String("contact_id", pn.ContactID.String()))
			return fmt.Errorf("%w: contact with ID %s not found",
				store.ErrInvalidEntity, pn.ContactID)
		}
		if isUniqueViolation(err) {
			log.Warn("primary phone conflict during creation",
				slog.String("error", err.Error()),
				slog.String("contact_id", pn.ContactID.String()))
			return fmt.Errorf("%w: contact %s already has a primary phone number",
				store.ErrConflict, pn.ContactID)
		}

		log.Error("failed to create phone number",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", pn.ID.String()),
			slog.String("contact_id", pn.ContactID.String()))
		return err
	}

	log.Info("phone number created successfully",
		slog.String("phone_number_id", pn.ID.String()),
		slog.String("contact_id", pn.ContactID.String()),
		slog.Bool("is_primary", pn.IsPrimary))
	return nil
}

// GetByID implements store.PhoneNumberStore.GetByID
// Returns store.ErrPhoneNumberNotFound if the phone number does not exist.
func (s *PostgresPhoneNumberStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.PhoneNumber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, contact_id, phone_number, phone_type, is_primary, created_at, updated_at
		FROM contact_phone_numbers
		WHERE id = $1
	`

	pn, err := scanPhoneNumber(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("phone number not found", slog.String("phone_number_id", id.String()))
			return nil, store.ErrPhoneNumberNotFound
		}
		log.Error("failed to get phone number by ID",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", id.String()))
		return nil, err
	}

	return pn, nil
}

// GetContactID implements store.PhoneNumberStore.GetContactID
// Returns store.ErrPhoneNumberNotFound if the phone number does not exist.
func (s *PostgresPhoneNumberStore) GetContactID(
	ctx context.Context,
	id uuid.UUID,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var contactID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		`SELECT contact_id FROM contact_phone_numbers WHERE id = $1`,
		id,
	).Scan(&contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("phone number not found", slog.String("phone_number_id", id.String()))
			return uuid.Nil, store.ErrPhoneNumberNotFound
		}
		log.Error("failed to resolve contact for phone number",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", id.String()))
		return uuid.Nil, err
	}

	return contactID, nil
}

// ListByContact implements store.PhoneNumberStore.ListByContact
// The primary number sorts first, then by phone type.
func (s *PostgresPhoneNumberStore) ListByContact(
	ctx context.Context,
	contactID uuid.UUID,
) ([]*domain.PhoneNumber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, contact_id, phone_number, phone_type, is_primary, created_at, updated_at
		FROM contact_phone_numbers
		WHERE contact_id = $1
		ORDER BY is_primary DESC, phone_type ASC
	`

	rows, err := s.db.QueryContext(ctx, query, contactID)
	if err != nil {
		log.Error("failed to list phone numbers by contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	numbers := []*domain.PhoneNumber{}
	for rows.Next() {
		pn, err := scanPhoneNumber(rows)
		if err != nil {
			log.Error("failed to scan phone number row",
				slog.String("error", err.Error()))
			return nil, err
		}
		numbers = append(numbers, pn)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return numbers, nil
}

// Update implements store.PhoneNumberStore.Update
// Unset patch fields keep their stored values (COALESCE semantics).
// Returns store.ErrPhoneNumberNotFound if the phone number does not exist.
func (s *PostgresPhoneNumberStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.PhoneNumberPatch,
) (*domain.PhoneNumber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contact_phone_numbers
		SET phone_number = COALESCE($1, phone_number),
		    phone_type = COALESCE($2, phone_type),
		    is_primary = COALESCE($3, is_primary),
		    updated_at = $4
		WHERE id = $5
		RETURNING id, contact_id, phone_number, phone_type, is_primary, created_at, updated_at
	`

	var phoneType sql.NullString
	if patch.PhoneType != nil {
		phoneType = sql.NullString{String: string(*patch.PhoneType), Valid: true}
	}
	var isPrimary sql.NullBool
	if patch.IsPrimary != nil {
		isPrimary = sql.NullBool{Bool: *patch.IsPrimary, Valid: true}
	}

	pn, err := scanPhoneNumber(s.db.QueryRowContext(
		ctx,
		query,
		nullString(patch.PhoneNumber),
		phoneType,
		isPrimary,
		time.Now().UTC(),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("phone number not found for update",
				slog.String("phone_number_id", id.String()))
			return nil, store.ErrPhoneNumberNotFound
		}
		if isUniqueViolation(err) {
			log.Warn("primary phone conflict during update",
				slog.String("error", err.Error()),
				slog.String("phone_number_id", id.String()))
			return nil, fmt.Errorf("%w: contact already has a primary phone number",
				store.ErrConflict)
		}
		log.Error("failed to update phone number",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", id.String()))
		return nil, err
	}

	log.Info("phone number updated successfully",
		slog.String("phone_number_id", id.String()),
		slog.Bool("is_primary", pn.IsPrimary))
	return pn, nil
}

// Delete implements store.PhoneNumberStore.Delete
// Returns store.ErrPhoneNumberNotFound if the phone number does not exist.
// Deleting the current primary leaves the contact with no primary; no
// re-election occurs.
func (s *PostgresPhoneNumberStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_phone_numbers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete phone number",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("phone_number_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("phone number not found for delete",
			slog.String("phone_number_id", id.String()))
		return store.ErrPhoneNumberNotFound
	}

	log.Info("phone number deleted successfully",
		slog.String("phone_number_id", id.String()))
	return nil
}

// DeleteByContact implements store.PhoneNumberStore.DeleteByContact
func (s *PostgresPhoneNumberStore) DeleteByContact(
	ctx context.Context,
	contactID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM contact_phone_numbers WHERE contact_id = $1`,
		contactID,
	)
	if err != nil {
		log.Error("failed to delete phone numbers by contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()))
		return 0, err
	}

	log.Debug("phone numbers deleted by contact",
		slog.String("contact_id", contactID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// DeleteByUser implements store.PhoneNumberStore.DeleteByUser
// It removes the phone numbers of every contact owned by the user, so a user
// cascade delete can run before the contacts themselves are removed.
func (s *PostgresPhoneNumberStore) DeleteByUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM contact_phone_numbers
		WHERE contact_id IN (SELECT id FROM contacts WHERE user_id = $1)
	`
	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete phone numbers by user",
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

	log.Debug("phone numbers deleted by user",
		slog.String("user_id", userID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// ClearPrimary implements store.PhoneNumberStore.ClearPrimary
func (s *PostgresPhoneNumberStore) ClearPrimary(ctx context.Context, contactID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE contact_phone_numbers SET is_primary = false WHERE contact_id = $1`,
		contactID,
	)
	if err != nil {
		log.Error("failed to clear primary flags",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()))
		return err
	}

	return nil
}

// ClearPrimaryExcept implements store.PhoneNumberStore.ClearPrimaryExcept
func (s *PostgresPhoneNumberStore) ClearPrimaryExcept(
	ctx context.Context,
	contactID, exceptID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE contact_phone_numbers SET is_primary = false WHERE contact_id = $1 AND id != $2`,
		contactID,
		exceptID,
	)
	if err != nil {
		log.Error("failed to clear primary flags",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()),
			slog.String("except_id", exceptID.String()))
		return err
	}

	return nil
}

// scanPhoneNumber reads one contact_phone_numbers row into a domain.PhoneNumber.
func scanPhoneNumber(row rowScanner) (*domain.PhoneNumber, error) {
	var (
		pn        domain.PhoneNumber
		phoneType string
	)

	err := row.Scan(
		&pn.ID,
		&pn.ContactID,
		&pn.PhoneNumber,
		&phoneType,
		&pn.IsPrimary,
		&pn.CreatedAt,
		&pn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pn.PhoneType = domain.PhoneType(phoneType)
	return &pn, nil
}
