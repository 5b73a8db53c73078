// Package service implements the entity services that orchestrate store
// operations, wrapping multi-statement writes in transactions.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/platform/logger"
	"github.com/fieldstone/contacts-api/internal/service/auth"
	"github.com/fieldstone/contacts-api/internal/store"
	"github.com/google/uuid"
)

// RegisterUserInput carries the fields accepted at registration.
type RegisterUserInput struct {
	Name        string
	Password    string
	Age         *int
	MAC         *string
	PhoneNumber *string
	Image       *string
}

// UpdateUserInput carries the fields of a partial user update. Nil fields are
// left unchanged; a supplied password is re-hashed before storage.
type UpdateUserInput struct {
	Name        *string
	Password    *string
	Age         *int
	MAC         *string
	PhoneNumber *string
	Image       *string
}

// RegisteredUser pairs a freshly created user with its bearer credential.
type RegisteredUser struct {
	User  *domain.User
	Token string
}

// UserService provides user-related operations.
type UserService interface {
	// Register creates a new user with a hashed password and issues a
	// short-lived bearer token bound to the new user's ID.
	Register(ctx context.Context, input RegisterUserInput) (*RegisteredUser, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateUser applies a partial update. A supplied password is re-hashed.
	// Returns store.ErrNoFieldsToUpdate if no recognized field is supplied.
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// DeleteUser atomically deletes the user together with all owned
	// contacts and their phone numbers.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore    store.UserStore
	contactStore store.ContactStore
	phoneStore   store.PhoneNumberStore
	txRunner     store.TxRunner
	hasher       auth.PasswordHasher
	jwtService   auth.JWTService
	logger       *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	contactStore store.ContactStore,
	phoneStore store.PhoneNumberStore,
	txRunner store.TxRunner,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	log *slog.Logger,
) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userServiceImpl{
		userStore:    userStore,
		contactStore: contactStore,
		phoneStore:   phoneStore,
		txRunner:     txRunner,
		hasher:       hasher,
		jwtService:   jwtService,
		logger:       log.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*RegisteredUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(input.Name, input.Password)
	if err != nil {
		return nil, err
	}
	user.Age = input.Age
	user.MAC = input.MAC
	user.Image = input.Image
	if input.PhoneNumber != nil {
		sanitized := domain.SanitizePhoneNumber(*input.PhoneNumber)
		user.PhoneNumber = &sanitized
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // plaintext is never persisted

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		log.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token for new user",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return &RegisteredUser{User: user, Token: token}, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateUser implements UserService.UpdateUser
func (s *userServiceImpl) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	patch := domain.UserPatch{
		Name:  input.Name,
		Age:   input.Age,
		MAC:   input.MAC,
		Image: input.Image,
	}
	if input.PhoneNumber != nil {
		sanitized := domain.SanitizePhoneNumber(*input.PhoneNumber)
		patch.PhoneNumber = &sanitized
	}
	if input.Password != nil {
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.HashedPassword = &hashed
	}

	user, err := s.userStore.Update(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", "user_id", userID)
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
// Phone numbers go first (they reference contacts), then contacts, then the
// user row. Any failure rolls the whole cascade back.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.phoneStore.WithTx(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if _, err := s.contactStore.WithTx(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.userStore.WithTx(tx).Delete(ctx, userID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found for delete", "user_id", userID)
		} else {
			log.Error("failed to delete user", "error", err, "user_id", userID)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted with owned contacts", "user_id", userID)
	return nil
}
