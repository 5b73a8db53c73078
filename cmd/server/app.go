package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fieldstone/contacts-api/internal/config"
	"github.com/fieldstone/contacts-api/internal/platform/postgres"
	"github.com/fieldstone/contacts-api/internal/service"
	"github.com/fieldstone/contacts-api/internal/service/auth"
	"github.com/fieldstone/contacts-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (interfaces, backed by postgres implementations)
	userStore    store.UserStore
	contactStore store.ContactStore
	phoneStore   store.PhoneNumberStore
	txRunner     store.TxRunner

	// Services
	jwtService          auth.JWTService
	passwordHasher      auth.PasswordHasher
	userService         service.UserService
	contactService      service.ContactService
	phoneNumberService  service.PhoneNumberService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logger, and database connection must be
// established before calling it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.contactStore = postgres.NewPostgresContactStore(db, logger)
	app.phoneStore = postgres.NewPostgresPhoneNumberStore(db, logger)
	app.txRunner = store.NewTxRunner(db)

	app.userService = service.NewUserService(
		app.userStore,
		app.contactStore,
		app.phoneStore,
		app.txRunner,
		app.passwordHasher,
		app.jwtService,
		logger,
	)
	app.contactService = service.NewContactService(
		app.contactStore,
		app.phoneStore,
		app.txRunner,
		logger,
	)
	app.phoneNumberService = service.NewPhoneNumberService(
		app.contactStore,
		app.phoneStore,
		app.txRunner,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
