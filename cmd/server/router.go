package main

import (
	"net/http"
	"strings"

	"github.com/fieldstone/contacts-api/internal/api"
	apiMiddleware "github.com/fieldstone/contacts-api/internal/api/middleware"
	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(app.userService)
	contactHandler := api.NewContactHandler(app.contactService)
	phoneHandler := api.NewPhoneNumberHandler(app.phoneNumberService)

	r.Route("/users", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete))
		r.Post("/", userHandler.Register)
		r.Get("/", userHandler.Get)
		r.Put("/", userHandler.Update)
		r.Delete("/", userHandler.Delete)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete))
		r.Post("/", contactHandler.Create)
		r.Get("/", contactHandler.Get)
		r.Put("/", contactHandler.Update)
		r.Delete("/", contactHandler.Delete)
	})

	r.Route("/phone-numbers", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete))
		r.Post("/", phoneHandler.Create)
		r.Get("/", phoneHandler.Get)
		r.Put("/", phoneHandler.Update)
		r.Delete("/", phoneHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// methodNotAllowed returns a 405 handler that lists the supported methods in
// the Allow header.
func methodNotAllowed(allowed ...string) http.HandlerFunc {
	allowHeader := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowHeader)
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
