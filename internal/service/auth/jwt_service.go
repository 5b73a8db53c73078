package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims holds the validated contents of a bearer token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// JWTService issues and validates signed, time-limited bearer tokens keyed by
// user ID.
type JWTService interface {
	// GenerateToken creates a signed token bound to the given user ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies a token's signature and time claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
