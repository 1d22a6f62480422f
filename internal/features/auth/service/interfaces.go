package service

import (
	"context"

	"matrimony-backend/internal/features/profile/models"
)

// SessionStore is the cached current-session view, implemented by the local
// record store.
type SessionStore interface {
	Save(ctx context.Context, sess *models.Session) error
	Get(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

type RegisterInput struct {
	Mobile      string
	Password    string
	Name        string
	ProfileType models.ProfileType
}

type AuthService interface {
	// Login authenticates by mobile identifier. A non-empty expectedType
	// scopes the lookup to one roster partition; the configured admin
	// credential pair short-circuits regardless of expectedType.
	Login(ctx context.Context, mobile, password string, expectedType models.ProfileType) (*models.Profile, error)

	// Register creates a pending record. The caller must not establish a
	// session from it; the record needs admin approval first.
	Register(ctx context.Context, input RegisterInput) (*models.Profile, error)

	// Logout clears the cached session only.
	Logout(ctx context.Context) error

	// Restore revalidates the cached session against the roster and
	// returns the backing profile, or nil when no valid session exists.
	Restore(ctx context.Context) (*models.Profile, error)

	// EnsureAdmin creates or repairs the single admin identity. Safe to
	// call repeatedly.
	EnsureAdmin(ctx context.Context) (*models.Profile, error)
}
