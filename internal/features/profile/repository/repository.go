package repository

import (
	"context"
	"errors"

	"matrimony-backend/internal/features/profile/models"
)

// ErrNotFound is returned when a lookup matches no roster record. It is a
// definitive answer from the queried store, not an infrastructure failure,
// so it never triggers a fallback.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository is the single access path to the roster. It is
// implemented once per backend: postgres (remote), local (redis-backed
// record store) and memory (tests).
type ProfileRepository interface {
	Insert(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, p *models.Profile) error

	// UpdateFields merges a partial update into the record, marks it
	// complete and returns the merged profile. Unset fields are omitted
	// from the mutation.
	UpdateFields(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.Profile, error)

	// UpdateStatus applies a direct status mutation, last write wins.
	UpdateStatus(ctx context.Context, id string, status models.Status) error

	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*models.Profile, error)

	// FindByMobile matches the mobile identifier or its legacy email
	// alias. A non-empty scope restricts the search to one partition.
	FindByMobile(ctx context.Context, mobile string, scope models.ProfileType) (*models.Profile, error)

	// ExistsByMobile answers the registration uniqueness check. Unlike
	// FindByMobile it is a pure existence probe across the whole roster.
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)

	List(ctx context.Context) ([]*models.Profile, error)
}
