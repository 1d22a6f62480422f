package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"

	"github.com/redis/go-redis/v9"
)

// The local record store keeps the whole roster as one JSON array under the
// "users" key and the cached session under "user". Values are read and
// written wholesale; there are no partial updates at the storage layer.

const (
	rosterKey  = "users"
	sessionKey = "user"

	// Hard ceiling for a single value write. Exceeding it is a
	// reportable failure, not a silent truncation.
	maxValueBytes = 4 << 20
)

// checkQuota guards a serialized value against the write ceiling.
func checkQuota(data []byte) error {
	if len(data) > maxValueBytes {
		return apperrors.NewQuotaExceeded(len(data))
	}
	return nil
}

type localRepository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) repository.ProfileRepository {
	return &localRepository{client: client}
}

func (r *localRepository) loadRoster(ctx context.Context) ([]*models.Profile, error) {
	data, err := r.client.Get(ctx, rosterKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*models.Profile{}, nil
		}
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var roster []*models.Profile
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	return roster, nil
}

func (r *localRepository) saveRoster(ctx context.Context, roster []*models.Profile) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	if err := checkQuota(data); err != nil {
		return err
	}

	if err := r.client.Set(ctx, rosterKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	return nil
}

func (r *localRepository) Insert(ctx context.Context, p *models.Profile) error {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return err
	}

	for _, existing := range roster {
		if existing.ID == p.ID {
			return apperrors.NewDuplicateUser(p.Mobile)
		}
	}

	return r.saveRoster(ctx, append(roster, p))
}

func (r *localRepository) Update(ctx context.Context, p *models.Profile) error {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return err
	}

	for i, existing := range roster {
		if existing.ID == p.ID {
			roster[i] = p
			return r.saveRoster(ctx, roster)
		}
	}

	return repository.ErrNotFound
}

func (r *localRepository) UpdateFields(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.Profile, error) {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	for i, existing := range roster {
		if existing.ID == id {
			upd.Apply(existing)
			roster[i] = existing
			if err := r.saveRoster(ctx, roster); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (r *localRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return err
	}

	for i, existing := range roster {
		if existing.ID == id {
			existing.Status = status
			existing.UpdatedAt = nowUTC()
			roster[i] = existing
			return r.saveRoster(ctx, roster)
		}
	}

	return repository.ErrNotFound
}

func (r *localRepository) Delete(ctx context.Context, id string) error {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return err
	}

	filtered := roster[:0]
	found := false
	for _, existing := range roster {
		if existing.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, existing)
	}

	if !found {
		return repository.ErrNotFound
	}

	return r.saveRoster(ctx, filtered)
}

func (r *localRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range roster {
		if existing.ID == id {
			return existing, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (r *localRepository) FindByMobile(ctx context.Context, mobile string, scope models.ProfileType) (*models.Profile, error) {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range roster {
		if !existing.MatchesIdentifier(mobile) {
			continue
		}
		if scope != "" && existing.ProfileType != scope {
			continue
		}
		return existing, nil
	}

	return nil, repository.ErrNotFound
}

func (r *localRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	roster, err := r.loadRoster(ctx)
	if err != nil {
		return false, err
	}

	for _, existing := range roster {
		if existing.MatchesIdentifier(mobile) {
			return true, nil
		}
	}

	return false, nil
}

func (r *localRepository) List(ctx context.Context) ([]*models.Profile, error) {
	return r.loadRoster(ctx)
}
