package memory

import (
	"context"
	"sync"
	"time"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"
)

// Repository is a map-backed ProfileRepository used by tests and local
// development. Profiles are copied on the way in and out so callers never
// share state with the store.
type Repository struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
	order    []string
}

func NewRepository() *Repository {
	return &Repository{profiles: make(map[string]*models.Profile)}
}

func clone(p *models.Profile) *models.Profile {
	cp := *p
	if p.ProfileImages != nil {
		cp.ProfileImages = append([]string(nil), p.ProfileImages...)
	}
	return &cp
}

func (r *Repository) Insert(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; ok {
		return apperrors.NewDuplicateUser(p.Mobile)
	}

	r.profiles[p.ID] = clone(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *Repository) Update(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; !ok {
		return repository.ErrNotFound
	}

	r.profiles[p.ID] = clone(p)
	return nil
}

func (r *Repository) UpdateFields(_ context.Context, id string, upd *models.ProfileUpdate) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	upd.Apply(p)
	return clone(p), nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return repository.ErrNotFound
	}

	delete(r.profiles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *Repository) FindByMobile(_ context.Context, mobile string, scope models.ProfileType) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		p := r.profiles[id]
		if !p.MatchesIdentifier(mobile) {
			continue
		}
		if scope != "" && p.ProfileType != scope {
			continue
		}
		return clone(p), nil
	}

	return nil, repository.ErrNotFound
}

func (r *Repository) ExistsByMobile(_ context.Context, mobile string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.MatchesIdentifier(mobile) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) List(_ context.Context) ([]*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*models.Profile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, clone(r.profiles[id]))
	}
	return profiles, nil
}
