package fallback

import (
	"context"
	"errors"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/logger"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"
)

// Repository applies the dual-backend discipline once for every roster
// operation: the primary (remote) store is attempted first; a business-rule
// outcome is propagated verbatim, while an infrastructure failure is logged
// and the same call is retried against the secondary (local) store. At most
// one store takes the authoritative write for any single operation.
type Repository struct {
	primary   repository.ProfileRepository
	secondary repository.ProfileRepository
}

func NewRepository(primary, secondary repository.ProfileRepository) *Repository {
	return &Repository{primary: primary, secondary: secondary}
}

// definitive reports whether err is a final answer from the queried store.
// ErrNotFound counts: an absent record is a business outcome, not an outage.
func definitive(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.IsBusiness()
	}
	return false
}

func (r *Repository) do(op string, fn func(repository.ProfileRepository) error) error {
	err := fn(r.primary)
	if definitive(err) {
		return err
	}

	logger.Warn().
		Str("operation", op).
		Err(err).
		Msg("Remote store failed, retrying against local store")

	if ferr := fn(r.secondary); ferr != nil {
		if definitive(ferr) {
			return ferr
		}
		logger.Error().
			Str("operation", op).
			Err(ferr).
			Msg("Local store failed after remote failure")
		return apperrors.NewInfrastructure(op, ferr)
	}

	return nil
}

func (r *Repository) Insert(ctx context.Context, p *models.Profile) error {
	return r.do("insert", func(repo repository.ProfileRepository) error {
		return repo.Insert(ctx, p)
	})
}

func (r *Repository) Update(ctx context.Context, p *models.Profile) error {
	return r.do("update", func(repo repository.ProfileRepository) error {
		return repo.Update(ctx, p)
	})
}

func (r *Repository) UpdateFields(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.Profile, error) {
	var merged *models.Profile
	err := r.do("update_fields", func(repo repository.ProfileRepository) error {
		p, err := repo.UpdateFields(ctx, id, upd)
		if err != nil {
			return err
		}
		merged = p
		return nil
	})
	return merged, err
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return r.do("update_status", func(repo repository.ProfileRepository) error {
		return repo.UpdateStatus(ctx, id, status)
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.do("delete", func(repo repository.ProfileRepository) error {
		return repo.Delete(ctx, id)
	})
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var found *models.Profile
	err := r.do("find_by_id", func(repo repository.ProfileRepository) error {
		p, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		found = p
		return nil
	})
	return found, err
}

func (r *Repository) FindByMobile(ctx context.Context, mobile string, scope models.ProfileType) (*models.Profile, error) {
	var found *models.Profile
	err := r.do("find_by_mobile", func(repo repository.ProfileRepository) error {
		p, err := repo.FindByMobile(ctx, mobile, scope)
		if err != nil {
			return err
		}
		found = p
		return nil
	})
	return found, err
}

// ExistsByMobile is the one read that consults both stores: a record held by
// either backend must block re-registration, so a clean miss on the primary
// still checks the secondary. The general rule that a primary miss is
// definitive applies to lookups, not to the uniqueness probe.
func (r *Repository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	exists, err := r.primary.ExistsByMobile(ctx, mobile)
	if err != nil {
		if definitive(err) {
			return false, err
		}
		logger.Warn().
			Str("operation", "exists_by_mobile").
			Err(err).
			Msg("Remote store failed, retrying against local store")

		exists, ferr := r.secondary.ExistsByMobile(ctx, mobile)
		if ferr != nil {
			if definitive(ferr) {
				return false, ferr
			}
			logger.Error().
				Str("operation", "exists_by_mobile").
				Err(ferr).
				Msg("Local store failed after remote failure")
			return false, apperrors.NewInfrastructure("exists_by_mobile", ferr)
		}
		return exists, nil
	}

	if exists {
		return true, nil
	}

	secExists, serr := r.secondary.ExistsByMobile(ctx, mobile)
	if serr != nil {
		if definitive(serr) {
			return false, serr
		}
		// Records on an unreachable local store cannot be read by any
		// path; the primary's answer stands.
		logger.Warn().
			Str("operation", "exists_by_mobile").
			Err(serr).
			Msg("Local store unavailable during uniqueness check")
		return false, nil
	}
	return secExists, nil
}

func (r *Repository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.do("list", func(repo repository.ProfileRepository) error {
		list, err := repo.List(ctx)
		if err != nil {
			return err
		}
		profiles = list
		return nil
	})
	return profiles, err
}
