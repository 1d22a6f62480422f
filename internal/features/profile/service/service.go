package service

import (
	"context"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/logger"
	"matrimony-backend/internal/common/validation"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"
)

// ImageProcessor runs an inline-encoded image through the media pipeline
// and returns its public URL.
type ImageProcessor interface {
	ProcessInline(ctx context.Context, ownerID, dataURL string) (string, error)
}

// SessionRefresher updates the cached session after a profile mutation.
type SessionRefresher interface {
	Save(ctx context.Context, sess *models.Session) error
}

type ProfileService interface {
	// UpdateProfile merges the partial update, marks the profile complete
	// and refreshes the cached session. Inline images are uploaded first;
	// an upload failure degrades to the inline value instead of failing
	// the update.
	UpdateProfile(ctx context.Context, userID string, upd *models.ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	repo     repository.ProfileRepository
	images   ImageProcessor
	sessions SessionRefresher
}

func NewProfileService(repo repository.ProfileRepository, images ImageProcessor, sessions SessionRefresher) ProfileService {
	return &profileService{repo: repo, images: images, sessions: sessions}
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, upd *models.ProfileUpdate) (*models.Profile, error) {
	if upd.About != nil {
		if err := validation.ValidateAbout(*upd.About); err != nil {
			return nil, apperrors.NewValidationError("about", err.Error())
		}
	}

	s.resolveImages(ctx, userID, upd)

	p, err := s.repo.UpdateFields(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, models.NewSession(p)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", p.ID).
		Bool("profile_complete", p.IsProfileComplete).
		Msg("Profile updated")

	return p, nil
}

// resolveImages replaces inline-encoded images with uploaded URLs. Failures
// keep the inline value as a degraded fallback; the update still proceeds.
func (s *profileService) resolveImages(ctx context.Context, userID string, upd *models.ProfileUpdate) {
	replace := func(value string) string {
		url, err := s.images.ProcessInline(ctx, userID, value)
		if err != nil {
			logger.Warn().
				Str("user_id", userID).
				Err(err).
				Msg("Image upload failed, keeping inline representation")
			return value
		}
		return url
	}

	if upd.ProfileImage != nil && isInline(*upd.ProfileImage) {
		resolved := replace(*upd.ProfileImage)
		upd.ProfileImage = &resolved
	}

	for i, img := range upd.ProfileImages {
		if isInline(img) {
			upd.ProfileImages[i] = replace(img)
		}
	}
}

func isInline(s string) bool {
	return len(s) > 5 && s[:5] == "data:"
}
