package service

import (
	"context"
	"errors"
	"time"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/logger"
	"matrimony-backend/internal/common/validation"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminBootstrap is the seeded admin credential pair from configuration.
type AdminBootstrap struct {
	Mobile   string
	Password string
	Name     string
}

type authService struct {
	repo     repository.ProfileRepository
	sessions SessionStore
	admin    AdminBootstrap
}

func NewAuthService(repo repository.ProfileRepository, sessions SessionStore, admin AdminBootstrap) AuthService {
	return &authService{repo: repo, sessions: sessions, admin: admin}
}

func (s *authService) Login(ctx context.Context, mobile, password string, expectedType models.ProfileType) (*models.Profile, error) {
	if err := validation.ValidateMobile(mobile); err != nil {
		return nil, apperrors.NewValidationError("mobile", err.Error())
	}

	if mobile == s.admin.Mobile && password == s.admin.Password {
		return s.adminLogin(ctx)
	}

	p, err := s.repo.FindByMobile(ctx, mobile, expectedType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The account may exist under the other partition; surface
			// a distinct message in that case.
			if expectedType != "" {
				if other, oerr := s.repo.FindByMobile(ctx, mobile, expectedType.Opposite()); oerr == nil {
					if bcrypt.CompareHashAndPassword([]byte(other.PasswordHash), []byte(password)) == nil {
						return nil, apperrors.NewProfileTypeMismatch(string(other.ProfileType))
					}
				}
			}
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	if p.Role != models.RoleAdmin {
		switch p.Status {
		case models.StatusPending:
			return nil, apperrors.NewPendingApproval()
		case models.StatusRejected:
			return nil, apperrors.NewRejectedAccount()
		}
	}

	// Repeated successful logins simply refresh the cached session.
	if err := s.sessions.Save(ctx, models.NewSession(p)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", p.ID).
		Str("profile_type", string(p.ProfileType)).
		Msg("Login succeeded")

	return p, nil
}

// adminLogin establishes the admin session, creating or repairing the admin
// record so the fixed credential pair always resolves.
func (s *authService) adminLogin(ctx context.Context) (*models.Profile, error) {
	p, err := s.EnsureAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, models.NewSession(p)); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", p.ID).Msg("Admin login succeeded")
	return p, nil
}

func (s *authService) EnsureAdmin(ctx context.Context) (*models.Profile, error) {
	p, err := s.repo.FindByMobile(ctx, s.admin.Mobile, "")
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		hash, herr := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, herr
		}

		now := time.Now().UTC()
		p = &models.Profile{
			ID:                "admin-" + uuid.NewString(),
			Mobile:            s.admin.Mobile,
			Email:             s.admin.Mobile,
			PasswordHash:      string(hash),
			Name:              s.admin.Name,
			ProfileType:       models.TypeGroom,
			Role:              models.RoleAdmin,
			Status:            models.StatusApproved,
			IsProfileComplete: true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := s.repo.Insert(ctx, p); err != nil {
			return nil, err
		}

		logger.Info().Str("user_id", p.ID).Msg("Admin record created")
		return p, nil
	}

	// Normalize an existing record to the admin invariant, including the
	// legacy email alias.
	repaired := p.Role != models.RoleAdmin ||
		p.Status != models.StatusApproved ||
		!p.IsProfileComplete ||
		p.Mobile != s.admin.Mobile ||
		p.Email != s.admin.Mobile

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(s.admin.Password)) != nil {
		hash, herr := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, herr
		}
		p.PasswordHash = string(hash)
		repaired = true
	}

	if repaired {
		p.Role = models.RoleAdmin
		p.Status = models.StatusApproved
		p.IsProfileComplete = true
		p.Mobile = s.admin.Mobile
		p.Email = s.admin.Mobile
		p.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		logger.Info().Str("user_id", p.ID).Msg("Admin record repaired")
	}

	return p, nil
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Profile, error) {
	if err := validation.ValidateMobile(input.Mobile); err != nil {
		return nil, apperrors.NewValidationError("mobile", err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}

	// Uniqueness holds across both stores, not just the one currently
	// reachable.
	exists, err := s.repo.ExistsByMobile(ctx, input.Mobile)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateUser(input.Mobile)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Profile{
		ID:           uuid.NewString(),
		Mobile:       input.Mobile,
		Email:        input.Mobile,
		PasswordHash: string(hash),
		Name:         input.Name,
		ProfileType:  input.ProfileType,
		Role:         models.RoleUser,
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", p.ID).
		Str("profile_type", string(p.ProfileType)).
		Msg("Registration received, awaiting approval")

	return p, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *authService) Restore(ctx context.Context) (*models.Profile, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	p, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Stale session: the roster record was removed.
			_ = s.sessions.Clear(ctx)
			return nil, nil
		}
		return nil, err
	}

	if !p.CanLogin() {
		// Cached session for a no-longer-approved account is discarded.
		_ = s.sessions.Clear(ctx)
		return nil, nil
	}

	if err := s.sessions.Save(ctx, models.NewSession(p)); err != nil {
		return nil, err
	}

	return p, nil
}
