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
	profileservice "matrimony-backend/internal/features/profile/service"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StatusGroups partitions the roster for the moderation dashboard. Admin
// records are excluded.
type StatusGroups struct {
	Pending  []*models.Profile `json:"pending"`
	Approved []*models.Profile `json:"approved"`
	Rejected []*models.Profile `json:"rejected"`
}

// CreateInput is the admin-created (or admin-edited) profile form. With
// EditingUserID set the call updates in place: a blank password keeps the
// current hash and a blank image keeps the current one.
type CreateInput struct {
	EditingUserID string

	Mobile      string
	Password    string
	Name        string
	ProfileType models.ProfileType

	Phone         string
	DateOfBirth   string
	Height        string
	Education     string
	Occupation    string
	Salary        string
	City          string
	State         string
	Religion      string
	MotherTongue  string
	FamilyType    string
	About         string
	ProfileImage  string
	ProfileImages []string

	ActingAdminID string
}

type AdminService interface {
	ListByStatus(ctx context.Context) (*StatusGroups, error)
	SetStatus(ctx context.Context, userID string, status models.Status) error
	DeleteUser(ctx context.Context, userID string) error
	CreateProfile(ctx context.Context, input CreateInput) (*models.Profile, error)
}

type adminService struct {
	repo   repository.ProfileRepository
	images profileservice.ImageProcessor
}

func NewAdminService(repo repository.ProfileRepository, images profileservice.ImageProcessor) AdminService {
	return &adminService{repo: repo, images: images}
}

func (s *adminService) ListByStatus(ctx context.Context) (*StatusGroups, error) {
	roster, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	groups := &StatusGroups{
		Pending:  []*models.Profile{},
		Approved: []*models.Profile{},
		Rejected: []*models.Profile{},
	}

	for _, p := range roster {
		if p.Role == models.RoleAdmin {
			continue
		}
		switch p.Status {
		case models.StatusPending:
			groups.Pending = append(groups.Pending, p)
		case models.StatusApproved:
			groups.Approved = append(groups.Approved, p)
		case models.StatusRejected:
			groups.Rejected = append(groups.Rejected, p)
		}
	}

	return groups, nil
}

func (s *adminService) SetStatus(ctx context.Context, userID string, status models.Status) error {
	// Moderation can only approve or reject. The write is applied last
	// write wins with no read-back conflict check.
	if status != models.StatusApproved && status != models.StatusRejected {
		return apperrors.NewValidationError("status", "status must be approved or rejected")
	}

	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User")
		}
		return err
	}

	logger.Info().
		Str("user_id", userID).
		Str("status", string(status)).
		Msg("User status updated")

	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	// Irreversible; the confirmation step lives in the UI.
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User")
		}
		return err
	}

	logger.Info().Str("user_id", userID).Msg("User deleted")
	return nil
}

func (s *adminService) CreateProfile(ctx context.Context, input CreateInput) (*models.Profile, error) {
	if input.EditingUserID != "" {
		return s.editProfile(ctx, input)
	}

	if err := validation.ValidateMobile(input.Mobile); err != nil {
		return nil, apperrors.NewValidationError("mobile", err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}
	if input.ProfileImage == "" {
		return nil, apperrors.NewValidationError("profile_image", "profile image is required")
	}
	if input.About != "" {
		if err := validation.ValidateAbout(input.About); err != nil {
			return nil, apperrors.NewValidationError("about", err.Error())
		}
	}

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
		ID:                uuid.NewString(),
		Mobile:            input.Mobile,
		Email:             input.Mobile,
		PasswordHash:      string(hash),
		Name:              input.Name,
		ProfileType:       input.ProfileType,
		Role:              models.RoleUser,
		Status:            models.StatusApproved,
		IsProfileComplete: true,
		Phone:             input.Phone,
		DateOfBirth:       input.DateOfBirth,
		Height:            input.Height,
		Education:         input.Education,
		Occupation:        input.Occupation,
		Salary:            input.Salary,
		City:              input.City,
		State:             input.State,
		Religion:          input.Religion,
		MotherTongue:      input.MotherTongue,
		FamilyType:        input.FamilyType,
		About:             input.About,
		ProfileImage:      s.resolveImage(ctx, input.Mobile, input.ProfileImage),
		ProfileImages:     s.resolveImages(ctx, input.Mobile, input.ProfileImages),
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         "admin",
		CreatedByAdmin:    input.ActingAdminID,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", p.ID).
		Str("created_by_admin", input.ActingAdminID).
		Msg("Admin-created profile inserted")

	return p, nil
}

func (s *adminService) editProfile(ctx context.Context, input CreateInput) (*models.Profile, error) {
	p, err := s.repo.FindByID(ctx, input.EditingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	if input.Password != "" {
		if err := validation.ValidatePassword(input.Password); err != nil {
			return nil, apperrors.NewValidationError("password", err.Error())
		}
		hash, herr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, herr
		}
		p.PasswordHash = string(hash)
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.ProfileType != "" {
		p.ProfileType = input.ProfileType
	}
	if input.ProfileImage != "" {
		p.ProfileImage = s.resolveImage(ctx, p.ID, input.ProfileImage)
	}
	if input.ProfileImages != nil {
		p.ProfileImages = s.resolveImages(ctx, p.ID, input.ProfileImages)
	}

	setIf := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	setIf(&p.Phone, input.Phone)
	setIf(&p.DateOfBirth, input.DateOfBirth)
	setIf(&p.Height, input.Height)
	setIf(&p.Education, input.Education)
	setIf(&p.Occupation, input.Occupation)
	setIf(&p.Salary, input.Salary)
	setIf(&p.City, input.City)
	setIf(&p.State, input.State)
	setIf(&p.Religion, input.Religion)
	setIf(&p.MotherTongue, input.MotherTongue)
	setIf(&p.FamilyType, input.FamilyType)
	setIf(&p.About, input.About)

	p.IsProfileComplete = true
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", p.ID).Msg("Admin edited profile")
	return p, nil
}

// resolveImage uploads inline-encoded images through the media pipeline,
// degrading to the inline value when the upload fails.
func (s *adminService) resolveImage(ctx context.Context, ownerID, value string) string {
	if value == "" || len(value) < 5 || value[:5] != "data:" {
		return value
	}

	url, err := s.images.ProcessInline(ctx, ownerID, value)
	if err != nil {
		logger.Warn().
			Str("owner_id", ownerID).
			Err(err).
			Msg("Image upload failed, keeping inline representation")
		return value
	}
	return url
}

func (s *adminService) resolveImages(ctx context.Context, ownerID string, values []string) []string {
	if values == nil {
		return nil
	}
	resolved := make([]string, len(values))
	for i, v := range values {
		resolved[i] = s.resolveImage(ctx, ownerID, v)
	}
	return resolved
}
