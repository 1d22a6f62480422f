package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository/fallback"
	"matrimony-backend/internal/features/profile/repository/memory"
)

type fakeSessionStore struct {
	current *models.Session
}

func (s *fakeSessionStore) Save(_ context.Context, sess *models.Session) error {
	s.current = sess
	return nil
}

func (s *fakeSessionStore) Get(context.Context) (*models.Session, error) {
	return s.current, nil
}

func (s *fakeSessionStore) Clear(context.Context) error {
	s.current = nil
	return nil
}

var testAdmin = AdminBootstrap{Mobile: "9381493260", Password: "9398601984", Name: "Admin"}

func newTestService() (AuthService, *memory.Repository, *fakeSessionStore) {
	repo := memory.NewRepository()
	sessions := &fakeSessionStore{}
	return NewAuthService(repo, sessions, testAdmin), repo, sessions
}

func registerBride(t *testing.T, svc AuthService, mobile string) *models.Profile {
	t.Helper()
	p, err := svc.Register(context.Background(), RegisterInput{
		Mobile:      mobile,
		Password:    "secret123",
		Name:        "Priya Sharma",
		ProfileType: models.TypeBride,
	})
	require.NoError(t, err)
	return p
}

func TestRegisterCreatesPendingIncompleteProfile(t *testing.T) {
	svc, repo, sessions := newTestService()

	p := registerBride(t, svc, "9876543210")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.Equal(t, models.RoleUser, p.Role)
	assert.False(t, p.IsProfileComplete)
	assert.Equal(t, p.Mobile, p.Email)

	// Registration must not establish a session.
	assert.Nil(t, sessions.current)

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"short mobile", RegisterInput{Mobile: "98765", Password: "secret123", Name: "A B", ProfileType: models.TypeBride}},
		{"bad first digit", RegisterInput{Mobile: "5876543210", Password: "secret123", Name: "A B", ProfileType: models.TypeBride}},
		{"short password", RegisterInput{Mobile: "9876543210", Password: "abc", Name: "A B", ProfileType: models.TypeBride}},
		{"empty name", RegisterInput{Mobile: "9876543210", Password: "secret123", Name: "  ", ProfileType: models.TypeBride}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestRegisterDuplicateMobile(t *testing.T) {
	svc, _, _ := newTestService()
	registerBride(t, svc, "9876543210")

	_, err := svc.Register(context.Background(), RegisterInput{
		Mobile:      "9876543210",
		Password:    "another456",
		Name:        "Someone Else",
		ProfileType: models.TypeGroom,
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDuplicateUser, appErr.Code)
}

func TestRegisterDuplicateAcrossBackends(t *testing.T) {
	primary := memory.NewRepository()
	secondary := memory.NewRepository()

	// The existing record lives only in the local store, written during a
	// remote outage. Registering the same mobile must still be rejected.
	now := time.Now().UTC()
	require.NoError(t, secondary.Insert(context.Background(), &models.Profile{
		ID:          "u1",
		Mobile:      "9876543210",
		Email:       "9876543210",
		Name:        "Existing User",
		ProfileType: models.TypeBride,
		Role:        models.RoleUser,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))

	svc := NewAuthService(fallback.NewRepository(primary, secondary), &fakeSessionStore{}, testAdmin)

	_, err := svc.Register(context.Background(), RegisterInput{
		Mobile:      "9876543210",
		Password:    "secret123",
		Name:        "Someone Else",
		ProfileType: models.TypeGroom,
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDuplicateUser, appErr.Code)
}

func TestLoginPendingAccountBlocked(t *testing.T) {
	svc, _, sessions := newTestService()
	registerBride(t, svc, "9876543210")

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodePendingApproval, appErr.Code)
	assert.Nil(t, sessions.current)
}

func TestLoginAfterApproval(t *testing.T) {
	svc, repo, sessions := newTestService()
	p := registerBride(t, svc, "9876543210")

	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	got, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NotNil(t, sessions.current)
	assert.Equal(t, p.ID, sessions.current.UserID)
}

func TestLoginRejectedAccountBlocked(t *testing.T) {
	svc, repo, _ := newTestService()
	p := registerBride(t, svc, "9876543210")

	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusRejected))

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeRejectedAccount, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	_, err := svc.Login(context.Background(), "9876543210", "wrongpass", models.TypeBride)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLoginScopedToOppositePartition(t *testing.T) {
	svc, repo, _ := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	// A bride signing in through the groom flow gets told which side the
	// account actually belongs to.
	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeGroom)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
	assert.Contains(t, strings.ToLower(appErr.Message), "bride")
}

func TestAdminLoginIsIdempotent(t *testing.T) {
	svc, repo, sessions := newTestService()

	var adminID string
	for i := 0; i < 10; i++ {
		p, err := svc.Login(context.Background(), testAdmin.Mobile, testAdmin.Password, "")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, p.Role)
		assert.Equal(t, models.StatusApproved, p.Status)
		if adminID == "" {
			adminID = p.ID
		}
		assert.Equal(t, adminID, p.ID)
	}

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NotNil(t, sessions.current)
	assert.Equal(t, models.RoleAdmin, sessions.current.Role)
}

func TestEnsureAdminRepairsTamperedRecord(t *testing.T) {
	svc, repo, _ := newTestService()

	admin, err := svc.EnsureAdmin(context.Background())
	require.NoError(t, err)

	// Demote and suspend the record, then verify bootstrap restores it.
	tampered, err := repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	tampered.Role = models.RoleUser
	tampered.Status = models.StatusPending
	require.NoError(t, repo.Update(context.Background(), tampered))

	repaired, err := svc.EnsureAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin.ID, repaired.ID)
	assert.Equal(t, models.RoleAdmin, repaired.Role)
	assert.Equal(t, models.StatusApproved, repaired.Status)
	assert.True(t, repaired.IsProfileComplete)
}

func TestRestoreReturnsSessionProfile(t *testing.T) {
	svc, repo, _ := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)
	require.NoError(t, err)

	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, p.ID, restored.ID)
}

func TestRestoreDiscardsStaleSession(t *testing.T) {
	svc, repo, sessions := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)
	require.NoError(t, err)

	// Account removed from the roster while a session is still cached.
	require.NoError(t, repo.Delete(context.Background(), p.ID))

	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.Nil(t, sessions.current)
}

func TestRestoreDiscardsDemotedSession(t *testing.T) {
	svc, repo, sessions := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)
	require.NoError(t, err)

	// Rejection after login invalidates the cached session on next restore.
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusRejected))

	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.Nil(t, sessions.current)
}

func TestLogoutClearsSessionOnly(t *testing.T) {
	svc, repo, sessions := newTestService()
	p := registerBride(t, svc, "9876543210")
	require.NoError(t, repo.UpdateStatus(context.Background(), p.ID, models.StatusApproved))

	_, err := svc.Login(context.Background(), "9876543210", "secret123", models.TypeBride)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, sessions.current)

	// The roster record survives logout.
	_, err = repo.FindByID(context.Background(), p.ID)
	assert.NoError(t, err)
}
