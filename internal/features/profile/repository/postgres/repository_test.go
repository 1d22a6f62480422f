package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrimony-backend/internal/features/profile/models"
)

func insertProfile(id string, pt models.ProfileType, role models.Role, status models.Status) *models.Profile {
	now := time.Now().UTC()
	return &models.Profile{
		ID:          id,
		Mobile:      "9876543210",
		Email:       "9876543210",
		Name:        "Test User",
		ProfileType: pt,
		Role:        role,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInsertApprovedPromotesToPartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO brides").WillReturnResult(sqlmock.NewResult(0, 1))

	p := insertProfile("u1", models.TypeBride, models.RoleUser, models.StatusApproved)
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPendingStaysOutOfPartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM grooms").WillReturnResult(sqlmock.NewResult(0, 0))

	p := insertProfile("u1", models.TypeGroom, models.RoleUser, models.StatusPending)
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAdminNeverReachesPartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// The staging insert is the only statement: the admin record must not
	// appear in the browse partitions even though it is approved.
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))

	p := insertProfile("admin-1", models.TypeGroom, models.RoleAdmin, models.StatusApproved)
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}
