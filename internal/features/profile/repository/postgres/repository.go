package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"

	"github.com/lib/pq"
)

// The remote store keeps three logical tables with identical layouts:
// users is the registration staging table used for generic lookups, while
// brides and grooms hold the approved partitions used for scoped login.

const profileColumns = `id, email, mobile, password, name, profile_type,
	phone, date_of_birth, height, education, occupation, salary,
	city, state, religion, mother_tongue, family_type, about,
	profile_image, profile_images, is_profile_complete,
	status, role, created_at, updated_at, created_by, created_by_admin`

type postgresRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) repository.ProfileRepository {
	return &postgresRepository{db: db}
}

func partitionTable(t models.ProfileType) string {
	if t == models.TypeBride {
		return "brides"
	}
	return "grooms"
}

func (r *postgresRepository) Insert(ctx context.Context, p *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`, profileColumns)

	if _, err := r.db.ExecContext(ctx, query, insertArgs(p)...); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return r.syncPartition(ctx, p)
}

func (r *postgresRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE users SET
			email = $2, mobile = $3, password = $4, name = $5, profile_type = $6,
			phone = $7, date_of_birth = $8, height = $9, education = $10,
			occupation = $11, salary = $12, city = $13, state = $14,
			religion = $15, mother_tongue = $16, family_type = $17, about = $18,
			profile_image = $19, profile_images = $20, is_profile_complete = $21,
			status = $22, role = $23, updated_at = $24,
			created_by = $25, created_by_admin = $26
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.Mobile, p.PasswordHash, p.Name, string(p.ProfileType),
		p.Phone, p.DateOfBirth, p.Height, p.Education,
		p.Occupation, p.Salary, p.City, p.State,
		p.Religion, p.MotherTongue, p.FamilyType, p.About,
		p.ProfileImage, pq.Array(p.ProfileImages), p.IsProfileComplete,
		string(p.Status), string(p.Role), p.UpdatedAt,
		p.CreatedBy, p.CreatedByAdmin)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return r.syncPartition(ctx, p)
}

func (r *postgresRepository) UpdateFields(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.Profile, error) {
	cols := []string{"is_profile_complete = TRUE", "updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			cols = append(cols, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}

	add("name", upd.Name)
	add("phone", upd.Phone)
	add("date_of_birth", upd.DateOfBirth)
	add("height", upd.Height)
	add("education", upd.Education)
	add("occupation", upd.Occupation)
	add("salary", upd.Salary)
	add("city", upd.City)
	add("state", upd.State)
	add("religion", upd.Religion)
	add("mother_tongue", upd.MotherTongue)
	add("family_type", upd.FamilyType)
	add("about", upd.About)
	add("profile_image", upd.ProfileImage)

	if upd.ProfileImages != nil {
		args = append(args, pq.Array(upd.ProfileImages))
		cols = append(cols, fmt.Sprintf("profile_images = $%d", len(args)))
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $1", strings.Join(cols, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile fields: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.syncPartition(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1",
		id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return r.syncPartition(ctx, p)
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	for _, table := range []string{"brides", "grooms"} {
		if _, err := r.db.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", profileColumns)
	return r.queryOne(ctx, query, id)
}

func (r *postgresRepository) FindByMobile(ctx context.Context, mobile string, scope models.ProfileType) (*models.Profile, error) {
	if scope == "" {
		query := fmt.Sprintf(
			"SELECT %s FROM users WHERE mobile = $1 OR email = $1", profileColumns)
		return r.queryOne(ctx, query, mobile)
	}

	// Approved partition first, then the staging table for records that
	// have not been promoted yet.
	query := fmt.Sprintf("SELECT %s FROM %s WHERE mobile = $1 OR email = $1",
		profileColumns, partitionTable(scope))

	p, err := r.queryOne(ctx, query, mobile)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	query = fmt.Sprintf(
		"SELECT %s FROM users WHERE (mobile = $1 OR email = $1) AND profile_type = $2",
		profileColumns)
	return r.queryOne(ctx, query, mobile, string(scope))
}

func (r *postgresRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE mobile = $1 OR email = $1)",
		mobile).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check mobile existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at", profileColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// syncPartition keeps the brides/grooms partitions consistent with the
// staging row: approved records are upserted, everything else is removed.
func (r *postgresRepository) syncPartition(ctx context.Context, p *models.Profile) error {
	if p.Role == models.RoleAdmin {
		return nil
	}

	if p.Status == models.StatusApproved {
		return r.upsertPartition(ctx, p)
	}

	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", partitionTable(p.ProfileType)), p.ID)
	if err != nil {
		return fmt.Errorf("failed to demote profile: %w", err)
	}
	return nil
}

func (r *postgresRepository) upsertPartition(ctx context.Context, p *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			mobile = EXCLUDED.mobile,
			password = EXCLUDED.password,
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			height = EXCLUDED.height,
			education = EXCLUDED.education,
			occupation = EXCLUDED.occupation,
			salary = EXCLUDED.salary,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			religion = EXCLUDED.religion,
			mother_tongue = EXCLUDED.mother_tongue,
			family_type = EXCLUDED.family_type,
			about = EXCLUDED.about,
			profile_image = EXCLUDED.profile_image,
			profile_images = EXCLUDED.profile_images,
			is_profile_complete = EXCLUDED.is_profile_complete,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`, partitionTable(p.ProfileType), profileColumns)

	if _, err := r.db.ExecContext(ctx, query, insertArgs(p)...); err != nil {
		return fmt.Errorf("failed to promote profile: %w", err)
	}

	return nil
}

func (r *postgresRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*models.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func insertArgs(p *models.Profile) []interface{} {
	return []interface{}{
		p.ID, p.Email, p.Mobile, p.PasswordHash, p.Name, string(p.ProfileType),
		p.Phone, p.DateOfBirth, p.Height, p.Education, p.Occupation, p.Salary,
		p.City, p.State, p.Religion, p.MotherTongue, p.FamilyType, p.About,
		p.ProfileImage, pq.Array(p.ProfileImages), p.IsProfileComplete,
		string(p.Status), string(p.Role), p.CreatedAt, p.UpdatedAt,
		p.CreatedBy, p.CreatedByAdmin,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p           models.Profile
		profileType string
		status      string
		role        string
		images      pq.StringArray
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Email, &p.Mobile, &p.PasswordHash, &p.Name, &profileType,
		&p.Phone, &p.DateOfBirth, &p.Height, &p.Education, &p.Occupation,
		&p.Salary, &p.City, &p.State, &p.Religion, &p.MotherTongue,
		&p.FamilyType, &p.About, &p.ProfileImage, &images,
		&p.IsProfileComplete, &status, &role, &p.CreatedAt, &updatedAt,
		&p.CreatedBy, &p.CreatedByAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	p.ProfileType = models.ProfileType(profileType)
	p.Status = models.Status(status)
	p.Role = models.Role(role)
	p.ProfileImages = []string(images)
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	} else {
		p.UpdatedAt = time.Time{}
	}

	return &p, nil
}
