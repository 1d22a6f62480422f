package models

import (
	"fmt"
	"time"
)

// ProfileType partitions the roster into the two matchable sides.
type ProfileType string

const (
	TypeBride ProfileType = "bride"
	TypeGroom ProfileType = "groom"
)

// Opposite returns the counterpart type used when browsing candidates.
func (t ProfileType) Opposite() ProfileType {
	if t == TypeBride {
		return TypeGroom
	}
	return TypeBride
}

func ParseProfileType(s string) (ProfileType, error) {
	switch ProfileType(s) {
	case TypeBride, TypeGroom:
		return ProfileType(s), nil
	}
	return "", fmt.Errorf("invalid profile type: %q", s)
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is the moderation lifecycle state of a profile.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// Profile is the central roster record. The Email field is a legacy alias for
// Mobile kept for backward compatibility with older records.
type Profile struct {
	ID           string      `json:"id"`
	Mobile       string      `json:"mobile"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password,omitempty"`
	Name         string      `json:"name"`
	ProfileType  ProfileType `json:"profile_type"`
	Role         Role        `json:"role"`
	Status       Status      `json:"status"`

	Phone         string   `json:"phone,omitempty"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Height        string   `json:"height,omitempty"`
	Education     string   `json:"education,omitempty"`
	Occupation    string   `json:"occupation,omitempty"`
	Salary        string   `json:"salary,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Religion      string   `json:"religion,omitempty"`
	MotherTongue  string   `json:"mother_tongue,omitempty"`
	FamilyType    string   `json:"family_type,omitempty"`
	About         string   `json:"about,omitempty"`
	ProfileImage  string   `json:"profile_image,omitempty"`
	ProfileImages []string `json:"profile_images,omitempty"`

	IsProfileComplete bool `json:"is_profile_complete"`

	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedByAdmin string    `json:"created_by_admin,omitempty"`
}

// CanLogin reports whether the profile may establish a session.
func (p *Profile) CanLogin() bool {
	return p.Role == RoleAdmin || p.Status == StatusApproved
}

// MatchesIdentifier checks the primary mobile identifier, falling back to the
// legacy email alias.
func (p *Profile) MatchesIdentifier(identifier string) bool {
	return p.Mobile == identifier || p.Email == identifier
}

// ProfileUpdate carries a partial mutation. Nil fields are omitted from the
// update rather than overwritten with empty values.
type ProfileUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty"`
	Height        *string  `json:"height,omitempty"`
	Education     *string  `json:"education,omitempty"`
	Occupation    *string  `json:"occupation,omitempty"`
	Salary        *string  `json:"salary,omitempty"`
	City          *string  `json:"city,omitempty"`
	State         *string  `json:"state,omitempty"`
	Religion      *string  `json:"religion,omitempty"`
	MotherTongue  *string  `json:"mother_tongue,omitempty"`
	FamilyType    *string  `json:"family_type,omitempty"`
	About         *string  `json:"about,omitempty"`
	ProfileImage  *string  `json:"profile_image,omitempty"`
	ProfileImages []string `json:"profile_images,omitempty"`
}

// Apply merges the update into p, marks the profile complete and stamps
// UpdatedAt. Completeness never reverts once set.
func (u *ProfileUpdate) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&p.Name, u.Name)
	set(&p.Phone, u.Phone)
	set(&p.DateOfBirth, u.DateOfBirth)
	set(&p.Height, u.Height)
	set(&p.Education, u.Education)
	set(&p.Occupation, u.Occupation)
	set(&p.Salary, u.Salary)
	set(&p.City, u.City)
	set(&p.State, u.State)
	set(&p.Religion, u.Religion)
	set(&p.MotherTongue, u.MotherTongue)
	set(&p.FamilyType, u.FamilyType)
	set(&p.About, u.About)
	set(&p.ProfileImage, u.ProfileImage)

	if u.ProfileImages != nil {
		p.ProfileImages = u.ProfileImages
	}

	p.IsProfileComplete = true
	p.UpdatedAt = time.Now().UTC()
}

// ProfileResponse is the public projection of a profile. It never carries the
// password hash.
type ProfileResponse struct {
	ID                string      `json:"id"`
	Mobile            string      `json:"mobile"`
	Name              string      `json:"name"`
	ProfileType       ProfileType `json:"profile_type"`
	Role              Role        `json:"role"`
	Status            Status      `json:"status"`
	Phone             string      `json:"phone,omitempty"`
	DateOfBirth       string      `json:"date_of_birth,omitempty"`
	Height            string      `json:"height,omitempty"`
	Education         string      `json:"education,omitempty"`
	Occupation        string      `json:"occupation,omitempty"`
	Salary            string      `json:"salary,omitempty"`
	City              string      `json:"city,omitempty"`
	State             string      `json:"state,omitempty"`
	Religion          string      `json:"religion,omitempty"`
	MotherTongue      string      `json:"mother_tongue,omitempty"`
	FamilyType        string      `json:"family_type,omitempty"`
	About             string      `json:"about,omitempty"`
	ProfileImage      string      `json:"profile_image,omitempty"`
	ProfileImages     []string    `json:"profile_images,omitempty"`
	IsProfileComplete bool        `json:"is_profile_complete"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (p *Profile) ToResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:                p.ID,
		Mobile:            p.Mobile,
		Name:              p.Name,
		ProfileType:       p.ProfileType,
		Role:              p.Role,
		Status:            p.Status,
		Phone:             p.Phone,
		DateOfBirth:       p.DateOfBirth,
		Height:            p.Height,
		Education:         p.Education,
		Occupation:        p.Occupation,
		Salary:            p.Salary,
		City:              p.City,
		State:             p.State,
		Religion:          p.Religion,
		MotherTongue:      p.MotherTongue,
		FamilyType:        p.FamilyType,
		About:             p.About,
		ProfileImage:      p.ProfileImage,
		ProfileImages:     p.ProfileImages,
		IsProfileComplete: p.IsProfileComplete,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
