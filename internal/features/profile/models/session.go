package models

// Session is the ephemeral current-user projection cached for the active
// session. It is a non-owning view keyed by the profile id; the roster stays
// the sole durable owner of profile data.
type Session struct {
	UserID            string      `json:"id"`
	Mobile            string      `json:"mobile"`
	Name              string      `json:"name"`
	ProfileType       ProfileType `json:"profile_type"`
	Role              Role        `json:"role"`
	Status            Status      `json:"status"`
	IsProfileComplete bool        `json:"is_profile_complete"`
}

func NewSession(p *Profile) *Session {
	return &Session{
		UserID:            p.ID,
		Mobile:            p.Mobile,
		Name:              p.Name,
		ProfileType:       p.ProfileType,
		Role:              p.Role,
		Status:            p.Status,
		IsProfileComplete: p.IsProfileComplete,
	}
}
