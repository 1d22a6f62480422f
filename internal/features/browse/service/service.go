package service

import (
	"context"
	"sort"
	"strings"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/repository"
)

// Criteria narrows a candidate list. Query is a case-insensitive substring
// match over name, city and state; the remaining fields are exact matches.
// The zero value is the identity filter.
type Criteria struct {
	Query     string
	State     string
	Religion  string
	Education string
}

// Facets are the distinct filterable values present in a candidate list.
type Facets struct {
	States     []string `json:"states"`
	Religions  []string `json:"religions"`
	Educations []string `json:"educations"`
}

type BrowseService interface {
	// ListCandidates returns approved, complete, opposite-type profiles,
	// never including admin records or the viewer's own.
	ListCandidates(ctx context.Context, viewer *models.Profile) ([]*models.Profile, error)
}

type browseService struct {
	repo repository.ProfileRepository
}

func NewBrowseService(repo repository.ProfileRepository) BrowseService {
	return &browseService{repo: repo}
}

func (s *browseService) ListCandidates(ctx context.Context, viewer *models.Profile) ([]*models.Profile, error) {
	if viewer == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "authentication required")
	}
	if !viewer.IsProfileComplete {
		return nil, apperrors.New(apperrors.ErrCodeForbidden, "complete your profile before browsing")
	}

	roster, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	opposite := viewer.ProfileType.Opposite()
	candidates := make([]*models.Profile, 0, len(roster))
	for _, p := range roster {
		if p.Role == models.RoleAdmin ||
			p.Status != models.StatusApproved ||
			!p.IsProfileComplete ||
			p.ProfileType != opposite ||
			p.ID == viewer.ID {
			continue
		}
		candidates = append(candidates, p)
	}

	return candidates, nil
}

// Filter is a pure, idempotent narrowing of the candidate list: it never
// mutates its input and identical input always produces identical output.
func Filter(candidates []*models.Profile, c Criteria) []*models.Profile {
	out := make([]*models.Profile, 0, len(candidates))
	query := strings.ToLower(strings.TrimSpace(c.Query))

	for _, p := range candidates {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if c.State != "" && p.State != c.State {
			continue
		}
		if c.Religion != "" && p.Religion != c.Religion {
			continue
		}
		if c.Education != "" && p.Education != c.Education {
			continue
		}
		out = append(out, p)
	}

	return out
}

func matchesQuery(p *models.Profile, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.City), query) ||
		strings.Contains(strings.ToLower(p.State), query)
}

// FacetsOf collects the distinct sorted filter values of a candidate list.
func FacetsOf(candidates []*models.Profile) Facets {
	return Facets{
		States:     distinct(candidates, func(p *models.Profile) string { return p.State }),
		Religions:  distinct(candidates, func(p *models.Profile) string { return p.Religion }),
		Educations: distinct(candidates, func(p *models.Profile) string { return p.Education }),
	}
}

func distinct(candidates []*models.Profile, field func(*models.Profile) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, p := range candidates {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
