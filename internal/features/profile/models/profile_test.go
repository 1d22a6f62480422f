package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileTypeOpposite(t *testing.T) {
	assert.Equal(t, TypeGroom, TypeBride.Opposite())
	assert.Equal(t, TypeBride, TypeGroom.Opposite())
}

func TestParseProfileType(t *testing.T) {
	pt, err := ParseProfileType("bride")
	require.NoError(t, err)
	assert.Equal(t, TypeBride, pt)

	_, err = ParseProfileType("Bride")
	assert.Error(t, err)

	_, err = ParseProfileType("")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "rejected"} {
		st, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), st)
	}

	_, err := ParseStatus("deleted")
	assert.Error(t, err)
}

func TestCanLogin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin, Status: StatusPending}).CanLogin())
	assert.True(t, (&Profile{Role: RoleUser, Status: StatusApproved}).CanLogin())
	assert.False(t, (&Profile{Role: RoleUser, Status: StatusPending}).CanLogin())
	assert.False(t, (&Profile{Role: RoleUser, Status: StatusRejected}).CanLogin())
}

func TestMatchesIdentifierFallsBackToEmailAlias(t *testing.T) {
	p := &Profile{Mobile: "9876543210", Email: "9876543210"}
	assert.True(t, p.MatchesIdentifier("9876543210"))

	// Older records may carry the identifier only under the alias.
	legacy := &Profile{Email: "9123456780"}
	assert.True(t, legacy.MatchesIdentifier("9123456780"))
	assert.False(t, legacy.MatchesIdentifier("9876543210"))
}

func TestApplyMergesNonNilFieldsOnly(t *testing.T) {
	p := &Profile{
		ID:   "u1",
		Name: "Priya Sharma",
		City: "Hyderabad",
	}

	city := "Chennai"
	upd := &ProfileUpdate{City: &city}
	upd.Apply(p)

	assert.Equal(t, "Chennai", p.City)
	assert.Equal(t, "Priya Sharma", p.Name)
	assert.True(t, p.IsProfileComplete)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestApplyEmptyStringOverwrites(t *testing.T) {
	p := &Profile{About: "previous text"}

	// A non-nil pointer to an empty string is an explicit clear, unlike a
	// nil pointer which omits the field.
	empty := ""
	(&ProfileUpdate{About: &empty}).Apply(p)
	assert.Empty(t, p.About)
}

func TestApplyReplacesImageListWhenPresent(t *testing.T) {
	p := &Profile{ProfileImages: []string{"a.jpg", "b.jpg"}}

	(&ProfileUpdate{}).Apply(p)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.ProfileImages)

	(&ProfileUpdate{ProfileImages: []string{"c.jpg"}}).Apply(p)
	assert.Equal(t, []string{"c.jpg"}, p.ProfileImages)
}

func TestToResponseOmitsPasswordHash(t *testing.T) {
	p := &Profile{
		ID:           "u1",
		Mobile:       "9876543210",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Priya Sharma",
	}

	raw, err := json.Marshal(p.ToResponse())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$")
	assert.NotContains(t, string(raw), "password")
}
