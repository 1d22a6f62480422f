package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matrimony-backend/internal/common/errors"
)

func TestParseDataURL(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, data, err := ParseDataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, payload, data)
}

func TestParseDataURLRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"plain URL", "https://example.com/photo.jpg"},
		{"no comma", "data:image/jpeg;base64"},
		{"not base64 encoded", "data:image/jpeg,rawbytes"},
		{"invalid base64 payload", "data:image/png;base64,!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseDataURL(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL("data:image/png;base64,AAAA"))
	assert.False(t, IsDataURL("https://example.com/a.png"))
	assert.False(t, IsDataURL(""))
}

func TestValidateContentType(t *testing.T) {
	svc := NewService(nil, DefaultTargetSizeKB, 20)

	assert.NoError(t, svc.Validate("image/jpeg", 1024))
	assert.NoError(t, svc.Validate("image/png", 1024))
	assert.NoError(t, svc.Validate("image/webp", 1024))

	err := svc.Validate("application/pdf", 1024)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidFileType, appErr.Code)
}

func TestValidateSizeCeiling(t *testing.T) {
	svc := NewService(nil, DefaultTargetSizeKB, 20)

	assert.NoError(t, svc.Validate("image/jpeg", 20*1024*1024))

	err := svc.Validate("image/jpeg", 20*1024*1024+1)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeFileTooLarge, appErr.Code)
}
