package local

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matrimony-backend/internal/common/errors"
)

func TestCheckQuota(t *testing.T) {
	assert.NoError(t, checkQuota(nil))
	assert.NoError(t, checkQuota(bytes.Repeat([]byte{'x'}, maxValueBytes)))

	err := checkQuota(bytes.Repeat([]byte{'x'}, maxValueBytes+1))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStorageQuotaExceeded, appErr.Code)
}

func TestQuotaErrorIsBusiness(t *testing.T) {
	// A quota breach is a definitive answer about the payload, not an
	// outage, so it must never trigger backend fallback.
	err := checkQuota(bytes.Repeat([]byte{'x'}, maxValueBytes+1))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsBusiness())
}
