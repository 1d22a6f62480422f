package service

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyImage builds a deterministic high-entropy image so JPEG quality
// steps actually change the payload size.
func noisyImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*7 + y*13) % 256),
				G: uint8((x*31 + y*3) % 256),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image, quality int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)))
	return buf.Bytes()
}

func TestCompressShrinksLargeImage(t *testing.T) {
	src := encodeJPEG(t, noisyImage(1600, 1600), 100)

	out, contentType, err := Compress(src, DefaultTargetSizeKB)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", contentType)
	assert.Less(t, len(out), len(src))

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 1200)
	assert.LessOrEqual(t, bounds.Dy(), 1200)
}

func TestCompressPreservesAspectRatio(t *testing.T) {
	src := encodeJPEG(t, noisyImage(2400, 1200), 95)

	out, _, err := Compress(src, DefaultTargetSizeKB)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, 1200, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestCompressNeverGrowsOnRepeat(t *testing.T) {
	src := encodeJPEG(t, noisyImage(1400, 1400), 100)

	once, _, err := Compress(src, DefaultTargetSizeKB)
	require.NoError(t, err)
	require.LessOrEqual(t, len(once), len(src))

	// Compressing an already compressed payload must converge, not grow.
	twice, _, err := Compress(once, DefaultTargetSizeKB)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(twice), len(once))
}

func TestCompressKeepsTinyPayloadVerbatim(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, noisyImage(1, 1), imaging.PNG))
	src := buf.Bytes()

	out, contentType, err := Compress(src, DefaultTargetSizeKB)
	require.NoError(t, err)

	// Re-encoding a 1x1 PNG as JPEG would grow it, so the source bytes
	// come back with their detected type.
	assert.Equal(t, src, out)
	assert.Equal(t, "image/png", contentType)
}

func TestCompressRejectsNonImage(t *testing.T) {
	_, _, err := Compress([]byte("definitely not an image"), DefaultTargetSizeKB)
	assert.Error(t, err)
}

func TestCompressionPlanTiers(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		maxDim  int
		quality int
	}{
		{"over 3MB", 4 * 1024 * 1024, 1200, 60},
		{"over 1MB", 2 * 1024 * 1024, 1000, 70},
		{"small", 512 * 1024, 1200, 80},
		{"boundary 1MB", 1024 * 1024, 1200, 80},
		{"boundary 3MB", 3 * 1024 * 1024, 1000, 70},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			maxDim, quality := compressionPlan(tc.size)
			assert.Equal(t, tc.maxDim, maxDim)
			assert.Equal(t, tc.quality, quality)
		})
	}
}
