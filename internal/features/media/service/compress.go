package service

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	// Quality floor for progressive re-encoding. Below this the image is
	// accepted as-is even if it still exceeds the target size.
	minQuality  = 30
	qualityStep = 10

	DefaultTargetSizeKB = 500
)

// compressionPlan picks the dimension bound and starting JPEG quality from
// the source payload size. Larger sources get downscaled more aggressively.
func compressionPlan(sizeBytes int) (maxDim, quality int) {
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	switch {
	case sizeMB > 3:
		return 1200, 60
	case sizeMB > 1:
		return 1000, 70
	default:
		return 1200, 80
	}
}

// Compress downsamples and re-encodes an image so its payload fits under
// targetKB. The quality is lowered in fixed steps until the target or the
// quality floor is reached; the result is deterministic for a given input
// and never larger than the source payload.
func Compress(data []byte, targetKB int) ([]byte, string, error) {
	if targetKB <= 0 {
		targetKB = DefaultTargetSizeKB
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := compressionPlan(len(data))

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	encode := func(q int) ([]byte, error) {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		return buf.Bytes(), nil
	}

	out, err := encode(quality)
	if err != nil {
		return nil, "", err
	}

	target := targetKB * 1024
	for len(out) > target && quality > minQuality {
		quality -= qualityStep
		if quality < minQuality {
			quality = minQuality
		}
		out, err = encode(quality)
		if err != nil {
			return nil, "", err
		}
	}

	// Re-encoding an already small payload can grow it; keep the source
	// bytes in that case so repeated compression converges.
	if len(out) >= len(data) {
		return data, http.DetectContentType(data), nil
	}

	return out, "image/jpeg", nil
}
