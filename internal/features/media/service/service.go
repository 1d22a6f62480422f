package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/logger"
	"matrimony-backend/internal/platform/storage"
)

const keyPrefix = "profiles"

// File is an uploaded image prior to validation and compression.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service is the image pipeline: validate, compress, then upload to object
// storage. Upload failures are reported here, never swallowed; callers
// decide whether to fall back to an inline representation.
type Service struct {
	store        *storage.Store
	targetSizeKB int
	maxUploadMB  int
}

func NewService(store *storage.Store, targetSizeKB, maxUploadMB int) *Service {
	if targetSizeKB <= 0 {
		targetSizeKB = DefaultTargetSizeKB
	}
	return &Service{store: store, targetSizeKB: targetSizeKB, maxUploadMB: maxUploadMB}
}

// Validate rejects non-image payloads and payloads over the byte ceiling.
func (s *Service) Validate(contentType string, sizeBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewInvalidFileType(contentType)
	}

	if sizeBytes > int64(s.maxUploadMB)*1024*1024 {
		return apperrors.NewFileTooLarge(sizeBytes, s.maxUploadMB)
	}

	return nil
}

// Upload validates, compresses and stores a single image, returning its
// public URL.
func (s *Service) Upload(ctx context.Context, ownerID string, file File) (string, error) {
	if err := s.Validate(file.ContentType, int64(len(file.Data))); err != nil {
		return "", err
	}

	compressed, contentType, err := Compress(file.Data, s.targetSizeKB)
	if err != nil {
		return "", apperrors.NewUploadFailed(err)
	}

	key := s.objectKey(ownerID, contentType, -1)
	url, err := s.store.Upload(ctx, key, contentType, compressed)
	if err != nil {
		return "", apperrors.NewUploadFailed(err)
	}

	logger.Debug().
		Str("owner_id", ownerID).
		Str("key", key).
		Int("original_bytes", len(file.Data)).
		Int("stored_bytes", len(compressed)).
		Msg("Profile image uploaded")

	return url, nil
}

// UploadMany stores the multi-photo variant, suffixing each object key with
// its index.
func (s *Service) UploadMany(ctx context.Context, ownerID string, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, file := range files {
		if err := s.Validate(file.ContentType, int64(len(file.Data))); err != nil {
			return nil, err
		}

		compressed, contentType, err := Compress(file.Data, s.targetSizeKB)
		if err != nil {
			return nil, apperrors.NewUploadFailed(err)
		}

		key := s.objectKey(ownerID, contentType, i)
		url, err := s.store.Upload(ctx, key, contentType, compressed)
		if err != nil {
			return nil, apperrors.NewUploadFailed(err)
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// ProcessInline runs an inline-encoded image through the full pipeline and
// returns the resulting public URL.
func (s *Service) ProcessInline(ctx context.Context, ownerID, dataURL string) (string, error) {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", apperrors.NewUploadFailed(err)
	}

	return s.Upload(ctx, ownerID, File{ContentType: contentType, Data: data})
}

// DeleteByURL removes a previously uploaded image by its public URL.
func (s *Service) DeleteByURL(ctx context.Context, publicURL string) error {
	key, ok := s.store.KeyFromURL(publicURL)
	if !ok {
		return apperrors.NewValidationError("image_url", "Invalid image URL")
	}
	return s.store.Delete(ctx, key)
}

func (s *Service) objectKey(ownerID, contentType string, index int) string {
	ext := "jpg"
	switch contentType {
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	case "image/gif":
		ext = "gif"
	}

	if index >= 0 {
		return fmt.Sprintf("%s/%s-%d-%d.%s", keyPrefix, ownerID, time.Now().UnixMilli(), index, ext)
	}
	return fmt.Sprintf("%s/%s-%d.%s", keyPrefix, ownerID, time.Now().UnixMilli(), ext)
}
