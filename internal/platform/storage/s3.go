package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"matrimony-backend/internal/common/config"
)

// Store writes profile images to a single public bucket and returns
// publicly resolvable URLs.
type Store struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	region     string
	endpoint   string
	publicRead bool
}

func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Custom endpoint supports MinIO and other S3-compatible stores.
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     cfg.Storage.Bucket,
		region:     cfg.Storage.Region,
		endpoint:   cfg.Storage.Endpoint,
		publicRead: cfg.Storage.PublicRead,
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	_, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

// KeyFromURL recovers the object key from a public URL previously returned
// by Upload. Returns false when the URL does not belong to this store.
func (s *Store) KeyFromURL(publicURL string) (string, bool) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	if s.endpoint != "" {
		path = strings.TrimPrefix(path, s.bucket+"/")
	}

	key, err := url.PathUnescape(path)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
