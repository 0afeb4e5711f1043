package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	appconfig "stitch-backend/internal/config"
	"stitch-backend/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store wraps an S3-compatible object store (R2-style custom endpoint) for
// product images and message attachments.
type Store struct {
	client        *s3.Client
	publicBaseURL string
	cfg           *appconfig.Config
}

func New(cfg *appconfig.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure storage client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &Store{
		client:        client,
		publicBaseURL: strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/"),
		cfg:           cfg,
	}, nil
}

// Upload validates and stores an object, returning its path within the
// bucket. Validation failures return before any network call.
func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if err := s.validate(bucket, data, contentType); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		metrics.StorageUploads.WithLabelValues(bucket, "error").Inc()
		log.Printf("[Storage] Upload failed for %s/%s: %v", bucket, path, err)
		return "", remediate(err)
	}

	metrics.StorageUploads.WithLabelValues(bucket, "ok").Inc()
	return path, nil
}

// PublicURL returns the public URL for an uploaded object.
func (s *Store) PublicURL(bucket, path string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, path)
	}
	return fmt.Sprintf("%s/%s/%s", s.cfg.Storage.Endpoint, bucket, path)
}

func (s *Store) validate(bucket string, data []byte, contentType string) error {
	if s.cfg.Storage.AttachmentBucket != "" && bucket == s.cfg.Storage.AttachmentBucket {
		return ValidateAttachment(int64(len(data)), contentType, s.cfg.MaxAttachmentSizeBytes())
	}
	return ValidateImage(int64(len(data)), contentType, s.cfg.MaxImageSizeBytes())
}

// remediate maps known backend error substrings to actionable messages; the
// raw error is preserved for everything else.
func remediate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "NoSuchBucket"):
		return fmt.Errorf("storage bucket missing, create it before uploading: %w", err)
	case strings.Contains(msg, "QuotaExceeded"), strings.Contains(msg, "storage quota"):
		return fmt.Errorf("storage quota exceeded, free up space or raise the quota: %w", err)
	default:
		return err
	}
}
