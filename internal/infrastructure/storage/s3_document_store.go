// Package storage archives rendered documents in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	infraconfig "github.com/pressworks/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ appbilling.DocumentStore = (*S3DocumentStore)(nil)

// S3DocumentStore writes documents to a bucket. It works against AWS S3 and
// S3-compatible services such as MinIO.
type S3DocumentStore struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// S3DocumentStoreOption is a functional option for configuring S3DocumentStore
type S3DocumentStoreOption func(*S3DocumentStore)

// WithLogger sets a custom logger for S3DocumentStore
func WithLogger(logger *zap.Logger) S3DocumentStoreOption {
	return func(s *S3DocumentStore) {
		s.logger = logger
	}
}

// NewS3DocumentStore creates a store from configuration. Static credentials
// are used when both keys are set; otherwise the default AWS credential
// chain applies.
func NewS3DocumentStore(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...S3DocumentStoreOption) (*S3DocumentStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	var endpoint string
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3DocumentStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *S3DocumentStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating document bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// lost a race with another instance
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads body under the store prefix and returns its s3:// location
func (s *S3DocumentStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	objectKey := s.objectKey(key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	s.logger.Debug("Document archived",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Int("bytes", len(body)),
	)
	return fmt.Sprintf("s3://%s/%s", s.bucket, objectKey), nil
}

// Bucket returns the bucket name
func (s *S3DocumentStore) Bucket() string {
	return s.bucket
}

func (s *S3DocumentStore) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
