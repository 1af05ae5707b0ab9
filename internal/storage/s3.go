package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"meetapp.app/api/common/awsx"
	"meetapp.app/api/core/config"
)

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Storage struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	awsCfg, err := awsx.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Custom endpoints (minio, localstack) expect path-style addressing.
		o.UsePathStyle = cfg.AWS.Endpoint != ""
	})

	slog.InfoContext(ctx, "s3 storage initialized", "bucket", cfg.S3Bucket, "region", cfg.AWS.Region)
	return NewS3WithClient(client, cfg.S3Bucket, cfg.AssetBaseURL), nil
}

// NewS3WithClient wraps an existing client. Objects are still served through
// the API at baseURL.
func NewS3WithClient(client ObjectAPI, bucket, baseURL string) Storage {
	return &s3Storage{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *s3Storage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if !ValidKey(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *s3Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !ValidKey(key) {
		return nil, ErrNotFound
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("downloading s3://%s/%s: %w", s.bucket, key, err)
	}
	return out.Body, nil
}

func (s *s3Storage) URL(key string) string {
	return FileURL(s.baseURL, key)
}
