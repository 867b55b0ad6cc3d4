package clients

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

// S3Storage writes statement workbooks to S3-compatible object storage and
// serves them through presigned URLs.
type S3Storage struct {
	raw     *minio.Client
	bucket  string
	prefix  string
	linkTTL time.Duration
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Storage{
		raw:     client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		linkTTL: 30 * time.Minute,
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	if s.raw == nil {
		return "", fmt.Errorf("s3 client is nil")
	}

	key := s.prefix + fileName

	_, err := s.raw.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return "", fmt.Errorf("put object %q failed: %w", key, err)
	}

	return key, nil
}

func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	if s.raw == nil {
		return "", fmt.Errorf("s3 client is nil")
	}

	u, err := s.raw.PresignedGetObject(ctx, s.bucket, key, s.linkTTL, nil)
	if err != nil {
		return "", fmt.Errorf("presign get object %q failed: %w", key, err)
	}

	return u.String(), nil
}
