// internal/resumes/minio.go
package resumes

import (
	"bytes"
	"context"
	"fmt"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStore struct {
	client *minio.Client
	bucket string
	region string
	logger logger.Logger
}

func NewMinIOStore(cfg config.MinIOConfig, log logger.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: log.WithFields(map[string]interface{}{"objectStore": "minio", "bucket": cfg.Bucket}),
	}, nil
}

func (s *MinIOStore) Kind() string { return "minio" }

// EnsureBucket creates the resume bucket when it does not exist yet.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("bucket created", nil)
	return nil
}

func (s *MinIOStore) PutResume(ctx context.Context, key string, upload *Upload) error {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(upload.Data), upload.Size,
		minio.PutObjectOptions{ContentType: upload.ContentType})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUploadFailed, key, err)
	}

	s.logger.Debug("resume uploaded", map[string]interface{}{
		"key":  key,
		"etag": info.ETag,
		"size": info.Size,
	})
	return nil
}

func (s *MinIOStore) DeleteResume(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
