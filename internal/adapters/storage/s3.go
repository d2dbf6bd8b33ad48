// internal/adapters/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/pkg/config"
)

// S3API is the subset of the S3 client used for snapshots
type S3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Storage implements BlobStorage on one S3 bucket
type S3Storage struct {
	client   S3API
	uploader *manager.Uploader
	bucket   string
	logger   *slog.Logger
}

var _ BlobStorage = (*S3Storage)(nil)

// NewS3Client builds an S3 client from configuration. Endpoint and path
// style support MinIO and LocalStack.
func NewS3Client(ctx context.Context, cfg config.AWSConfig) (*s3.Client, error) {
	awsCfg, err := config.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// NewS3Storage creates storage bound to bucket
func NewS3Storage(client S3API, bucket string, logger *slog.Logger) *S3Storage {
	return &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		logger: logger.With(
			slog.String("storage", "s3"),
			slog.String("bucket", bucket)),
	}
}

// Read downloads an object
func (s *S3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", domain.ErrNotFound, s.bucket, key)
		}
		return nil, fmt.Errorf("%w: failed to get s3://%s/%s: %w", domain.ErrIO, s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read s3://%s/%s: %w", domain.ErrIO, s.bucket, key, err)
	}

	s.logger.DebugContext(ctx, "object downloaded",
		slog.String("key", key),
		slog.Int("size", len(data)))

	return data, nil
}

// Write uploads an object, replacing any previous version
func (s *S3Storage) Write(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(key)),
		Metadata: map[string]string{
			"uploaded-at": time.Now().Format(time.RFC3339),
			"upload-id":   uuid.New().String(),
		},
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return fmt.Errorf("%w: failed to upload s3://%s/%s: %w", domain.ErrIO, s.bucket, key, err)
	}

	s.logger.InfoContext(ctx, "object uploaded",
		slog.String("key", key),
		slog.String("location", result.Location))

	return nil
}

func contentType(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
