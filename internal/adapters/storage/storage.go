// internal/adapters/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"strings"
)

const s3Scheme = "s3://"

// BlobStorage reads and writes whole objects by key
type BlobStorage interface {
	// Read returns the object's bytes, or an error wrapping
	// domain.ErrNotFound when nothing is stored under key.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the object stored under key.
	Write(ctx context.Context, key string, data []byte) error
}

// IsS3Location reports whether location names an object as s3://bucket/key
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3Location splits s3://bucket/key into its bucket and key
func ParseS3Location(location string) (bucket, key string, err error) {
	if !IsS3Location(location) {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}

	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location must be s3://bucket/key, got %q", location)
	}
	return bucket, key, nil
}
