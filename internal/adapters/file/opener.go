// internal/adapters/file/opener.go
package file

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ammerola/warehouse/internal/adapters/storage"
	"github.com/ammerola/warehouse/internal/core/ports"
)

// S3Factory returns blob storage for a bucket. It is only invoked for
// s3:// locations, so local use never needs AWS configuration.
type S3Factory func(ctx context.Context, bucket string) (storage.BlobStorage, error)

// Opener resolves user-named locations to snapshot stores
type Opener struct {
	local  storage.BlobStorage
	s3     S3Factory
	logger *slog.Logger
}

var _ ports.SnapshotOpener = (*Opener)(nil)

// NewOpener creates an opener. s3 may be nil, in which case s3:// locations
// are rejected.
func NewOpener(local storage.BlobStorage, s3 S3Factory, logger *slog.Logger) *Opener {
	return &Opener{
		local:  local,
		s3:     s3,
		logger: logger,
	}
}

// Open binds a snapshot store to location: s3://bucket/key or a local path
func (o *Opener) Open(ctx context.Context, location string) (ports.InventoryStore, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("snapshot location is required")
	}

	if !storage.IsS3Location(location) {
		return NewSnapshotStore(o.local, location, o.logger), nil
	}

	if o.s3 == nil {
		return nil, fmt.Errorf("s3 snapshots are not configured")
	}

	bucket, key, err := storage.ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	blob, err := o.s3(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open s3 bucket %s: %w", bucket, err)
	}

	return NewSnapshotStore(blob, key, o.logger), nil
}
