// internal/core/ports/snapshot.go
package ports

import "context"

// SnapshotOpener binds an InventoryStore to a user-named snapshot location,
// such as a local path or an s3://bucket/key URL.
type SnapshotOpener interface {
	Open(ctx context.Context, location string) (InventoryStore, error)
}
