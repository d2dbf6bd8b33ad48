// internal/adapters/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ammerola/warehouse/internal/core/domain"
)

// LocalStorage implements BlobStorage on the local filesystem. Keys are
// paths, resolved against basePath when they are relative.
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

var _ BlobStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new local storage client
func NewLocalStorage(basePath string, logger *slog.Logger) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
		logger:   logger.With(slog.String("storage", "local")),
	}
}

func (l *LocalStorage) path(key string) string {
	if filepath.IsAbs(key) || l.basePath == "" {
		return key
	}
	return filepath.Join(l.basePath, key)
}

// Read reads a file
func (l *LocalStorage) Read(ctx context.Context, key string) ([]byte, error) {
	path := l.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrIO, path, err)
	}

	l.logger.DebugContext(ctx, "file read",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return data, nil
}

// Write writes data to a temp file beside the target and renames it into
// place, so readers never observe a partial file
func (l *LocalStorage) Write(ctx context.Context, key string, data []byte) error {
	path := l.path(key)
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file in %s: %w", domain.ErrIO, dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("%w: failed to write %s: %w", domain.ErrIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: failed to sync %s: %w", domain.ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close %s: %w", domain.ErrIO, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to chmod %s: %w", domain.ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace %s: %w", domain.ErrIO, path, err)
	}

	l.logger.DebugContext(ctx, "file written",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return nil
}
