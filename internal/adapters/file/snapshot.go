// internal/adapters/file/snapshot.go
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/ammerola/warehouse/internal/adapters/storage"
	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
)

// Format converts an inventory to and from one snapshot file format
type Format struct {
	Name   string
	Encode func(domain.Inventory) ([]byte, error)
	Decode func([]byte) (domain.Inventory, error)
}

var (
	FormatJSON = Format{Name: "json", Encode: Encode, Decode: Decode}
	FormatXLSX = Format{Name: "xlsx", Encode: EncodeXLSX, Decode: DecodeXLSX}
)

// FormatFor picks the format from the key extension; JSON is the default
func FormatFor(key string) Format {
	if strings.EqualFold(path.Ext(key), ".xlsx") {
		return FormatXLSX
	}
	return FormatJSON
}

// snapshotStore implements ports.InventoryStore as one encoded object stored
// under a key of a blob backend
type snapshotStore struct {
	blob   storage.BlobStorage
	key    string
	format Format
	logger *slog.Logger
}

// NewSnapshotStore binds a snapshot to key within blob, in the format named
// by the key extension
func NewSnapshotStore(blob storage.BlobStorage, key string, logger *slog.Logger) ports.InventoryStore {
	format := FormatFor(key)
	return &snapshotStore{
		blob:   blob,
		key:    key,
		format: format,
		logger: logger.With(
			slog.String("store", "snapshot"),
			slog.String("format", format.Name),
			slog.String("key", key)),
	}
}

// Load reads and decodes the snapshot
func (s *snapshotStore) Load(ctx context.Context) (domain.Inventory, error) {
	data, err := s.blob.Read(ctx, s.key)
	if err != nil {
		return nil, err
	}

	inv, err := s.format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.key, err)
	}

	s.logger.DebugContext(ctx, "snapshot loaded", slog.Int("products", inv.Len()))
	return inv, nil
}

// Save encodes inv and replaces the snapshot
func (s *snapshotStore) Save(ctx context.Context, inv domain.Inventory) error {
	data, err := s.format.Encode(inv)
	if err != nil {
		return err
	}

	if err := s.blob.Write(ctx, s.key, data); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "snapshot saved", slog.Int("products", inv.Len()))
	return nil
}

// Encode renders inv as a JSON object keyed by product name. Prices always
// carry a fractional digit.
func Encode(inv domain.Inventory) ([]byte, error) {
	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to encode invalid inventory: %w", err)
	}

	data, err := json.MarshalIndent(map[string]domain.StockRecord(inv), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode snapshot: %w", domain.ErrIO, err)
	}
	return append(data, '\n'), nil
}

// Decode parses a snapshot. Anything other than a JSON object of positive
// integer quantities and positive prices is reported as domain.ErrCorrupt.
func Decode(data []byte) (domain.Inventory, error) {
	var raw map[string]*domain.StockRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: snapshot is not a JSON object", domain.ErrCorrupt)
	}

	inv := domain.NewInventory()
	for name, rec := range raw {
		if rec == nil {
			return nil, fmt.Errorf("%w: product %s has no record", domain.ErrCorrupt, name)
		}
		inv[name] = *rec
	}

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	return inv, nil
}
