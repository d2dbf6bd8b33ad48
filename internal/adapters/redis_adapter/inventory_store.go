// internal/adapters/redis_adapter/inventory_store.go
package redis_a

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/pkg/config"
)

const inventoryKeySuffix = "inventory"

// InventoryStore keeps the inventory in one Redis hash: field is the product
// name, value is the product's JSON record
type InventoryStore struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

// Statically assert that *InventoryStore implements the InventoryStore interface.
var _ ports.InventoryStore = (*InventoryStore)(nil)

// NewClient creates a Redis client from configuration
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})
}

// NewInventoryStore creates a store using the hash <prefix>:inventory
func NewInventoryStore(client redis.UniversalClient, prefix string, logger *slog.Logger) *InventoryStore {
	return &InventoryStore{
		client: client,
		key:    BuildKey(prefix, inventoryKeySuffix),
		logger: logger.With(slog.String("store", "redis")),
	}
}

// Key returns the hash key the store uses
func (s *InventoryStore) Key() string {
	return s.key
}

// Load reads the whole hash. A missing key is an empty inventory.
func (s *InventoryStore) Load(ctx context.Context) (domain.Inventory, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis hgetall %s: %w", domain.ErrIO, s.key, err)
	}

	inv := domain.NewInventory()
	for name, value := range fields {
		var rec domain.StockRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return nil, fmt.Errorf("%w: product %s: %v", domain.ErrCorrupt, name, err)
		}
		inv[name] = rec
	}

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	s.logger.DebugContext(ctx, "inventory loaded",
		slog.String("key", s.key),
		slog.Int("products", inv.Len()))

	return inv, nil
}

// Save replaces the hash atomically with MULTI/DEL/HSET/EXEC
func (s *InventoryStore) Save(ctx context.Context, inv domain.Inventory) error {
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid inventory: %w", err)
	}

	values := make([]interface{}, 0, inv.Len()*2)
	for name, rec := range inv {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("%w: marshal %s: %w", domain.ErrIO, name, err)
		}
		values = append(values, name, string(data))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis replace %s: %w", domain.ErrIO, s.key, err)
	}

	s.logger.DebugContext(ctx, "inventory saved",
		slog.String("key", s.key),
		slog.Int("products", inv.Len()))

	return nil
}

// Ping checks Redis connectivity
func (s *InventoryStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// BuildKey joins non-empty key parts with colons
func BuildKey(prefix string, parts ...string) string {
	key := prefix
	for _, part := range parts {
		if part == "" {
			continue
		}
		if key == "" {
			key = part
			continue
		}
		key += ":" + part
	}
	return key
}
