// internal/adapters/db/inventory_store.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
)

const (
	inventoryTable = "inventory"

	// Rows per INSERT statement. Keeps bound parameters well under the
	// SQLite and PostgreSQL limits.
	insertBatchSize = 500
)

// DOUBLE PRECISION is an 8-byte float on both engines; PostgreSQL REAL is
// only 4 bytes and would round prices.
const createInventoryTableSQL = `CREATE TABLE IF NOT EXISTS inventory (
	product_name TEXT PRIMARY KEY,
	quantity INTEGER NOT NULL,
	price DOUBLE PRECISION NOT NULL
)`

type inventoryRow struct {
	ProductName string  `db:"product_name"`
	Quantity    int64   `db:"quantity"`
	Price       float64 `db:"price"`
}

// inventoryStore implements ports.InventoryStore over a single relational table
type inventoryStore struct {
	db     *Database
	logger *slog.Logger
}

// NewInventoryStore creates a relational inventory store
func NewInventoryStore(db *Database, logger *slog.Logger) ports.InventoryStore {
	return &inventoryStore{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// ensureSchema creates the inventory table if it does not exist
func (r *inventoryStore) ensureSchema(ctx context.Context) error {
	if _, err := r.db.DB().ExecContext(ctx, createInventoryTableSQL); err != nil {
		return fmt.Errorf("%w: failed to create inventory table: %w", domain.ErrIO, err)
	}
	return nil
}

// Load reads every row of the inventory table. A database without the table
// is initialized and yields an empty inventory.
func (r *inventoryStore) Load(ctx context.Context) (domain.Inventory, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query, args, err := r.db.Builder().
		Select("product_name", "quantity", "price").
		From(inventoryTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []inventoryRow
	if err := r.db.DB().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: failed to query inventory: %w", domain.ErrIO, err)
	}

	inv := domain.NewInventory()
	for _, row := range rows {
		if row.Quantity <= 0 || int64(int(row.Quantity)) != row.Quantity {
			return nil, fmt.Errorf("%w: product %s has quantity %d", domain.ErrCorrupt, row.ProductName, row.Quantity)
		}
		if math.IsInf(row.Price, 0) || math.IsNaN(row.Price) {
			return nil, fmt.Errorf("%w: product %s has price %v", domain.ErrCorrupt, row.ProductName, row.Price)
		}
		inv[row.ProductName] = domain.StockRecord{
			Quantity: int(row.Quantity),
			Price:    decimal.NewFromFloat(row.Price),
		}
	}

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	r.logger.DebugContext(ctx, "inventory loaded",
		slog.Int("rows", len(rows)))

	return inv, nil
}

// Save replaces the table contents with inv in a single transaction.
// Nothing is written if any statement fails.
func (r *inventoryStore) Save(ctx context.Context, inv domain.Inventory) error {
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid inventory: %w", err)
	}

	entries := inv.List()

	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, createInventoryTableSQL); err != nil {
			return fmt.Errorf("failed to create inventory table: %w", err)
		}

		deleteSQL, deleteArgs, err := r.db.Builder().Delete(inventoryTable).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}

		for i := 0; i < len(entries); i += insertBatchSize {
			end := i + insertBatchSize
			if end > len(entries) {
				end = len(entries)
			}

			qb := r.db.Builder().
				Insert(inventoryTable).
				Columns("product_name", "quantity", "price")
			for _, e := range entries[i:end] {
				qb = qb.Values(e.Name, e.Quantity, e.Price.InexactFloat64())
			}

			insertSQL, insertArgs, err := qb.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
				return fmt.Errorf("failed to insert rows %d-%d: %w", i, end, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}

	r.logger.DebugContext(ctx, "inventory saved",
		slog.Int("rows", len(entries)))

	return nil
}
