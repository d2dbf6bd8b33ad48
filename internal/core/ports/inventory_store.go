// internal/core/ports/inventory_store.go
package ports

import (
	"context"

	"github.com/ammerola/warehouse/internal/core/domain"
)

// InventoryStore defines the persistence port for a whole inventory.
// Implementations translate between domain.Inventory and one durable
// representation: a relational table, a snapshot file or a Redis hash.
type InventoryStore interface {
	// Load reconstructs the inventory from durable state.
	Load(ctx context.Context) (domain.Inventory, error)
	// Save replaces all durable content with inv.
	Save(ctx context.Context, inv domain.Inventory) error
}
