// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ammerola/warehouse/internal/core/domain"
)

// InventoryService defines the application service port for inventory.
// Every operation takes the session explicitly; there is no shared state.
type InventoryService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
	Receive(ctx context.Context, sess *domain.Session, name string, quantity int, price decimal.Decimal) error
	Issue(ctx context.Context, sess *domain.Session, name string, quantity int) error
	List(ctx context.Context, sess *domain.Session) ([]domain.Entry, error)
	LoadFrom(ctx context.Context, sess *domain.Session, store InventoryStore) error
	SaveTo(ctx context.Context, sess *domain.Session, store InventoryStore) error
	Persist(ctx context.Context, sess *domain.Session) error
}
