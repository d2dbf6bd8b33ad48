// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/pkg/logger"
)

// InventoryService handles inventory business logic for one session at a time
type InventoryService struct {
	store    ports.InventoryStore
	verifier ports.CredentialVerifier
	logger   *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service. store is the session
// store: it is loaded on login and written on persist and logout.
func NewInventoryService(store ports.InventoryStore, verifier ports.CredentialVerifier, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		store:    store,
		verifier: verifier,
		logger:   logger.With(slog.String("service", "inventory")),
	}
}

// Login verifies credentials and opens a session seeded from the session store
func (s *InventoryService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	ok, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "login rejected", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid credentials for %q", domain.ErrUnauthorized, username)
	}

	sess := domain.NewSession(username)
	ctx = logger.WithSession(ctx, sess.ID, sess.Username)

	inv, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.WarnContext(ctx, "session store has no inventory yet, starting empty")
	case err != nil:
		return nil, fmt.Errorf("failed to load session inventory: %w", err)
	default:
		sess.Inventory = inv
	}

	s.logger.InfoContext(ctx, "session opened",
		slog.Int("products", sess.Inventory.Len()))

	return sess, nil
}

// Logout persists the session inventory and closes the session
func (s *InventoryService) Logout(ctx context.Context, sess *domain.Session) error {
	if err := s.Persist(ctx, sess); err != nil {
		return err
	}
	sess.Close()

	s.logger.InfoContext(logger.WithSession(ctx, sess.ID, sess.Username), "session closed")
	return nil
}

// Receive adds stock to the session inventory
func (s *InventoryService) Receive(ctx context.Context, sess *domain.Session, name string, quantity int, price decimal.Decimal) error {
	ctx, err := s.active(ctx, sess)
	if err != nil {
		return err
	}

	if err := sess.Inventory.Receive(name, quantity, price); err != nil {
		s.logger.DebugContext(ctx, "receive rejected",
			slog.String("product", name),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to receive %s: %w", name, err)
	}

	s.logger.InfoContext(ctx, "received product",
		slog.String("product", name),
		slog.Int("quantity", quantity),
		slog.String("price", price.String()))

	return nil
}

// Issue removes stock from the session inventory
func (s *InventoryService) Issue(ctx context.Context, sess *domain.Session, name string, quantity int) error {
	ctx, err := s.active(ctx, sess)
	if err != nil {
		return err
	}

	if err := sess.Inventory.Issue(name, quantity); err != nil {
		s.logger.DebugContext(ctx, "issue rejected",
			slog.String("product", name),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to issue %s: %w", name, err)
	}

	s.logger.InfoContext(ctx, "issued product",
		slog.String("product", name),
		slog.Int("quantity", quantity))

	return nil
}

// List returns the session inventory sorted by product name
func (s *InventoryService) List(ctx context.Context, sess *domain.Session) ([]domain.Entry, error) {
	if _, err := s.active(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Inventory.List(), nil
}

// LoadFrom replaces the session inventory with the contents of store.
// On error the session inventory is left as it was.
func (s *InventoryService) LoadFrom(ctx context.Context, sess *domain.Session, store ports.InventoryStore) error {
	ctx, err := s.active(ctx, sess)
	if err != nil {
		return err
	}

	inv, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	sess.Inventory = inv

	s.logger.InfoContext(ctx, "inventory replaced from store",
		slog.Int("products", inv.Len()))

	return nil
}

// SaveTo writes the session inventory to store
func (s *InventoryService) SaveTo(ctx context.Context, sess *domain.Session, store ports.InventoryStore) error {
	ctx, err := s.active(ctx, sess)
	if err != nil {
		return err
	}

	if err := store.Save(ctx, sess.Inventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	s.logger.InfoContext(ctx, "inventory saved to store",
		slog.Int("products", sess.Inventory.Len()))

	return nil
}

// Persist writes the session inventory to the session store
func (s *InventoryService) Persist(ctx context.Context, sess *domain.Session) error {
	return s.SaveTo(ctx, sess, s.store)
}

func (s *InventoryService) active(ctx context.Context, sess *domain.Session) (context.Context, error) {
	if !sess.Active() {
		return ctx, fmt.Errorf("%w: no active session", domain.ErrUnauthorized)
	}
	return logger.WithSession(ctx, sess.ID, sess.Username), nil
}
