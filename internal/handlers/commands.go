// internal/handlers/commands.go
package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/pkg/logger"
)

// CommandHandler runs single non-interactive actions. Each call opens a
// session, performs one action and persists when the inventory changed.
type CommandHandler struct {
	service ports.InventoryService
	opener  ports.SnapshotOpener
	out     io.Writer
	logger  *slog.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(service ports.InventoryService, opener ports.SnapshotOpener, out io.Writer, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		service: service,
		opener:  opener,
		out:     out,
		logger:  logger.With(slog.String("handler", "command")),
	}
}

// Receive adds quantityText units of name at priceText
func (h *CommandHandler) Receive(ctx context.Context, username, password, name, quantityText, priceText string) error {
	quantity, err := domain.ParseQuantity(quantityText)
	if err != nil {
		return err
	}
	price, err := domain.ParsePrice(priceText)
	if err != nil {
		return err
	}

	return h.mutate(logger.WithCommand(ctx, "receive_product"), username, password, func(ctx context.Context, sess *domain.Session) error {
		if err := h.service.Receive(ctx, sess, name, quantity, price); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "%d x %s added.\n", quantity, name)
		return nil
	})
}

// Issue removes quantityText units of name
func (h *CommandHandler) Issue(ctx context.Context, username, password, name, quantityText string) error {
	quantity, err := domain.ParseQuantity(quantityText)
	if err != nil {
		return err
	}

	return h.mutate(logger.WithCommand(ctx, "issue_product"), username, password, func(ctx context.Context, sess *domain.Session) error {
		if err := h.service.Issue(ctx, sess, name, quantity); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "%d x %s issued.\n", quantity, name)
		return nil
	})
}

// Display prints the product list
func (h *CommandHandler) Display(ctx context.Context, username, password string) error {
	ctx = logger.WithCommand(ctx, "display_product_list")

	sess, err := h.service.Login(ctx, username, password)
	if err != nil {
		return err
	}

	entries, err := h.service.List(ctx, sess)
	if err != nil {
		return err
	}

	RenderList(h.out, entries)
	return nil
}

// Export writes the session inventory to location, a local path or s3 URL.
// The format follows the extension.
func (h *CommandHandler) Export(ctx context.Context, username, password, location string) error {
	ctx = logger.WithCommand(ctx, "export_inventory")

	store, err := h.opener.Open(ctx, location)
	if err != nil {
		return err
	}

	sess, err := h.service.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := h.service.SaveTo(ctx, sess, store); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "Inventory saved to %s\n", location)
	return nil
}

// Import replaces the session inventory with the content of location and
// persists it
func (h *CommandHandler) Import(ctx context.Context, username, password, location string) error {
	ctx = logger.WithCommand(ctx, "import_inventory")

	store, err := h.opener.Open(ctx, location)
	if err != nil {
		return err
	}

	return h.mutate(ctx, username, password, func(ctx context.Context, sess *domain.Session) error {
		if err := h.service.LoadFrom(ctx, sess, store); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Inventory loaded from %s\n", location)
		return nil
	})
}

// mutate logs in, applies fn and logs out, which persists the session store.
// Nothing is persisted when fn fails.
func (h *CommandHandler) mutate(ctx context.Context, username, password string, fn func(context.Context, *domain.Session) error) error {
	sess, err := h.service.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := fn(ctx, sess); err != nil {
		h.logger.DebugContext(ctx, "command failed, session store left unchanged",
			slog.String("error", err.Error()))
		return err
	}

	return h.service.Logout(ctx, sess)
}
