// internal/handlers/menu.go
package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/pkg/logger"
)

const menuText = "1. Receive Product\n2. Issue Product\n3. Check Inventory\n4. Save Inventory\n5. Load Inventory\n6. Logout"

// MenuHandler drives one interactive console session
type MenuHandler struct {
	service ports.InventoryService
	opener  ports.SnapshotOpener
	in      *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler reading from in and writing to out
func NewMenuHandler(service ports.InventoryService, opener ports.SnapshotOpener, in io.Reader, out io.Writer, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		opener:  opener,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger.With(slog.String("handler", "menu")),
	}
}

// Start logs in and runs the menu until the user logs out
func (h *MenuHandler) Start(ctx context.Context, username, password string) error {
	sess, err := h.service.Login(ctx, username, password)
	if err != nil {
		h.println("Login failed.")
		return err
	}
	h.println("Login successful.")

	return h.Run(ctx, sess)
}

// Run shows the menu for an open session. End of input is treated as a logout.
func (h *MenuHandler) Run(ctx context.Context, sess *domain.Session) error {
	ctx = logger.WithCommand(ctx, "menu")

	for sess.Active() {
		h.println("Warehouse Menu:")
		h.println(menuText)

		choice, err := h.prompt("Enter your choice: ")
		if err != nil {
			return h.finish(ctx, sess, err)
		}

		h.logger.DebugContext(ctx, "menu choice", slog.String("choice", choice))

		switch choice {
		case "1":
			err = h.receive(ctx, sess)
		case "2":
			err = h.issue(ctx, sess)
		case "3":
			err = h.display(ctx, sess)
		case "4":
			err = h.save(ctx, sess)
		case "5":
			err = h.load(ctx, sess)
		case "6":
			if err := h.logout(ctx, sess); err != nil {
				h.printError(err)
			}
		default:
			h.println("Wrong choice.")
		}

		if err != nil {
			return h.finish(ctx, sess, err)
		}
	}

	return nil
}

// finish ends the loop when input runs out; any other error is returned as is
func (h *MenuHandler) finish(ctx context.Context, sess *domain.Session, err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}

	h.logger.InfoContext(ctx, "input closed, logging out")
	return h.logout(ctx, sess)
}

func (h *MenuHandler) logout(ctx context.Context, sess *domain.Session) error {
	if err := h.service.Logout(ctx, sess); err != nil {
		return err
	}
	h.println("Logged out.")
	return nil
}

func (h *MenuHandler) receive(ctx context.Context, sess *domain.Session) error {
	for {
		name, err := h.prompt(`Enter product name or press "x" to exit: `)
		if err != nil {
			return err
		}
		if isExit(name) {
			return nil
		}

		quantityText, err := h.prompt("Enter quantity: ")
		if err != nil {
			return err
		}
		quantity, convErr := strconv.Atoi(strings.TrimSpace(quantityText))
		if convErr != nil {
			h.println("Wrong format. Quantity should be an integer and price should be a float.")
			continue
		}

		priceText, err := h.prompt("Enter price: ")
		if err != nil {
			return err
		}
		price, convErr := decimal.NewFromString(strings.TrimSpace(priceText))
		if convErr != nil {
			h.println("Wrong format. Quantity should be an integer and price should be a float.")
			continue
		}

		if quantity <= 0 || !price.IsPositive() {
			h.println("Error. Quantity and price should be a positive value.")
			continue
		}

		if err := h.service.Receive(ctx, sess, name, quantity, price); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return err
			}
			h.printError(err)
			continue
		}
		h.printf("%d x %s added.\n", quantity, name)

		again, err := h.askAgain("Add another product? y/n: ")
		if err != nil || !again {
			return err
		}
	}
}

func (h *MenuHandler) issue(ctx context.Context, sess *domain.Session) error {
	for {
		entries, err := h.service.List(ctx, sess)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			h.println("Warehouse empty.")
			return nil
		}
		RenderList(h.out, entries)

		name, err := h.prompt(`Enter product name or press "x" to exit: `)
		if err != nil {
			return err
		}
		if isExit(name) {
			return nil
		}
		if !contains(entries, name) {
			h.println("Product not found in inventory.")
			continue
		}

		quantityText, err := h.prompt("Enter quantity: ")
		if err != nil {
			return err
		}
		quantity, convErr := strconv.Atoi(strings.TrimSpace(quantityText))
		if convErr != nil {
			h.println("Wrong format. Quantity should be an integer.")
			continue
		}
		if quantity <= 0 {
			h.println("Error. Quantity should be a positive value.")
			continue
		}

		err = h.service.Issue(ctx, sess, name, quantity)
		switch {
		case err == nil:
			h.printf("%d x %s issued.\n", quantity, name)
		case errors.Is(err, domain.ErrInsufficientStock):
			h.println("Insufficient stock.")
		case errors.Is(err, domain.ErrUnauthorized):
			return err
		default:
			h.printError(err)
		}

		again, err := h.askAgain("Remove another product? y/n: ")
		if err != nil || !again {
			return err
		}
	}
}

func (h *MenuHandler) display(ctx context.Context, sess *domain.Session) error {
	entries, err := h.service.List(ctx, sess)
	if err != nil {
		return err
	}
	RenderList(h.out, entries)
	return nil
}

func (h *MenuHandler) save(ctx context.Context, sess *domain.Session) error {
	location, err := h.prompt(`Enter filename or press "x" to exit: `)
	if err != nil {
		return err
	}
	if isExit(location) {
		return nil
	}

	store, err := h.opener.Open(ctx, location)
	if err != nil {
		h.printError(err)
		return nil
	}

	if err := h.service.SaveTo(ctx, sess, store); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		h.printError(err)
		return nil
	}

	h.printf("Inventory saved to %s\n", location)
	return nil
}

func (h *MenuHandler) load(ctx context.Context, sess *domain.Session) error {
	location, err := h.prompt(`Enter filename or press "x" to exit: `)
	if err != nil {
		return err
	}
	if isExit(location) {
		return nil
	}

	store, err := h.opener.Open(ctx, location)
	if err != nil {
		h.printError(err)
		return nil
	}

	err = h.service.LoadFrom(ctx, sess, store)
	switch {
	case err == nil:
		h.printf("Inventory loaded from %s\n", location)
	case errors.Is(err, domain.ErrNotFound):
		h.printf("File %s not found.\n", location)
	case errors.Is(err, domain.ErrUnauthorized):
		return err
	default:
		h.printError(err)
	}

	return nil
}

// askAgain repeats the question until the answer is y or n
func (h *MenuHandler) askAgain(question string) (bool, error) {
	for {
		answer, err := h.prompt(question)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			h.println("Wrong choice.")
		}
	}
}

// prompt writes text and reads one line without its line ending.
// A final line without a newline is still returned.
func (h *MenuHandler) prompt(text string) (string, error) {
	fmt.Fprint(h.out, text)

	line, err := h.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (h *MenuHandler) printError(err error) {
	h.printf("Error: %v\n", err)
}

func (h *MenuHandler) println(text string) {
	fmt.Fprintln(h.out, text)
}

func (h *MenuHandler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func isExit(input string) bool {
	return strings.EqualFold(input, "x")
}

func contains(entries []domain.Entry, name string) bool {
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}
