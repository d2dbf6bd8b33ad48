// internal/handlers/list.go
package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/ammerola/warehouse/internal/core/domain"
)

var listRule = strings.Repeat("=", 30)

// RenderList writes the product listing shown by the console
func RenderList(w io.Writer, entries []domain.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "The warehouse is empty.")
		return
	}

	fmt.Fprintln(w, "Product list:")
	fmt.Fprintln(w, listRule)
	for _, entry := range entries {
		fmt.Fprintf(w, "%-7s - Quantity: %3d, Price: $%3s\n",
			entry.Name, entry.Quantity, domain.FormatPrice(entry.Price))
	}
	fmt.Fprintln(w, listRule)
}
