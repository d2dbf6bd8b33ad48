// internal/core/domain/inventory.go
package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// StockRecord holds the stock level and unit price of one product
type StockRecord struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Entry is one row of a product listing
type Entry struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Inventory maps product names to their stock records.
// A record present in the map always has a positive quantity and price;
// a product whose stock reaches zero is removed.
type Inventory map[string]StockRecord

// NewInventory returns an empty inventory
func NewInventory() Inventory {
	return make(Inventory)
}

// Receive adds stock for a product. A new product is inserted with the given
// price rounded to float64 precision; an existing product keeps its original price.
func (inv Inventory) Receive(name string, quantity int, price decimal.Decimal) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	price, err := NormalizePrice(price)
	if err != nil {
		return err
	}

	record, exists := inv[name]
	if !exists {
		inv[name] = StockRecord{Quantity: quantity, Price: price}
		return nil
	}

	if record.Quantity > math.MaxInt-quantity {
		return fmt.Errorf("%w: quantity of %s would overflow", ErrValidation, name)
	}

	record.Quantity += quantity
	inv[name] = record
	return nil
}

// Issue removes stock for a product. Issuing the full stock removes the product.
func (inv Inventory) Issue(name string, quantity int) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	record, exists := inv[name]
	if !exists {
		return fmt.Errorf("%w: product %s", ErrNotFound, name)
	}

	if record.Quantity < quantity {
		return fmt.Errorf("%w: %s has %d, requested %d",
			ErrInsufficientStock, name, record.Quantity, quantity)
	}

	if record.Quantity == quantity {
		delete(inv, name)
		return nil
	}

	record.Quantity -= quantity
	inv[name] = record
	return nil
}

// List returns a snapshot of the inventory sorted by product name
func (inv Inventory) List() []Entry {
	entries := make([]Entry, 0, len(inv))
	for name, record := range inv {
		entries = append(entries, Entry{
			Name:     name,
			Quantity: record.Quantity,
			Price:    record.Price,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// Get returns the record for a product
func (inv Inventory) Get(name string) (StockRecord, bool) {
	record, ok := inv[name]
	return record, ok
}

// Len returns the number of products in stock
func (inv Inventory) Len() int {
	return len(inv)
}

// Clone returns an independent copy of the inventory
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for name, record := range inv {
		out[name] = record
	}
	return out
}

// Equal reports whether both inventories hold the same products with the
// same quantities and numerically equal prices
func (inv Inventory) Equal(other Inventory) bool {
	if len(inv) != len(other) {
		return false
	}
	for name, record := range inv {
		o, ok := other[name]
		if !ok {
			return false
		}
		if record.Quantity != o.Quantity || !record.Price.Equal(o.Price) {
			return false
		}
	}
	return true
}

// Validate checks every record against the inventory invariants. Adapters use
// it on freshly loaded data.
func (inv Inventory) Validate() error {
	for name, record := range inv {
		if err := ValidateName(name); err != nil {
			return err
		}
		if err := ValidateQuantity(record.Quantity); err != nil {
			return fmt.Errorf("product %s: %w", name, err)
		}
		if err := ValidatePrice(record.Price); err != nil {
			return fmt.Errorf("product %s: %w", name, err)
		}
	}
	return nil
}
