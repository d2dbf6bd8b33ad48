package domain_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse/internal/core/domain"
)

func TestInventory_Receive(t *testing.T) {
	tests := []struct {
		name          string
		initial       domain.Inventory
		product       string
		quantity      int
		price         decimal.Decimal
		wantErr       error
		wantQuantity  int
		wantPrice     decimal.Decimal
		wantUnchanged bool
	}{
		{
			name:         "inserts_new_product",
			initial:      domain.NewInventory(),
			product:      "product1",
			quantity:     5,
			price:        decimal.NewFromFloat(10.0),
			wantQuantity: 5,
			wantPrice:    decimal.NewFromFloat(10.0),
		},
		{
			name: "adds_to_existing_product_and_keeps_price",
			initial: domain.Inventory{
				"product1": {Quantity: 5, Price: decimal.NewFromFloat(10.0)},
			},
			product:      "product1",
			quantity:     3,
			price:        decimal.NewFromFloat(99.5),
			wantQuantity: 8,
			wantPrice:    decimal.NewFromFloat(10.0),
		},
		{
			name:          "rejects_zero_quantity",
			initial:       domain.NewInventory(),
			product:       "product1",
			quantity:      0,
			price:         decimal.NewFromFloat(10.0),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name:          "rejects_negative_quantity",
			initial:       domain.NewInventory(),
			product:       "product1",
			quantity:      -2,
			price:         decimal.NewFromFloat(10.0),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name:         "rounds_new_price_to_float64",
			initial:      domain.NewInventory(),
			product:      "product1",
			quantity:     1,
			price:        decimal.RequireFromString("0.12345678901234567891"),
			wantQuantity: 1,
			wantPrice:    decimal.RequireFromString("0.12345678901234568"),
		},
		{
			name:          "rejects_price_beyond_float64",
			initial:       domain.NewInventory(),
			product:       "product1",
			quantity:      1,
			price:         decimal.RequireFromString("1e400"),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name:          "rejects_zero_price",
			initial:       domain.NewInventory(),
			product:       "product1",
			quantity:      1,
			price:         decimal.Zero,
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name: "rejects_negative_price_for_existing_product",
			initial: domain.Inventory{
				"product1": {Quantity: 5, Price: decimal.NewFromFloat(10.0)},
			},
			product:       "product1",
			quantity:      1,
			price:         decimal.NewFromFloat(-1),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name:          "rejects_empty_name",
			initial:       domain.NewInventory(),
			product:       "  ",
			quantity:      1,
			price:         decimal.NewFromFloat(1),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
		{
			name: "rejects_overflowing_quantity",
			initial: domain.Inventory{
				"product1": {Quantity: math.MaxInt, Price: decimal.NewFromFloat(1)},
			},
			product:       "product1",
			quantity:      1,
			price:         decimal.NewFromFloat(1),
			wantErr:       domain.ErrValidation,
			wantUnchanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.initial.Clone()

			err := tt.initial.Receive(tt.product, tt.quantity, tt.price)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				record, ok := tt.initial.Get(tt.product)
				require.True(t, ok)
				assert.Equal(t, tt.wantQuantity, record.Quantity)
				assert.True(t, tt.wantPrice.Equal(record.Price),
					"expected price %s, got %s", tt.wantPrice, record.Price)
			}

			if tt.wantUnchanged {
				assert.True(t, before.Equal(tt.initial), "inventory must not change on error")
			}
		})
	}
}

func TestInventory_Receive_IsCaseSensitive(t *testing.T) {
	inv := domain.NewInventory()

	require.NoError(t, inv.Receive("Widget", 1, decimal.NewFromInt(2)))
	require.NoError(t, inv.Receive("widget", 1, decimal.NewFromInt(3)))

	assert.Equal(t, 2, inv.Len())
}

func TestInventory_Issue(t *testing.T) {
	stocked := func() domain.Inventory {
		return domain.Inventory{
			"product1": {Quantity: 10, Price: decimal.NewFromFloat(5.0)},
		}
	}

	tests := []struct {
		name         string
		product      string
		quantity     int
		wantErr      error
		wantPresent  bool
		wantQuantity int
	}{
		{
			name:         "decrements_when_stock_exceeds_request",
			product:      "product1",
			quantity:     5,
			wantPresent:  true,
			wantQuantity: 5,
		},
		{
			name:        "removes_product_when_request_equals_stock",
			product:     "product1",
			quantity:    10,
			wantPresent: false,
		},
		{
			name:         "insufficient_stock_leaves_inventory_unchanged",
			product:      "product1",
			quantity:     11,
			wantErr:      domain.ErrInsufficientStock,
			wantPresent:  true,
			wantQuantity: 10,
		},
		{
			name:         "unknown_product_is_not_found",
			product:      "product2",
			quantity:     1,
			wantErr:      domain.ErrNotFound,
			wantPresent:  true,
			wantQuantity: 10,
		},
		{
			name:         "zero_quantity_is_invalid",
			product:      "product1",
			quantity:     0,
			wantErr:      domain.ErrValidation,
			wantPresent:  true,
			wantQuantity: 10,
		},
		{
			name:         "negative_quantity_is_invalid",
			product:      "product1",
			quantity:     -3,
			wantErr:      domain.ErrValidation,
			wantPresent:  true,
			wantQuantity: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := stocked()

			err := inv.Issue(tt.product, tt.quantity)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			record, ok := inv.Get("product1")
			assert.Equal(t, tt.wantPresent, ok)
			if tt.wantPresent {
				assert.Equal(t, tt.wantQuantity, record.Quantity)
				assert.True(t, decimal.NewFromFloat(5.0).Equal(record.Price))
			}
		})
	}
}

func TestInventory_List(t *testing.T) {
	t.Run("empty_inventory_lists_nothing", func(t *testing.T) {
		entries := domain.NewInventory().List()
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("single_product_lists_exact_values", func(t *testing.T) {
		inv := domain.Inventory{
			"product1": {Quantity: 10, Price: decimal.NewFromFloat(5.0)},
		}

		entries := inv.List()

		require.Len(t, entries, 1)
		assert.Equal(t, "product1", entries[0].Name)
		assert.Equal(t, 10, entries[0].Quantity)
		assert.Equal(t, "5.0", domain.FormatPrice(entries[0].Price))
	})

	t.Run("entries_are_sorted_by_name", func(t *testing.T) {
		inv := domain.Inventory{
			"zinc":   {Quantity: 1, Price: decimal.NewFromInt(1)},
			"apple":  {Quantity: 2, Price: decimal.NewFromInt(2)},
			"mortar": {Quantity: 3, Price: decimal.NewFromInt(3)},
		}

		entries := inv.List()

		require.Len(t, entries, 3)
		assert.Equal(t, "apple", entries[0].Name)
		assert.Equal(t, "mortar", entries[1].Name)
		assert.Equal(t, "zinc", entries[2].Name)
	})

	t.Run("fresh_call_reflects_mutation", func(t *testing.T) {
		inv := domain.Inventory{
			"product1": {Quantity: 10, Price: decimal.NewFromFloat(5.0)},
		}
		first := inv.List()

		require.NoError(t, inv.Issue("product1", 10))

		assert.Len(t, first, 1)
		assert.Empty(t, inv.List())
	})
}

func TestInventory_Validate(t *testing.T) {
	tests := []struct {
		name    string
		inv     domain.Inventory
		wantErr bool
	}{
		{
			name: "valid_records",
			inv: domain.Inventory{
				"product1": {Quantity: 1, Price: decimal.NewFromFloat(0.5)},
			},
		},
		{
			name: "zero_quantity_record",
			inv: domain.Inventory{
				"product1": {Quantity: 0, Price: decimal.NewFromFloat(0.5)},
			},
			wantErr: true,
		},
		{
			name: "zero_price_record",
			inv: domain.Inventory{
				"product1": {Quantity: 1, Price: decimal.Zero},
			},
			wantErr: true,
		},
		{
			name: "empty_name",
			inv: domain.Inventory{
				"": {Quantity: 1, Price: decimal.NewFromInt(1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInventory_EqualAndClone(t *testing.T) {
	a := domain.Inventory{
		"product1": {Quantity: 5, Price: decimal.RequireFromString("10.0")},
	}
	b := domain.Inventory{
		"product1": {Quantity: 5, Price: decimal.NewFromFloat(10)},
	}

	assert.True(t, a.Equal(b), "prices compare numerically")

	c := a.Clone()
	require.NoError(t, c.Issue("product1", 1))
	assert.False(t, a.Equal(c))

	rec, _ := a.Get("product1")
	assert.Equal(t, 5, rec.Quantity, "clone must not alias the original")
}
