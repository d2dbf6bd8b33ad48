// internal/core/domain/codec.go
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// stockRecordJSON keeps the literal number text so integer quantities and
// fractional prices are checked exactly rather than through float64
type stockRecordJSON struct {
	Quantity json.Number `json:"quantity"`
	Price    json.Number `json:"price"`
}

// MarshalJSON writes {"quantity": <int>, "price": <number>} with the price
// always carrying a fractional digit
func (r StockRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(stockRecordJSON{
		Quantity: json.Number(strconv.Itoa(r.Quantity)),
		Price:    json.Number(FormatPrice(r.Price)),
	})
}

// UnmarshalJSON accepts an integer quantity and any numeric price. Positive
// prices are normalized; the sign check is left to Validate.
func (r *StockRecord) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("stock record is null")
	}

	var aux stockRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	quantity, err := strconv.Atoi(aux.Quantity.String())
	if err != nil {
		return fmt.Errorf("quantity %q is not an integer", aux.Quantity)
	}

	price, err := decimal.NewFromString(aux.Price.String())
	if err != nil {
		return fmt.Errorf("price %q is not a number", aux.Price)
	}
	if price.IsPositive() {
		if price, err = NormalizePrice(price); err != nil {
			return err
		}
	}

	r.Quantity = quantity
	r.Price = price
	return nil
}
