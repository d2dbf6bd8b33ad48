// internal/core/domain/validation.go
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateName rejects empty product names
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	return nil
}

// ValidateQuantity rejects non-positive quantities
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity should be a positive value", ErrValidation)
	}
	return nil
}

// ValidatePrice rejects non-positive prices and prices outside the float64
// range the relational store can hold
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price should be a positive value", ErrValidation)
	}
	if _, err := priceFloat(price); err != nil {
		return err
	}
	return nil
}

// NormalizePrice validates price and rounds it to the nearest float64, the
// precision every store keeps, so saving and loading never changes it
func NormalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidatePrice(price); err != nil {
		return decimal.Zero, err
	}
	f, err := priceFloat(price)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}

func priceFloat(price decimal.Decimal) (float64, error) {
	f, err := strconv.ParseFloat(price.String(), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return 0, fmt.Errorf("%w: price %s is out of range", ErrValidation, price)
	}
	return f, nil
}

// ParseQuantity parses user input into a positive integer quantity
func ParseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity should be an integer", ErrValidation)
	}
	if err := ValidateQuantity(q); err != nil {
		return 0, err
	}
	return q, nil
}

// ParsePrice parses user input into a positive, normalized decimal price
func ParsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price should be a number", ErrValidation)
	}
	return NormalizePrice(p)
}

// FormatPrice renders a price with at least one fractional digit, so a price
// of 5 is written as 5.0
func FormatPrice(price decimal.Decimal) string {
	s := price.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
