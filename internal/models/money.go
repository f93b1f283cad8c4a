package models

import (
	"encoding/json"
	"math"

	"github.com/dustin/go-humanize"
)

// CurrencySymbol is prepended to every formatted amount
const CurrencySymbol = "R$"

// Money is an amount in cents. Prices are kept as integers so that
// line totals and sums never accumulate float rounding errors.
type Money struct {
	Cents int64
}

// FromDecimal converts a decimal amount (530.00) to Money, rounding to the nearest cent
func FromDecimal(amount float64) Money {
	return Money{Cents: int64(math.Round(amount * 100))}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Mul(qty int) Money { return Money{Cents: m.Cents * int64(qty)} }

// Decimal returns the amount in currency units
func (m Money) Decimal() float64 {
	return float64(m.Cents) / 100
}

// String formats the amount as R$1.060,00
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + CurrencySymbol + humanize.FormatFloat("#.###,##", float64(cents)/100)
}

// MarshalJSON encodes the amount as a decimal number, matching the catalog file format
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal())
}

// UnmarshalJSON decodes a decimal number into cents
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	*m = FromDecimal(amount)
	return nil
}
