package valueobjects

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Amount is a positive, bounded subscription price. Backed by an exact
// decimal so values like 15.99 survive round trips without float drift.
type Amount struct {
	value decimal.Decimal
}

// maxAmount bounds subscription prices at one million.
var maxAmount = decimal.NewFromInt(1_000_000)

var (
	ErrAmountMalformed   = errors.New("invalid amount format")
	ErrAmountNotPositive = errors.New("amount must be greater than 0")
	ErrAmountTooLarge    = errors.New("amount is too large")
)

// ParseAmount parses and bounds-checks a raw decimal string.
func ParseAmount(raw string) (Amount, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}, ErrAmountMalformed
	}
	return NewAmount(d)
}

// NewAmount validates a decimal as a subscription amount.
func NewAmount(d decimal.Decimal) (Amount, error) {
	if !d.IsPositive() {
		return Amount{}, ErrAmountNotPositive
	}
	if d.GreaterThan(maxAmount) {
		return Amount{}, ErrAmountTooLarge
	}
	return Amount{value: d}, nil
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

func (a Amount) Equals(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) Add(other Amount) decimal.Decimal {
	return a.value.Add(other.value)
}

func (a Amount) String() string {
	return a.value.String()
}
