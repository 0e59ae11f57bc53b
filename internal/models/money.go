package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-negative fixed-point amount. The zero value is 0.00.
// All arithmetic returns new values; a Money can never hold a negative
// amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney parses a decimal string ("125.45"). Non-numeric or negative
// input fails with ErrInvalidAmount.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

// MoneyFromInt builds a Money from a whole amount of currency units.
func MoneyFromInt(n int64) (Money, error) {
	if n < 0 {
		return Money{}, fmt.Errorf("%w: %d", ErrInvalidAmount, n)
	}
	return Money{amount: decimal.NewFromInt(n)}, nil
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference. A negative result fails with
// ErrInvalidAmount and leaves both operands untouched.
func (m Money) Sub(other Money) (Money, error) {
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrInvalidAmount, m, other)
	}
	return Money{amount: d}, nil
}

// Cmp compares numeric values: -1 if m < other, 0 if equal, 1 if greater.
func (m Money) Cmp(other Money) int { return m.amount.Cmp(other.amount) }

// Equal reports numeric equality ("10" == "10.00").
func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// String formats with two decimal places.
func (m Money) String() string { return m.amount.StringFixed(2) }

// Value implements driver.Valuer so GORM stores Money as a numeric string.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: stored amount %s", ErrInvalidAmount, d)
	}
	m.amount = d
	return nil
}
