// Package money provides the Money value object used by every
// money-moving operation in the ledger.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCurrencyCode is returned when a currency code is not three uppercase letters.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrInvalidAmount is returned when an amount is not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money represents a monetary value in a specific currency.
// Invariants:
//   - The amount is an exact decimal; no float rounding leaks into balances.
//   - All arithmetic operations require matching currencies.
type Money struct {
	amount   decimal.Decimal
	currency currency.Code
}

// New creates a Money value with the given decimal amount and currency code.
func New(amount decimal.Decimal, code currency.Code) (Money, error) {
	if !currency.IsValidFormat(string(code)) {
		return Money{}, ErrInvalidCurrencyCode
	}
	return Money{amount: amount, currency: code}, nil
}

// NewFromFloat creates a Money value from a float64 amount.
// Intended for API boundaries; internal arithmetic stays decimal.
func NewFromFloat(amount float64, code currency.Code) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	return New(decimal.NewFromFloat(amount), code)
}

// Zero returns a zero amount in the given currency.
func Zero(code currency.Code) Money {
	return Money{amount: decimal.Zero, currency: code}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Float64 returns the amount as a float64 for display purposes.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns the difference of two Money values of the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Mul returns the amount scaled by the given decimal factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports whether m is below other.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals reports whether two Money values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount.Equal(other.amount)
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with the currency's display decimals.
func (m Money) String() string {
	decimals := int32(2)
	if meta, ok := currency.Get(m.currency); ok {
		decimals = int32(meta.Decimals)
	}
	return fmt.Sprintf("%s %s", m.amount.StringFixed(decimals), m.currency)
}
