// Package exchange implements the bank's conversion arithmetic: cross-rate
// bridging through the base currency and the fixed exchange commission.
// It is stateless; the rate table is supplied per call by the caller and is
// never cached or mutated here, so the standalone converter and the
// ledger's exchange operation can never disagree.
package exchange

import (
	"errors"
	"fmt"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/shopspring/decimal"
)

// CommissionRate is the fixed fee taken from the destination-currency
// amount on every exchange (0.5%).
var CommissionRate = decimal.NewFromFloat(0.005)

var (
	// ErrRateNotFound is returned when the rate table has no entry for a currency.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrInvalidRate is returned when a rate is zero or negative.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrSameCurrency is returned when source and destination currencies are equal.
	ErrSameCurrency = errors.New("cannot exchange a currency into itself")

	// ErrNonPositiveAmount is returned when the amount to convert is not positive.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// RateTable maps a currency code to its value in the base currency
// (how many MDL one unit buys). The base currency itself needs no entry.
type RateTable map[currency.Code]decimal.Decimal

// Rate returns the base-currency rate for a code. The base currency
// always resolves to 1.
func (t RateTable) Rate(code currency.Code) (decimal.Decimal, error) {
	if code == currency.Base {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrRateNotFound, code)
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s=%s", ErrInvalidRate, code, rate)
	}
	return rate, nil
}

// ToBase converts an amount of the given currency into the base currency.
func (t RateTable) ToBase(amount decimal.Decimal, code currency.Code) (decimal.Decimal, error) {
	rate, err := t.Rate(code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// Clone returns a copy of the table so callers can hand rates out without
// sharing the underlying map.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for c, r := range t {
		out[c] = r
	}
	return out
}

// Quote is the result of a conversion: the gross converted amount, the
// commission taken from it, and the net amount the customer receives,
// all in the destination currency.
type Quote struct {
	From       currency.Code
	To         currency.Code
	Amount     decimal.Decimal
	Converted  decimal.Decimal
	Commission decimal.Decimal
	Received   decimal.Decimal
}

// Convert computes a Quote for exchanging amount of from into to.
//
// Cross rates bridge through the base currency: base->X divides by X's
// rate, X->base multiplies by X's rate, X->Y goes X->base->Y. The
// commission is deducted from the destination-currency amount.
func Convert(amount decimal.Decimal, from, to currency.Code, rates RateTable) (Quote, error) {
	if from == to {
		return Quote{}, ErrSameCurrency
	}
	if !amount.IsPositive() {
		return Quote{}, ErrNonPositiveAmount
	}

	var converted decimal.Decimal
	switch {
	case from == currency.Base:
		toRate, err := rates.Rate(to)
		if err != nil {
			return Quote{}, err
		}
		converted = amount.Div(toRate)
	case to == currency.Base:
		fromRate, err := rates.Rate(from)
		if err != nil {
			return Quote{}, err
		}
		converted = amount.Mul(fromRate)
	default:
		fromRate, err := rates.Rate(from)
		if err != nil {
			return Quote{}, err
		}
		toRate, err := rates.Rate(to)
		if err != nil {
			return Quote{}, err
		}
		converted = amount.Mul(fromRate).Div(toRate)
	}

	commission := converted.Mul(CommissionRate)
	return Quote{
		From:       from,
		To:         to,
		Amount:     amount,
		Converted:  converted,
		Commission: commission,
		Received:   converted.Sub(commission),
	}, nil
}
