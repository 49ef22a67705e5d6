package money_test

import (
	"testing"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	m, err := money.NewFromFloat(100.50, currency.MDL)
	require.NoError(t, err)
	assert.Equal(t, currency.MDL, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))

	_, err = money.NewFromFloat(1, "mdl")
	assert.ErrorIs(t, err, money.ErrInvalidCurrencyCode)
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a, _ := money.NewFromFloat(100, currency.EUR)
	b, _ := money.NewFromFloat(40.25, currency.EUR)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(140.25)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(59.75)))

	scaled := a.Mul(decimal.NewFromFloat(0.005))
	assert.True(t, scaled.Amount().Equal(decimal.NewFromFloat(0.5)))
}

func TestCurrencyMismatch(t *testing.T) {
	t.Parallel()
	a, _ := money.NewFromFloat(100, currency.EUR)
	b, _ := money.NewFromFloat(100, currency.USD)

	_, err := a.Add(b)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = a.GreaterThan(b)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	assert.False(t, a.Equals(b))
}

func TestComparisons(t *testing.T) {
	t.Parallel()
	a, _ := money.NewFromFloat(100, currency.MDL)
	b, _ := money.NewFromFloat(50, currency.MDL)

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.False(t, lt)

	assert.True(t, a.IsPositive())
	assert.False(t, a.IsNegative())
	assert.True(t, money.Zero(currency.MDL).IsZero())
}

func TestString(t *testing.T) {
	t.Parallel()
	m, _ := money.NewFromFloat(1234.5, currency.MDL)
	assert.Equal(t, "1234.50 MDL", m.String())
}

func FuzzAddSubRoundTrip(f *testing.F) {
	f.Add(100.0, 42.5)
	f.Add(0.01, 0.02)
	f.Add(999999.99, 0.0)
	f.Fuzz(func(t *testing.T, x, y float64) {
		a, err := money.NewFromFloat(x, currency.MDL)
		if err != nil {
			t.Skip()
		}
		b, err := money.NewFromFloat(y, currency.MDL)
		if err != nil {
			t.Skip()
		}
		sum, err := a.Add(b)
		require.NoError(t, err)
		back, err := sum.Sub(b)
		require.NoError(t, err)
		assert.True(t, back.Equals(a), "add/sub should round-trip exactly")
	})
}
