package exchange_test

import (
	"testing"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() exchange.RateTable {
	return exchange.RateTable{
		currency.EUR: decimal.NewFromFloat(19.45),
		currency.USD: decimal.NewFromFloat(17.80),
		currency.GBP: decimal.NewFromFloat(22.10),
		currency.RON: decimal.NewFromFloat(4.00),
	}
}

func TestRate(t *testing.T) {
	t.Parallel()
	rates := testRates()

	r, err := rates.Rate(currency.EUR)
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.NewFromFloat(19.45)))

	// Base currency always resolves to 1 without a table entry.
	r, err = rates.Rate(currency.MDL)
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.NewFromInt(1)))

	_, err = rates.Rate("JPY")
	assert.ErrorIs(t, err, exchange.ErrRateNotFound)

	_, err = exchange.RateTable{currency.EUR: decimal.Zero}.Rate(currency.EUR)
	assert.ErrorIs(t, err, exchange.ErrInvalidRate)
}

func TestToBase(t *testing.T) {
	t.Parallel()
	rates := testRates()

	got, err := rates.ToBase(decimal.NewFromInt(200), currency.EUR)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(3890)), "200 EUR should be 3890 MDL, got %s", got)

	got, err = rates.ToBase(decimal.NewFromInt(500), currency.MDL)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(500)))
}

func TestConvertBridgesThroughBase(t *testing.T) {
	t.Parallel()
	rates := testRates()

	// EUR -> USD bridges through MDL: 100*19.45 = 1945, 1945/17.80 = 109.2696...
	q, err := exchange.Convert(decimal.NewFromInt(100), currency.EUR, currency.USD, rates)
	require.NoError(t, err)

	converted, _ := q.Converted.Float64()
	assert.InDelta(t, 109.26966292134831, converted, 1e-6)

	commission, _ := q.Commission.Float64()
	assert.InDelta(t, 0.54634831460674, commission, 1e-6)

	received, _ := q.Received.Float64()
	assert.InDelta(t, 108.72331460674157, received, 1e-6)
}

func TestConvertFromBase(t *testing.T) {
	t.Parallel()
	// 1945 MDL -> EUR: 1945/19.45 = 100, minus 0.5% = 99.5
	q, err := exchange.Convert(decimal.NewFromInt(1945), currency.MDL, currency.EUR, testRates())
	require.NoError(t, err)
	received, _ := q.Received.Float64()
	assert.InDelta(t, 99.5, received, 1e-6)
}

func TestConvertToBase(t *testing.T) {
	t.Parallel()
	// 100 EUR -> MDL: 1945, minus 0.5% = 1935.275
	q, err := exchange.Convert(decimal.NewFromInt(100), currency.EUR, currency.MDL, testRates())
	require.NoError(t, err)
	received, _ := q.Received.Float64()
	assert.InDelta(t, 1935.275, received, 1e-6)
}

func TestConvertRejections(t *testing.T) {
	t.Parallel()
	rates := testRates()

	_, err := exchange.Convert(decimal.NewFromInt(100), currency.EUR, currency.EUR, rates)
	assert.ErrorIs(t, err, exchange.ErrSameCurrency)

	_, err = exchange.Convert(decimal.Zero, currency.EUR, currency.USD, rates)
	assert.ErrorIs(t, err, exchange.ErrNonPositiveAmount)

	_, err = exchange.Convert(decimal.NewFromInt(-5), currency.EUR, currency.USD, rates)
	assert.ErrorIs(t, err, exchange.ErrNonPositiveAmount)

	_, err = exchange.Convert(decimal.NewFromInt(100), currency.EUR, "JPY", rates)
	assert.ErrorIs(t, err, exchange.ErrRateNotFound)
}

func TestCommissionAlwaysPositive(t *testing.T) {
	t.Parallel()
	rates := testRates()
	for _, amount := range []float64{0.01, 1, 100, 99999.99} {
		q, err := exchange.Convert(decimal.NewFromFloat(amount), currency.EUR, currency.USD, rates)
		require.NoError(t, err)
		assert.True(t, q.Commission.IsPositive(), "commission must be positive for amount %v", amount)
		assert.True(t, q.Received.LessThan(q.Converted))
	}
}

func TestCloneDoesNotShareStorage(t *testing.T) {
	t.Parallel()
	rates := testRates()
	clone := rates.Clone()
	clone[currency.EUR] = decimal.NewFromInt(999)

	r, err := rates.Rate(currency.EUR)
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.NewFromFloat(19.45)))
}
