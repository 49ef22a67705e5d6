package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/bancamd/corebank/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain silences the default logger for every test in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testRates() exchange.RateTable {
	return exchange.RateTable{
		currency.EUR: decimal.NewFromFloat(19.45),
		currency.USD: decimal.NewFromFloat(17.80),
		currency.GBP: decimal.NewFromFloat(22.10),
		currency.RON: decimal.NewFromFloat(4.00),
	}
}

func mustMoney(t *testing.T, amount float64, code currency.Code) money.Money {
	t.Helper()
	m, err := money.NewFromFloat(amount, code)
	require.NoError(t, err)
	return m
}

func newTestAccount(t *testing.T) *account.Account {
	t.Helper()
	a, err := account.New().
		WithNumber("1234567890123456").
		WithPassword("parola123").
		WithOwner("Ion Popescu").
		WithInitialBalance(decimal.NewFromInt(1000)).
		Build()
	require.NoError(t, err)
	return a
}

func TestBuildValidation(t *testing.T) {
	t.Parallel()
	valid := func() *account.Builder {
		return account.New().
			WithNumber("1234567890123456").
			WithPassword("parola123").
			WithOwner("Ion Popescu")
	}

	tests := []struct {
		name    string
		builder *account.Builder
		wantErr error
	}{
		{"number too short", valid().WithNumber("123456789012345"), account.ErrInvalidAccountNumber},
		{"number with letters", valid().WithNumber("12345678901234ab"), account.ErrInvalidAccountNumber},
		{"empty number", valid().WithNumber(""), account.ErrInvalidAccountNumber},
		{"password too short", valid().WithPassword("ab1"), account.ErrWeakPassword},
		{"password without digits", valid().WithPassword("abcdefgh"), account.ErrWeakPassword},
		{"password without letters", valid().WithPassword("12345678"), account.ErrWeakPassword},
		{"owner too short", valid().WithOwner("I"), account.ErrInvalidOwnerName},
		{"negative initial balance", valid().WithInitialBalance(decimal.NewFromInt(-1)), account.ErrNegativeInitialBalance},
		{"daily limit too low", valid().WithDailyLimit(decimal.NewFromInt(50)), account.ErrDailyLimitTooLow},
		{"unsupported currency", valid().WithCurrencies("JPY"), account.ErrUnsupportedCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.builder.Build()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, a)
		})
	}
}

func TestBuildInitialState(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	assert.Equal(t, "1234567890123456", a.Number())
	assert.Equal(t, "Ion Popescu", a.Owner())
	assert.True(t, a.IsActive())
	assert.True(t, a.VerifyPassword("parola123"))
	assert.False(t, a.VerifyPassword("wrong999"))

	balances := a.Balances()
	require.Len(t, balances, 5)
	assert.True(t, balances[currency.MDL].Equal(decimal.NewFromInt(1000)))
	for _, c := range []currency.Code{currency.EUR, currency.USD, currency.GBP, currency.RON} {
		assert.True(t, balances[c].IsZero(), "expected zero %s balance", c)
	}

	require.Equal(t, 1, a.HistoryLen())
	tx := a.Recent(1)[0]
	assert.Equal(t, account.KindCreation, tx.Kind)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1000)))
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	tx, err := a.Deposit(mustMoney(t, 1000, currency.MDL))
	require.NoError(t, err)

	assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 2, a.HistoryLen())
	assert.Equal(t, account.KindDeposit, tx.Kind)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, currency.MDL, tx.Currency)
}

func TestDepositRejections(t *testing.T) {
	t.Parallel()

	t.Run("below minimum", func(t *testing.T) {
		a := newTestAccount(t)
		_, err := a.Deposit(mustMoney(t, 0.50, currency.MDL))
		assert.ErrorIs(t, err, account.ErrBelowMinimumDeposit)
		assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, 1, a.HistoryLen())
	})

	t.Run("currency not held", func(t *testing.T) {
		a := newTestAccount(t)
		_, err := a.Deposit(mustMoney(t, 100, "JPY"))
		assert.ErrorIs(t, err, account.ErrUnsupportedCurrency)
		assert.Equal(t, 1, a.HistoryLen())
	})

	t.Run("inactive account", func(t *testing.T) {
		a := newTestAccount(t)
		a.Deactivate()
		_, err := a.Deposit(mustMoney(t, 100, currency.MDL))
		assert.ErrorIs(t, err, account.ErrAccountInactive)
		assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(1000)))
	})
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	tx, err := a.Withdraw(mustMoney(t, 300, currency.MDL), testRates())
	require.NoError(t, err)

	assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(700)))
	assert.Equal(t, account.KindWithdrawal, tx.Kind)
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(4700)))
}

func TestWithdrawDailyLimit(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	_, err := a.Deposit(mustMoney(t, 500, currency.EUR))
	require.NoError(t, err)

	// 200 EUR at 19.45 consumes 3890 of the 5000 MDL limit.
	_, err = a.Withdraw(mustMoney(t, 200, currency.EUR), testRates())
	require.NoError(t, err)
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(1110)))

	// Another 100 EUR would be 1945 more, 5835 total: over the limit.
	_, err = a.Withdraw(mustMoney(t, 100, currency.EUR), testRates())
	assert.ErrorIs(t, err, account.ErrDailyLimitExceeded)

	// Rejection left everything untouched.
	assert.True(t, a.Balance(currency.EUR).Equal(decimal.NewFromInt(300)))
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(1110)))
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	before := a.DailyAvailable()
	_, err := a.Withdraw(mustMoney(t, 2000, currency.MDL), testRates())
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.DailyAvailable().Equal(before))
}

func TestWithdrawRejections(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	_, err := a.Withdraw(mustMoney(t, -5, currency.MDL), testRates())
	assert.ErrorIs(t, err, account.ErrAmountNotPositive)

	_, err = a.Withdraw(mustMoney(t, 0, currency.MDL), testRates())
	assert.ErrorIs(t, err, account.ErrAmountNotPositive)

	_, err = a.Withdraw(mustMoney(t, 10, "JPY"), testRates())
	assert.ErrorIs(t, err, account.ErrUnsupportedCurrency)

	a.Deactivate()
	_, err = a.Withdraw(mustMoney(t, 10, currency.MDL), testRates())
	assert.ErrorIs(t, err, account.ErrAccountInactive)
}

func TestDailyLimitLazyReset(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	a, err := account.New().
		WithNumber("1234567890123456").
		WithPassword("parola123").
		WithOwner("Ion Popescu").
		WithInitialBalance(decimal.NewFromInt(20000)).
		WithClock(func() time.Time { return now }).
		Build()
	require.NoError(t, err)

	_, err = a.Withdraw(mustMoney(t, 4800, currency.MDL), testRates())
	require.NoError(t, err)
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(200)))

	// Same day: still over the limit.
	_, err = a.Withdraw(mustMoney(t, 500, currency.MDL), testRates())
	assert.ErrorIs(t, err, account.ErrDailyLimitExceeded)

	// Cross midnight: usage resets lazily on the next check.
	now = now.Add(10 * time.Hour)
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(5000)))

	_, err = a.Withdraw(mustMoney(t, 500, currency.MDL), testRates())
	require.NoError(t, err)
	assert.True(t, a.DailyAvailable().Equal(decimal.NewFromInt(4500)))
}

func TestExchangeCurrency(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	_, err := a.Deposit(mustMoney(t, 100, currency.EUR))
	require.NoError(t, err)

	quote, err := a.ExchangeCurrency(currency.EUR, currency.USD, decimal.NewFromInt(100), testRates())
	require.NoError(t, err)

	assert.True(t, a.Balance(currency.EUR).IsZero())

	usd, _ := a.Balance(currency.USD).Float64()
	assert.InDelta(t, 108.72331460674157, usd, 1e-6)

	commission, _ := quote.Commission.Float64()
	assert.InDelta(t, 0.54634831460674, commission, 1e-6)

	tx := a.Recent(1)[0]
	assert.Equal(t, account.KindExchange, tx.Kind)
	assert.True(t, tx.Commission.IsPositive())
	assert.Equal(t, currency.EUR, tx.Currency)
}

func TestExchangeRejections(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	_, err := a.ExchangeCurrency(currency.MDL, currency.MDL, decimal.NewFromInt(100), testRates())
	assert.ErrorIs(t, err, exchange.ErrSameCurrency)

	_, err = a.ExchangeCurrency(currency.EUR, currency.USD, decimal.NewFromInt(100), testRates())
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)

	_, err = a.ExchangeCurrency("JPY", currency.USD, decimal.NewFromInt(100), testRates())
	assert.ErrorIs(t, err, account.ErrUnsupportedCurrency)

	before := a.Balance(currency.MDL)
	a.Deactivate()
	_, err = a.ExchangeCurrency(currency.MDL, currency.USD, decimal.NewFromInt(100), testRates())
	assert.ErrorIs(t, err, account.ErrAccountInactive)
	assert.True(t, a.Balance(currency.MDL).Equal(before))
}

func TestCalculateInterest(t *testing.T) {
	t.Parallel()
	a, err := account.New().
		WithNumber("1234567890123456").
		WithPassword("parola123").
		WithOwner("Ion Popescu").
		WithInitialBalance(decimal.NewFromInt(10000)).
		Build()
	require.NoError(t, err)

	a.CalculateInterest(decimal.NewFromFloat(5.0))

	// 10000 * 5/365/100 = 1.3698...
	balance, _ := a.Balance(currency.MDL).Float64()
	assert.InDelta(t, 10001.3698630137, balance, 1e-4)

	require.Equal(t, 2, a.HistoryLen())
	tx := a.Recent(1)[0]
	assert.Equal(t, account.KindInterest, tx.Kind)
	interest, _ := tx.Amount.Float64()
	assert.InDelta(t, 1.3698630137, interest, 1e-4)
}

func TestInterestBelowThresholdNotLogged(t *testing.T) {
	t.Parallel()
	a, err := account.New().
		WithNumber("1234567890123456").
		WithPassword("parola123").
		WithOwner("Ion Popescu").
		WithInitialBalance(decimal.NewFromInt(50)).
		Build()
	require.NoError(t, err)

	a.CalculateInterest(decimal.NewFromFloat(5.0))

	// Balance still grows even though the entry is suppressed.
	assert.True(t, a.Balance(currency.MDL).GreaterThan(decimal.NewFromInt(50)))
	assert.Equal(t, 1, a.HistoryLen())
}

func TestInterestNeverDecreasesBalances(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	_, err := a.Deposit(mustMoney(t, 250, currency.EUR))
	require.NoError(t, err)

	before := a.Balances()
	a.CalculateInterest(decimal.NewFromFloat(3.5))
	after := a.Balances()

	for c, b := range after {
		assert.False(t, b.LessThan(before[c]), "balance %s decreased", c)
	}
}

func TestInterestNoOpWhenInactive(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	a.Deactivate()
	before := a.Balance(currency.MDL)
	a.CalculateInterest(decimal.NewFromFloat(5.0))
	assert.True(t, a.Balance(currency.MDL).Equal(before))
}

func TestActivationStateMachine(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	a.Deactivate()
	assert.False(t, a.IsActive())
	assert.Equal(t, 2, a.HistoryLen())
	assert.Equal(t, account.KindActivationChange, a.Recent(1)[0].Kind)

	// Deactivating twice is a no-op.
	a.Deactivate()
	assert.Equal(t, 2, a.HistoryLen())

	a.Reactivate()
	assert.True(t, a.IsActive())
	assert.Equal(t, 3, a.HistoryLen())

	a.Reactivate()
	assert.Equal(t, 3, a.HistoryLen())
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	err := a.ChangePassword("wrong999", "newpass12")
	assert.ErrorIs(t, err, account.ErrWrongPassword)

	err = a.ChangePassword("parola123", "short")
	assert.ErrorIs(t, err, account.ErrWeakPassword)

	err = a.ChangePassword("parola123", "newpass12")
	require.NoError(t, err)
	assert.True(t, a.VerifyPassword("newpass12"))
	assert.False(t, a.VerifyPassword("parola123"))
	assert.Equal(t, account.KindPasswordChange, a.Recent(1)[0].Kind)
}

func TestSetOwnerName(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	require.NoError(t, a.SetOwnerName("Maria Rusu"))
	assert.Equal(t, "Maria Rusu", a.Owner())

	assert.ErrorIs(t, a.SetOwnerName("M"), account.ErrInvalidOwnerName)
	assert.Equal(t, "Maria Rusu", a.Owner())
}

func TestSetDailyLimit(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	require.NoError(t, a.SetDailyLimit(decimal.NewFromInt(10000)))
	assert.True(t, a.DailyLimit().Equal(decimal.NewFromInt(10000)))

	assert.ErrorIs(t, a.SetDailyLimit(decimal.NewFromInt(50)), account.ErrDailyLimitTooLow)
	assert.True(t, a.DailyLimit().Equal(decimal.NewFromInt(10000)))
}

func TestTotalInBase(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	_, err := a.Deposit(mustMoney(t, 100, currency.EUR))
	require.NoError(t, err)

	total, err := a.TotalInBase(testRates())
	require.NoError(t, err)
	// 1000 MDL + 100 EUR * 19.45 = 2945
	assert.True(t, total.Equal(decimal.NewFromInt(2945)), "got %s", total)
}

func TestStatement(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)
	_, err := a.Deposit(mustMoney(t, 1000, currency.MDL))
	require.NoError(t, err)
	_, err = a.Deposit(mustMoney(t, 100, currency.EUR))
	require.NoError(t, err)
	_, err = a.Withdraw(mustMoney(t, 300, currency.MDL), testRates())
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	st, err := a.Statement(from, to, testRates())
	require.NoError(t, err)

	// CREATION counts in neither bucket.
	require.Len(t, st.Entries, 4)
	// In: 1000 MDL + 100 EUR*19.45 = 2945. Out: 300 MDL.
	assert.True(t, st.TotalIn.Equal(decimal.NewFromInt(2945)), "in %s", st.TotalIn)
	assert.True(t, st.TotalOut.Equal(decimal.NewFromInt(300)), "out %s", st.TotalOut)
	assert.True(t, st.Net().Equal(decimal.NewFromInt(2645)))
}

func TestConcurrentDepositsSerialize(t *testing.T) {
	t.Parallel()
	a := newTestAccount(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Deposit(mustMoney(t, 10, currency.MDL))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, a.Balance(currency.MDL).Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 51, a.HistoryLen())
}
