// Package account implements the multi-currency account ledger: the
// aggregate owning balances, the daily withdrawal limit and the bounded
// transaction history, together with the transfer coordinator that moves
// money between two ledgers.
//
// Invariants:
//   - No balance is ever negative.
//   - Every currency the account supports has a balance entry at all times.
//   - dailyWithdrawalUsed never exceeds dailyWithdrawalLimit after a
//     successful withdrawal.
//   - History holds at most MaxHistory immutable entries, oldest evicted first.
//   - Money-moving operations reject without mutation on an inactive account.
//
// All operations serialize on a per-account RWMutex; reads take the shared
// lock. Rate tables are read-only inputs supplied per call and are never
// retained across calls.
package account

import (
	"regexp"
	"sync"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/bancamd/corebank/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Operational thresholds, all in the account's terms: deposits below
// MinimumDeposit are rejected, the default daily withdrawal limit is
// DefaultDailyLimit MDL and it can never be set below MinimumDailyLimit.
var (
	MinimumDeposit    = decimal.NewFromInt(1)
	DefaultDailyLimit = decimal.NewFromInt(5000)
	MinimumDailyLimit = decimal.NewFromInt(100)

	// interest entries below this threshold are applied but not logged
	interestLogThreshold = decimal.NewFromFloat(0.01)
)

var (
	accountNumberFormat = regexp.MustCompile(`^\d{16}$`)
	passwordLetter      = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit       = regexp.MustCompile(`\d`)
)

// Account is the ledger for one customer: per-currency balances, daily
// withdrawal tracking, activation state and a bounded transaction history.
// It is mutated exclusively through its own operations.
type Account struct {
	mu sync.RWMutex

	number         string
	credentialHash []byte
	ownerName      string
	balances       map[currency.Code]decimal.Decimal
	active         bool

	dailyLimit decimal.Decimal
	dailyUsed  decimal.Decimal
	lastReset  time.Time

	createdAt   time.Time
	lastLoginAt time.Time

	history *History
	clock   func() time.Time
}

// Builder constructs Account instances. Build validates every invariant;
// no partially-built account ever escapes.
type Builder struct {
	number     string
	password   string
	ownerName  string
	initial    decimal.Decimal
	dailyLimit decimal.Decimal
	currencies []currency.Code
	clock      func() time.Time
}

// New returns a Builder with the default daily limit, the full supported
// currency set and the wall clock.
func New() *Builder {
	return &Builder{
		initial:    decimal.Zero,
		dailyLimit: DefaultDailyLimit,
		currencies: currency.All(),
		clock:      time.Now,
	}
}

// WithNumber sets the 16-digit account number.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithPassword sets the plain-text password; Build stores only its bcrypt hash.
func (b *Builder) WithPassword(password string) *Builder {
	b.password = password
	return b
}

// WithOwner sets the owner's display name.
func (b *Builder) WithOwner(name string) *Builder {
	b.ownerName = name
	return b
}

// WithInitialBalance sets the opening balance in the base currency.
func (b *Builder) WithInitialBalance(amount decimal.Decimal) *Builder {
	b.initial = amount
	return b
}

// WithDailyLimit overrides the default daily withdrawal limit (in MDL).
func (b *Builder) WithDailyLimit(limit decimal.Decimal) *Builder {
	b.dailyLimit = limit
	return b
}

// WithCurrencies restricts the account to a subset of the supported
// currencies. The base currency is always included.
func (b *Builder) WithCurrencies(codes ...currency.Code) *Builder {
	b.currencies = codes
	return b
}

// WithClock injects a time source; tests use it to cross calendar days
// deterministically.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// Build validates all construction invariants and returns the account,
// already active and carrying its CREATION entry.
func (b *Builder) Build() (*Account, error) {
	if !accountNumberFormat.MatchString(b.number) {
		return nil, ErrInvalidAccountNumber
	}
	if len(b.password) < 6 || !passwordLetter.MatchString(b.password) || !passwordDigit.MatchString(b.password) {
		return nil, ErrWeakPassword
	}
	if len(b.ownerName) < 2 {
		return nil, ErrInvalidOwnerName
	}
	if b.initial.IsNegative() {
		return nil, ErrNegativeInitialBalance
	}
	if b.dailyLimit.LessThan(MinimumDailyLimit) {
		return nil, ErrDailyLimitTooLow
	}
	for _, c := range b.currencies {
		if !currency.IsSupported(c) {
			return nil, ErrUnsupportedCurrency
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := b.clock()
	balances := map[currency.Code]decimal.Decimal{currency.Base: b.initial}
	for _, c := range b.currencies {
		if c != currency.Base {
			balances[c] = decimal.Zero
		}
	}

	a := &Account{
		number:         b.number,
		credentialHash: hash,
		ownerName:      b.ownerName,
		balances:       balances,
		active:         true,
		dailyLimit:     b.dailyLimit,
		dailyUsed:      decimal.Zero,
		lastReset:      now,
		createdAt:      now,
		history:        NewHistory(MaxHistory),
		clock:          b.clock,
	}
	a.append(KindCreation, b.initial, currency.Base, "Account opened with initial balance")
	return a, nil
}

// append records a history entry. Caller holds the write lock (or the
// account is still under construction).
func (a *Account) append(kind Kind, amount decimal.Decimal, code currency.Code, description string) Transaction {
	tx := newTransaction(kind, amount, code, a.clock(), description)
	a.history.Append(tx)
	return tx
}

// resetDailyLimitIfNeeded zeroes the daily usage when the calendar date
// has advanced. Lazy: it runs as a side effect of the limit check, not on
// a schedule. Caller holds the write lock.
func (a *Account) resetDailyLimitIfNeeded() {
	now := a.clock()
	y1, m1, d1 := a.lastReset.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		a.dailyUsed = decimal.Zero
		a.lastReset = now
	}
}

// Deposit credits the account. It fails without mutation when the account
// is inactive, the currency is not held, or the amount is below the
// minimum deposit.
func (a *Account) Deposit(m money.Money) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(m)
}

func (a *Account) deposit(m money.Money) (Transaction, error) {
	if !a.active {
		return Transaction{}, ErrAccountInactive
	}
	balance, ok := a.balances[m.Currency()]
	if !ok {
		return Transaction{}, ErrUnsupportedCurrency
	}
	if m.Amount().LessThan(MinimumDeposit) {
		return Transaction{}, ErrBelowMinimumDeposit
	}

	a.balances[m.Currency()] = balance.Add(m.Amount())
	tx := a.append(KindDeposit, m.Amount(), m.Currency(), "Deposit into account "+a.number)
	return tx, nil
}

// Withdraw debits the account. The rate table converts the amount into
// the base currency for the daily-limit check; the same table the caller
// uses for exchanges and statements, never a second hardcoded one.
func (a *Account) Withdraw(m money.Money, rates exchange.RateTable) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(m, rates)
}

func (a *Account) withdraw(m money.Money, rates exchange.RateTable) (Transaction, error) {
	if !a.active {
		return Transaction{}, ErrAccountInactive
	}
	balance, ok := a.balances[m.Currency()]
	if !ok {
		return Transaction{}, ErrUnsupportedCurrency
	}
	if !m.IsPositive() {
		return Transaction{}, ErrAmountNotPositive
	}

	a.resetDailyLimitIfNeeded()

	inBase, err := rates.ToBase(m.Amount(), m.Currency())
	if err != nil {
		return Transaction{}, err
	}
	if a.dailyUsed.Add(inBase).GreaterThan(a.dailyLimit) {
		return Transaction{}, ErrDailyLimitExceeded
	}
	if balance.LessThan(m.Amount()) {
		return Transaction{}, ErrInsufficientFunds
	}

	a.balances[m.Currency()] = balance.Sub(m.Amount())
	a.dailyUsed = a.dailyUsed.Add(inBase)
	tx := a.append(KindWithdrawal, m.Amount(), m.Currency(), "Withdrawal from account "+a.number)
	return tx, nil
}

// ExchangeCurrency converts part of one balance into another currency,
// bridging through the base currency and deducting the fixed commission
// from the destination amount. Both legs settle atomically under the
// account lock.
func (a *Account) ExchangeCurrency(from, to currency.Code, amount decimal.Decimal, rates exchange.RateTable) (exchange.Quote, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active {
		return exchange.Quote{}, ErrAccountInactive
	}
	fromBalance, ok := a.balances[from]
	if !ok {
		return exchange.Quote{}, ErrUnsupportedCurrency
	}
	toBalance, ok := a.balances[to]
	if !ok {
		return exchange.Quote{}, ErrUnsupportedCurrency
	}
	quote, err := exchange.Convert(amount, from, to, rates)
	if err != nil {
		return exchange.Quote{}, err
	}
	if fromBalance.LessThan(amount) {
		return exchange.Quote{}, ErrInsufficientFunds
	}

	a.balances[from] = fromBalance.Sub(amount)
	a.balances[to] = toBalance.Add(quote.Received)

	tx := newTransaction(KindExchange, amount, from, a.clock(),
		"Exchange "+string(from)+"->"+string(to)+", received "+quote.Received.StringFixed(2)+" "+string(to))
	tx.Commission = quote.Commission
	a.history.Append(tx)
	return quote, nil
}

// CalculateInterest accrues daily interest on every strictly positive
// balance at the given annual percentage rate. The balance mutation always
// happens; an INTEREST entry is logged only when the amount is large
// enough to matter.
func (a *Account) CalculateInterest(annualRatePercent decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active {
		return
	}

	dailyRate := annualRatePercent.Div(decimal.NewFromInt(365)).Div(decimal.NewFromInt(100))
	for _, c := range currency.All() {
		balance, ok := a.balances[c]
		if !ok || !balance.IsPositive() {
			continue
		}
		interest := balance.Mul(dailyRate)
		a.balances[c] = balance.Add(interest)
		if interest.GreaterThan(interestLogThreshold) {
			a.append(KindInterest, interest, c, "Interest at "+annualRatePercent.StringFixed(2)+"% annual")
		}
	}
}

// Deactivate moves the account to the Inactive state. No-op when already
// inactive.
func (a *Account) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.active = false
	a.append(KindActivationChange, decimal.Zero, currency.Base, "Account deactivated")
}

// Reactivate moves the account back to the Active state. No-op when
// already active.
func (a *Account) Reactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active {
		return
	}
	a.active = true
	a.append(KindActivationChange, decimal.Zero, currency.Base, "Account reactivated")
}

// ChangePassword verifies the old password and installs a new hash. The
// new password must meet the same strength rules as at construction.
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if bcrypt.CompareHashAndPassword(a.credentialHash, []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 || !passwordLetter.MatchString(newPassword) || !passwordDigit.MatchString(newPassword) {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.credentialHash = hash
	a.append(KindPasswordChange, decimal.Zero, currency.Base, "Password changed")
	return nil
}

// VerifyPassword checks a login attempt against the stored hash.
func (a *Account) VerifyPassword(password string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return bcrypt.CompareHashAndPassword(a.credentialHash, []byte(password)) == nil
}

// RecordLogin stamps the last successful login time.
func (a *Account) RecordLogin() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastLoginAt = a.clock()
}

// SetOwnerName updates the display name; minimum length 2.
func (a *Account) SetOwnerName(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(name) < 2 {
		return ErrInvalidOwnerName
	}
	a.ownerName = name
	return nil
}

// SetDailyLimit updates the daily withdrawal limit (in MDL); minimum 100.
func (a *Account) SetDailyLimit(limit decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if limit.LessThan(MinimumDailyLimit) {
		return ErrDailyLimitTooLow
	}
	a.dailyLimit = limit
	return nil
}

// Number returns the immutable 16-digit account identifier.
func (a *Account) Number() string {
	return a.number
}

// Owner returns the owner's display name.
func (a *Account) Owner() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ownerName
}

// IsActive reports the activation state.
func (a *Account) IsActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// CreatedAt returns the account creation time.
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// LastLoginAt returns the last recorded login time; zero if never logged in.
func (a *Account) LastLoginAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastLoginAt
}

// AgeInDays returns how many full days the account has existed.
func (a *Account) AgeInDays() int {
	return int(a.clock().Sub(a.createdAt).Hours() / 24)
}

// Supports reports whether the account holds a balance in the currency.
func (a *Account) Supports(code currency.Code) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.balances[code]
	return ok
}

// Balance returns the balance in the given currency, zero if the account
// does not hold it.
func (a *Account) Balance(code currency.Code) decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balances[code]
}

// Balances returns a copy of all balances.
func (a *Account) Balances() map[currency.Code]decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[currency.Code]decimal.Decimal, len(a.balances))
	for c, b := range a.balances {
		out[c] = b
	}
	return out
}

// DailyLimit returns the daily withdrawal limit in the base currency.
func (a *Account) DailyLimit() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dailyLimit
}

// DailyAvailable returns how much of today's limit remains, accounting
// for a pending lazy reset without mutating state.
func (a *Account) DailyAvailable() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	now := a.clock()
	y1, m1, d1 := a.lastReset.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return a.dailyLimit
	}
	return a.dailyLimit.Sub(a.dailyUsed)
}

// TotalInBase values every balance in the base currency using the
// supplied rate table.
func (a *Account) TotalInBase(rates exchange.RateTable) (decimal.Decimal, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	total := decimal.Zero
	for c, balance := range a.balances {
		inBase, err := rates.ToBase(balance, c)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(inBase)
	}
	return total, nil
}

// Recent returns the most recent n history entries in chronological order.
func (a *Account) Recent(n int) []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.history.Recent(n)
}

// HistoryLen returns the number of retained history entries.
func (a *Account) HistoryLen() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.history.Len()
}
