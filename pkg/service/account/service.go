// Package account provides the application service around the account
// ledger: it resolves accounts through the injected repository, fetches
// rate tables from the rate provider per call, invokes the domain
// operations and publishes committed transactions on the event bus.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/eventbus"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/bancamd/corebank/pkg/money"
	"github.com/bancamd/corebank/pkg/provider"
	"github.com/bancamd/corebank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service orchestrates ledger operations for the shell layer.
type Service struct {
	repo   repository.AccountRepository
	rates  provider.RateProvider
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewService wires the service. A nil logger falls back to slog.Default;
// a nil bus disables event publication.
func NewService(repo repository.AccountRepository, rates provider.RateProvider, bus eventbus.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, rates: rates, bus: bus, logger: logger}
}

// OpenAccountSpec carries the validated inputs for opening an account.
type OpenAccountSpec struct {
	Number         string
	Password       string
	Owner          string
	InitialBalance decimal.Decimal
}

// Open creates an account and registers it. Construction-time validation
// failures abort entirely; no partially-built account is stored.
func (s *Service) Open(ctx context.Context, spec OpenAccountSpec) (*account.Account, error) {
	logger := s.logger.With("account", spec.Number, "owner", spec.Owner)

	a, err := account.New().
		WithNumber(spec.Number).
		WithPassword(spec.Password).
		WithOwner(spec.Owner).
		WithInitialBalance(spec.InitialBalance).
		Build()
	if err != nil {
		logger.Warn("account rejected at construction", "error", err)
		return nil, err
	}
	if err := s.repo.Create(a); err != nil {
		logger.Warn("account registration failed", "error", err)
		return nil, err
	}
	logger.Info("account opened", "initial_balance", spec.InitialBalance)
	return a, nil
}

// Close removes an account from the registry.
func (s *Service) Close(ctx context.Context, number string) error {
	if err := s.repo.Delete(number); err != nil {
		return err
	}
	s.logger.Info("account closed", "account", number)
	return nil
}

// Get returns an account by number.
func (s *Service) Get(ctx context.Context, number string) (*account.Account, error) {
	return s.repo.Get(number)
}

// List returns all registered accounts.
func (s *Service) List(ctx context.Context) []*account.Account {
	return s.repo.List()
}

// Authenticate verifies a password and stamps the login time.
func (s *Service) Authenticate(ctx context.Context, number, password string) (*account.Account, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return nil, err
	}
	if !a.VerifyPassword(password) {
		s.logger.Warn("failed login attempt", "account", number)
		return nil, account.ErrWrongPassword
	}
	a.RecordLogin()
	return a, nil
}

// Deposit credits an account.
func (s *Service) Deposit(ctx context.Context, number string, amount float64, code currency.Code) (account.Transaction, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return account.Transaction{}, err
	}
	m, err := money.NewFromFloat(amount, code)
	if err != nil {
		return account.Transaction{}, err
	}
	tx, err := a.Deposit(m)
	if err != nil {
		s.logger.Warn("deposit rejected", "account", number, "amount", m.String(), "error", err)
		return account.Transaction{}, err
	}
	s.logger.Info("deposit", "account", number, "amount", m.String())
	s.publish(ctx, account.TransactionCommitted{AccountNumber: number, Transaction: tx})
	return tx, nil
}

// Withdraw debits an account, enforcing the daily limit with the
// provider's current rate table.
func (s *Service) Withdraw(ctx context.Context, number string, amount float64, code currency.Code) (account.Transaction, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return account.Transaction{}, err
	}
	m, err := money.NewFromFloat(amount, code)
	if err != nil {
		return account.Transaction{}, err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return account.Transaction{}, err
	}
	tx, err := a.Withdraw(m, rates)
	if err != nil {
		s.logger.Warn("withdrawal rejected", "account", number, "amount", m.String(), "error", err)
		return account.Transaction{}, err
	}
	s.logger.Info("withdrawal", "account", number, "amount", m.String())
	s.publish(ctx, account.TransactionCommitted{AccountNumber: number, Transaction: tx})
	return tx, nil
}

// Transfer moves money between two registered accounts.
func (s *Service) Transfer(ctx context.Context, fromNumber, toNumber string, amount float64, code currency.Code, description string) error {
	src, err := s.repo.Get(fromNumber)
	if err != nil {
		return err
	}
	dst, err := s.repo.Get(toNumber)
	if err != nil {
		return err
	}
	m, err := money.NewFromFloat(amount, code)
	if err != nil {
		return err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return err
	}

	if err := account.Transfer(src, dst, m, description, rates); err != nil {
		if errors.Is(err, account.ErrCompensationFailed) {
			s.publish(ctx, account.CompensationFailed{
				SourceNumber: fromNumber,
				TargetNumber: toNumber,
				Amount:       m.String(),
			})
		}
		s.logger.Warn("transfer failed", "from", fromNumber, "to", toNumber, "amount", m.String(), "error", err)
		return err
	}
	s.logger.Info("transfer", "from", fromNumber, "to", toNumber, "amount", m.String())
	return nil
}

// Exchange converts between two of an account's currency balances.
func (s *Service) Exchange(ctx context.Context, number string, from, to currency.Code, amount float64) (exchange.Quote, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return exchange.Quote{}, err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return exchange.Quote{}, err
	}
	quote, err := a.ExchangeCurrency(from, to, decimal.NewFromFloat(amount), rates)
	if err != nil {
		s.logger.Warn("exchange rejected", "account", number, "from", from, "to", to, "error", err)
		return exchange.Quote{}, err
	}
	s.logger.Info("exchange",
		"account", number,
		"from", from,
		"to", to,
		"received", quote.Received.StringFixed(2),
		"commission", quote.Commission.StringFixed(4),
	)
	return quote, nil
}

// ApplyInterest accrues daily interest on every registered account at the
// given annual rate. Back-office operation. Returns the number of
// accounts touched.
func (s *Service) ApplyInterest(ctx context.Context, annualRatePercent float64) int {
	rate := decimal.NewFromFloat(annualRatePercent)
	accounts := s.repo.List()
	touched := 0
	for _, a := range accounts {
		if !a.IsActive() {
			continue
		}
		a.CalculateInterest(rate)
		touched++
	}
	s.logger.Info("interest applied", "annual_rate", annualRatePercent, "accounts", touched)
	return touched
}

// Statement builds a date-range statement with totals in the base currency.
func (s *Service) Statement(ctx context.Context, number string, from, to time.Time) (account.Statement, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return account.Statement{}, err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return account.Statement{}, err
	}
	return a.Statement(from, to, rates)
}

// Transactions returns the most recent n history entries.
func (s *Service) Transactions(ctx context.Context, number string, n int) ([]account.Transaction, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return nil, err
	}
	return a.Recent(n), nil
}

// TotalInBase values all of an account's balances in MDL.
func (s *Service) TotalInBase(ctx context.Context, number string) (decimal.Decimal, error) {
	a, err := s.repo.Get(number)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return a.TotalInBase(rates)
}

// Deactivate gates all money-moving operations on the account.
func (s *Service) Deactivate(ctx context.Context, number string) error {
	a, err := s.repo.Get(number)
	if err != nil {
		return err
	}
	a.Deactivate()
	s.logger.Info("account deactivated", "account", number)
	return nil
}

// Reactivate re-enables money-moving operations on the account.
func (s *Service) Reactivate(ctx context.Context, number string) error {
	a, err := s.repo.Get(number)
	if err != nil {
		return err
	}
	a.Reactivate()
	s.logger.Info("account reactivated", "account", number)
	return nil
}

func (s *Service) publish(ctx context.Context, event eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}
