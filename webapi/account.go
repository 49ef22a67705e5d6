package webapi

import (
	"strconv"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	accountsvc "github.com/bancamd/corebank/pkg/service/account"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OpenAccount creates a new account.
func OpenAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Open(c.Context(), accountsvc.OpenAccountSpec{
			Number:         input.Number,
			Password:       input.Password,
			Owner:          input.Owner,
			InitialBalance: decimal.NewFromFloat(input.InitialBalance),
		})
		if err != nil {
			return DomainErrorJSON(c, "Failed to open account", err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Account opened", accountView(a))
	}
}

// ListAccounts returns all registered accounts.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts := svc.List(c.Context())
		views := make([]AccountView, len(accounts))
		for i, a := range accounts {
			views[i] = accountView(a)
		}
		return SuccessJSON(c, fiber.StatusOK, "Accounts", views)
	}
}

// GetAccount returns one account by number.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Context(), c.Params("number"))
		if err != nil {
			return DomainErrorJSON(c, "Account lookup failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account", accountView(a))
	}
}

// CloseAccount removes an account from the registry.
func CloseAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Close(c.Context(), c.Params("number")); err != nil {
			return DomainErrorJSON(c, "Failed to close account", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}

// Deposit credits an account.
func Deposit(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Deposit(c.Context(), c.Params("number"), input.Amount, currency.Code(input.Currency))
		if err != nil {
			return DomainErrorJSON(c, "Deposit failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Deposit successful", transactionView(tx))
	}
}

// Withdraw debits an account.
func Withdraw(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Withdraw(c.Context(), c.Params("number"), input.Amount, currency.Code(input.Currency))
		if err != nil {
			return DomainErrorJSON(c, "Withdrawal failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Withdrawal successful", transactionView(tx))
	}
}

// Transfer moves money to another account.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		err = svc.Transfer(c.Context(), c.Params("number"), input.To,
			input.Amount, currency.Code(input.Currency), input.Description)
		if err != nil {
			return DomainErrorJSON(c, "Transfer failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

// Exchange converts between two balances of the account.
func Exchange(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ExchangeRequest](c)
		if input == nil {
			return err
		}
		quote, err := svc.Exchange(c.Context(), c.Params("number"),
			currency.Code(input.From), currency.Code(input.To), input.Amount)
		if err != nil {
			return DomainErrorJSON(c, "Exchange failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Exchange successful", quoteView(quote))
	}
}

// Transactions returns the most recent history entries.
func Transactions(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit <= 0 {
			return ProblemJSON(c, fiber.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
		}
		txs, err := svc.Transactions(c.Context(), c.Params("number"), limit)
		if err != nil {
			return DomainErrorJSON(c, "Transaction lookup failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Transactions", transactionViews(txs))
	}
}

// GetStatement builds a date-range statement. Dates are YYYY-MM-DD; the
// range is inclusive.
func GetStatement(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			return ProblemJSON(c, fiber.StatusBadRequest, "Invalid from date", err)
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			return ProblemJSON(c, fiber.StatusBadRequest, "Invalid to date", err)
		}
		st, err := svc.Statement(c.Context(), c.Params("number"), from, to.Add(24*time.Hour-time.Nanosecond))
		if err != nil {
			return DomainErrorJSON(c, "Statement failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Statement", statementView(st))
	}
}

// TotalInBase values an account's balances in MDL.
func TotalInBase(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := svc.TotalInBase(c.Context(), c.Params("number"))
		if err != nil {
			return DomainErrorJSON(c, "Valuation failed", err)
		}
		f, _ := total.Float64()
		return SuccessJSON(c, fiber.StatusOK, "Total in MDL", fiber.Map{"total_mdl": f})
	}
}

// Deactivate gates all money-moving operations.
func Deactivate(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Deactivate(c.Context(), c.Params("number")); err != nil {
			return DomainErrorJSON(c, "Deactivation failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account deactivated", nil)
	}
}

// Reactivate re-enables money-moving operations.
func Reactivate(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Reactivate(c.Context(), c.Params("number")); err != nil {
			return DomainErrorJSON(c, "Reactivation failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account reactivated", nil)
	}
}

// ChangePassword rotates an account's password.
func ChangePassword(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ChangePasswordRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Get(c.Context(), c.Params("number"))
		if err != nil {
			return DomainErrorJSON(c, "Account lookup failed", err)
		}
		if err := a.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
			return DomainErrorJSON(c, "Password change failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Password changed", nil)
	}
}

// SetDailyLimit updates the daily withdrawal limit.
func SetDailyLimit(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[DailyLimitRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Get(c.Context(), c.Params("number"))
		if err != nil {
			return DomainErrorJSON(c, "Account lookup failed", err)
		}
		if err := a.SetDailyLimit(decimal.NewFromFloat(input.Limit)); err != nil {
			return DomainErrorJSON(c, "Limit update failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Daily limit updated", nil)
	}
}

// ApplyInterest accrues interest on every active account, at the request
// rate or the configured default.
func ApplyInterest(svc *accountsvc.Service, defaultRate float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[InterestRequest](c)
		if input == nil {
			return err
		}
		rate := input.AnnualRatePercent
		if rate == 0 {
			rate = defaultRate
		}
		touched := svc.ApplyInterest(c.Context(), rate)
		return SuccessJSON(c, fiber.StatusOK, "Interest applied", fiber.Map{"accounts": touched, "annual_rate_percent": rate})
	}
}
