// Package webapi is the thin HTTP shell over the account service. It owns
// request parsing and rendering only; all ledger semantics live in the
// domain and service layers.
package webapi

import (
	"log/slog"

	"github.com/bancamd/corebank/pkg/config"
	"github.com/bancamd/corebank/pkg/provider"
	accountsvc "github.com/bancamd/corebank/pkg/service/account"
	"github.com/gofiber/fiber/v2"
)

// Deps carries everything the shell needs.
type Deps struct {
	Accounts *accountsvc.Service
	Rates    *provider.Static
	Config   *config.App
	Logger   *slog.Logger
}

// New builds the Fiber app and registers all routes.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "corebank",
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return SuccessJSON(c, fiber.StatusOK, "ok", nil)
	})

	app.Get("/rates", GetRates(deps.Rates))
	app.Put("/rates/:code", UpdateRate(deps.Rates))

	app.Post("/accounts", OpenAccount(deps.Accounts))
	app.Get("/accounts", ListAccounts(deps.Accounts))
	app.Get("/accounts/:number", GetAccount(deps.Accounts))
	app.Delete("/accounts/:number", CloseAccount(deps.Accounts))

	app.Post("/accounts/:number/deposit", Deposit(deps.Accounts))
	app.Post("/accounts/:number/withdraw", Withdraw(deps.Accounts))
	app.Post("/accounts/:number/transfer", Transfer(deps.Accounts))
	app.Post("/accounts/:number/exchange", Exchange(deps.Accounts))

	app.Get("/accounts/:number/transactions", Transactions(deps.Accounts))
	app.Get("/accounts/:number/statement", GetStatement(deps.Accounts))
	app.Get("/accounts/:number/total", TotalInBase(deps.Accounts))

	app.Post("/accounts/:number/deactivate", Deactivate(deps.Accounts))
	app.Post("/accounts/:number/reactivate", Reactivate(deps.Accounts))
	app.Post("/accounts/:number/password", ChangePassword(deps.Accounts))
	app.Put("/accounts/:number/limit", SetDailyLimit(deps.Accounts))

	app.Post("/interest", ApplyInterest(deps.Accounts, deps.Config.Bank.AnnualInterestRate))

	return app
}
