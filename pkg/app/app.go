// Package app wires the ledger together: configuration, logging, the
// account registry, the rate provider chain, the event bus, the account
// service and the HTTP shell.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bancamd/corebank/pkg/config"
	domainaccount "github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/eventbus"
	"github.com/bancamd/corebank/pkg/provider"
	"github.com/bancamd/corebank/pkg/repository/memory"
	accountsvc "github.com/bancamd/corebank/pkg/service/account"
	"github.com/bancamd/corebank/webapi"
	"github.com/shopspring/decimal"
)

// Run boots the process and blocks serving HTTP until the listener stops.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.Log)

	repo := memory.New()
	static := provider.NewStatic()
	rates := provider.NewCached(static, cfg.Rates.CacheTTL)

	bus := eventbus.NewSimpleBus()
	bus.Subscribe(domainaccount.EventCompensationFailed, func(_ context.Context, e eventbus.Event) {
		if ev, ok := e.(domainaccount.CompensationFailed); ok {
			logger.Error("unreconciled transfer needs manual intervention",
				"source", ev.SourceNumber, "target", ev.TargetNumber, "amount", ev.Amount)
		}
	})

	svc := accountsvc.NewService(repo, rates, bus, logger)

	if cfg.Bank.SeedAccounts {
		seedAccounts(svc, logger)
	}

	srv := webapi.New(webapi.Deps{
		Accounts: svc,
		Rates:    static,
		Config:   cfg,
		Logger:   logger,
	})

	logger.Info("listening", "addr", cfg.Server.Addr, "env", cfg.Env)
	return srv.Listen(cfg.Server.Addr)
}

// seedAccounts loads a handful of demo accounts so a fresh process has
// something to operate on.
func seedAccounts(svc *accountsvc.Service, logger *slog.Logger) {
	seeds := []accountsvc.OpenAccountSpec{
		{Number: "1234567890123456", Password: "parola123", Owner: "Ion Popescu", InitialBalance: decimal.NewFromInt(15000)},
		{Number: "2345678901234567", Password: "secret456", Owner: "Maria Rusu", InitialBalance: decimal.NewFromInt(8500)},
		{Number: "3456789012345678", Password: "test1234", Owner: "Andrei Ciobanu", InitialBalance: decimal.NewFromInt(25000)},
	}
	for _, spec := range seeds {
		if _, err := svc.Open(context.Background(), spec); err != nil {
			logger.Warn("seed account skipped", "account", spec.Number, "error", err)
		}
	}
}
