// Package provider supplies exchange-rate tables to the ledger. The
// ledger never holds a long-lived reference to rates; callers fetch a
// fresh table per operation.
package provider

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned when updating a rate to zero or negative.
var ErrInvalidRate = errors.New("rate must be positive")

// RateProvider yields the current rate table (currency -> MDL value).
type RateProvider interface {
	Rates(ctx context.Context) (exchange.RateTable, error)
}

// Static serves a fixed rate table that a back-office operator can update
// at runtime. Rates returned are always copies; callers cannot mutate the
// provider's table.
type Static struct {
	mu    sync.RWMutex
	rates exchange.RateTable
}

// NewStatic returns a provider seeded with the National Bank reference
// rates the system starts with.
func NewStatic() *Static {
	return &Static{
		rates: exchange.RateTable{
			currency.EUR: decimal.NewFromFloat(19.45),
			currency.USD: decimal.NewFromFloat(17.80),
			currency.GBP: decimal.NewFromFloat(22.10),
			currency.RON: decimal.NewFromFloat(4.00),
		},
	}
}

// Rates returns a copy of the current table.
func (s *Static) Rates(context.Context) (exchange.RateTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates.Clone(), nil
}

// UpdateRate sets the MDL value of one currency.
func (s *Static) UpdateRate(code currency.Code, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[code] = rate
	return nil
}

// Cached decorates a RateProvider with a TTL cache so hot paths do not
// hit the upstream provider on every operation.
type Cached struct {
	upstream RateProvider
	ttl      time.Duration
	clock    func() time.Time

	mu        sync.Mutex
	cached    exchange.RateTable
	fetchedAt time.Time
}

// NewCached wraps upstream with a cache holding tables for ttl.
func NewCached(upstream RateProvider, ttl time.Duration) *Cached {
	return &Cached{upstream: upstream, ttl: ttl, clock: time.Now}
}

// Rates returns the cached table when fresh, otherwise refetches.
func (c *Cached) Rates(ctx context.Context) (exchange.RateTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.cached != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.cached.Clone(), nil
	}

	rates, err := c.upstream.Rates(ctx)
	if err != nil {
		// Serve a stale table rather than failing when we have one.
		if c.cached != nil {
			return c.cached.Clone(), nil
		}
		return nil, err
	}
	c.cached = rates
	c.fetchedAt = now
	return c.cached.Clone(), nil
}

// Invalidate drops the cached table; the next call refetches.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}
