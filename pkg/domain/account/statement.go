package account

import (
	"time"

	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/shopspring/decimal"
)

// Statement is a date-range view over an account's history with inflows
// and outflows totalled in the base currency. Deposits, incoming
// transfers and interest count inbound; withdrawals, outgoing transfers
// and exchanges count outbound; administrative entries count in neither.
type Statement struct {
	Number   string
	From, To time.Time
	Entries  []Transaction
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
}

// Net returns inflows minus outflows in the base currency.
func (s Statement) Net() decimal.Decimal {
	return s.TotalIn.Sub(s.TotalOut)
}

// Statement builds the statement for [from, to] using the caller-supplied
// rate table to value foreign-currency entries in MDL.
func (a *Account) Statement(from, to time.Time, rates exchange.RateTable) (Statement, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := Statement{
		Number:   a.number,
		From:     from,
		To:       to,
		Entries:  a.history.Between(from, to),
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
	}

	for _, tx := range st.Entries {
		inBase, err := rates.ToBase(tx.Amount, tx.Currency)
		if err != nil {
			return Statement{}, err
		}
		switch {
		case tx.Kind.Inbound():
			st.TotalIn = st.TotalIn.Add(inBase)
		case tx.Kind.Outbound():
			st.TotalOut = st.TotalOut.Add(inBase)
		}
	}
	return st, nil
}
