package webapi

import (
	"time"

	"github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/exchange"
)

// OpenAccountRequest creates a new account.
type OpenAccountRequest struct {
	Number         string  `json:"number" validate:"required,len=16,numeric"`
	Password       string  `json:"password" validate:"required,min=6"`
	Owner          string  `json:"owner" validate:"required,min=2"`
	InitialBalance float64 `json:"initial_balance" validate:"gte=0"`
}

// AmountRequest carries a deposit or withdrawal.
type AmountRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,uppercase"`
}

// TransferRequest moves money to another account.
type TransferRequest struct {
	To          string  `json:"to" validate:"required,len=16,numeric"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3,uppercase"`
	Description string  `json:"description" validate:"max=120"`
}

// ExchangeRequest converts between two balances of one account.
type ExchangeRequest struct {
	From   string  `json:"from" validate:"required,len=3,uppercase"`
	To     string  `json:"to" validate:"required,len=3,uppercase"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// ChangePasswordRequest rotates an account's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// DailyLimitRequest updates the daily withdrawal limit.
type DailyLimitRequest struct {
	Limit float64 `json:"limit" validate:"required,gt=0"`
}

// InterestRequest applies interest bank-wide. A zero rate falls back to
// the configured default.
type InterestRequest struct {
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"omitempty,gt=0"`
}

// UpdateRateRequest sets one currency's base-currency rate.
type UpdateRateRequest struct {
	Rate float64 `json:"rate" validate:"required,gt=0"`
}

// AccountView is the JSON projection of an account.
type AccountView struct {
	Number         string             `json:"number"`
	Owner          string             `json:"owner"`
	Active         bool               `json:"active"`
	Balances       map[string]float64 `json:"balances"`
	DailyLimit     float64            `json:"daily_limit"`
	DailyAvailable float64            `json:"daily_available"`
	CreatedAt      time.Time          `json:"created_at"`
}

func accountView(a *account.Account) AccountView {
	balances := make(map[string]float64)
	for code, amount := range a.Balances() {
		f, _ := amount.Float64()
		balances[string(code)] = f
	}
	limit, _ := a.DailyLimit().Float64()
	available, _ := a.DailyAvailable().Float64()
	return AccountView{
		Number:         a.Number(),
		Owner:          a.Owner(),
		Active:         a.IsActive(),
		Balances:       balances,
		DailyLimit:     limit,
		DailyAvailable: available,
		CreatedAt:      a.CreatedAt(),
	}
}

// TransactionView is the JSON projection of a history entry.
type TransactionView struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Commission  float64   `json:"commission,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

func transactionView(tx account.Transaction) TransactionView {
	amount, _ := tx.Amount.Float64()
	commission, _ := tx.Commission.Float64()
	return TransactionView{
		ID:          tx.ID.String(),
		Kind:        string(tx.Kind),
		Amount:      amount,
		Currency:    string(tx.Currency),
		Commission:  commission,
		Timestamp:   tx.Timestamp,
		Description: tx.Description,
	}
}

func transactionViews(txs []account.Transaction) []TransactionView {
	out := make([]TransactionView, len(txs))
	for i, tx := range txs {
		out[i] = transactionView(tx)
	}
	return out
}

// QuoteView is the JSON projection of an exchange quote.
type QuoteView struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Amount     float64 `json:"amount"`
	Received   float64 `json:"received"`
	Commission float64 `json:"commission"`
}

func quoteView(q exchange.Quote) QuoteView {
	amount, _ := q.Amount.Float64()
	received, _ := q.Received.Float64()
	commission, _ := q.Commission.Float64()
	return QuoteView{
		From:       string(q.From),
		To:         string(q.To),
		Amount:     amount,
		Received:   received,
		Commission: commission,
	}
}

// StatementView is the JSON projection of an account statement.
type StatementView struct {
	Number   string            `json:"number"`
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	Entries  []TransactionView `json:"entries"`
	TotalIn  float64           `json:"total_in_mdl"`
	TotalOut float64           `json:"total_out_mdl"`
	Net      float64           `json:"net_mdl"`
}

func statementView(st account.Statement) StatementView {
	totalIn, _ := st.TotalIn.Float64()
	totalOut, _ := st.TotalOut.Float64()
	net, _ := st.Net().Float64()
	return StatementView{
		Number:   st.Number,
		From:     st.From,
		To:       st.To,
		Entries:  transactionViews(st.Entries),
		TotalIn:  totalIn,
		TotalOut: totalOut,
		Net:      net,
	}
}
