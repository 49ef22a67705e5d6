package account

import (
	"fmt"
	"time"

	"github.com/bancamd/corebank/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a ledger entry.
type Kind string

// Transaction kinds.
const (
	KindCreation         Kind = "CREATION"
	KindDeposit          Kind = "DEPOSIT"
	KindWithdrawal       Kind = "WITHDRAWAL"
	KindTransferOut      Kind = "TRANSFER_OUT"
	KindTransferIn       Kind = "TRANSFER_IN"
	KindExchange         Kind = "EXCHANGE"
	KindInterest         Kind = "INTEREST"
	KindPasswordChange   Kind = "PASSWORD_CHANGE"
	KindActivationChange Kind = "ACTIVATION_CHANGE"
)

// Inbound reports whether the kind counts toward statement inflows.
func (k Kind) Inbound() bool {
	switch k {
	case KindDeposit, KindTransferIn, KindInterest:
		return true
	}
	return false
}

// Outbound reports whether the kind counts toward statement outflows.
func (k Kind) Outbound() bool {
	switch k {
	case KindWithdrawal, KindTransferOut, KindExchange:
		return true
	}
	return false
}

// Transaction is one immutable entry in an account's history. Entries are
// created only by the owning account and never mutated afterwards.
type Transaction struct {
	ID          uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Currency    currency.Code
	Commission  decimal.Decimal // set on EXCHANGE entries only
	Timestamp   time.Time
	Description string
}

func newTransaction(kind Kind, amount decimal.Decimal, code currency.Code, at time.Time, description string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Kind:        kind,
		Amount:      amount,
		Currency:    code,
		Timestamp:   at,
		Description: description,
	}
}

// String renders the entry in statement row format.
func (t Transaction) String() string {
	return fmt.Sprintf("%s | %-17s | %12s %-3s | %s",
		t.Timestamp.Format("2006-01-02 15:04:05"), t.Kind, t.Amount.StringFixed(2), t.Currency, t.Description)
}
