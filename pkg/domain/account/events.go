package account

// Event type names published on the bus.
const (
	EventTransactionCommitted = "account.transaction.committed"
	EventCompensationFailed   = "account.transfer.compensation_failed"
)

// TransactionCommitted is published after a money-moving operation lands
// in an account's history.
type TransactionCommitted struct {
	AccountNumber string
	Transaction   Transaction
}

// Type implements eventbus.Event.
func (TransactionCommitted) Type() string { return EventTransactionCommitted }

// CompensationFailed is published when a transfer debited the source and
// neither the target deposit nor the compensating re-deposit succeeded.
type CompensationFailed struct {
	SourceNumber string
	TargetNumber string
	Amount       string
}

// Type implements eventbus.Event.
func (CompensationFailed) Type() string { return EventCompensationFailed }
