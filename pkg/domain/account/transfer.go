package account

import (
	"log/slog"

	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/bancamd/corebank/pkg/money"
)

// Transfer moves money from src to dst: withdraw on the source, deposit on
// the target, then a TRANSFER_OUT/TRANSFER_IN pair carrying the
// counterpart's number and the caller's description.
//
// The two legs are not atomic. When the deposit leg fails, a compensating
// deposit puts the money back on the source; when that compensation fails
// too, the debit is lost and ErrCompensationFailed is returned and logged
// distinctly.
//
// Both account locks are taken in ascending account-number order so that
// concurrent opposite-direction transfers cannot deadlock.
func Transfer(src, dst *Account, m money.Money, description string, rates exchange.RateTable) error {
	if src == nil || dst == nil {
		return ErrNilAccount
	}
	if src == dst || src.number == dst.number {
		return ErrSameAccountTransfer
	}

	first, second := src, dst
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if !src.active || !dst.active {
		return ErrAccountInactive
	}

	if _, err := src.withdraw(m, rates); err != nil {
		return err
	}

	if _, err := dst.deposit(m); err != nil {
		if _, compErr := src.deposit(m); compErr != nil {
			slog.Error("transfer compensation failed, funds debited but not credited",
				"source", src.number,
				"target", dst.number,
				"amount", m.String(),
				"deposit_error", err,
				"compensation_error", compErr,
			)
			return ErrCompensationFailed
		}
		return err
	}

	src.append(KindTransferOut, m.Amount(), m.Currency(), "Transfer to "+dst.number+": "+description)
	dst.append(KindTransferIn, m.Amount(), m.Currency(), "Transfer from "+src.number+": "+description)
	return nil
}
