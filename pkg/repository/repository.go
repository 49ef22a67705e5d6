// Package repository defines the storage abstraction for accounts. Keeping
// storage behind an interface avoids hidden process-wide maps and lets
// tests inject deterministic stores.
package repository

import (
	"errors"

	"github.com/bancamd/corebank/pkg/domain/account"
)

var (
	// ErrAccountNotFound is returned when no account exists for a number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists is returned when creating a duplicate account number.
	ErrAccountExists = errors.New("account already exists")
)

// AccountRepository stores accounts keyed by their 16-digit number.
type AccountRepository interface {
	Create(a *account.Account) error
	Get(number string) (*account.Account, error)
	Delete(number string) error
	List() []*account.Account
}
