// Package memory implements the account repository as an in-memory map.
// Persistence across restarts is deliberately out of scope; state lives
// for the process lifetime only.
package memory

import (
	"sort"
	"sync"

	"github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/repository"
)

// Store is a concurrency-safe in-memory account repository.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
}

// New returns an empty store.
func New() *Store {
	return &Store{accounts: make(map[string]*account.Account)}
}

// Create inserts an account; duplicate numbers are rejected.
func (s *Store) Create(a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Number()]; exists {
		return repository.ErrAccountExists
	}
	s.accounts[a.Number()] = a
	return nil
}

// Get returns the account with the given number.
func (s *Store) Get(number string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[number]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return a, nil
}

// Delete removes an account from the registry. The ledger itself has no
// destroy operation; removal here is the only way an account goes away.
func (s *Store) Delete(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[number]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(s.accounts, number)
	return nil
}

// List returns all accounts ordered by account number.
func (s *Store) List() []*account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*account.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}
