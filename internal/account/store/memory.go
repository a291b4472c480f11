package store

import (
	"context"
	"sync"

	"crmsync/internal/account/models"
)

// InMemoryAccountStore is an append-only in-memory account ledger.
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts []models.Account
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{}
}

func (s *InMemoryAccountStore) Append(_ context.Context, a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return nil
}

// List returns a copy of all recorded accounts in append order.
func (s *InMemoryAccountStore) List(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}
