package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
)

// Ensure ContractStore implements the interface.
var _ driven.ContractStore = (*ContractStore)(nil)

// ContractStore is an in-memory implementation of driven.ContractStore.
// Contracts are kept in insertion order; index maps ID to slice position.
type ContractStore struct {
	mu        sync.RWMutex
	contracts []domain.Contract
	index     map[string]int
}

// NewContractStore creates an empty in-memory contract store.
func NewContractStore() *ContractStore {
	return &ContractStore{
		index: make(map[string]int),
	}
}

// Insert appends a contract.
func (s *ContractStore) Insert(_ context.Context, contract domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[contract.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.index[contract.ID] = len(s.contracts)
	s.contracts = append(s.contracts, contract.Clone())
	return nil
}

// Get retrieves a contract by ID.
func (s *ContractStore) Get(_ context.Context, id string) (*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := s.contracts[i].Clone()
	return &c, nil
}

// Replace overwrites a contract in place.
func (s *ContractStore) Replace(_ context.Context, contract domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[contract.ID]
	if !ok {
		return domain.ErrNotFound
	}
	s.contracts[i] = contract.Clone()
	return nil
}

// Delete removes a contract, preserving the order of the rest.
func (s *ContractStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false, nil
	}

	s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.contracts); j++ {
		s.index[s.contracts[j].ID] = j
	}
	return true, nil
}

// List returns all contracts in insertion order.
func (s *ContractStore) List(_ context.Context) ([]domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Contract, len(s.contracts))
	for i := range s.contracts {
		result[i] = s.contracts[i].Clone()
	}
	return result, nil
}

// Len returns the number of stored contracts.
func (s *ContractStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}
