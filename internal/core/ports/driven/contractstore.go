package driven

import (
	"context"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// ContractStore holds contracts in insertion order.
// Implementations hand out copies; callers never share memory with the store.
type ContractStore interface {
	// Insert appends a contract. Returns domain.ErrAlreadyExists if the ID is taken.
	Insert(ctx context.Context, contract domain.Contract) error

	// Get retrieves a contract by ID.
	// Returns domain.ErrNotFound if no contract has that ID.
	Get(ctx context.Context, id string) (*domain.Contract, error)

	// Replace overwrites the contract with the same ID, keeping its position.
	// Returns domain.ErrNotFound if no contract has that ID.
	Replace(ctx context.Context, contract domain.Contract) error

	// Delete removes a contract and reports whether one was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns all contracts in insertion order.
	List(ctx context.Context) ([]domain.Contract, error)
}
