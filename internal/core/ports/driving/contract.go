package driving

import (
	"context"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// ContractService is the contract collection as seen by the UI, CLI, HTTP API and MCP.
type ContractService interface {
	// List returns every contract in insertion order.
	List(ctx context.Context) ([]domain.Contract, error)

	// Get retrieves a contract by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Contract, error)

	// Create stores a new contract with a fresh ID and creation timestamps.
	// The input is not validated here.
	Create(ctx context.Context, input domain.ContractInput) (*domain.Contract, error)

	// Update merges the supplied fields over the stored contract and refreshes updatedAt.
	// Returns domain.ErrNotFound, leaving the collection untouched, if it does not exist.
	Update(ctx context.Context, id string, patch domain.ContractPatch) (*domain.Contract, error)

	// Delete removes a contract. Reports false if nothing had that ID.
	Delete(ctx context.Context, id string) (bool, error)

	// Search returns contracts whose code or client name contains the query,
	// ignoring case. An empty query matches every contract.
	Search(ctx context.Context, query string) ([]domain.Contract, error)

	// FilterByStatus returns contracts whose status equals status exactly.
	FilterByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Contract, error)

	// FilterByPaymentStatus returns contracts whose payment status equals status exactly.
	FilterByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Contract, error)
}
