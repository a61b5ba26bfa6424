package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
	"github.com/custodia-labs/ensaio/internal/logger"
)

// Ensure ContractService implements the interface.
var _ driving.ContractService = (*ContractService)(nil)

// ContractService owns the contract collection.
// It assigns identifiers and timestamps; it does not validate input.
type ContractService struct {
	store driven.ContractStore
	ids   driven.IDGenerator
	clock driven.Clock

	// mu serialises read-merge-replace in Update.
	mu sync.Mutex
}

// NewContractService creates a new contract service.
func NewContractService(
	store driven.ContractStore,
	ids driven.IDGenerator,
	clock driven.Clock,
) *ContractService {
	return &ContractService{
		store: store,
		ids:   ids,
		clock: clock,
	}
}

// List returns every contract in insertion order.
func (s *ContractService) List(ctx context.Context) ([]domain.Contract, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get retrieves a contract by ID.
func (s *ContractService) Get(ctx context.Context, id string) (*domain.Contract, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// Create stores a new contract.
func (s *ContractService) Create(ctx context.Context, input domain.ContractInput) (*domain.Contract, error) {
	if s.store == nil || s.ids == nil || s.clock == nil {
		return nil, domain.ErrNotImplemented
	}

	contract := input.NewContract(s.ids.NewID(), s.clock.Now())
	if err := s.store.Insert(ctx, contract); err != nil {
		return nil, fmt.Errorf("insert contract %s: %w", contract.ID, err)
	}

	logger.Debug("contract created: id=%s code=%q", contract.ID, contract.ContractCode)
	return &contract, nil
}

// Update merges patch over the stored contract.
func (s *ContractService) Update(
	ctx context.Context,
	id string,
	patch domain.ContractPatch,
) (*domain.Contract, error) {
	if s.store == nil || s.clock == nil {
		return nil, domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := existing.Clone()
	patch.ApplyTo(&updated)

	now := s.clock.Now()
	if now.Before(existing.UpdatedAt) {
		// Clock went backwards; updatedAt never does.
		now = existing.UpdatedAt
	}
	updated.UpdatedAt = now

	if err := s.store.Replace(ctx, updated); err != nil {
		return nil, fmt.Errorf("replace contract %s: %w", id, err)
	}

	logger.Debug("contract updated: id=%s", id)
	return &updated, nil
}

// Delete removes a contract. Deleting a missing ID is not an error.
func (s *ContractService) Delete(ctx context.Context, id string) (bool, error) {
	if s.store == nil {
		return false, domain.ErrNotImplemented
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Debug("contract deleted: id=%s", id)
	}
	return removed, nil
}

// Search matches query against contract code and client name using Unicode
// case folding.
func (s *ContractService) Search(ctx context.Context, query string) ([]domain.Contract, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	// Casers hold state and are not shared between calls.
	fold := cases.Fold()
	needle := fold.String(query)

	return filter(all, func(c *domain.Contract) bool {
		return strings.Contains(fold.String(c.ContractCode), needle) ||
			strings.Contains(fold.String(c.ClientName), needle)
	}), nil
}

// FilterByStatus returns contracts with exactly the given status.
func (s *ContractService) FilterByStatus(
	ctx context.Context,
	status domain.ContractStatus,
) ([]domain.Contract, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Contract) bool { return c.Status == status }), nil
}

// FilterByPaymentStatus returns contracts with exactly the given payment status.
func (s *ContractService) FilterByPaymentStatus(
	ctx context.Context,
	status domain.PaymentStatus,
) ([]domain.Contract, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Contract) bool { return c.PaymentStatus == status }), nil
}

func filter(contracts []domain.Contract, keep func(*domain.Contract) bool) []domain.Contract {
	result := make([]domain.Contract, 0, len(contracts))
	for i := range contracts {
		if keep(&contracts[i]) {
			result = append(result, contracts[i])
		}
	}
	return result
}
