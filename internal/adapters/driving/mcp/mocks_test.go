package mcp

import (
	"context"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// mockContractService is a mock implementation of driving.ContractService.
type mockContractService struct {
	contracts []domain.Contract
	contract  *domain.Contract
	deleted   bool
	err       error

	// Recorded arguments.
	lastQuery   string
	lastStatus  domain.ContractStatus
	lastPayment domain.PaymentStatus
	lastID      string
	lastInput   domain.ContractInput
	lastPatch   domain.ContractPatch
	calls       []string
}

var _ driving.ContractService = (*mockContractService)(nil)

func (m *mockContractService) List(_ context.Context) ([]domain.Contract, error) {
	m.calls = append(m.calls, "List")
	return m.contracts, m.err
}

func (m *mockContractService) Get(_ context.Context, id string) (*domain.Contract, error) {
	m.calls = append(m.calls, "Get")
	m.lastID = id
	return m.contract, m.err
}

func (m *mockContractService) Create(_ context.Context, in domain.ContractInput) (*domain.Contract, error) {
	m.calls = append(m.calls, "Create")
	m.lastInput = in
	return m.contract, m.err
}

func (m *mockContractService) Update(_ context.Context, id string, patch domain.ContractPatch) (*domain.Contract, error) {
	m.calls = append(m.calls, "Update")
	m.lastID = id
	m.lastPatch = patch
	return m.contract, m.err
}

func (m *mockContractService) Delete(_ context.Context, id string) (bool, error) {
	m.calls = append(m.calls, "Delete")
	m.lastID = id
	return m.deleted, m.err
}

func (m *mockContractService) Search(_ context.Context, query string) ([]domain.Contract, error) {
	m.calls = append(m.calls, "Search")
	m.lastQuery = query
	return m.contracts, m.err
}

func (m *mockContractService) FilterByStatus(_ context.Context, status domain.ContractStatus) ([]domain.Contract, error) {
	m.calls = append(m.calls, "FilterByStatus")
	m.lastStatus = status
	matched := []domain.Contract{}
	for i := range m.contracts {
		if m.contracts[i].Status == status {
			matched = append(matched, m.contracts[i])
		}
	}
	return matched, m.err
}

func (m *mockContractService) FilterByPaymentStatus(_ context.Context, status domain.PaymentStatus) ([]domain.Contract, error) {
	m.calls = append(m.calls, "FilterByPaymentStatus")
	m.lastPayment = status
	matched := []domain.Contract{}
	for i := range m.contracts {
		if m.contracts[i].PaymentStatus == status {
			matched = append(matched, m.contracts[i])
		}
	}
	return matched, m.err
}
