package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// ContractOutput is a contract as returned by the tools, with display labels.
type ContractOutput struct {
	ID               string  `json:"id"`
	ContractCode     string  `json:"contract_code"`
	ClientName       string  `json:"client_name"`
	SessionDate      string  `json:"session_date"`
	ContractedPhotos int     `json:"contracted_photos"`
	AdditionalPhotos int     `json:"additional_photos"`
	TotalPhotos      int     `json:"total_photos"`
	Status           string  `json:"status"`
	StatusLabel      string  `json:"status_label"`
	Location         string  `json:"location"`
	LocationLabel    string  `json:"location_label"`
	HasAlbum         bool    `json:"has_album"`
	HasSignatureBook bool    `json:"has_signature_book"`
	HasRetrospective bool    `json:"has_retrospective"`
	ContractValue    float64 `json:"contract_value"`
	FormattedValue   string  `json:"formatted_value"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentLabel     string  `json:"payment_label"`
	FinishedAt       string  `json:"finished_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// ContractsOutput is the output of the listing tools.
type ContractsOutput struct {
	Contracts []ContractOutput `json:"contracts"`
	Count     int              `json:"count"`
}

// ListContractsInput is the input schema for list_contracts.
type ListContractsInput struct {
	Status        string `json:"status,omitempty" jsonschema:"only contracts with this status: agendado, realizado, tratamento, aprovacao, aprovado or finalizado"`
	PaymentStatus string `json:"payment_status,omitempty" jsonschema:"only contracts with this payment status: pendente, parcial or pago"`
}

// SearchContractsInput is the input schema for search_contracts.
type SearchContractsInput struct {
	Query string `json:"query" jsonschema:"case-insensitive text to find in contract code or client name"`
}

// ContractIDInput identifies a single contract.
type ContractIDInput struct {
	ID string `json:"id" jsonschema:"the contract id"`
}

// CreateContractInput is the input schema for create_contract.
type CreateContractInput struct {
	ContractCode     string  `json:"contract_code" jsonschema:"studio contract code, not necessarily unique"`
	ClientName       string  `json:"client_name" jsonschema:"client name"`
	SessionDate      string  `json:"session_date" jsonschema:"session date, YYYY-MM-DD"`
	ContractedPhotos int     `json:"contracted_photos" jsonschema:"number of contracted photos, at least 1"`
	AdditionalPhotos int     `json:"additional_photos,omitempty" jsonschema:"number of additional photos"`
	Status           string  `json:"status" jsonschema:"agendado, realizado, tratamento, aprovacao, aprovado or finalizado"`
	Location         string  `json:"location" jsonschema:"estudio or externo"`
	HasAlbum         bool    `json:"has_album,omitempty" jsonschema:"album add-on"`
	HasSignatureBook bool    `json:"has_signature_book,omitempty" jsonschema:"signature book add-on"`
	HasRetrospective bool    `json:"has_retrospective,omitempty" jsonschema:"retrospective add-on"`
	ContractValue    float64 `json:"contract_value" jsonschema:"contract value, not negative"`
	PaymentStatus    string  `json:"payment_status" jsonschema:"pendente, parcial or pago"`
}

// UpdateContractInput is the input schema for update_contract.
// Omitted fields are left unchanged.
type UpdateContractInput struct {
	ID               string   `json:"id" jsonschema:"the contract id"`
	ContractCode     *string  `json:"contract_code,omitempty" jsonschema:"new contract code"`
	ClientName       *string  `json:"client_name,omitempty" jsonschema:"new client name"`
	SessionDate      *string  `json:"session_date,omitempty" jsonschema:"new session date, YYYY-MM-DD"`
	ContractedPhotos *int     `json:"contracted_photos,omitempty" jsonschema:"new number of contracted photos"`
	AdditionalPhotos *int     `json:"additional_photos,omitempty" jsonschema:"new number of additional photos"`
	Status           *string  `json:"status,omitempty" jsonschema:"new status"`
	Location         *string  `json:"location,omitempty" jsonschema:"new location"`
	HasAlbum         *bool    `json:"has_album,omitempty" jsonschema:"album add-on"`
	HasSignatureBook *bool    `json:"has_signature_book,omitempty" jsonschema:"signature book add-on"`
	HasRetrospective *bool    `json:"has_retrospective,omitempty" jsonschema:"retrospective add-on"`
	ContractValue    *float64 `json:"contract_value,omitempty" jsonschema:"new contract value"`
	PaymentStatus    *string  `json:"payment_status,omitempty" jsonschema:"new payment status"`
	FinishedAt       *string  `json:"finished_at,omitempty" jsonschema:"completion time, RFC 3339 or YYYY-MM-DD; not set automatically"`
}

// DeleteContractOutput is the output of delete_contract.
type DeleteContractOutput struct {
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_contracts",
		Description: "List studio contracts in creation order, optionally filtered by status or payment status",
	}, s.handleListContracts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_contracts",
		Description: "Find contracts whose code or client name contains the query, ignoring case",
	}, s.handleSearchContracts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_contract",
		Description: "Get a single contract by id",
	}, s.handleGetContract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_contract",
		Description: "Register a new photography contract",
	}, s.handleCreateContract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_contract",
		Description: "Change some fields of a contract; omitted fields keep their value",
	}, s.handleUpdateContract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_contract",
		Description: "Delete a contract by id",
	}, s.handleDeleteContract)
}

func (s *Server) handleListContracts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListContractsInput,
) (*mcp.CallToolResult, ContractsOutput, error) {
	var sets [][]domain.Contract
	if input.Status != "" {
		matched, err := s.ports.Contracts.FilterByStatus(ctx, domain.ContractStatus(input.Status))
		if err != nil {
			return nil, ContractsOutput{}, err
		}
		sets = append(sets, matched)
	}
	if input.PaymentStatus != "" {
		matched, err := s.ports.Contracts.FilterByPaymentStatus(ctx, domain.PaymentStatus(input.PaymentStatus))
		if err != nil {
			return nil, ContractsOutput{}, err
		}
		sets = append(sets, matched)
	}
	if len(sets) == 0 {
		all, err := s.ports.Contracts.List(ctx)
		if err != nil {
			return nil, ContractsOutput{}, err
		}
		sets = append(sets, all)
	}
	contracts := domain.Intersect(sets...)

	return nil, toContractsOutput(contracts), nil
}

func (s *Server) handleSearchContracts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchContractsInput,
) (*mcp.CallToolResult, ContractsOutput, error) {
	contracts, err := s.ports.Contracts.Search(ctx, input.Query)
	if err != nil {
		return nil, ContractsOutput{}, err
	}
	return nil, toContractsOutput(contracts), nil
}

func (s *Server) handleGetContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContractIDInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	contract, err := s.ports.Contracts.Get(ctx, input.ID)
	if err != nil {
		return nil, ContractOutput{}, fmt.Errorf("contract %q: %w", input.ID, err)
	}
	return nil, toContractOutput(contract), nil
}

func (s *Server) handleCreateContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateContractInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	in := domain.ContractInput{
		ContractCode:     input.ContractCode,
		ClientName:       input.ClientName,
		SessionDate:      input.SessionDate,
		ContractedPhotos: input.ContractedPhotos,
		AdditionalPhotos: input.AdditionalPhotos,
		Status:           domain.ContractStatus(input.Status),
		Location:         domain.Location(input.Location),
		HasAlbum:         input.HasAlbum,
		HasSignatureBook: input.HasSignatureBook,
		HasRetrospective: input.HasRetrospective,
		ContractValue:    input.ContractValue,
		PaymentStatus:    domain.PaymentStatus(input.PaymentStatus),
	}
	if err := in.Validate(); err != nil {
		return nil, ContractOutput{}, err
	}

	contract, err := s.ports.Contracts.Create(ctx, in)
	if err != nil {
		return nil, ContractOutput{}, err
	}
	return nil, toContractOutput(contract), nil
}

func (s *Server) handleUpdateContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateContractInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	patch := domain.ContractPatch{
		ContractCode:     input.ContractCode,
		ClientName:       input.ClientName,
		SessionDate:      input.SessionDate,
		ContractedPhotos: input.ContractedPhotos,
		AdditionalPhotos: input.AdditionalPhotos,
		HasAlbum:         input.HasAlbum,
		HasSignatureBook: input.HasSignatureBook,
		HasRetrospective: input.HasRetrospective,
		ContractValue:    input.ContractValue,
	}
	if input.Status != nil {
		status := domain.ContractStatus(*input.Status)
		patch.Status = &status
	}
	if input.Location != nil {
		location := domain.Location(*input.Location)
		patch.Location = &location
	}
	if input.PaymentStatus != nil {
		payment := domain.PaymentStatus(*input.PaymentStatus)
		patch.PaymentStatus = &payment
	}
	if input.FinishedAt != nil {
		finished, err := format.ParseTimestamp(*input.FinishedAt)
		if err != nil {
			return nil, ContractOutput{}, fmt.Errorf("finished_at: %w", err)
		}
		patch.FinishedAt = &finished
	}

	contract, err := s.ports.Contracts.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, ContractOutput{}, fmt.Errorf("contract %q: %w", input.ID, err)
	}
	return nil, toContractOutput(contract), nil
}

func (s *Server) handleDeleteContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContractIDInput,
) (*mcp.CallToolResult, DeleteContractOutput, error) {
	removed, err := s.ports.Contracts.Delete(ctx, input.ID)
	if err != nil {
		return nil, DeleteContractOutput{}, err
	}
	return nil, DeleteContractOutput{Deleted: removed}, nil
}

func toContractsOutput(contracts []domain.Contract) ContractsOutput {
	out := ContractsOutput{
		Contracts: make([]ContractOutput, len(contracts)),
		Count:     len(contracts),
	}
	for i := range contracts {
		out.Contracts[i] = toContractOutput(&contracts[i])
	}
	return out
}

func toContractOutput(c *domain.Contract) ContractOutput {
	out := ContractOutput{
		ID:               c.ID,
		ContractCode:     c.ContractCode,
		ClientName:       c.ClientName,
		SessionDate:      c.SessionDate,
		ContractedPhotos: c.ContractedPhotos,
		AdditionalPhotos: c.AdditionalPhotos,
		TotalPhotos:      c.TotalPhotos(),
		Status:           string(c.Status),
		StatusLabel:      format.StatusLabel(c.Status),
		Location:         string(c.Location),
		LocationLabel:    format.LocationLabel(c.Location),
		HasAlbum:         c.HasAlbum,
		HasSignatureBook: c.HasSignatureBook,
		HasRetrospective: c.HasRetrospective,
		ContractValue:    c.ContractValue,
		FormattedValue:   format.Default().Currency(c.ContractValue),
		PaymentStatus:    string(c.PaymentStatus),
		PaymentLabel:     format.PaymentLabel(c.PaymentStatus),
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.Format(time.RFC3339),
	}
	if c.FinishedAt != nil {
		out.FinishedAt = c.FinishedAt.Format(time.RFC3339)
	}
	return out
}
