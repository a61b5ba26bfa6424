package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ensaio resources.
	uriScheme = "ensaio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contracts",
		Name:        "contracts",
		Description: "All studio contracts in creation order",
		MIMEType:    "application/json",
	}, s.handleContractsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contracts/{contractId}",
		Name:        "contract",
		Description: "A single contract",
		MIMEType:    "application/json",
	}, s.handleContractResource)
}

// handleContractsResource returns the full contract collection.
func (s *Server) handleContractsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contracts, err := s.ports.Contracts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	return jsonResource(req.Params.URI, toContractsOutput(contracts).Contracts)
}

// handleContractResource returns one contract.
func (s *Server) handleContractResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// ensaio://contracts/{contractId}
	id := extractContractID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	contract, err := s.ports.Contracts.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return jsonResource(req.Params.URI, toContractOutput(contract))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractContractID extracts the contract ID from a URI like ensaio://contracts/{contractId}.
func extractContractID(uri string) string {
	const prefix = uriScheme + "contracts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
