package mcp

import (
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Contracts is the contract collection.
	Contracts driving.ContractService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Contracts == nil {
		return ErrMissingContractService
	}
	return nil
}
