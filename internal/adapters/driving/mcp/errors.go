// Package mcp provides an MCP (Model Context Protocol) server adapter for ensaio.
// It lets AI assistants list, search and edit the studio's contracts.
package mcp

import "errors"

// ErrMissingContractService is returned when the contract service is not provided.
var ErrMissingContractService = errors.New("mcp: contract service is required")
