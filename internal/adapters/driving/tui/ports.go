// Package tui provides an interactive terminal user interface for ensaio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// ConfigWatcher reports changes to the settings file.
// A value arrives on the channel after each reload; the channel closes with ctx.
type ConfigWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Contracts is the contract collection.
	Contracts driving.ContractService

	// Settings provides display settings. Optional; defaults are used without it.
	Settings driving.SettingsService

	// Watcher triggers a settings reload. Optional.
	Watcher ConfigWatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Contracts == nil {
		return ErrMissingContractService
	}
	return nil
}
