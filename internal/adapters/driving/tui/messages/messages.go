// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewContracts is the contracts grid.
	ViewContracts
	// ViewContractDetail shows every field of one contract.
	ViewContractDetail
	// ViewNewContract is the contract creation form.
	ViewNewContract
	// ViewSettings shows the current settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewContracts:
		return "contracts"
	case ViewContractDetail:
		return "contract_detail"
	case ViewNewContract:
		return "new_contract"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ContractsLoaded carries the rows for the grid.
type ContractsLoaded struct {
	Contracts []domain.Contract
	Err       error
}

// ContractSelected opens the detail view for a contract.
type ContractSelected struct {
	Contract domain.Contract
}

// ContractCreated signals the creation form was saved.
type ContractCreated struct {
	Contract *domain.Contract
	Err      error
}

// ContractUpdated signals a contract was changed from the grid.
type ContractUpdated struct {
	Contract *domain.Contract
	Err      error
}

// ContractDeleted signals a delete attempt finished.
type ContractDeleted struct {
	ID      string
	Deleted bool
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsChanged signals the settings file changed on disk.
type SettingsChanged struct{}

// SettingsSaved signals a settings change was written.
type SettingsSaved struct {
	Err error
}
