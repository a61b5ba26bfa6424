// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ContractService owns the contract collection; SettingsService
// reads and writes configuration through a ConfigStore.
package services
