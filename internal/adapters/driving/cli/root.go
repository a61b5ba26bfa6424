// Package cli provides the ensaio command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ensaio/internal/adapters/driven/remote"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
	"github.com/custodia-labs/ensaio/internal/logger"
)

// version is set at build time.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
	serverURL string
)

// Services holds the driving ports the commands run against.
type Services struct {
	// Contracts is the in-process collection served by `serve`, `tui` and `mcp serve`.
	Contracts driving.ContractService

	// Remote reaches a running `ensaio serve`. Used by the contract subcommands.
	Remote driving.ContractService

	// Settings reads and writes the config file.
	Settings driving.SettingsService

	// Watcher reports config file changes. Optional.
	Watcher tui.ConfigWatcher
}

// Options are the values of the persistent flags, passed to a ServiceFactory.
type Options struct {
	ConfigDir string
	ServerURL string
}

// ServiceFactory builds the services once flags have been parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	contractService driving.ContractService
	remoteService   driving.ContractService
	settingsService driving.SettingsService
	configWatcher   tui.ConfigWatcher
	serviceFactory  ServiceFactory
)

var rootCmd = &cobra.Command{
	Use:   "ensaio",
	Short: "Contract manager for photography studios",
	Long: `Ensaio keeps track of photography session contracts: who the client is,
when the session happens, how many photos were sold, which add-ons were
included, where the job is in the studio workflow and whether it has been paid.

Run 'ensaio serve' to start the HTTP API, then use the contract commands
from another terminal, or open the interactive UI with 'ensaio tui'.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.ensaio)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL of a running ensaio server (default from settings)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by `ensaio version` and the servers.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers the function that builds services after flag parsing.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// SetServices installs ready-made services, bypassing the factory.
func SetServices(s *Services) {
	if s == nil {
		contractService, remoteService, settingsService, configWatcher = nil, nil, nil, nil
		return
	}
	contractService = s.Contracts
	remoteService = s.Remote
	settingsService = s.Settings
	configWatcher = s.Watcher
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if serviceFactory == nil {
		return nil
	}

	services, err := serviceFactory(Options{ConfigDir: configDir, ServerURL: serverURL})
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(services)
	return nil
}

func requireRemote() (driving.ContractService, error) {
	if remoteService == nil {
		return nil, errors.New("contract client not configured")
	}
	return remoteService, nil
}

// explainRemote adds a hint when the contract client could not reach the server.
func explainRemote(err error) error {
	if err == nil || !remote.IsUnavailable(err) {
		return err
	}
	addr := serverURL
	if c, ok := remoteService.(*remote.Client); ok {
		addr = c.BaseURL()
	}
	return fmt.Errorf("%w (is `ensaio serve` running at %s?)", err, addr)
}

func requireContracts() (driving.ContractService, error) {
	if contractService == nil {
		return nil, errors.New("contract service not configured")
	}
	return contractService, nil
}
