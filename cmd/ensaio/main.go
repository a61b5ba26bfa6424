// Command ensaio manages photography session contracts.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/ensaio/internal/adapters/driven/clock"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/idgen"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/remote"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/cli"
	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
	"github.com/custodia-labs/ensaio/internal/core/services"
	"github.com/custodia-labs/ensaio/internal/logger"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

const remoteTimeout = 10 * time.Second

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the core to its adapters once flags are parsed.
func buildServices(opts cli.Options) (*cli.Services, error) {
	out := &cli.Services{}

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("config directory unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
		out.Watcher = file.NewWatcher(fileStore)
	}
	settings := services.NewSettingsService(configStore)
	out.Settings = settings

	out.Contracts = services.NewContractService(
		memory.NewContractStore(),
		idgen.NewUUID(),
		clock.System{},
	)

	serverURL := opts.ServerURL
	if serverURL == "" {
		current, err := settings.Get()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		serverURL = current.Server.URL
	}
	out.Remote = remote.NewClient(serverURL, remoteTimeout).WithRetry(remote.DefaultRetryConfig())
	logger.Debug("contract commands will use %s", serverURL)

	return out, nil
}
