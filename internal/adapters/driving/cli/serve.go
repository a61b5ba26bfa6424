package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/mcp"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API over the in-memory contract collection.

Routes:
  GET    /health
  GET    /api/contracts            ?q=  ?status=  ?payment=
  POST   /api/contracts
  GET    /api/contracts/{id}
  PATCH  /api/contracts/{id}
  DELETE /api/contracts/{id}
  ANY    /mcp                       MCP over streamable HTTP (unless --no-mcp)

Contracts live in memory and are lost when the server stops.
Requests are logged to stderr with --verbose.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from settings)")
	serveCmd.Flags().Bool("no-mcp", false, "do not mount the MCP endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	contracts, err := requireContracts()
	if err != nil {
		return err
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			settings = *s
		}
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" {
		addr = settings.Server.Addr
	}
	noMCP, err := cmd.Flags().GetBool("no-mcp")
	if err != nil {
		return fmt.Errorf("getting no-mcp flag: %w", err)
	}

	opts := httpapi.Options{
		RateLimit:      settings.Server.RateLimit,
		RateLimitBurst: settings.Server.RateLimitBurst,
		Version:        version,
	}
	if !noMCP {
		mcpServer, err := mcp.NewServer(&mcp.Ports{Contracts: contracts}, version)
		if err != nil {
			return err
		}
		opts.MCP = mcpServer.Handler()
	}

	logger.SetTimestamps(true)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("ensaio %s listening on %s\n", version, addr)
	return httpapi.NewServer(contracts, opts).ListenAndServe(ctx, addr)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
