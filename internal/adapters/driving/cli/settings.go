package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change display and server settings.

Settings are stored in config.toml inside the config directory. A running
'ensaio tui' picks up changes to that file without restarting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Keys:
  display.locale            BCP 47 tag used for numbers, e.g. pt-BR
  display.currency          ISO 4217 code, e.g. BRL
  display.date_layout       Go time layout for timestamps
  display.page_size         rows shown at once in the contract grid
  server.addr               listen address for 'ensaio serve'
  server.url                where contract commands reach the server
  server.rate_limit         requests per second allowed per client
  server.rate_limit_burst   burst size for the rate limiter`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Locale: %s\n", settings.Display.Locale)
	cmd.Printf("  Currency: %s\n", settings.Display.Currency)
	cmd.Printf("  Date layout: %s\n", settings.Display.DateLayout)
	cmd.Printf("  Page size: %d\n", settings.Display.PageSize)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Listen address: %s\n", settings.Server.Addr)
	cmd.Printf("  URL: %s\n", settings.Server.URL)
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.RateLimitBurst)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrUnknownSetting) {
			return fmt.Errorf("unknown setting %q, see 'ensaio settings set --help'", key)
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}
