package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "reset"}, names)
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Display]")
	assert.Contains(t, out, "Locale: pt-BR")
	assert.Contains(t, out, "Currency: BRL")
	assert.Contains(t, out, "Page size: 10")
	assert.Contains(t, out, "[Server]")
	assert.Contains(t, out, "Listen address: :8080")
	assert.Contains(t, out, "Rate limit: 20 req/s (burst 40)")
	assert.Contains(t, out, "Config file: :memory:")
}

func TestSettingsSetCmd(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "settings", "set", "display.currency", "USD")

	require.NoError(t, err)
	assert.Contains(t, out, "display.currency = USD")

	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Display.Currency)
}

func TestSettingsSetCmd_UnknownKey(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "settings", "set", "display.theme", "dark")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "display.theme"`)
}

func TestSettingsSetCmd_InvalidValue(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "settings", "set", "display.page_size", "zero")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set display.page_size")
}

func TestSettingsSetCmd_RequiresTwoArgs(t *testing.T) {
	_, _, err := execute(t, "settings", "set", "display.locale")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsResetCmd(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settings.Set("display.page_size", "50"))

	out, _, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "restored to defaults")
	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, got.Display.PageSize)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
