package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)

	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)

	noMCP := serveCmd.Flags().Lookup("no-mcp")
	require.NotNil(t, noMCP)
	assert.Equal(t, "false", noMCP.DefValue)
}

func TestServeCmd_RequiresContractService(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract service not configured")
}

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPServeCmd_RequiresContractService(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract service is required")
}

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "New contract")
}

func TestTUICmd_RequiresContractService(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
