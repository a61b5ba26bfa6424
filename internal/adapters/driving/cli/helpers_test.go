package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ensaio/internal/adapters/driven/clock"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/idgen"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/services"
)

// setupTestServices installs in-memory services and returns them with a cleanup func.
// The in-process contract service stands in for the remote client.
func setupTestServices() (*services.ContractService, *services.SettingsService, func()) {
	contracts := services.NewContractService(memory.NewContractStore(), idgen.NewUUID(), clock.System{})
	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServices(&Services{
		Contracts: contracts,
		Remote:    contracts,
		Settings:  settings,
	})

	return contracts, settings, func() {
		SetServices(nil)
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func seedContract(t *testing.T, svc *services.ContractService, code, client string,
	status domain.ContractStatus, payment domain.PaymentStatus) *domain.Contract {
	t.Helper()

	c, err := svc.Create(context.Background(), domain.ContractInput{
		ContractCode:     code,
		ClientName:       client,
		SessionDate:      "2025-02-14",
		ContractedPhotos: 10,
		AdditionalPhotos: 5,
		Status:           status,
		Location:         domain.LocationStudio,
		ContractValue:    1500,
		PaymentStatus:    payment,
	})
	require.NoError(t, err)
	return c
}
