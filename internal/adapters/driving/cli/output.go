package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// currentFormatter builds a formatter from the configured display settings.
func currentFormatter() *format.Formatter {
	if settingsService == nil {
		return format.Default()
	}
	settings, err := settingsService.Get()
	if err != nil {
		return format.Default()
	}
	return format.New(settings.Display)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputContractTable prints contracts as a grid, one row per contract.
func outputContractTable(cmd *cobra.Command, contracts []domain.Contract) {
	if len(contracts) == 0 {
		cmd.Println("No contracts found.")
		return
	}

	f := currentFormatter()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Código", "Cliente", "Data do Ensaio", "Status", "Local", "Total de Fotos", "Valor", "Pagamento")

	for i := range contracts {
		c := &contracts[i]
		t.Row(
			c.ID,
			c.ContractCode,
			c.ClientName,
			format.SessionDate(c.SessionDate),
			format.StatusLabel(c.Status),
			format.LocationLabel(c.Location),
			strconv.Itoa(c.TotalPhotos()),
			f.Currency(c.ContractValue),
			format.PaymentLabel(c.PaymentStatus),
		)
	}

	cmd.Println(t.Render())
	cmd.Printf("%d contract(s)\n", len(contracts))
}

// outputContractDetail prints every field of one contract.
func outputContractDetail(cmd *cobra.Command, c *domain.Contract) {
	f := currentFormatter()

	cmd.Printf("Contract: %s\n", c.ID)
	cmd.Println()
	cmd.Printf("  %s: %s\n", format.LabelContractCode, c.ContractCode)
	cmd.Printf("  %s: %s\n", format.LabelClientName, c.ClientName)
	cmd.Printf("  %s: %s\n", format.LabelSessionDate, format.SessionDate(c.SessionDate))
	cmd.Printf("  %s: %d\n", format.LabelContractedPhotos, c.ContractedPhotos)
	cmd.Printf("  %s: %d\n", format.LabelAdditionalPhotos, c.AdditionalPhotos)
	cmd.Printf("  %s: %d\n", format.LabelTotalPhotos, c.TotalPhotos())
	cmd.Printf("  %s: %s\n", format.LabelStatus, format.StatusLabel(c.Status))
	cmd.Printf("  %s: %s\n", format.LabelLocation, format.LocationLabel(c.Location))
	cmd.Printf("  %s: %s\n", format.LabelAddOns, format.AddOns(c))
	cmd.Printf("  %s: %s\n", format.LabelContractValue, f.Currency(c.ContractValue))
	cmd.Printf("  %s: %s\n", format.LabelPaymentStatus, format.PaymentLabel(c.PaymentStatus))
	cmd.Printf("  %s: %s\n", format.LabelFinishedAt, f.OptionalTimestamp(c.FinishedAt))
	cmd.Printf("  %s: %s\n", format.LabelCreatedAt, f.Timestamp(c.CreatedAt))
	cmd.Printf("  %s: %s\n", format.LabelUpdatedAt, f.Timestamp(c.UpdatedAt))
}

// outputValidationError lists the field messages of a rejected input.
func outputValidationError(cmd *cobra.Command, verr *domain.ValidationError) {
	cmd.PrintErrln("Invalid contract:")
	for _, fe := range verr.Fields {
		cmd.PrintErrf("  %s: %s\n", fe.Field, fe.Message)
	}
}
