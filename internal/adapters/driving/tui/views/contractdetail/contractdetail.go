// Package contractdetail provides the single-contract view for the TUI.
package contractdetail

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// labelWidth aligns field values in one column.
const labelWidth = 22

// refreshedMsg carries the result of re-reading the shown contract.
type refreshedMsg struct {
	id       string
	contract *domain.Contract
	err      error
}

// View shows every field of one contract.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	contracts driving.ContractService
	formatter *format.Formatter

	contract *domain.Contract
	gone     bool
	err      error
	width    int
	height   int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, contracts driving.ContractService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		contracts: contracts,
		formatter: format.Default(),
		width:     80,
		height:    24,
	}
}

// Init does nothing until a contract is set.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetContract shows c immediately and re-reads it from the service.
func (v *View) SetContract(c domain.Contract) tea.Cmd {
	v.contract = &c
	v.gone = false
	v.err = nil
	return v.refresh()
}

// SetFormatter sets how values are rendered.
func (v *View) SetFormatter(f *format.Formatter) {
	if f != nil {
		v.formatter = f
	}
}

// Contract returns the contract being shown.
func (v *View) Contract() *domain.Contract {
	return v.contract
}

func (v *View) refresh() tea.Cmd {
	if v.contract == nil || v.contracts == nil {
		return nil
	}
	contracts := v.contracts
	id := v.contract.ID
	return func() tea.Msg {
		c, err := contracts.Get(context.Background(), id)
		return refreshedMsg{id: id, contract: c, err: err}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case refreshedMsg:
		if v.contract == nil || msg.id != v.contract.ID {
			return v, nil
		}
		switch {
		case errors.Is(msg.err, domain.ErrNotFound):
			v.gone = true
		case msg.err != nil:
			v.err = msg.err
		default:
			v.contract = msg.contract
			v.err = nil
		}
		return v, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewContracts} }
		case keymap.Matches(keyStr, v.keymap.Reload):
			return v, v.refresh()
		}
	}

	return v, nil
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.contract == nil {
		b.WriteString(v.styles.Title.Render("Contrato"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Nenhum contrato selecionado."))
		b.WriteString("\n")
		return b.String()
	}

	c := v.contract
	f := v.formatter

	b.WriteString(v.styles.Title.Render("Contrato " + c.ContractCode))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(c.ID))
	b.WriteString("\n\n")

	if v.gone {
		b.WriteString(v.styles.Warning.Render("Este contrato foi removido."))
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{format.LabelContractCode, c.ContractCode, v.styles.Normal},
		{format.LabelClientName, c.ClientName, v.styles.Normal},
		{format.LabelSessionDate, format.SessionDate(c.SessionDate), v.styles.Normal},
		{format.LabelContractedPhotos, strconv.Itoa(c.ContractedPhotos), v.styles.Normal},
		{format.LabelAdditionalPhotos, strconv.Itoa(c.AdditionalPhotos), v.styles.Normal},
		{format.LabelTotalPhotos, strconv.Itoa(c.TotalPhotos()), v.styles.Normal},
		{format.LabelStatus, format.StatusLabel(c.Status), v.styles.Status(c.Status)},
		{format.LabelLocation, format.LocationLabel(c.Location), v.styles.Normal},
		{format.LabelAddOns, format.AddOns(c), v.styles.Normal},
		{format.LabelContractValue, f.Currency(c.ContractValue), v.styles.Normal},
		{format.LabelPaymentStatus, format.PaymentLabel(c.PaymentStatus), v.styles.Payment(c.PaymentStatus)},
		{format.LabelFinishedAt, f.OptionalTimestamp(c.FinishedAt), v.styles.Normal},
		{format.LabelCreatedAt, f.Timestamp(c.CreatedAt), v.styles.Muted},
		{format.LabelUpdatedAt, f.Timestamp(c.UpdatedAt), v.styles.Muted},
	}

	label := v.styles.Label.Width(labelWidth)
	for _, r := range rows {
		b.WriteString(label.Render(r.label))
		b.WriteString(r.style.Render(r.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("esc voltar · r recarregar"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
