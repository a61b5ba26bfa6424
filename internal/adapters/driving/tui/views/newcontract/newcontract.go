// Package newcontract provides the contract creation form for the TUI.
package newcontract

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

const (
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyEnter    = "enter"
	keySpace    = " "
	keySubmit   = "ctrl+s"
	keyEsc      = "esc"

	msgInvalidNumber = "Número inválido"
	msgValueRequired = "Valor é obrigatório"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindChoice
	kindToggle
)

// field is one form row. Key is the JSON name used by validation errors.
type field struct {
	key   string
	label string
	kind  fieldKind

	input textinput.Model

	values []string
	labels []string
	choice int

	checked bool
}

func textField(key, label, placeholder, initial string) *field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.SetValue(initial)
	return &field{key: key, label: label, kind: kindText, input: ti}
}

func choiceField(key, label string, values, labels []string) *field {
	return &field{key: key, label: label, kind: kindChoice, values: values, labels: labels}
}

func toggleField(key, label string) *field {
	return &field{key: key, label: label, kind: kindToggle}
}

// value returns the text of a text field or the selected code of a choice.
func (f *field) value() string {
	switch f.kind {
	case kindText:
		return strings.TrimSpace(f.input.Value())
	case kindChoice:
		return f.values[f.choice]
	case kindToggle:
	}
	return ""
}

// View is the new-contract form.
type View struct {
	styles    *styles.Styles
	contracts driving.ContractService

	fields []*field
	focus  int

	// errs maps a field key to its message.
	errs       map[string]string
	err        error
	submitting bool

	width  int
	height int
}

// NewView creates an empty form.
func NewView(s *styles.Styles, contracts driving.ContractService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:    s,
		contracts: contracts,
		width:     80,
		height:    24,
	}
	v.Reset()
	return v
}

// Reset clears the form back to its defaults.
func (v *View) Reset() {
	statuses := domain.ContractStatuses()
	statusValues := make([]string, len(statuses))
	statusLabels := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
		statusLabels[i] = format.StatusLabel(s)
	}

	locations := domain.Locations()
	locationValues := make([]string, len(locations))
	locationLabels := make([]string, len(locations))
	for i, l := range locations {
		locationValues[i] = string(l)
		locationLabels[i] = format.LocationLabel(l)
	}

	payments := domain.PaymentStatuses()
	paymentValues := make([]string, len(payments))
	paymentLabels := make([]string, len(payments))
	for i, p := range payments {
		paymentValues[i] = string(p)
		paymentLabels[i] = format.PaymentLabel(p)
	}

	v.fields = []*field{
		textField("contractCode", format.LabelContractCode, "ex: ENS-2025-001", ""),
		textField("clientName", format.LabelClientName, "nome completo", ""),
		textField("sessionDate", format.LabelSessionDate, "AAAA-MM-DD", ""),
		textField("contractedPhotos", format.LabelContractedPhotos, "mínimo 1", ""),
		textField("additionalPhotos", format.LabelAdditionalPhotos, "0", "0"),
		choiceField("status", format.LabelStatus, statusValues, statusLabels),
		choiceField("location", format.LabelLocation, locationValues, locationLabels),
		toggleField("hasAlbum", format.LabelAlbum),
		toggleField("hasSignatureBook", format.LabelSignatureBook),
		toggleField("hasRetrospective", format.LabelRetrospective),
		textField("contractValue", format.LabelContractValue, "ex: 1.500,00", ""),
		choiceField("paymentStatus", format.LabelPaymentStatus, paymentValues, paymentLabels),
	}
	v.focus = 0
	v.errs = nil
	v.err = nil
	v.submitting = false
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.updateFocus()
}

func (v *View) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, f := range v.fields {
		if f.kind != kindText {
			continue
		}
		if i == v.focus {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

// Update handles messages for the form.
//
//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ContractCreated:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewContracts} }

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		return v.handleKey(msg)
	}

	return v, nil
}

//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	current := v.fields[v.focus]

	switch msg.String() {
	case keyEsc:
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewContracts} }
	case keySubmit:
		return v, v.submit()
	case keyTab, keyDown:
		v.focus = (v.focus + 1) % len(v.fields)
		return v, v.updateFocus()
	case keyShiftTab, keyUp:
		v.focus = (v.focus - 1 + len(v.fields)) % len(v.fields)
		return v, v.updateFocus()
	case keyEnter:
		if v.focus == len(v.fields)-1 {
			return v, v.submit()
		}
		v.focus++
		return v, v.updateFocus()
	}

	switch current.kind {
	case kindChoice:
		switch msg.String() {
		case keyRight:
			current.choice = (current.choice + 1) % len(current.values)
		case keyLeft:
			current.choice = (current.choice - 1 + len(current.values)) % len(current.values)
		}
		return v, nil
	case kindToggle:
		if msg.Type == tea.KeySpace || msg.String() == keySpace {
			current.checked = !current.checked
		}
		return v, nil
	case kindText:
	}

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	return v, cmd
}

// Input builds the creation payload from the form. Fields that are not
// numbers are reported in the returned map.
func (v *View) Input() (domain.ContractInput, map[string]string) {
	byKey := make(map[string]*field, len(v.fields))
	for _, f := range v.fields {
		byKey[f.key] = f
	}
	errs := make(map[string]string)

	intValue := func(key string) int {
		s := byKey[key].value()
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			errs[key] = msgInvalidNumber
		}
		return n
	}

	in := domain.ContractInput{
		ContractCode:     byKey["contractCode"].value(),
		ClientName:       byKey["clientName"].value(),
		SessionDate:      byKey["sessionDate"].value(),
		ContractedPhotos: intValue("contractedPhotos"),
		AdditionalPhotos: intValue("additionalPhotos"),
		Status:           domain.ContractStatus(byKey["status"].value()),
		Location:         domain.Location(byKey["location"].value()),
		HasAlbum:         byKey["hasAlbum"].checked,
		HasSignatureBook: byKey["hasSignatureBook"].checked,
		HasRetrospective: byKey["hasRetrospective"].checked,
		PaymentStatus:    domain.PaymentStatus(byKey["paymentStatus"].value()),
	}

	if s := byKey["contractValue"].value(); s == "" {
		errs["contractValue"] = msgValueRequired
	} else {
		amount, err := format.ParseAmount(s)
		if err != nil {
			errs["contractValue"] = msgInvalidNumber
		}
		in.ContractValue = amount
	}

	return in, errs
}

// submit validates the form and, if it passes, creates the contract.
func (v *View) submit() tea.Cmd {
	in, errs := v.Input()

	var verr *domain.ValidationError
	if err := in.Validate(); errors.As(err, &verr) {
		for _, fe := range verr.Fields {
			if _, ok := errs[fe.Field]; !ok {
				errs[fe.Field] = fe.Message
			}
		}
	}

	if len(errs) > 0 {
		v.errs = errs
		for i, f := range v.fields {
			if _, ok := errs[f.key]; ok {
				v.focus = i
				break
			}
		}
		return v.updateFocus()
	}

	v.errs = nil
	v.err = nil
	if v.contracts == nil {
		v.err = fmt.Errorf("contract service not available")
		return nil
	}

	v.submitting = true
	contracts := v.contracts
	return func() tea.Msg {
		c, err := contracts.Create(context.Background(), in)
		return messages.ContractCreated{Contract: c, Err: err}
	}
}

// FieldError returns the message shown under a field, if any.
func (v *View) FieldError(key string) string {
	return v.errs[key]
}

// Err returns the last service error.
func (v *View) Err() error {
	return v.err
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Novo Contrato"))
	b.WriteString("\n\n")

	for i, f := range v.fields {
		cursor := "  "
		labelStyle := v.styles.Label
		if i == v.focus {
			cursor = "> "
			labelStyle = v.styles.Selected.Width(v.styles.Label.GetWidth())
		}

		b.WriteString(cursor)
		b.WriteString(labelStyle.Render(f.label + ":"))
		b.WriteString(" ")

		switch f.kind {
		case kindText:
			b.WriteString(f.input.View())
		case kindChoice:
			b.WriteString(v.styles.Normal.Render("< " + f.labels[f.choice] + " >"))
		case kindToggle:
			box := "[ ]"
			if f.checked {
				box = "[x]"
			}
			b.WriteString(v.styles.Normal.Render(box))
		}
		b.WriteString("\n")

		if msg, ok := v.errs[f.key]; ok {
			b.WriteString("    ")
			b.WriteString(v.styles.Error.Render(msg))
			b.WriteString("\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}
	if v.submitting {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Salvando..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] próximo  [←/→] opção  [espaço] marcar  [ctrl+s] salvar  [esc] cancelar"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	for _, f := range v.fields {
		if f.kind == kindText {
			f.input.Width = inputWidth
		}
	}
}
