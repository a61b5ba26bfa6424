package newcontract

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ensaio/internal/adapters/driven/clock"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/idgen"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/services"
)

func newService() *services.ContractService {
	return services.NewContractService(memory.NewContractStore(), idgen.NewUUID(), clock.System{})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends s to the focused field one rune at a time.
func typeText(v *View, s string) *View {
	for _, r := range s {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

// fill completes every required field and leaves focus on the last one.
func fill(v *View) *View {
	v = typeText(v, "ENS-01")
	v, _ = v.Update(key("tab"))
	v = typeText(v, "Carla Dias")
	v, _ = v.Update(key("tab"))
	v = typeText(v, "2025-05-02")
	v, _ = v.Update(key("tab"))
	v = typeText(v, "15")
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("right")) // status: realizado
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("left")) // location wraps to externo
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("space")) // album
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("tab"))
	v, _ = v.Update(key("tab"))
	v = typeText(v, "1.500,00")
	v, _ = v.Update(key("tab"))
	return v
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Len(t, v.fields, 12)
	assert.Equal(t, 0, v.focus)

	in, errs := v.Input()
	assert.Equal(t, map[string]string{"contractValue": msgValueRequired}, errs)
	assert.Equal(t, domain.StatusScheduled, in.Status)
	assert.Equal(t, domain.LocationStudio, in.Location)
	assert.Equal(t, domain.PaymentPending, in.PaymentStatus)
	assert.Equal(t, 0, in.AdditionalPhotos)
}

func TestView_Init_FocusesFirstField(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()

	assert.True(t, v.fields[0].input.Focused())
	assert.False(t, v.fields[1].input.Focused())
}

func TestView_Navigation_Wraps(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()

	v, _ = v.Update(key("shift+tab"))
	assert.Equal(t, len(v.fields)-1, v.focus)

	v, _ = v.Update(key("tab"))
	assert.Equal(t, 0, v.focus)
}

func TestView_Input_FromTypedFields(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()
	v = fill(v)

	in, errs := v.Input()
	require.Empty(t, errs)
	assert.Equal(t, "ENS-01", in.ContractCode)
	assert.Equal(t, "Carla Dias", in.ClientName)
	assert.Equal(t, "2025-05-02", in.SessionDate)
	assert.Equal(t, 15, in.ContractedPhotos)
	assert.Equal(t, domain.StatusSessionDone, in.Status)
	assert.Equal(t, domain.LocationExternal, in.Location)
	assert.True(t, in.HasAlbum)
	assert.False(t, in.HasSignatureBook)
	assert.InDelta(t, 1500.0, in.ContractValue, 1e-9)
	assert.Equal(t, domain.PaymentPending, in.PaymentStatus)
}

func TestView_Submit_Empty_ShowsFieldErrors(t *testing.T) {
	svc := newService()
	v := NewView(nil, svc)
	_ = v.Init()

	v, _ = v.Update(key("ctrl+s"))

	assert.Equal(t, "Código do contrato é obrigatório", v.FieldError("contractCode"))
	assert.Equal(t, "Nome do cliente é obrigatório", v.FieldError("clientName"))
	assert.Equal(t, "Mínimo de 1 foto", v.FieldError("contractedPhotos"))
	assert.Empty(t, v.FieldError("status"))
	assert.Equal(t, 0, v.focus)
	assert.Contains(t, v.View(), "Data do ensaio é obrigatória")

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestView_Submit_InvalidNumber(t *testing.T) {
	v := NewView(nil, newService())
	_ = v.Init()
	v = fill(v)

	v.focus = 3
	_ = v.updateFocus()
	v = typeText(v, "x")

	v, _ = v.Update(key("ctrl+s"))
	assert.Equal(t, msgInvalidNumber, v.FieldError("contractedPhotos"))
	assert.Equal(t, 3, v.focus)
}

func TestView_Submit_ValueRequired(t *testing.T) {
	v := NewView(nil, newService())
	_ = v.Init()
	v = fill(v)

	v.focus = 10
	_ = v.updateFocus()
	v.fields[10].input.SetValue("")

	v, _ = v.Update(key("ctrl+s"))
	assert.False(t, v.submitting)
	assert.Equal(t, msgValueRequired, v.FieldError("contractValue"))
	assert.Equal(t, 10, v.focus)
}

func TestView_Submit_RejectsNonFiniteValue(t *testing.T) {
	for _, typed := range []string{"NaN", "Inf"} {
		t.Run(typed, func(t *testing.T) {
			svc := newService()
			v := NewView(nil, svc)
			_ = v.Init()
			v = fill(v)
			v.fields[10].input.SetValue(typed)

			v, _ = v.Update(key("ctrl+s"))
			assert.False(t, v.submitting)
			assert.Equal(t, msgInvalidNumber, v.FieldError("contractValue"))

			all, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestView_Submit_Creates(t *testing.T) {
	svc := newService()
	v := NewView(nil, svc)
	_ = v.Init()
	v = fill(v)
	require.Equal(t, len(v.fields)-1, v.focus)

	v, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Salvando...")

	msg, ok := cmd().(messages.ContractCreated)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "ENS-01", msg.Contract.ContractCode)

	v, cmd = v.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewContracts}, cmd())

	in, _ := v.Input()
	assert.Empty(t, in.ContractCode)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestView_Submit_ServiceError(t *testing.T) {
	v := NewView(nil, newService())

	v, cmd := v.Update(messages.ContractCreated{Err: errors.New("unreachable")})
	assert.Nil(t, cmd)
	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "unreachable")
}

func TestView_Submit_NoService(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()
	v = fill(v)

	_, cmd := v.Update(key("ctrl+s"))
	assert.Nil(t, cmd)
	assert.Error(t, v.Err())
}

func TestView_KeysIgnoredWhileSubmitting(t *testing.T) {
	v := NewView(nil, newService())
	_ = v.Init()
	v = fill(v)
	v, _ = v.Update(key("ctrl+s"))

	v, cmd := v.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.True(t, v.submitting)
}

func TestView_Esc_ResetsAndLeaves(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()
	v = typeText(v, "ABC")

	v, cmd := v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewContracts}, cmd())

	in, _ := v.Input()
	assert.Empty(t, in.ContractCode)
}

func TestView_View(t *testing.T) {
	v := NewView(nil, nil)
	_ = v.Init()

	out := v.View()
	assert.Contains(t, out, "Novo Contrato")
	assert.Contains(t, out, "> Código do Contrato:")
	assert.Contains(t, out, "< Agendado >")
	assert.Contains(t, out, "[ ]")
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil)

	v, cmd := v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, v.width)
	assert.Equal(t, 90, v.fields[0].input.Width)
}
