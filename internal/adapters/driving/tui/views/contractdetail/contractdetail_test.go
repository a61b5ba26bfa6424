package contractdetail

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ensaio/internal/adapters/driven/clock"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/idgen"
	"github.com/custodia-labs/ensaio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/services"
)

func setup(t *testing.T) (*services.ContractService, *domain.Contract) {
	t.Helper()
	svc := services.NewContractService(memory.NewContractStore(), idgen.NewUUID(), clock.System{})
	c, err := svc.Create(context.Background(), domain.ContractInput{
		ContractCode:     "C-010",
		ClientName:       "Beatriz Lima",
		SessionDate:      "2025-06-21",
		ContractedPhotos: 30,
		AdditionalPhotos: 10,
		Status:           domain.StatusApproval,
		Location:         domain.LocationExternal,
		HasAlbum:         true,
		HasRetrospective: true,
		ContractValue:    2500,
		PaymentStatus:    domain.PaymentPartial,
	})
	require.NoError(t, err)
	return svc, c
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Init())
	assert.Nil(t, v.Contract())
	assert.Contains(t, v.View(), "Nenhum contrato selecionado.")
}

func TestView_SetContract_RendersFields(t *testing.T) {
	svc, c := setup(t)
	v := NewView(nil, svc)

	cmd := v.SetContract(*c)
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	out := v.View()
	assert.Contains(t, out, "Contrato C-010")
	assert.Contains(t, out, c.ID)
	assert.Contains(t, out, "Beatriz Lima")
	assert.Contains(t, out, "21/06/2025")
	assert.Contains(t, out, "40")
	assert.Contains(t, out, "Em Aprovação")
	assert.Contains(t, out, "Externo")
	assert.Contains(t, out, "Álbum, Retrospectiva")
	assert.Contains(t, out, "R$ 2.500,00")
	assert.Contains(t, out, "Parcialmente Pago")
	assert.Contains(t, out, format.LabelFinishedAt)
}

func TestView_Refresh_PicksUpChanges(t *testing.T) {
	svc, c := setup(t)
	v := NewView(nil, svc)
	_ = v.SetContract(*c)

	client := "Beatriz Lima Santos"
	_, err := svc.Update(context.Background(), c.ID, domain.ContractPatch{ClientName: &client})
	require.NoError(t, err)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Equal(t, client, v.Contract().ClientName)
}

func TestView_Refresh_Deleted(t *testing.T) {
	svc, c := setup(t)
	v := NewView(nil, svc)
	cmd := v.SetContract(*c)

	_, err := svc.Delete(context.Background(), c.ID)
	require.NoError(t, err)

	v, _ = v.Update(cmd())
	assert.Contains(t, v.View(), "Este contrato foi removido.")
	assert.Equal(t, "C-010", v.Contract().ContractCode)
}

func TestView_Refresh_IgnoresStaleResult(t *testing.T) {
	svc, c := setup(t)
	v := NewView(nil, svc)
	_ = v.SetContract(*c)

	v, _ = v.Update(refreshedMsg{id: "other", err: domain.ErrNotFound})
	assert.NotContains(t, v.View(), "removido")
}

func TestView_SetFormatter(t *testing.T) {
	svc, c := setup(t)
	v := NewView(nil, svc)
	_ = v.SetContract(*c)

	v.SetFormatter(format.New(domain.DisplaySettings{Locale: "en-US", Currency: "USD", DateLayout: time.RFC3339}))
	v.SetFormatter(nil)

	assert.Contains(t, v.View(), "2,500.00")
}

func TestView_Back(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewContracts}, cmd())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil)

	v, cmd := v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	assert.Equal(t, 100, v.width)
	assert.Equal(t, 30, v.height)
}
