// Package contracts provides the contracts grid view for the TUI.
package contracts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// Columns of the grid, in display order.
var columns = []table.Column{
	{Title: "Código", Width: 10},
	{Title: "Cliente", Width: 22},
	{Title: "Data do Ensaio", Width: 14},
	{Title: "Status", Width: 17},
	{Title: "Local", Width: 8},
	{Title: "Total de Fotos", Width: 14},
	{Title: "Valor", Width: 14},
	{Title: "Pagamento", Width: 17},
}

// headerLines is the height of the header row and its bottom border.
const headerLines = 2

// View is the contracts grid.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	contracts driving.ContractService
	formatter *format.Formatter
	now       func() time.Time

	table  table.Model
	search *input.SearchInput
	bar    *status.Bar

	rows          []domain.Contract
	query         string
	statusFilter  domain.ContractStatus
	paymentFilter domain.PaymentStatus

	// pendingDelete holds the ID awaiting a second "d".
	pendingDelete string

	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new contracts grid.
func NewView(s *styles.Styles, contracts driving.ContractService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	t := table.New(
		table.WithColumns(columns),
		table.WithStyles(s.Table()),
		table.WithHeight(domain.DefaultAppSettings().Display.PageSize+headerLines),
		table.WithFocused(true),
	)

	return &View{
		styles:    s,
		keymap:    km,
		contracts: contracts,
		formatter: format.Default(),
		now:       time.Now,
		table:     t,
		search:    input.NewSearchInput(s),
		bar:       status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// Init loads the grid.
func (v *View) Init() tea.Cmd {
	return v.reload()
}

// SetDisplay applies display settings: currency, dates and page size.
func (v *View) SetDisplay(settings domain.DisplaySettings) {
	v.formatter = format.New(settings)
	if settings.PageSize > 0 {
		v.table.SetHeight(settings.PageSize + headerLines)
	}
	v.refreshRows()
}

// SetClock overrides the time source used when marking contracts finished.
func (v *View) SetClock(now func() time.Time) {
	v.now = now
}

// reload re-reads the collection applying the current query and filters.
func (v *View) reload() tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)

	contracts := v.contracts
	query, statusFilter, paymentFilter := v.query, v.statusFilter, v.paymentFilter

	return func() tea.Msg {
		if contracts == nil {
			return messages.ContractsLoaded{Err: fmt.Errorf("contract service not available")}
		}
		rows, err := fetch(context.Background(), contracts, query, statusFilter, paymentFilter)
		return messages.ContractsLoaded{Contracts: rows, Err: err}
	}
}

// fetch runs one service operation per active criterion and keeps the
// contracts present in all of them, in creation order.
func fetch(
	ctx context.Context,
	contracts driving.ContractService,
	query string,
	statusFilter domain.ContractStatus,
	paymentFilter domain.PaymentStatus,
) ([]domain.Contract, error) {
	var sets [][]domain.Contract

	if query != "" {
		found, err := contracts.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		sets = append(sets, found)
	}
	if statusFilter != "" {
		found, err := contracts.FilterByStatus(ctx, statusFilter)
		if err != nil {
			return nil, err
		}
		sets = append(sets, found)
	}
	if paymentFilter != "" {
		found, err := contracts.FilterByPaymentStatus(ctx, paymentFilter)
		if err != nil {
			return nil, err
		}
		sets = append(sets, found)
	}

	if len(sets) == 0 {
		return contracts.List(ctx)
	}

	return domain.Intersect(sets...), nil
}

// Update handles messages for the grid.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ContractsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.rows = msg.Contracts
		v.bar.SetState(status.StateReady)
		v.refreshRows()
		return v, nil

	case messages.ContractUpdated:
		if msg.Err != nil {
			v.bar.SetMessage("Erro ao atualizar: " + msg.Err.Error())
			return v, nil
		}
		v.bar.SetMessage(fmt.Sprintf("Contrato %s finalizado", msg.Contract.ContractCode))
		return v, v.reload()

	case messages.ContractDeleted:
		if msg.Err != nil {
			v.bar.SetMessage("Erro ao remover: " + msg.Err.Error())
			return v, nil
		}
		if msg.Deleted {
			v.bar.SetMessage("Contrato removido")
		} else {
			v.bar.SetMessage("Contrato já não existe")
		}
		return v, v.reload()

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.handleSearchKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.search.Blur()
		v.table.Focus()
		v.query = strings.TrimSpace(v.search.Value())
		return v, v.reload()
	case tea.KeyEsc:
		v.search.Blur()
		v.search.SetValue(v.query)
		v.table.Focus()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	// A second "d" confirms the delete; anything else cancels it.
	if v.pendingDelete != "" {
		id := v.pendingDelete
		v.pendingDelete = ""
		if keymap.Matches(keyStr, v.keymap.Delete) {
			return v, v.deleteContract(id)
		}
		v.bar.SetMessage("")
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(keyStr, v.keymap.Search):
		v.table.Blur()
		return v, v.search.Focus()

	case keymap.Matches(keyStr, v.keymap.StatusFilter):
		v.statusFilter = nextStatus(v.statusFilter)
		return v, v.reload()

	case keymap.Matches(keyStr, v.keymap.PaymentFilter):
		v.paymentFilter = nextPayment(v.paymentFilter)
		return v, v.reload()

	case keymap.Matches(keyStr, v.keymap.Reload):
		return v, v.reload()

	case keymap.Matches(keyStr, v.keymap.New):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewNewContract} }

	case keymap.Matches(keyStr, v.keymap.Select):
		if c, ok := v.Selected(); ok {
			return v, func() tea.Msg { return messages.ContractSelected{Contract: c} }
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Delete):
		if c, ok := v.Selected(); ok {
			v.pendingDelete = c.ID
			v.bar.SetMessage(fmt.Sprintf("Remover %s? pressione d novamente", c.ContractCode))
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Finish):
		if c, ok := v.Selected(); ok {
			return v, v.finishContract(c.ID)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// finishContract sets status finalizado and stamps finishedAt.
func (v *View) finishContract(id string) tea.Cmd {
	contracts := v.contracts
	finished := v.now().UTC()
	return func() tea.Msg {
		finalStatus := domain.StatusFinished
		updated, err := contracts.Update(context.Background(), id, domain.ContractPatch{
			Status:     &finalStatus,
			FinishedAt: &finished,
		})
		return messages.ContractUpdated{Contract: updated, Err: err}
	}
}

func (v *View) deleteContract(id string) tea.Cmd {
	contracts := v.contracts
	return func() tea.Msg {
		removed, err := contracts.Delete(context.Background(), id)
		return messages.ContractDeleted{ID: id, Deleted: removed, Err: err}
	}
}

// refreshRows rebuilds the table rows from the loaded contracts.
func (v *View) refreshRows() {
	rows := make([]table.Row, len(v.rows))
	for i := range v.rows {
		c := &v.rows[i]
		rows[i] = table.Row{
			c.ContractCode,
			c.ClientName,
			format.SessionDate(c.SessionDate),
			format.StatusLabel(c.Status),
			format.LocationLabel(c.Location),
			strconv.Itoa(c.TotalPhotos()),
			v.formatter.Currency(c.ContractValue),
			format.PaymentLabel(c.PaymentStatus),
		}
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(max(len(rows)-1, 0))
	}

	v.bar.SetCount(len(v.rows))
	v.bar.SetFilters(v.filterDescriptions()...)
}

func (v *View) filterDescriptions() []string {
	var filters []string
	if v.query != "" {
		filters = append(filters, fmt.Sprintf("Busca: %q", v.query))
	}
	if v.statusFilter != "" {
		filters = append(filters, "Status: "+format.StatusLabel(v.statusFilter))
	}
	if v.paymentFilter != "" {
		filters = append(filters, "Pagamento: "+format.PaymentLabel(v.paymentFilter))
	}
	return filters
}

// nextStatus cycles all -> each status -> all.
func nextStatus(current domain.ContractStatus) domain.ContractStatus {
	all := domain.ContractStatuses()
	if current == "" {
		return all[0]
	}
	for i, s := range all {
		if s == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

// nextPayment cycles all -> each payment status -> all.
func nextPayment(current domain.PaymentStatus) domain.PaymentStatus {
	all := domain.PaymentStatuses()
	if current == "" {
		return all[0]
	}
	for i, p := range all {
		if p == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

// View renders the grid.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contratos"))
	b.WriteString("\n\n")

	if v.search.Focused() || v.query != "" {
		b.WriteString(v.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case !v.loading && len(v.rows) == 0:
		b.WriteString(v.styles.Muted.Render("Nenhum contrato encontrado."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetWidth(width)
	v.search.SetWidth(width)
	v.bar.SetWidth(width)
}

// Selected returns the contract under the cursor.
func (v *View) Selected() (domain.Contract, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.rows) {
		return domain.Contract{}, false
	}
	return v.rows[i], true
}

// Rows returns the contracts currently shown.
func (v *View) Rows() []domain.Contract {
	return v.rows
}

// Query returns the active search query.
func (v *View) Query() string {
	return v.query
}

// StatusFilter returns the active status filter, empty for all.
func (v *View) StatusFilter() domain.ContractStatus {
	return v.statusFilter
}

// PaymentFilter returns the active payment filter, empty for all.
func (v *View) PaymentFilter() domain.PaymentStatus {
	return v.paymentFilter
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
