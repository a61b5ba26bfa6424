package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/views/contractdetail"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/views/contracts"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/views/newcontract"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// watchStarted carries the config watcher channel once it is open.
type watchStarted struct {
	changes <-chan struct{}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx bounds the config watcher.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView        *menu.View
	contractsView   *contracts.View
	detailView      *contractdetail.View
	newContractView *newcontract.View
	settingsView    *settings.View

	// settings is the last display configuration applied to the views.
	settings *domain.AppSettings

	// changes delivers config file reloads.
	changes <-chan struct{}

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		menuView:        menu.NewView(s),
		contractsView:   contracts.NewView(s, ports.Contracts),
		detailView:      contractdetail.NewView(s, ports.Contracts),
		newContractView: newcontract.NewView(s, ports.Contracts),
		settingsView:    settings.NewView(s, ports.Settings),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ensaio - Contratos"),
		a.loadSettings(),
		a.startWatcher(),
	)
}

func (a *App) loadSettings() tea.Cmd {
	svc := a.ports.Settings
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := svc.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

func (a *App) startWatcher() tea.Cmd {
	watcher := a.ports.Watcher
	if watcher == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		ch, err := watcher.Watch(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching settings: %w", err)}
		}
		return watchStarted{changes: ch}
	}
}

// waitForChange blocks until the watcher reports a reload.
// It yields nothing once the channel closes.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.SettingsChanged{}
	}
}

// applySettings pushes display settings into the views that format values.
func (a *App) applySettings(s *domain.AppSettings) {
	a.settings = s
	a.contractsView.SetDisplay(s.Display)
	a.detailView.SetFormatter(format.New(s.Display))
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if msg.String() == "?" {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewContracts:
			a.contractsView, cmd = a.contractsView.Update(msg)
		case messages.ViewContractDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewNewContract:
			a.newContractView, cmd = a.newContractView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			// Esc or ? from help goes to menu
			if msg.Type == tea.KeyEsc || msg.String() == "?" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		// Entering a view refreshes what it shows.
		switch msg.View {
		case messages.ViewContracts:
			return a, a.contractsView.Init()
		case messages.ViewNewContract:
			a.newContractView.Reset()
			return a, a.newContractView.Init()
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewContractDetail, messages.ViewHelp:
		}
		return a, nil

	case messages.ContractSelected:
		a.currentView = messages.ViewContractDetail
		return a, a.detailView.SetContract(msg.Contract)

	case messages.ContractsLoaded, messages.ContractUpdated, messages.ContractDeleted:
		a.contractsView, cmd = a.contractsView.Update(msg)
		return a, cmd

	case messages.ContractCreated:
		a.newContractView, cmd = a.newContractView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else if msg.Settings != nil {
			a.applySettings(msg.Settings)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case watchStarted:
		a.changes = msg.changes
		return a, waitForChange(a.changes)

	case messages.SettingsChanged:
		return a, tea.Batch(a.loadSettings(), waitForChange(a.changes))

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewContracts:
		a.contractsView, cmd = a.contractsView.Update(msg)
	case messages.ViewContractDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewNewContract:
		a.newContractView, cmd = a.newContractView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewContracts:
		return a.contractsView.View()
	case messages.ViewContractDetail:
		return a.detailView.View()
	case messages.ViewNewContract:
		return a.newContractView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Ajuda

Geral:
  ctrl+c      Sair
  ?           Ajuda (no menu)

Menu:
  j/k, ↑/↓    Navegar
  enter       Selecionar
  q           Sair

Contratos:
  /           Buscar por código ou cliente
  s           Alternar filtro de status
  p           Alternar filtro de pagamento
  enter       Abrir contrato
  n           Novo contrato
  d d         Remover contrato
  f           Marcar como finalizado
  r           Recarregar
  esc         Voltar ao menu

Novo Contrato:
  tab         Próximo campo
  ←/→         Trocar opção
  espaço      Marcar produto extra
  ctrl+s      Salvar
  esc         Cancelar

Configurações:
  enter       Editar valor
  esc         Voltar

[esc] voltar ao menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Settings returns the settings last applied, or nil before the first load.
func (a *App) Settings() *domain.AppSettings {
	return a.settings
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.contractsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.newContractView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
