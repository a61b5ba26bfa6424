// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// keyWidth aligns values in one column.
const keyWidth = 26

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	settings *domain.AppSettings
	keys     []string
	selected int

	editing bool
	input   textinput.Model

	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 128
	input.Width = 40

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
		keys:            domain.SettingKeys(),
		input:           input,
	}
}

// Init loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.editing = false
		v.input.Blur()
		return v, v.saveSetting(v.keys[v.selected], strings.TrimSpace(v.input.Value()))
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Reload):
		return v, v.loadSettings()
	case keymap.Matches(keyStr, v.keymap.Select):
		if v.settings == nil {
			return v, nil
		}
		v.editing = true
		v.input.SetValue(Value(v.settings, v.keys[v.selected]))
		v.input.CursorEnd()
		return v, v.input.Focus()
	}

	return v, nil
}

// Value renders the current value of a settings key.
func Value(s *domain.AppSettings, key string) string {
	switch key {
	case domain.SettingLocale:
		return s.Display.Locale
	case domain.SettingCurrency:
		return s.Display.Currency
	case domain.SettingDateLayout:
		return s.Display.DateLayout
	case domain.SettingPageSize:
		return strconv.Itoa(s.Display.PageSize)
	case domain.SettingServerAddr:
		return s.Server.Addr
	case domain.SettingServerURL:
		return s.Server.URL
	case domain.SettingRateLimit:
		return strconv.FormatFloat(s.Server.RateLimit, 'f', -1, 64)
	case domain.SettingRateLimitBurst:
		return strconv.Itoa(s.Server.RateLimitBurst)
	}
	return ""
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Configurações"))
	b.WriteString("\n\n")

	if v.err != nil {
		text := v.err.Error()
		if errors.Is(v.err, domain.ErrInvalidInput) {
			text = "valor inválido: " + text
		}
		b.WriteString(v.styles.Error.Render("Error: " + text))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Carregando..."))
		b.WriteString("\n")
		return b.String()
	}

	keyStyle := v.styles.Label.Width(keyWidth)
	for i, k := range v.keys {
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(keyStyle.Render(k))

		if v.editing && i == v.selected {
			b.WriteString(v.input.View())
		} else {
			style := v.styles.Normal
			if i == v.selected {
				style = v.styles.Selected
			}
			b.WriteString(style.Render(Value(v.settings, k)))
		}
		b.WriteString("\n")
	}

	if v.settingsService != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Arquivo: " + v.settingsService.ConfigPath()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] salvar  [esc] cancelar"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] navegar  [enter] editar  [r] recarregar  [esc] voltar"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
