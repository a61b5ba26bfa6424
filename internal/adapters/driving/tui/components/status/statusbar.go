// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ensaio/internal/adapters/driving/tui/styles"
)

// State represents what the grid is doing, for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Bar shows the row count, active filters and keybinding hints under the grid.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	filters []string
	count   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Carregando...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Erro: %s", s.message))
		}
		return s.styles.Error.Render("Erro")
	case StateReady:
	}

	text := fmt.Sprintf("%d contrato(s)", s.count)
	if len(s.filters) > 0 {
		text += " · " + strings.Join(s.filters, " · ")
	}
	if s.message != "" {
		text += " · " + s.message
	}
	return s.styles.Normal.Render(text)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateError {
		bindings = s.keymap.ShortHelp()
	} else {
		bindings = s.keymap.GridHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " · "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a transient message, such as the outcome of the last action.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetFilters sets the descriptions of the active filters.
func (s *Bar) SetFilters(filters ...string) {
	s.filters = filters
}

// SetCount sets the number of rows shown.
func (s *Bar) SetCount(count int) {
	s.count = count
}

// Count returns the number of rows shown.
func (s *Bar) Count() int {
	return s.count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.filters = nil
	s.count = 0
}
