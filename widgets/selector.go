package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	optionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	optionActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
)

// Selector is a single-choice control over a fixed option list. Moving the
// cursor changes the selection directly; there is no separate confirm step.
type Selector struct {
	id      string
	title   string
	jump    byte
	options []string
	index   int
}

func NewSelector(id, title string, jump byte, options []string) *Selector {
	return &Selector{id: id, title: title, jump: jump, options: append([]string(nil), options...)}
}

func (s *Selector) ID() string    { return s.id }
func (s *Selector) Title() string { return s.title }
func (s *Selector) JumpKey() byte { return s.jump }

// Value returns the currently selected option, or "" for an empty selector.
func (s *Selector) Value() string {
	if s.index < 0 || s.index >= len(s.options) {
		return ""
	}
	return s.options[s.index]
}

// SetValue moves the selection to the given option. Reports whether the
// selection changed.
func (s *Selector) SetValue(v string) bool {
	for i, opt := range s.options {
		if opt == v {
			if i == s.index {
				return false
			}
			s.index = i
			return true
		}
	}
	return false
}

// Update handles keys while the control is focused. Reports whether the
// selected value changed.
func (s *Selector) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		return s.move(-1)
	case "down", "j":
		return s.move(1)
	}
	return false
}

func (s *Selector) move(delta int) bool {
	if len(s.options) <= 1 {
		return false
	}
	next := (s.index + delta + len(s.options)) % len(s.options)
	if next == s.index {
		return false
	}
	s.index = next
	return true
}

func (s *Selector) View(width, height int, selected, focused bool) string {
	return Pane{Title: s.title, Child: selectorBody{s}, Selected: selected, Focused: focused}.Render(width, height)
}

type selectorBody struct{ s *Selector }

func (b selectorBody) Render(width, height int) string {
	rows := make([]string, 0, len(b.s.options))
	for i, opt := range b.s.options {
		line := "  " + opt
		sty := optionStyle
		if i == b.s.index {
			line = "▶ " + opt
			sty = optionActiveStyle
		}
		rows = append(rows, sty.Render(ansi.Truncate(line, maxInt(1, width), "")))
		if len(rows) >= height {
			break
		}
	}
	return strings.Join(rows, "\n")
}
