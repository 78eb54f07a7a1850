package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// CheckGroup is a multi-select control: each label can be toggled on or off
// independently. All labels start active.
type CheckGroup struct {
	id     string
	title  string
	jump   byte
	labels []string
	active []bool
	cursor int
}

func NewCheckGroup(id, title string, jump byte, labels []string) *CheckGroup {
	active := make([]bool, len(labels))
	for i := range active {
		active[i] = true
	}
	return &CheckGroup{id: id, title: title, jump: jump, labels: append([]string(nil), labels...), active: active}
}

func (g *CheckGroup) ID() string    { return g.id }
func (g *CheckGroup) Title() string { return g.title }
func (g *CheckGroup) JumpKey() byte { return g.jump }

// Active returns the checked labels in declaration order.
func (g *CheckGroup) Active() []string {
	out := make([]string, 0, len(g.labels))
	for i, l := range g.labels {
		if g.active[i] {
			out = append(out, l)
		}
	}
	return out
}

// SetActive checks exactly the given labels (unknown names are ignored).
// Reports whether any checkbox changed.
func (g *CheckGroup) SetActive(labels []string) bool {
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}
	changed := false
	for i, l := range g.labels {
		_, on := want[l]
		if g.active[i] != on {
			g.active[i] = on
			changed = true
		}
	}
	return changed
}

// Update handles keys while the control is focused. Cursor movement is not a
// change; toggling a checkbox is.
func (g *CheckGroup) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		g.moveCursor(-1)
	case "down", "j":
		g.moveCursor(1)
	case " ", "x":
		if g.cursor >= 0 && g.cursor < len(g.active) {
			g.active[g.cursor] = !g.active[g.cursor]
			return true
		}
	case "a":
		return g.setAll(true)
	case "n":
		return g.setAll(false)
	}
	return false
}

func (g *CheckGroup) moveCursor(delta int) {
	if len(g.labels) == 0 {
		return
	}
	g.cursor = (g.cursor + delta + len(g.labels)) % len(g.labels)
}

func (g *CheckGroup) setAll(on bool) bool {
	changed := false
	for i := range g.active {
		if g.active[i] != on {
			g.active[i] = on
			changed = true
		}
	}
	return changed
}

func (g *CheckGroup) View(width, height int, selected, focused bool) string {
	return Pane{Title: g.title, Child: checkGroupBody{g}, Selected: selected, Focused: focused}.Render(width, height)
}

type checkGroupBody struct{ g *CheckGroup }

func (b checkGroupBody) Render(width, height int) string {
	rows := make([]string, 0, len(b.g.labels))
	for i, l := range b.g.labels {
		mark := "[ ] "
		if b.g.active[i] {
			mark = "[x] "
		}
		cursor := "  "
		sty := optionStyle
		if i == b.g.cursor {
			cursor = "▶ "
			sty = optionActiveStyle
		}
		rows = append(rows, sty.Render(ansi.Truncate(cursor+mark+l, maxInt(1, width), "")))
		if len(rows) >= height {
			break
		}
	}
	return strings.Join(rows, "\n")
}
