package tabs

import (
	"fmt"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"segdash/core"
	"segdash/internal/frame"
	"segdash/widgets"
)

// Control is one interactive widget of a tab. Update handles keys while the
// control is focused and reports whether the control's state changed; a
// change triggers the owning tab's recompute.
type Control interface {
	ID() string
	Title() string
	JumpKey() byte
	Update(msg tea.KeyMsg) bool
	View(width, height int, selected, focused bool) string
}

// ControlView hands a tab's BuildLayout the host-wrapped widgets for its
// controls, carrying the current selection/focus state.
type ControlView interface {
	Control(id string) widgets.Widget
}

// Interactive is the capability contract every concrete tab implements. The
// four lifecycle methods run in order: InitContainer (fails fast on a bad
// column configuration, before any control exists), BuildControls,
// OnControlChange (recompute into the container, idempotent for a given
// control state), BuildLayout (pure composition).
type Interactive interface {
	ID() string
	Title() string
	InitContainer() (*frame.Container, error)
	BuildControls() []Control
	OnControlChange() error
	BuildLayout(view ControlView) widgets.Widget
}

// Host mounts an Interactive tab into the application: it owns the lifecycle
// order, routes keys to the selected/focused control and invokes
// OnControlChange exactly once per control-change event.
type Host struct {
	tab       Interactive
	container *frame.Container
	controls  []Control
	selected  int
	focused   int
}

// Mount runs the lifecycle. A configuration error from InitContainer aborts
// before any control is built; the initial OnControlChange fills the
// container from the controls' initial state. A control may declare a zero
// jump key and stay reachable through arrow selection only.
func Mount(tab Interactive) (*Host, error) {
	container, err := tab.InitContainer()
	if err != nil {
		return nil, fmt.Errorf("mount tab %s: %w", tab.ID(), err)
	}
	controls := tab.BuildControls()
	seen := make(map[byte]string, len(controls))
	for _, c := range controls {
		key := normalizeJumpKey(c.JumpKey())
		if key == 0 {
			continue
		}
		if other, exists := seen[key]; exists {
			panic(fmt.Sprintf("duplicate jump key %q across controls %q and %q", string(key), other, c.ID()))
		}
		seen[key] = c.ID()
	}
	h := &Host{tab: tab, container: container, controls: controls, selected: 0, focused: -1}
	if err := tab.OnControlChange(); err != nil {
		return nil, fmt.Errorf("mount tab %s: initial recompute: %w", tab.ID(), err)
	}
	return h, nil
}

// Container returns the tab's shared data container.
func (h *Host) Container() *frame.Container { return h.container }

func (h *Host) ID() string    { return h.tab.ID() }
func (h *Host) Title() string { return h.tab.Title() }

func (h *Host) Scope() string {
	if c := h.activeControl(); c != nil {
		return "tab:" + h.tab.ID() + ":" + c.ID()
	}
	return "tab:" + h.tab.ID()
}

func (h *Host) ActiveControlTitle() string {
	if c := h.activeControl(); c != nil {
		return c.Title()
	}
	return ""
}

func (h *Host) activeControl() Control {
	if h.focused >= 0 && h.focused < len(h.controls) {
		return h.controls[h.focused]
	}
	if h.selected >= 0 && h.selected < len(h.controls) {
		return h.controls[h.selected]
	}
	return nil
}

func (h *Host) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(h.controls) == 0 {
		return nil
	}

	if h.focused >= 0 {
		if key.String() == "esc" {
			h.unfocus(m)
			return nil
		}
		if h.controls[h.focused].Update(key) {
			return h.recompute(m)
		}
		return nil
	}

	switch key.String() {
	case "left", "up":
		h.move(m, -1)
		return nil
	case "right", "down":
		h.move(m, 1)
		return nil
	case "enter":
		h.focusSelected(m)
		return nil
	}
	if jump := normalizeJumpKey(jumpKeyOf(key)); jump != 0 {
		for i, c := range h.controls {
			if normalizeJumpKey(c.JumpKey()) == jump {
				h.selected = i
				h.focused = i
				m.SetStatus("Focused: " + c.Title())
				return nil
			}
		}
	}
	return nil
}

// recompute runs once per delivered control-change event. An Interactive
// applying several fields programmatically mutates them all first and calls
// OnControlChange itself, so this stays one recompute per tick either way.
func (h *Host) recompute(m *core.Model) tea.Cmd {
	if err := h.tab.OnControlChange(); err != nil {
		m.SetError(err)
		return nil
	}
	m.SetStatus("Updated: " + h.controls[h.focused].Title())
	return nil
}

func (h *Host) move(m *core.Model, delta int) {
	if len(h.controls) <= 1 {
		return
	}
	h.selected = (h.selected + delta + len(h.controls)) % len(h.controls)
	h.focused = -1
	m.SetStatus("Selected: " + h.controls[h.selected].Title())
}

func (h *Host) focusSelected(m *core.Model) {
	if h.selected < 0 || h.selected >= len(h.controls) {
		return
	}
	h.focused = h.selected
	m.SetStatus("Focused: " + h.controls[h.focused].Title())
}

func (h *Host) unfocus(m *core.Model) {
	if h.focused < 0 {
		return
	}
	title := h.controls[h.focused].Title()
	h.focused = -1
	m.SetStatus("Unfocused: " + title)
}

func (h *Host) Build(m *core.Model) widgets.Widget {
	_ = m
	return h.tab.BuildLayout(h)
}

// Control implements ControlView: the returned widget renders the control
// with its current selection/focus markers.
func (h *Host) Control(id string) widgets.Widget {
	for i, c := range h.controls {
		if c.ID() == id {
			return controlWidget{control: c, selected: i == h.selected, focused: i == h.focused}
		}
	}
	return widgets.Pane{Title: "Missing Control", Child: nil}
}

type controlWidget struct {
	control  Control
	selected bool
	focused  bool
}

func (w controlWidget) Render(width, height int) string {
	return w.control.View(width, height, w.selected, w.focused)
}

func jumpKeyOf(msg tea.KeyMsg) byte {
	s := msg.String()
	if len(s) != 1 {
		return 0
	}
	return s[0]
}

func normalizeJumpKey(key byte) byte {
	if key == 0 {
		return 0
	}
	r := rune(key)
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0
	}
	return byte(unicode.ToLower(r))
}
