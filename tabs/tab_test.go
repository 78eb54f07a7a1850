package tabs

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"segdash/core"
	"segdash/internal/frame"
	"segdash/widgets"
)

type fakeControl struct {
	id      string
	jump    byte
	changed bool // next Update reports a change
	updates int
}

func (c *fakeControl) ID() string    { return c.id }
func (c *fakeControl) Title() string { return c.id }
func (c *fakeControl) JumpKey() byte { return c.jump }

func (c *fakeControl) Update(tea.KeyMsg) bool {
	c.updates++
	return c.changed
}

func (c *fakeControl) View(width, height int, selected, focused bool) string {
	return fmt.Sprintf("%s sel=%v foc=%v", c.id, selected, focused)
}

type fakeTab struct {
	controls   []Control
	calls      []string
	initErr    error
	computeErr error
	computes   int
}

func (t *fakeTab) ID() string    { return "fake" }
func (t *fakeTab) Title() string { return "Fake" }

func (t *fakeTab) InitContainer() (*frame.Container, error) {
	t.calls = append(t.calls, "init")
	if t.initErr != nil {
		return nil, t.initErr
	}
	return frame.NewContainer(), nil
}

func (t *fakeTab) BuildControls() []Control {
	t.calls = append(t.calls, "controls")
	return t.controls
}

func (t *fakeTab) OnControlChange() error {
	t.calls = append(t.calls, "change")
	t.computes++
	return t.computeErr
}

func (t *fakeTab) BuildLayout(view ControlView) widgets.Widget {
	t.calls = append(t.calls, "layout")
	return view.Control(t.controls[0].ID())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newHost(t *testing.T, tab *fakeTab) (*Host, *core.Model) {
	t.Helper()
	h, err := Mount(tab)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	m := core.NewModel(nil, core.NewKeyRegistry(nil))
	return h, &m
}

func twoControls() *fakeTab {
	return &fakeTab{controls: []Control{
		&fakeControl{id: "first", jump: 'f'},
		&fakeControl{id: "second", jump: 'g'},
	}}
}

func TestMountLifecycleOrder(t *testing.T) {
	tab := twoControls()
	h, _ := newHost(t, tab)

	want := []string{"init", "controls", "change"}
	if strings.Join(tab.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("lifecycle = %v, want %v", tab.calls, want)
	}
	if h.Container() == nil {
		t.Fatalf("host has no container")
	}
}

func TestMountAbortsBeforeControls(t *testing.T) {
	tab := &fakeTab{initErr: fmt.Errorf("bad column")}
	if _, err := Mount(tab); err == nil {
		t.Fatalf("expected mount error")
	}
	for _, c := range tab.calls {
		if c == "controls" || c == "change" {
			t.Fatalf("lifecycle ran %q after a failed init", c)
		}
	}
}

func TestMountRejectsDuplicateJumpKeys(t *testing.T) {
	tab := &fakeTab{controls: []Control{
		&fakeControl{id: "a", jump: 'f'},
		&fakeControl{id: "b", jump: 'F'},
	}}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for duplicate jump key")
		}
	}()
	_, _ = Mount(tab)
}

func TestMountAllowsControlsWithoutJumpKey(t *testing.T) {
	tab := &fakeTab{controls: []Control{
		&fakeControl{id: "a", jump: 'f'},
		&fakeControl{id: "b"},
		&fakeControl{id: "c"},
	}}
	h, m := newHost(t, tab)

	// Arrows still reach the keyless controls.
	h.Update(m, tea.KeyMsg{Type: tea.KeyRight})
	if h.ActiveControlTitle() != "b" {
		t.Fatalf("active = %s, want b", h.ActiveControlTitle())
	}
	h.Update(m, tea.KeyMsg{Type: tea.KeyRight})
	if h.ActiveControlTitle() != "c" {
		t.Fatalf("active = %s, want c", h.ActiveControlTitle())
	}
}

func TestHostSelectionAndFocus(t *testing.T) {
	tab := twoControls()
	h, m := newHost(t, tab)

	if h.Scope() != "tab:fake:first" {
		t.Fatalf("scope = %s", h.Scope())
	}

	h.Update(m, tea.KeyMsg{Type: tea.KeyRight})
	if h.ActiveControlTitle() != "second" {
		t.Fatalf("active = %s, want second", h.ActiveControlTitle())
	}
	h.Update(m, tea.KeyMsg{Type: tea.KeyLeft})
	if h.ActiveControlTitle() != "first" {
		t.Fatalf("active = %s, want first", h.ActiveControlTitle())
	}

	// Enter focuses; focused control receives keys; esc unfocuses.
	h.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	h.Update(m, keyRunes("k"))
	first := tab.controls[0].(*fakeControl)
	if first.updates != 1 {
		t.Fatalf("focused control updates = %d, want 1", first.updates)
	}
	h.Update(m, tea.KeyMsg{Type: tea.KeyEsc})
	h.Update(m, keyRunes("k"))
	if first.updates != 1 {
		t.Fatalf("unfocused control received a key")
	}
}

func TestHostJumpKeyFocuses(t *testing.T) {
	tab := twoControls()
	h, m := newHost(t, tab)

	h.Update(m, keyRunes("g"))
	if h.Scope() != "tab:fake:second" {
		t.Fatalf("scope = %s, want second focused", h.Scope())
	}
	second := tab.controls[1].(*fakeControl)
	h.Update(m, keyRunes("j"))
	if second.updates != 1 {
		t.Fatalf("jump did not focus the control")
	}
}

func TestHostRecomputesOncePerChange(t *testing.T) {
	tab := twoControls()
	h, m := newHost(t, tab)
	base := tab.computes

	h.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	h.Update(m, keyRunes("k")) // no state change
	if tab.computes != base {
		t.Fatalf("recompute ran without a control change")
	}

	tab.controls[0].(*fakeControl).changed = true
	h.Update(m, keyRunes("k"))
	if tab.computes != base+1 {
		t.Fatalf("computes = %d, want %d", tab.computes, base+1)
	}
}

func TestHostReportsRecomputeError(t *testing.T) {
	tab := twoControls()
	h, m := newHost(t, tab)

	tab.controls[0].(*fakeControl).changed = true
	tab.computeErr = fmt.Errorf("boom")
	h.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	h.Update(m, keyRunes("k"))
	// The error lands in the status bar instead of crashing the app.
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("recompute error not surfaced in the view")
	}
}

func TestControlViewMarksState(t *testing.T) {
	tab := twoControls()
	h, m := newHost(t, tab)

	if got := h.Control("first").Render(20, 3); !strings.Contains(got, "sel=true foc=false") {
		t.Fatalf("selected render = %q", got)
	}
	h.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := h.Control("first").Render(20, 3); !strings.Contains(got, "foc=true") {
		t.Fatalf("focused render = %q", got)
	}
	if got := h.Control("missing").Render(20, 3); !strings.Contains(got, "Missing") {
		t.Fatalf("missing control render = %q", got)
	}
}
