package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"segdash/widgets"
)

// Tab is one self-contained view: a data container, its plots and its
// controls, mounted by the tabs package and routed here by index.
type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

type Model struct {
	width     int
	height    int
	tabs      []Tab
	activeTab int
	keys      *KeyRegistry
	status    string
	statusErr bool
	quitting  bool

	// Wired by cmd: invoked on the export / save-preset key actions for the
	// active view. Either may be nil.
	OnExport     func(m *Model) tea.Cmd
	OnSavePreset func(m *Model) tea.Cmd
}

func NewModel(tabs []Tab, keys *KeyRegistry) Model {
	return Model{
		tabs:      tabs,
		keys:      keys,
		status:    "Ready",
		activeTab: 0,
		width:     100,
		height:    32,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

func (m Model) ActiveTab() Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m *Model) SwitchTab(index int) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.activeTab = index
}
