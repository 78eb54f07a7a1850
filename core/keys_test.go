package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRegistry() *KeyRegistry {
	return NewKeyRegistry([]KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"S"}, Action: "save-preset", Description: "save preset", Scopes: []string{"*"}},
		{Keys: []string{"e"}, Action: "export", Scopes: []string{"tab:line"}},
	})
}

func TestIsAction(t *testing.T) {
	r := testRegistry()

	if !r.IsAction(keyRunes("q"), "quit", "tab:line") {
		t.Fatalf("q should quit in any scope")
	}
	if r.IsAction(keyRunes("q"), "export", "tab:line") {
		t.Fatalf("q is not export")
	}
	if !r.IsAction(keyRunes("e"), "export", "tab:line") {
		t.Fatalf("e should export in tab:line")
	}
	if r.IsAction(keyRunes("e"), "export", "tab:other") {
		t.Fatalf("export bound to tab:line leaked to tab:other")
	}
}

func TestKeysAreCaseSensitive(t *testing.T) {
	r := testRegistry()
	// "S" saves a preset; lowercase "s" stays free for control jump keys.
	if !r.IsAction(keyRunes("S"), "save-preset", "tab:line") {
		t.Fatalf("S should save a preset")
	}
	if r.IsAction(keyRunes("s"), "save-preset", "tab:line") {
		t.Fatalf("lowercase s must not trigger save-preset")
	}
}

func TestBindingsForScope(t *testing.T) {
	r := testRegistry()
	got := r.BindingsForScope("tab:other")
	if len(got) != 2 {
		t.Fatalf("bindings = %d, want 2 global", len(got))
	}
	got = r.BindingsForScope("tab:line")
	if len(got) != 3 {
		t.Fatalf("bindings = %d, want 3 in tab:line", len(got))
	}
}

func TestRegisterAppends(t *testing.T) {
	r := testRegistry()
	r.Register(KeyBinding{Keys: []string{"1"}, Action: "switch-tab-1", Scopes: []string{"*"}})
	if !r.IsAction(keyRunes("1"), "switch-tab-1", "anything") {
		t.Fatalf("registered binding not matched")
	}
}
