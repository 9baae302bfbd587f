package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/tui/views"
)

func newApp(t *testing.T) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 2
	cfg.Scheme = ""
	env := &views.Env{
		Config:    cfg,
		Alphabet:  alphabet.Default(),
		Scheme:    render.DefaultScheme(),
		ExportDir: t.TempDir(),
		Mono:      true,
	}
	m, _ := NewApp(env).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(AppModel)
}

func send(m AppModel, msgs ...tea.Msg) AppModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSwitchViews(t *testing.T) {
	m := newApp(t)
	tests := []struct {
		key  tea.KeyType
		want ViewType
	}{
		{tea.KeyF2, ViewSettings},
		{tea.KeyF3, ViewLibrary},
		{tea.KeyF1, ViewEditor},
	}
	for _, tt := range tests {
		m = send(m, tea.KeyMsg{Type: tt.key})
		if m.currentView != tt.want {
			t.Errorf("after %v view = %v, want %v", tt.key, m.currentView, tt.want)
		}
	}
}

func TestTypingReachesEditor(t *testing.T) {
	m := send(newApp(t), runes("b"), runes("?"), runes("q"))
	if m.showHelp {
		t.Error("? in the text input opened the help")
	}
	if got := m.editorView.Document().Text(); got != "b?q" {
		t.Errorf("text = %q, want %q", got, "b?q")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := send(newApp(t), tea.KeyMsg{Type: tea.KeyF2}, runes("?"))
	if !m.showHelp {
		t.Fatal("? did not open the help")
	}
	if !strings.Contains(m.View(), "ctrl+e") {
		t.Error("help does not list the editor keys")
	}
	m = send(m, runes("x"))
	if m.showHelp {
		t.Error("a key did not close the help")
	}
}

func TestSidebarNavigation(t *testing.T) {
	m := send(newApp(t), tea.KeyMsg{Type: tea.KeyF3}, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.sidebarActive {
		t.Fatal("esc did not focus the sidebar")
	}
	m = send(m, runes("k"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != ViewSettings || m.sidebarActive {
		t.Errorf("view = %v, sidebar active %v", m.currentView, m.sidebarActive)
	}
}

func TestViewRenders(t *testing.T) {
	m := send(newApp(t), runes("b"), runes("a"))
	out := m.View()
	if !strings.Contains(out, "Gallifreyan") || !strings.Contains(out, "f3 Library") {
		t.Errorf("view lacks the sidebar:\n%s", out)
	}
}
