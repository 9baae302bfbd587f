package views

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/f3rmion/gallifreyan/internal/animation"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return runes(s)
}

func press(m SettingsModel, keys ...string) (SettingsModel, []tea.Msg) {
	var msgs []tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(k))
		if cmd != nil {
			msgs = append(msgs, cmd())
		}
	}
	return m, msgs
}

func TestSettingsEditColour(t *testing.T) {
	env := newEnv(t)
	env.Config.Scheme = filepath.Join(t.TempDir(), "scheme.yaml")
	m := NewSettingsModel(env)

	// word is the fourth colour.
	m, _ = press(m, "j", "j", "j", "enter")
	if !m.Capturing() {
		t.Fatal("enter did not start editing")
	}
	m, _ = press(m, "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "a", "b", "c")
	m, msgs := press(m, "enter")

	if m.Capturing() || m.statusErr {
		t.Fatalf("editing = %v, status %q", m.Capturing(), m.status)
	}
	if diff := cmp.Diff(render.MustHex("#aabbcc"), env.Scheme.Word); diff != "" {
		t.Errorf("word colour mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]tea.Msg{SchemeChangedMsg{}}, msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	saved, err := config.LoadScheme(env.Config.Scheme)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(env.Scheme, saved); diff != "" {
		t.Errorf("saved scheme mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsInvalidColour(t *testing.T) {
	env := newEnv(t)
	m := NewSettingsModel(env)
	m, _ = press(m, "enter", "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "x", "enter")
	if !m.Capturing() || !m.statusErr {
		t.Errorf("invalid colour accepted, status %q", m.status)
	}
	if diff := cmp.Diff(render.DefaultScheme(), env.Scheme); diff != "" {
		t.Errorf("scheme changed (-want +got):\n%s", diff)
	}
	m, _ = press(m, "esc")
	if m.Capturing() {
		t.Error("esc did not cancel editing")
	}
}

func TestSettingsAnimation(t *testing.T) {
	env := newEnv(t)
	m := NewSettingsModel(env)
	m, msgs := press(m, "tab", "l", "l", "j", "h")

	want := animation.Settings{Cycle: animation.DefaultCycle + 2*animation.CycleStep, Delay: animation.DelayMin}
	if diff := cmp.Diff(want, env.Config.Animation); diff != "" {
		t.Errorf("animation mismatch (-want +got):\n%s", diff)
	}
	if len(msgs) != 3 {
		t.Errorf("got %d messages, want 3", len(msgs))
	}

	_, _ = press(m, "r")
	if diff := cmp.Diff(animation.Default(), env.Config.Animation); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsResetColours(t *testing.T) {
	env := newEnv(t)
	env.Scheme.Dot = render.MustHex("#ff0000")
	m := NewSettingsModel(env)
	_, _ = press(m, "r")
	if diff := cmp.Diff(render.DefaultScheme(), env.Scheme); diff != "" {
		t.Errorf("scheme mismatch (-want +got):\n%s", diff)
	}
}
