package views

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/export"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/journal"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/store"
)

func newEnv(t *testing.T) *Env {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	return &Env{
		Config:    cfg,
		Alphabet:  alphabet.Default(),
		Scheme:    render.DefaultScheme(),
		ExportDir: t.TempDir(),
		Mono:      true,
	}
}

func newEditor(t *testing.T, env *Env) EditorModel {
	t.Helper()
	m := NewEditorModel(env)
	m.SetSize(80, 40)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m EditorModel, s string) EditorModel {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func lastOp(d *journal.Document) string {
	ops := d.Ops()
	if len(ops) == 0 {
		return ""
	}
	return ops[len(ops)-1].Kind
}

// hitPoint finds a point of the document that a press would grab, probing a
// replayed copy so the document itself records nothing.
func hitPoint(t *testing.T, env *Env, d *journal.Document, candidates func(yield func(geometry.Point) bool)) geometry.Point {
	t.Helper()
	data, err := d.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := journal.Replay(env.Alphabet, data)
	if err != nil {
		t.Fatal(err)
	}
	for p := range candidates {
		if replayed.Sentence().Press(p) {
			return p
		}
	}
	t.Fatal("no grabbable point found")
	return geometry.Point{}
}

func TestEditorTyping(t *testing.T) {
	m := typeText(newEditor(t, newEnv(t)), "ba")
	if got := m.Document().Text(); got != "ba" {
		t.Fatalf("text = %q, want %q", got, "ba")
	}

	m = typeText(m, "#")
	if got := m.Document().Text(); got != "ba" {
		t.Errorf("text after unknown rune = %q, want %q", got, "ba")
	}
	if got := m.input.Value(); got != "ba" {
		t.Errorf("input after unknown rune = %q, want %q", got, "ba")
	}
	if !m.statusErr {
		t.Error("unknown rune did not report an error")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Document().Text(); got != "b" {
		t.Errorf("text after backspace = %q, want %q", got, "b")
	}
}

func TestEditorPinyin(t *testing.T) {
	m := newEditor(t, newEnv(t))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = m.Update(runes("你"))
	if got := m.Document().Text(); got != "ni" {
		t.Errorf("text = %q, want %q", got, "ni")
	}
	if got := m.input.Value(); got != "ni" {
		t.Errorf("input = %q, want %q", got, "ni")
	}
}

func TestEditorFocus(t *testing.T) {
	m := newEditor(t, newEnv(t))
	if !m.Capturing() {
		t.Fatal("new editor does not capture text")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Capturing() {
		t.Fatal("tab did not move focus to the canvas")
	}

	start := m.cursor
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	want := start.Add(geometry.Pt(1/m.layout.Scale, 0))
	if diff := cmp.Diff(want, m.cursor); diff != "" {
		t.Errorf("cursor mismatch (-want +got):\n%s", diff)
	}

	m = typeText(m, "b")
	if got := m.Document().Text(); got != "" {
		t.Errorf("canvas focus typed %q", got)
	}
}

func TestEditorKeyboardDrag(t *testing.T) {
	env := newEnv(t)
	m := typeText(newEditor(t, env), "ba")
	w := m.Document().Sentence().Words()[0]
	m.cursor = hitPoint(t, env, m.Document(), func(yield func(geometry.Point) bool) {
		for r := 0.0; r < w.Radius(); r += 2 {
			for a := 0; a < 36; a++ {
				if !yield(w.Center().Add(geometry.Polar(float64(a)*0.1745, r))) {
					return
				}
			}
		}
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.cursorPressed || lastOp(m.Document()) != journal.OpPress {
		t.Fatalf("space did not grab, last op %q", lastOp(m.Document()))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := lastOp(m.Document()); got != journal.OpMove {
		t.Errorf("last op after moving = %q, want move", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.cursorPressed || lastOp(m.Document()) != journal.OpRelease {
		t.Errorf("space did not drop, last op %q", lastOp(m.Document()))
	}
}

func TestEditorMouse(t *testing.T) {
	env := newEnv(t)
	m := typeText(newEditor(t, env), "ba")
	m.SetOrigin(10, 5)

	var cell [2]int
	hitPoint(t, env, m.Document(), func(yield func(geometry.Point) bool) {
		for row := range m.layout.Rows {
			for col := range m.layout.Cols {
				cell = [2]int{col, row}
				if !yield(m.layout.ToCanvas(col, row)) {
					return
				}
			}
		}
	})
	x, y := 10+cell[0], 5+editorHeader+cell[1]

	mouse := func(action tea.MouseAction, x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
	}
	m, _ = m.Update(mouse(tea.MouseActionPress, x, y))
	if !m.mousePressed {
		t.Fatal("mouse press missed")
	}
	m, _ = m.Update(mouse(tea.MouseActionMotion, x+1, y))
	m, _ = m.Update(mouse(tea.MouseActionRelease, x+1, y))

	var kinds []string
	for _, op := range m.Document().Ops()[len(m.Document().Ops())-3:] {
		kinds = append(kinds, op.Kind)
	}
	want := []string{journal.OpPress, journal.OpMove, journal.OpRelease}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorMouseOutsidePreview(t *testing.T) {
	m := typeText(newEditor(t, newEnv(t)), "ba")
	n := len(m.Document().Ops())
	m, _ = m.Update(tea.MouseMsg{X: 500, Y: 500, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.mousePressed || len(m.Document().Ops()) != n {
		t.Error("press outside the preview was recorded")
	}
}

func TestEditorAnimation(t *testing.T) {
	m := typeText(newEditor(t, newEnv(t)), "ba")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if !m.animating || cmd == nil {
		t.Fatal("ctrl+a did not start the animation")
	}

	m, _ = m.Update(tickMsg{id: m.tickID})
	if got := lastOp(m.Document()); got != journal.OpAnimate {
		t.Errorf("last op after tick = %q, want animate", got)
	}

	n := len(m.Document().Ops())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m, _ = m.Update(tickMsg{id: m.tickID})
	if len(m.Document().Ops()) != n || m.Document().Ops()[n-1].Count != 1 {
		t.Error("tick after stopping animated the sentence")
	}
}

func TestEditorExport(t *testing.T) {
	env := newEnv(t)
	m := typeText(newEditor(t, env), "ba")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if cmd == nil {
		t.Fatal("ctrl+e returned no command")
	}
	msg, ok := cmd().(exportedMsg)
	if !ok {
		t.Fatalf("command returned %T", msg)
	}
	if msg.err != nil {
		t.Fatal(msg.err)
	}
	if want := filepath.Join(env.ExportDir, "ba.png"); msg.path != want {
		t.Errorf("path = %q, want %q", msg.path, want)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Error(err)
	}
	m, _ = m.Update(msg)
	if m.statusErr {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorExportEmpty(t *testing.T) {
	m := newEditor(t, newEnv(t))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd != nil || !m.statusErr {
		t.Error("exporting an empty sentence did not fail")
	}
}

func TestEditorSaveAndOpen(t *testing.T) {
	env := newEnv(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	env.Store = st

	m := typeText(newEditor(t, env), "bake")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s returned no command")
	}
	saved := cmd().(SavedMsg)
	if saved.Err != nil {
		t.Fatal(saved.Err)
	}
	m, _ = m.Update(saved)
	if m.name != "bake" {
		t.Errorf("name = %q, want bake", m.name)
	}

	c, err := st.Get(context.Background(), "bake")
	if err != nil {
		t.Fatal(err)
	}
	other := newEditor(t, env)
	other, _ = other.Update(OpenCompositionMsg{Composition: c})
	if got := other.Document().Text(); got != "bake" {
		t.Errorf("opened text = %q, want bake", got)
	}
	if got := other.input.Value(); got != "bake" {
		t.Errorf("opened input = %q, want bake", got)
	}
}

func TestEditorSaveWithoutLibrary(t *testing.T) {
	m := typeText(newEditor(t, newEnv(t)), "ba")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || !m.statusErr {
		t.Error("saving without a library did not fail")
	}
}

func TestEditorNew(t *testing.T) {
	m := typeText(newEditor(t, newEnv(t)), "ba")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.Document().Text(); got != "" {
		t.Errorf("text = %q after new", got)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input = %q after new", got)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		text   string
		format export.Format
		want   string
	}{
		{"ba", export.PNG, "ba.png"},
		{"ni-hao shi-jie", export.GIF, "ni-hao_shi-jie.gif"},
		{"12.", export.PNG, "12.png"},
		{" ?! ", export.PNG, "gallifreyan.png"},
	}
	for _, tt := range tests {
		if got := FileName(tt.text, tt.format); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
