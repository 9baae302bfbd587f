package views

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/clipboard"
	"github.com/f3rmion/gallifreyan/internal/export"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/journal"
	"github.com/f3rmion/gallifreyan/internal/store"
	"github.com/f3rmion/gallifreyan/internal/transliterate"
	"github.com/f3rmion/gallifreyan/internal/tui/preview"
)

// Editor view styles
var (
	editorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B"))

	editorTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Italic(true)

	editorStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf"))

	editorErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Bold(true)

	editorMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	editorCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#ffe66d"))
)

// Lines above and below the preview.
const (
	editorHeader = 3
	editorFooter = 3
)

// monoThreshold is the brightness difference that lights a mono pixel.
const monoThreshold = 40

// fineStep is the cursor step in canvas units with shift held.
const fineStep = 2

type focus int

const (
	focusInput focus = iota
	focusCanvas
)

// EditorKeyMap holds the editor key bindings.
type EditorKeyMap struct {
	Focus     key.Binding
	Animate   key.Binding
	ExportPNG key.Binding
	ExportGIF key.Binding
	Save      key.Binding
	Copy      key.Binding
	Pinyin    key.Binding
	New       key.Binding

	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	FineUp    key.Binding
	FineDown  key.Binding
	FineLeft  key.Binding
	FineRight key.Binding
	Press     key.Binding
}

// DefaultEditorKeyMap returns the default bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "text/canvas")),
		Animate:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "animate")),
		ExportPNG: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "png")),
		ExportGIF: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "gif")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy text")),
		Pinyin:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "pinyin input")),
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),

		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "cursor up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "cursor down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cursor left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cursor right")),
		FineUp:    key.NewBinding(key.WithKeys("shift+up")),
		FineDown:  key.NewBinding(key.WithKeys("shift+down")),
		FineLeft:  key.NewBinding(key.WithKeys("shift+left")),
		FineRight: key.NewBinding(key.WithKeys("shift+right")),
		Press:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "grab/drop")),
	}
}

// ShortHelp implements help.KeyMap.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Animate, k.ExportPNG, k.ExportGIF, k.Save, k.Copy}
}

// FullHelp implements help.KeyMap.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Pinyin, k.New, k.Copy},
		{k.Animate, k.ExportPNG, k.ExportGIF, k.Save},
		{k.Up, k.Down, k.Left, k.Right, k.Press},
	}
}

type tickMsg struct{ id int }

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct{ err error }

// EditorModel edits one composition: a text input bound to the document and
// a half-block preview that takes mouse and keyboard gestures.
type EditorModel struct {
	env      *Env
	doc      *journal.Document
	translit *transliterate.Transliterator
	name     string

	input textinput.Model
	keys  EditorKeyMap
	help  help.Model
	focus focus

	pinyin bool

	layout        preview.Layout
	origin        image.Point
	cursor        geometry.Point
	cursorPressed bool
	mousePressed  bool
	frame         string

	animating bool
	tickID    int

	status    string
	statusErr bool

	width  int
	height int
}

// NewEditorModel returns an editor with an empty composition.
func NewEditorModel(env *Env) EditorModel {
	input := textinput.New()
	input.Placeholder = "type to write"
	input.Prompt = "› "
	input.Focus()

	m := EditorModel{
		env:      env,
		translit: transliterate.New(env.Alphabet),
		input:    input,
		keys:     DefaultEditorKeyMap(),
		help:     help.New(),
	}
	m.doc = m.newDocument()
	return m
}

func (m EditorModel) newDocument() *journal.Document {
	seed := m.env.Config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	c := m.env.Config.Canvas
	return journal.New(m.env.Alphabet, seed, c.Width, c.Height)
}

// Document returns the composition being edited.
func (m EditorModel) Document() *journal.Document { return m.doc }

// Capturing reports whether plain keys go to the text input.
func (m EditorModel) Capturing() bool { return m.focus == focusInput }

// Keys returns the editor key bindings.
func (m EditorModel) Keys() EditorKeyMap { return m.keys }

// SetSize updates the view dimensions.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 1)
	m.relayout()
}

// SetOrigin places the view on screen, for mouse coordinates.
func (m *EditorModel) SetOrigin(x, y int) {
	m.origin = image.Pt(x, y+editorHeader)
}

func (m *EditorModel) relayout() {
	w, h := m.doc.Sentence().Size()
	m.layout = preview.Fit(w, h, m.width, m.height-editorHeader-editorFooter)
	m.cursor = clampPoint(m.cursor, w, h)
	if m.cursor == (geometry.Point{}) {
		m.cursor = geometry.Pt(float64(w)/2, float64(h)/2)
	}
	m.redraw()
}

func (m *EditorModel) redraw() {
	if m.layout.Empty() {
		m.frame = ""
		return
	}
	img := preview.Image(m.doc.Sentence(), &m.env.Scheme, m.layout)
	col, row := m.layout.ToCell(m.cursor)
	m.frame = preview.Blocks(img, preview.Options{
		Mono:        m.env.Mono,
		Background:  m.env.Scheme.CanvasBackground,
		Threshold:   monoThreshold,
		Cursor:      image.Pt(col, row),
		ShowCursor:  m.focus == focusCanvas,
		CursorStyle: editorCursorStyle,
	})
}

func (m *EditorModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *EditorModel) setError(s string) {
	m.status = s
	m.statusErr = true
	m.env.logger().Debug("editor", "error", s)
}

// Init starts the cursor blink.
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tickMsg:
		if !m.animating || msg.id != m.tickID {
			return m, nil
		}
		m.doc.Animate(m.env.Config.Animation.Angle())
		m.redraw()
		return m, m.tick()

	case exportedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.setStatus("exported " + msg.path)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.setStatus("copied text to clipboard")
		}
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("saving %q: %v", msg.Name, msg.Err))
		} else {
			m.name = msg.Name
			m.setStatus(fmt.Sprintf("saved %q", msg.Name))
		}
		return m, nil

	case OpenCompositionMsg:
		m.open(msg.Composition)
		return m, nil

	case SchemeChangedMsg:
		m.redraw()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		var cmd tea.Cmd
		if m.focus == focusInput {
			m.focus = focusCanvas
			m.input.Blur()
		} else {
			m.focus = focusInput
			cmd = m.input.Focus()
		}
		m.redraw()
		return m, cmd

	case key.Matches(msg, m.keys.Animate):
		m.animating = !m.animating
		if !m.animating {
			m.setStatus("animation stopped")
			return m, nil
		}
		m.tickID++
		m.setStatus("animating")
		return m, m.tick()

	case key.Matches(msg, m.keys.ExportPNG):
		return m.export(export.PNG)

	case key.Matches(msg, m.keys.ExportGIF):
		return m.export(export.GIF)

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Copy):
		text := m.doc.Text()
		return m, func() tea.Msg { return copiedMsg{err: clipboard.Write(text)} }

	case key.Matches(msg, m.keys.Pinyin):
		m.pinyin = !m.pinyin
		if m.pinyin {
			m.setStatus("pinyin input on: Hanzi are transliterated")
		} else {
			m.setStatus("pinyin input off")
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.reset()
		m.setStatus("new composition")
		return m, nil
	}

	if m.focus == focusCanvas {
		m.handleCanvasKey(msg)
		return m, nil
	}

	prev, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.applyInput(prev, pos)
	}
	return m, cmd
}

// applyInput writes the input value into the document, or restores the
// previous value when the alphabet cannot write it.
func (m *EditorModel) applyInput(prev string, pos int) {
	value := m.input.Value()
	if m.pinyin {
		value = m.translit.Text(value)
	}
	if err := m.doc.SetText(value); err != nil {
		m.input.SetValue(prev)
		m.input.SetCursor(pos)
		var unknown *alphabet.UnknownRuneError
		if errors.As(err, &unknown) {
			m.setError(fmt.Sprintf("%q cannot be written", unknown.Rune))
		} else {
			m.setError(err.Error())
		}
		return
	}
	if value != m.input.Value() {
		m.input.SetValue(value)
		m.input.CursorEnd()
	}
	m.status = ""
	m.redraw()
}

func (m *EditorModel) handleCanvasKey(msg tea.KeyMsg) {
	cell := 1 / max(m.layout.Scale, 1e-9)
	var d geometry.Point
	switch {
	case key.Matches(msg, m.keys.Up):
		d.Y = -2 * cell
	case key.Matches(msg, m.keys.Down):
		d.Y = 2 * cell
	case key.Matches(msg, m.keys.Left):
		d.X = -cell
	case key.Matches(msg, m.keys.Right):
		d.X = cell
	case key.Matches(msg, m.keys.FineUp):
		d.Y = -fineStep
	case key.Matches(msg, m.keys.FineDown):
		d.Y = fineStep
	case key.Matches(msg, m.keys.FineLeft):
		d.X = -fineStep
	case key.Matches(msg, m.keys.FineRight):
		d.X = fineStep
	case key.Matches(msg, m.keys.Press):
		m.togglePress()
		return
	default:
		return
	}

	w, h := m.doc.Sentence().Size()
	m.cursor = clampPoint(m.cursor.Add(d), w, h)
	if m.cursorPressed {
		m.doc.Move(m.cursor)
	}
	m.redraw()
}

func (m *EditorModel) togglePress() {
	if m.cursorPressed {
		m.doc.Release()
		m.cursorPressed = false
		m.setStatus("dropped")
		m.redraw()
		return
	}
	if !m.doc.Press(m.cursor) {
		m.setStatus("nothing to grab here")
		return
	}
	m.cursorPressed = true
	m.setStatus("grabbed: move with the arrows, space drops")
}

func (m *EditorModel) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-m.origin.X, msg.Y-m.origin.Y
	p := m.layout.ToCanvas(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.layout.Contains(col, row) {
			return
		}
		m.mousePressed = m.doc.Press(p)
		if !m.mousePressed {
			return
		}
	case tea.MouseActionMotion:
		if !m.mousePressed {
			return
		}
		m.doc.Move(p)
	case tea.MouseActionRelease:
		if !m.mousePressed {
			return
		}
		m.doc.Release()
		m.mousePressed = false
	default:
		return
	}
	m.redraw()
}

func (m EditorModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.env.Config.Animation.Interval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// export renders a copy of the document in the background so animation and
// editing can go on meanwhile.
func (m EditorModel) export(format export.Format) (EditorModel, tea.Cmd) {
	text := m.doc.Text()
	if text == "" {
		m.setError("nothing to export")
		return m, nil
	}
	data, err := m.doc.Marshal()
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	a := m.env.Alphabet
	scheme := m.env.Scheme
	settings := m.env.Config.Animation
	logger := m.env.logger()
	path := filepath.Join(m.env.ExportDir, FileName(text, format))

	m.setStatus("exporting " + path)
	return m, func() tea.Msg {
		doc, err := journal.Replay(a, data)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		err = export.File(context.Background(), path, doc.Sentence(), &scheme, settings, export.Options{Logger: logger})
		return exportedMsg{path: path, err: err}
	}
}

func (m EditorModel) save() (EditorModel, tea.Cmd) {
	if m.env.Store == nil {
		m.setError("no library configured")
		return m, nil
	}
	name := m.name
	if name == "" {
		name = strings.TrimSpace(m.doc.Text())
	}
	if name == "" {
		m.setError("nothing to save")
		return m, nil
	}
	data, err := m.doc.Marshal()
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	st := m.env.Store
	c := store.Composition{Name: name, Text: m.doc.Text(), Journal: data}
	return m, func() tea.Msg {
		return SavedMsg{Name: name, Err: st.Save(context.Background(), c)}
	}
}

func (m *EditorModel) open(c store.Composition) {
	doc, err := journal.Replay(m.env.Alphabet, c.Journal)
	if err != nil {
		m.setError(fmt.Sprintf("opening %q: %v", c.Name, err))
		return
	}
	if doc.Sentence().Pressed() {
		doc.Release()
	}
	m.doc = doc
	m.name = c.Name
	m.stop()
	m.input.SetValue(doc.Text())
	m.input.CursorEnd()
	m.relayout()
	m.setStatus(fmt.Sprintf("opened %q", c.Name))
}

func (m *EditorModel) reset() {
	m.doc = m.newDocument()
	m.name = ""
	m.stop()
	m.input.SetValue("")
	m.relayout()
}

func (m *EditorModel) stop() {
	m.animating = false
	m.mousePressed = false
	m.cursorPressed = false
}

// View renders the editor.
func (m EditorModel) View() string {
	var b strings.Builder

	var tags []string
	if m.name != "" {
		tags = append(tags, m.name)
	}
	if m.pinyin {
		tags = append(tags, "pinyin")
	}
	if m.animating {
		tags = append(tags, "animating")
	}
	b.WriteString(editorTitleStyle.Render("Gallifreyan"))
	if len(tags) > 0 {
		b.WriteString(" ")
		b.WriteString(editorTagStyle.Render(runewidth.Truncate(strings.Join(tags, " · "), max(m.width-12, 1), "…")))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.frame == "" {
		b.WriteString(editorMutedStyle.Render("window too small for a preview"))
	} else {
		b.WriteString(m.frame)
	}
	b.WriteString("\n\n")

	status := runewidth.Truncate(m.status, max(m.width, 1), "…")
	if m.statusErr {
		b.WriteString(editorErrorStyle.Render(status))
	} else {
		b.WriteString(editorStatusStyle.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// FileName derives an export file name from the sentence text.
func FileName(text string, format export.Format) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_-")
	if name == "" {
		name = "gallifreyan"
	}
	return name + "." + format.String()
}

func clampPoint(p geometry.Point, width, height int) geometry.Point {
	return geometry.Pt(
		geometry.Clamp(p.X, 0, float64(width)-1),
		geometry.Clamp(p.Y, 0, float64(height)-1),
	)
}
