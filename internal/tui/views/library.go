package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/gallifreyan/internal/store"
)

// Library view styles
var (
	libTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	libPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			MarginBottom(1)

	libNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	libTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	libSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	libHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	libErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)
)

type libraryLoadedMsg struct {
	items []store.Composition
	err   error
}

type libraryDeletedMsg struct {
	name string
	err  error
}

type libraryErrMsg struct{ err error }

// LibraryModel lists the stored compositions.
type LibraryModel struct {
	env      *Env
	items    []store.Composition
	selected int
	offset   int // For scrolling

	confirmDelete bool
	status        string
	err           error

	width  int
	height int
}

// NewLibraryModel creates a new library model.
func NewLibraryModel(env *Env) LibraryModel {
	return LibraryModel{env: env}
}

// SetSize updates the view dimensions.
func (m *LibraryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether the view waits for a confirmation key.
func (m LibraryModel) Capturing() bool { return m.confirmDelete }

// Init loads the list.
func (m LibraryModel) Init() tea.Cmd { return m.Refresh() }

// Refresh reloads the list from the store.
func (m LibraryModel) Refresh() tea.Cmd {
	st := m.env.Store
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := st.List(context.Background())
		return libraryLoadedMsg{items: items, err: err}
	}
}

// Update handles messages.
func (m LibraryModel) Update(msg tea.Msg) (LibraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryLoadedMsg:
		m.err = msg.err
		m.items = msg.items
		m.selected = max(min(m.selected, len(m.items)-1), 0)
		m.adjustScroll()
		return m, nil

	case libraryDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %q", msg.name)
		return m, m.Refresh()

	case libraryErrMsg:
		m.err = msg.err
		return m, nil

	case SavedMsg:
		return m, m.Refresh()

	case tea.KeyMsg:
		if m.confirmDelete {
			m.confirmDelete = false
			if msg.String() == "y" {
				return m, m.delete()
			}
			m.status = ""
			return m, nil
		}

		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.items)-1 {
				m.selected++
				m.adjustScroll()
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.adjustScroll()
			}
		case "g", "home":
			m.selected = 0
			m.adjustScroll()
		case "G", "end":
			m.selected = max(len(m.items)-1, 0)
			m.adjustScroll()
		case "enter":
			return m, m.open()
		case "d", "delete":
			if len(m.items) > 0 {
				m.confirmDelete = true
				m.status = fmt.Sprintf("delete %q? y/n", m.items[m.selected].Name)
			}
		case "r":
			m.status = ""
			return m, m.Refresh()
		}
	}
	return m, nil
}

func (m LibraryModel) current() (string, bool) {
	if m.env.Store == nil || len(m.items) == 0 {
		return "", false
	}
	return m.items[m.selected].Name, true
}

// open fetches the full composition, journal included, for the editor.
func (m LibraryModel) open() tea.Cmd {
	name, ok := m.current()
	if !ok {
		return nil
	}
	st := m.env.Store
	return func() tea.Msg {
		c, err := st.Get(context.Background(), name)
		if err != nil {
			return libraryErrMsg{err: err}
		}
		return OpenCompositionMsg{Composition: c}
	}
}

func (m LibraryModel) delete() tea.Cmd {
	name, ok := m.current()
	if !ok {
		return nil
	}
	st := m.env.Store
	return func() tea.Msg {
		return libraryDeletedMsg{name: name, err: st.Delete(context.Background(), name)}
	}
}

func (m *LibraryModel) visibleHeight() int {
	return max(m.height-10, 5) // Account for header, path, help
}

func (m *LibraryModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the library.
func (m LibraryModel) View() string {
	var b strings.Builder

	b.WriteString(libTitleStyle.Render("Library"))
	b.WriteString("\n")
	if m.env.Store == nil {
		b.WriteString(libErrorStyle.Render("No library configured"))
		return b.String()
	}
	b.WriteString(libPathStyle.Render(m.env.Config.Library))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(libErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	rule := lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(min(m.width-4, 60), 0)))
	b.WriteString(rule)
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(libHelpStyle.Render("  (nothing saved yet, ctrl+s in the editor saves)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleHeight(), len(m.items))
	textWidth := max(m.width-42, 8)
	for i := m.offset; i < end; i++ {
		c := m.items[i]
		name := runewidth.FillRight(runewidth.Truncate(c.Name, 20, "…"), 20)
		text := runewidth.Truncate(c.Text, textWidth, "…")
		when := c.Updated.Format("2006-01-02 15:04")

		prefix := "  "
		if i == m.selected {
			prefix = "> "
			b.WriteString(prefix + libSelectedStyle.Render(name+" "+text) + " " + when + "\n")
			continue
		}
		b.WriteString(prefix + libNameStyle.Render(name) + " " + libTextStyle.Render(text) + " " + libPathStyle.UnsetMarginBottom().Render(when) + "\n")
	}
	if len(m.items) > m.visibleHeight() {
		b.WriteString(libPathStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.items))))
		b.WriteString("\n")
	}

	b.WriteString(rule)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(libHelpStyle.Render("enter: open • d: delete • r: refresh • j/k: select"))
	return b.String()
}
