// Package tui provides the interactive Gallifreyan editor.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/gallifreyan/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewEditor ViewType = iota
	ViewSettings
	ViewLibrary
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main TUI model
type AppModel struct {
	env *views.Env

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	editorView   views.EditorModel
	settingsView views.SettingsModel
	libraryView  views.LibraryModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(env *views.Env) AppModel {
	menuItems := []MenuItem{
		{Label: "Editor", View: ViewEditor, Shortcut: "f1"},
		{Label: "Settings", View: ViewSettings, Shortcut: "f2"},
		{Label: "Library", View: ViewLibrary, Shortcut: "f3"},
	}

	return AppModel{
		env:          env,
		sidebarWidth: 18,
		currentView:  ViewEditor,
		menuItems:    menuItems,

		editorView:   views.NewEditorModel(env),
		settingsView: views.NewSettingsModel(env),
		libraryView:  views.NewLibraryModel(env),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.editorView.Init(), m.libraryView.Init())
}

// capturing reports whether the active view consumes plain keys.
func (m AppModel) capturing() bool {
	if m.sidebarActive {
		return false
	}
	switch m.currentView {
	case ViewEditor:
		return m.editorView.Capturing()
	case ViewSettings:
		return m.settingsView.Capturing()
	case ViewLibrary:
		return m.libraryView.Capturing()
	}
	return false
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			m.switchTo(ViewEditor)
			return m, nil
		case "f2":
			m.switchTo(ViewSettings)
			return m, nil
		case "f3":
			m.switchTo(ViewLibrary)
			return m, m.libraryView.Refresh()
		}

		if !m.capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "esc":
				m.sidebarActive = !m.sidebarActive
				return m, nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Update view sizes, inside the content padding
		contentWidth := m.contentWidth() - ContentStyle.GetHorizontalPadding()
		contentHeight := m.height - 2 - ContentStyle.GetVerticalPadding()

		m.editorView.SetSize(contentWidth, contentHeight)
		m.editorView.SetOrigin(m.sidebarWidth+1+ContentStyle.GetPaddingLeft(), ContentStyle.GetPaddingTop())
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.libraryView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case tea.MouseMsg:
		if m.currentView == ViewEditor && !m.showHelp {
			m.editorView, _ = m.editorView.Update(msg)
		}
		return m, nil

	case views.OpenCompositionMsg:
		m.editorView, _ = m.editorView.Update(msg)
		m.switchTo(ViewEditor)
		return m, nil

	case views.SavedMsg:
		var cmd tea.Cmd
		m.editorView, _ = m.editorView.Update(msg)
		m.libraryView, cmd = m.libraryView.Update(msg)
		return m, cmd

	case views.SchemeChangedMsg, views.AnimationChangedMsg:
		m.editorView, _ = m.editorView.Update(msg)
		return m, nil
	}

	// Key messages go to the active view; everything else reaches every view
	// so background work finishes while another view is shown.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewEditor:
			m.editorView, cmd = m.editorView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		case ViewLibrary:
			m.libraryView, cmd = m.libraryView.Update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.editorView, cmd = m.editorView.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsView, cmd = m.settingsView.Update(msg)
	cmds = append(cmds, cmd)
	m.libraryView, cmd = m.libraryView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewEditor:
		content = m.editorView.View()
	case ViewSettings:
		content = m.settingsView.View()
	case ViewLibrary:
		content = m.libraryView.View()
	}

	mainContent := ContentStyle.
		Width(m.contentWidth()).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// contentWidth is what the sidebar and its right border leave.
func (m AppModel) contentWidth() int {
	return max(m.width-m.sidebarWidth-1, 0)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" Gallifreyan "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + " " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}
		items = append(items, style.Render(label))
	}

	// Spacer
	usedHeight := len(items) + 4 // account for borders and help
	for range max(m.height-usedHeight-2, 0) {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  ^C Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Gallifreyan - Doctor's Cot"))
	b.WriteString("\n\n")

	section := func(title string, rows [][2]string) {
		b.WriteString(HelpSectionStyle.Render(title))
		b.WriteString("\n")
		for _, r := range rows {
			b.WriteString(HelpKeyStyle.Render(r[0]) + HelpDescStyle.Render(r[1]) + "\n")
		}
	}

	section("Global Keys", [][2]string{
		{"f1-f3", "Switch views"},
		{"esc", "Toggle sidebar focus"},
		{"?", "Show this help"},
		{"ctrl+c", "Quit"},
	})

	keys := m.editorView.Keys()
	var editor [][2]string
	for _, column := range keys.FullHelp() {
		for _, k := range column {
			if h := k.Help(); h.Key != "" {
				editor = append(editor, [2]string{h.Key, h.Desc})
			}
		}
	}
	editor = append(editor, [2]string{"mouse", "Drag glyph parts"})
	section("Editor", editor)

	section("Settings", [][2]string{
		{"tab", "Colours / animation"},
		{"enter", "Edit colour"},
		{"←/→", "Adjust animation"},
		{"r", "Reset"},
	})

	section("Library", [][2]string{
		{"enter", "Open in the editor"},
		{"d", "Delete"},
		{"r", "Refresh"},
	})

	b.WriteString("\n")
	b.WriteString(HelpHintStyle.Render("Press any key to close"))

	helpBox := HelpBoxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
