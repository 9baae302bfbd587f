package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/gallifreyan/internal/animation"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Bold(true)

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

const (
	tabColours = iota
	tabAnimation
	tabCount
)

// Rows of the animation tab.
const (
	rowCycle = iota
	rowDelay
	animationRows
)

// SettingsModel edits the colour scheme and the animation settings.
type SettingsModel struct {
	env *Env

	tab     int
	row     int
	editing bool
	input   textinput.Model

	status    string
	statusErr bool

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(env *Env) SettingsModel {
	input := textinput.New()
	input.Prompt = "#"
	input.CharLimit = 6
	input.Width = 8
	return SettingsModel{env: env, input: input}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether plain keys go to the colour input.
func (m SettingsModel) Capturing() bool { return m.editing }

func (m SettingsModel) rows() int {
	if m.tab == tabColours {
		return len(render.SchemeKeys)
	}
	return animationRows
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch keyMsg.String() {
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.row = 0
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.row = 0
	case "j", "down":
		m.row = min(m.row+1, m.rows()-1)
	case "k", "up":
		m.row = max(m.row-1, 0)
	case "enter":
		if m.tab == tabColours {
			c, _ := m.env.Scheme.Get(render.SchemeKeys[m.row])
			m.input.SetValue(strings.TrimPrefix(c.Hex(), "#"))
			m.input.CursorEnd()
			m.editing = true
			cmd := m.input.Focus()
			return m, cmd
		}
	case "l", "right", "+":
		if m.tab == tabAnimation {
			return m.adjust(1)
		}
	case "h", "left", "-":
		if m.tab == tabAnimation {
			return m.adjust(-1)
		}
	case "r":
		return m.reset()
	}
	return m, nil
}

func (m SettingsModel) updateEditing(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		name := render.SchemeKeys[m.row]
		scheme := m.env.Scheme
		if err := scheme.Set(name, m.input.Value()); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.env.Scheme = scheme
		m.persistScheme(fmt.Sprintf("%s set to %s", name, mustGet(scheme, name).Hex()))
		return m, schemeChanged
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SettingsModel) adjust(dir int) (SettingsModel, tea.Cmd) {
	s := m.env.Config.Animation
	switch m.row {
	case rowCycle:
		s.Cycle = max(s.Cycle+dir*animation.CycleStep, animation.CycleMin)
	case rowDelay:
		s.Delay = max(s.Delay+dir*animation.DelayStep, animation.DelayMin)
	}
	m.env.Config.Animation = s.Normalize()
	m.setStatus("")
	return m, animationChanged
}

func (m SettingsModel) reset() (SettingsModel, tea.Cmd) {
	if m.tab == tabAnimation {
		m.env.Config.Animation = animation.Default()
		m.setStatus("animation reset")
		return m, animationChanged
	}
	m.env.Scheme.Reset()
	m.persistScheme("colours reset")
	return m, schemeChanged
}

// persistScheme writes the scheme file when one is configured.
func (m *SettingsModel) persistScheme(done string) {
	path := m.env.Config.Scheme
	if path == "" {
		m.setStatus(done)
		return
	}
	if err := config.SaveScheme(path, m.env.Scheme); err != nil {
		m.setError(err.Error())
		m.env.logger().Error("saving scheme", "path", path, "err", err)
		return
	}
	m.setStatus(done + ", saved to " + path)
}

func (m *SettingsModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *SettingsModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func schemeChanged() tea.Msg    { return SchemeChangedMsg{} }
func animationChanged() tea.Msg { return AnimationChangedMsg{} }

func mustGet(s render.Scheme, name string) render.Color {
	c, _ := s.Get(name)
	return c
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Settings"))
	b.WriteString("\n")
	if path := m.env.Config.Scheme; path != "" {
		b.WriteString(settingsPathStyle.Render("Scheme: " + path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tabs := []string{"Colours", "Animation"}
	var tabViews []string
	for i, t := range tabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(min(m.width-4, 60), 0))))
	b.WriteString("\n\n")

	if m.tab == tabColours {
		b.WriteString(m.renderColours())
	} else {
		b.WriteString(m.renderAnimation())
	}

	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(settingsErrorStyle.Render(m.status))
	} else {
		b.WriteString(settingsMutedStyle.Render(m.status))
	}
	b.WriteString("\n")

	help := "tab: switch tabs • j/k: select • enter: edit colour • r: reset"
	if m.tab == tabAnimation {
		help = "tab: switch tabs • j/k: select • ←/→: adjust • r: reset"
	}
	if m.editing {
		help = "enter: apply • esc: cancel"
	}
	b.WriteString(settingsHelpStyle.Render(help))
	return b.String()
}

func (m SettingsModel) renderColours() string {
	var b strings.Builder
	for i, name := range render.SchemeKeys {
		c := mustGet(m.env.Scheme, name)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")

		value := c.Hex()
		if m.editing && i == m.row {
			value = m.input.View()
		}
		label := fmt.Sprintf("%-12s", name)
		if i == m.row {
			label = settingsSelectedStyle.Render(label)
		} else {
			label = settingsRowStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s %s\n", label, swatch, value)
	}
	return b.String()
}

func (m SettingsModel) renderAnimation() string {
	s := m.env.Config.Animation
	rows := []string{
		fmt.Sprintf("%-12s %4d steps  (%d-%d)", "cycle", s.Cycle, animation.CycleMin, animation.CycleMax),
		fmt.Sprintf("%-12s %4d ms     (%d-%d)", "delay", s.Delay, animation.DelayMin, animation.DelayMax),
	}
	var b strings.Builder
	for i, r := range rows {
		if i == m.row {
			b.WriteString(settingsSelectedStyle.Render(r))
		} else {
			b.WriteString(settingsRowStyle.Render(r))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("one turn takes %s", s.Interval()*time.Duration(s.Cycle))))
	b.WriteString("\n")
	return b.String()
}
