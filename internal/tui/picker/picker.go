// Package picker is an interactive terminal theme chooser.
package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeregistry/internal/selection"
)

type styles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	desc     lipgloss.Style
	help     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		item:     lipgloss.NewStyle(),
		desc:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
	Cancel key.Binding
	Help   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}, {k.Select, k.Cancel, k.Help}}
}

// Model lists the catalog and records the chosen theme.
type Model struct {
	catalog   selection.Catalog
	active    string
	cursor    int
	chosen    string
	cancelled bool
	keys      keyMap
	help      help.Model
	styles    styles
}

// New creates a picker with the cursor on the active theme.
func New(catalog selection.Catalog, active string) Model {
	m := Model{
		catalog: catalog,
		active:  active,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  newStyles(),
	}
	for i, info := range catalog {
		if info.ID == active {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.catalog)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.catalog)-1, 0)
	case key.Matches(msg, m.keys.Select):
		if len(m.catalog) > 0 {
			m.chosen = m.catalog[m.cursor].ID
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Select a theme"))
	b.WriteString("\n")

	for i, info := range m.catalog {
		pointer := "  "
		name := m.styles.item.Render(info.Name)
		if i == m.cursor {
			pointer = m.styles.cursor.Render("> ")
			name = m.styles.selected.Render(info.Name)
		}
		marker := ""
		if info.ID == m.active {
			marker = " (current)"
		}
		fmt.Fprintf(&b, "%s%s%s", pointer, name, m.styles.desc.Render(marker))
		if info.Description != "" {
			fmt.Fprintf(&b, "  %s", m.styles.desc.Render(info.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected id, or false when the picker was cancelled.
func (m Model) Chosen() (string, bool) {
	if m.cancelled || m.chosen == "" {
		return "", false
	}
	return m.chosen, true
}

// Run shows the picker on the given terminal streams.
func Run(ctx context.Context, catalog selection.Catalog, active string, in io.Reader, out io.Writer) (string, bool, error) {
	prog := tea.NewProgram(New(catalog, active),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := prog.Run()
	if err != nil {
		return "", false, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return "", false, fmt.Errorf("unexpected picker model %T", final)
	}
	id, chosen := m.Chosen()
	return id, chosen, nil
}
