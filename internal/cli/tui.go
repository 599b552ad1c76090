package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netplan/pkg/routing"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	filterActiveStyle = lipgloss.NewStyle().Foreground(colorCyan).Underline(true)
)

const (
	focusFrom = iota
	focusTo
)

// =============================================================================
// RouteBrowserModel - Interactive route browser
// =============================================================================

// RouteBrowserModel is the bubbletea model behind "routes --interactive".
// Typing edits the focused name filter; tab switches between the from and
// to filters.
type RouteBrowserModel struct {
	table routing.Table
	names map[int]string

	From    string
	To      string
	Focus   int
	Entries []routing.Entry

	Cursor int
	Offset int
	Height int
}

// NewRouteBrowserModel creates a browser over table with initial filters.
func NewRouteBrowserModel(table routing.Table, names map[int]string, from, to string) RouteBrowserModel {
	m := RouteBrowserModel{
		table:  table,
		names:  names,
		From:   from,
		To:     to,
		Height: 15,
	}
	m.refilter()
	return m
}

func (m *RouteBrowserModel) refilter() {
	m.Entries = m.table.Filter(m.names, m.From, m.To)
	m.Cursor = 0
	m.Offset = 0
}

func (m *RouteBrowserModel) filter() *string {
	if m.Focus == focusTo {
		return &m.To
	}
	return &m.From
}

func (m RouteBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RouteBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			m.Focus = 1 - m.Focus
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyBackspace:
			f := m.filter()
			if r := []rune(*f); len(r) > 0 {
				*f = string(r[:len(r)-1])
				m.refilter()
			}
		case tea.KeySpace:
			*m.filter() += " "
			m.refilter()
		case tea.KeyRunes:
			*m.filter() += string(msg.Runes)
			m.refilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m RouteBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Routes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  tab switch filter  ↑/↓ scroll  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderFilter("From", m.From, m.Focus == focusFrom))
	b.WriteString("   ")
	b.WriteString(m.renderFilter("To", m.To, m.Focus == focusTo))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  no matching routes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-3s %s", cursor, strconv.Itoa(e.Path.Hops()), routing.Format(m.names, e.Path))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	return b.String()
}

func (m RouteBrowserModel) renderFilter(label, value string, active bool) string {
	shown := value
	if active {
		shown = filterActiveStyle.Render(value + "_")
	}
	return listDimStyle.Render(label+": ") + shown
}
