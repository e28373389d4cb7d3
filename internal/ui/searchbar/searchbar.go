// Package searchbar implements the search input with local
// autocomplete. Suggestions are filtered from the in-memory catalog
// index on every keystroke — the list is local and bounded, so no
// debounce is needed (a remote suggestion source would need one).
package searchbar

import (
	"strings"

	"github.com/auchitya/recengine/internal/api"
	"github.com/auchitya/recengine/internal/catalog"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event reports what the user did during an Update. At most one field
// is set.
type Event struct {
	Submit    string // free text submitted with enter
	ProductID string // suggestion chosen: navigate straight to detail
}

// Model is the search bar with its suggestion dropdown.
type Model struct {
	input       textinput.Model
	index       *catalog.Index
	suggestions []api.CatalogEntry
	open        bool
	cursor      int // -1 = typing, no suggestion highlighted
	width       int
}

// New creates a search bar.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search product (e.g. iPhone)..."
	ti.Prompt = "🔍 "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5a4")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9"))
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5a4"))
	ti.CharLimit = 80
	ti.Focus()

	return Model{
		input:  ti,
		cursor: -1,
	}
}

// SetIndex swaps in the catalog index used for suggestions. A nil
// index silently degrades to no suggestions.
func (m *Model) SetIndex(ix *catalog.Index) {
	m.index = ix
}

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = w - 8
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the input text without opening the dropdown.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
	m.suggestions = nil
	m.open = false
	m.cursor = -1
}

// Open reports whether the dropdown is showing.
func (m Model) Open() bool {
	return m.open
}

// Suggestions returns the current suggestion list.
func (m Model) Suggestions() []api.CatalogEntry {
	return m.suggestions
}

// Dismiss closes the dropdown unconditionally. Called for any
// interaction outside the search bar, regardless of query length.
func (m *Model) Dismiss() {
	m.open = false
	m.cursor = -1
}

// Focus gives keyboard focus to the input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus and closes the dropdown.
func (m *Model) Blur() {
	m.input.Blur()
	m.Dismiss()
}

// Focused reports whether the input has keyboard focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Update handles input and returns the resulting event, if any.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, Event) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.open {
				m.Dismiss()
				return m, nil, Event{}
			}

		case "down", "ctrl+n":
			if m.open && len(m.suggestions) > 0 {
				if m.cursor < len(m.suggestions)-1 {
					m.cursor++
				}
				return m, nil, Event{}
			}

		case "up", "ctrl+p":
			if m.open && m.cursor >= 0 {
				m.cursor--
				return m, nil, Event{}
			}

		case "enter":
			// A highlighted suggestion navigates straight to that
			// product; plain enter submits the typed text.
			if m.open && m.cursor >= 0 && m.cursor < len(m.suggestions) {
				id := m.suggestions[m.cursor].ProductID
				m.Dismiss()
				return m, nil, Event{ProductID: id}
			}
			query := strings.TrimSpace(m.input.Value())
			m.Dismiss()
			return m, nil, Event{Submit: query}
		}
	}

	oldValue := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != oldValue {
		m.refilter()
	}

	return m, cmd, Event{}
}

// refilter recomputes suggestions for the current text. Open follows
// the length policy: more than two characters opens the dropdown,
// anything shorter clears and closes it.
func (m *Model) refilter() {
	query := m.input.Value()
	if len(query) <= catalog.MinQueryLen {
		m.suggestions = nil
		m.open = false
		m.cursor = -1
		return
	}
	m.suggestions = m.index.Suggest(query)
	m.open = true
	m.cursor = -1
}

// View renders the input and, when open, the dropdown.
func (m Model) View() string {
	var b strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#0ea5a4")).
		Padding(0, 1).
		Width(max(m.width-2, 20))

	b.WriteString(boxStyle.Render(m.input.View()))

	if m.open && len(m.suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderDropdown())
	}

	return b.String()
}

func (m Model) renderDropdown() string {
	itemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#c9d1d9")).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0ea5a4")).
		Background(lipgloss.Color("#21262d")).
		Bold(true).
		Padding(0, 1)
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#30363d")).
		Width(max(m.width-2, 20))

	var rows []string
	for i, s := range m.suggestions {
		name := truncate(s.ProductName, max(m.width-10, 10))
		if i == m.cursor {
			rows = append(rows, selectedStyle.Render("› "+name))
		} else {
			rows = append(rows, itemStyle.Render("  "+name))
		}
	}

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#484f58")).
		Render("  ↑↓ highlight  enter open  esc dismiss")
	rows = append(rows, hint)

	return containerStyle.Render(strings.Join(rows, "\n"))
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 2 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
