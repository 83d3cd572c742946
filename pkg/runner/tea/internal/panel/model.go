// Package panel renders the framed hour picker.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Model renders a framed panel with a title and selectable body lines.
type Model struct {
	title         string
	lines         []string
	selected      int
	frameStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	bodyStyle     lipgloss.Style
	selectedStyle lipgloss.Style
}

// New returns a panel model with sensible defaults.
func New() Model {
	return Model{
		frameStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		titleStyle:    lipgloss.NewStyle().Bold(true),
		bodyStyle:     lipgloss.NewStyle(),
		selectedStyle: lipgloss.NewStyle().Reverse(true),
	}
}

// SetContent updates the panel title and body lines and resets the
// selection to the first line.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
	m.selected = 0
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
	m.selected = 0
}

// Len is the number of body lines.
func (m Model) Len() int { return len(m.lines) }

// Selected is the highlighted body line.
func (m Model) Selected() int { return m.selected }

// Move shifts the selection by delta, wrapping at either end.
func (m *Model) Move(delta int) {
	n := len(m.lines)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// LineAt maps a row offset from the panel's top edge to a body line.
func (m Model) LineAt(offset int) (int, bool) {
	first := 1
	if m.title != "" {
		first++
	}
	i := offset - first
	if i < 0 || i >= len(m.lines) {
		return 0, false
	}
	return i, true
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for i, line := range m.lines {
		style := m.bodyStyle
		if i == m.selected {
			style = m.selectedStyle
		}
		content = append(content, style.Render(line))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}
