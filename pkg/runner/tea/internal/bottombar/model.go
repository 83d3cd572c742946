package bottombar

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModePicker
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModePicker:
		return "PICK"
	case ModeDragging:
		return "DRAG"
	}
	return "NORMAL"
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode       Mode
	helpLine   string
	statusLine string
	prompt     string
	inputView  string

	helpStyle   lipgloss.Style
	statusStyle lipgloss.Style
	modeStyle   lipgloss.Style
}

// New returns a footer model with sensible defaults.
func New() Model {
	return Model{
		mode:        ModeNormal,
		helpStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		modeStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	}
}

// SetStyles overrides the default styles.
func (m *Model) SetStyles(help, status, mode lipgloss.Style) {
	m.helpStyle = help
	m.statusStyle = status
	m.modeStyle = mode
}

// SetMode updates the visual mode. Leaving insert mode drops the input line.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeInsert {
		m.prompt = ""
		m.inputView = ""
	}
}

// Mode reports the current mode.
func (m Model) Mode() Mode { return m.mode }

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// Status returns the current status message.
func (m Model) Status() string { return m.statusLine }

// UpdateInput refreshes the rendered input line shown in insert mode.
func (m *Model) UpdateInput(prompt, view string) {
	m.prompt = prompt
	m.inputView = view
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.mode == ModeInsert {
		return 2
	}
	return 1
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	status := m.renderStatusLine()
	if m.mode == ModeInsert {
		return m.prompt + m.inputView + "\n" + status, 2
	}
	return status, 1
}

func (m Model) renderStatusLine() string {
	segments := []string{m.modeStyle.Render("[" + m.mode.String() + "]")}
	if m.statusLine != "" {
		segments = append(segments, m.statusStyle.Render(m.statusLine))
	}
	if m.helpLine != "" {
		segments = append(segments, m.helpStyle.Render(m.helpLine))
	}
	return strings.Join(segments, " │ ")
}
