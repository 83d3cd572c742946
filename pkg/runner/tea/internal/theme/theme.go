package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/daybook/pkg/category"
)

// Theme centralizes Lip Gloss styles for the day planner UI.
type Theme struct {
	Header HeaderTheme
	Grid   GridTheme
	Footer FooterTheme
}

// HeaderTheme styles the date title, the week strip and the all-done banner.
type HeaderTheme struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Banner  lipgloss.Style
}

// GridTheme styles hour rows and the unassigned tray.
type GridTheme struct {
	Hour      lipgloss.Style
	HourBusy  lipgloss.Style
	Rule      lipgloss.Style
	Empty     lipgloss.Style
	Planner   lipgloss.Style
	Scheduled lipgloss.Style
	Tag       lipgloss.Style
	Tray      lipgloss.Style
	Cursor    lipgloss.Style
	Hover     lipgloss.Style
	Dragged   lipgloss.Style
	Ghost     lipgloss.Style

	dark bool
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
}

// Default returns the built-in theme. dark selects colors for a dark
// terminal background.
func Default(dark bool) Theme {
	hover := lipgloss.Color("153")
	cursor := lipgloss.Color("254")
	if dark {
		hover = lipgloss.Color("24")
		cursor = lipgloss.Color("237")
	}

	return Theme{
		Header: HeaderTheme{
			Title:   lipgloss.NewStyle().Bold(true).Underline(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Banner:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		},
		Grid: GridTheme{
			Hour:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			HourBusy:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
			Rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Planner:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			Scheduled: lipgloss.NewStyle(),
			Tag:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Tray:      lipgloss.NewStyle().Bold(true),
			Cursor:    lipgloss.NewStyle().Background(cursor),
			Hover:     lipgloss.NewStyle().Background(hover),
			Dragged:   lipgloss.NewStyle().Faint(true).Italic(true),
			Ghost:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			dark:      dark,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}

// Category returns the accent style for a category, its hex color softened
// toward the background so labels stay readable.
func (g GridTheme) Category(id category.ID) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Soften(id.Color(), g.dark)))
}

// Soften blends hex a quarter of the way toward the terminal background.
// Unparseable input is returned as is.
func Soften(hex string, dark bool) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg := colorful.Color{R: 1, G: 1, B: 1}
	if dark {
		bg = colorful.Color{}
	}
	return c.BlendLab(bg, 0.25).Clamped().Hex()
}
