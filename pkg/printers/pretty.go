package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/schedule"
)

// ShortIDLen is how many characters of an id are printed.
const ShortIDLen = 8

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", ShortIDLen+2)

	categoryColors = map[category.ID]color.Attribute{
		category.Work:       color.FgBlue,
		category.Home:       color.FgCyan,
		category.MaybeLater: color.FgYellow,
		category.Ideas:      color.FgMagenta,
		category.Errands:    color.FgGreen,
		category.Shopping:   color.FgHiMagenta,
		category.Culture:    color.FgHiBlue,
	}

	tagColors = map[schedule.Tag]color.Attribute{
		schedule.Today:    color.FgRed,
		schedule.Tomorrow: color.FgHiYellow,
		schedule.ThisWeek: color.FgMagenta,
	}
)

// ShortID trims id for display.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(color.Output, spacing)
	}
	_, _ = t.Fprintln(color.Output, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(color.Output, spacing)
	}
	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " item")
	default:
		_, _ = c.Fprintln(color.Output, " items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(color.Output, spacing)
	}
	_, _ = f.Fprint(color.Output, " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	short := ShortID(id)
	_, _ = y.Fprint(color.Output, short)
	_, _ = y.Fprint(color.Output, strings.Repeat(" ", len(spacing)-len(short)))
}

// Lists prints every category with its live items.
func (pp *PrettyPrint) Lists(lists map[category.ID][]entry.TodoItem) {
	for _, id := range category.All() {
		pp.List(id, lists[id]...)
	}
}

// List prints one category.
func (pp *PrettyPrint) List(id category.ID, items ...entry.TodoItem) {
	title := color.New(categoryColors[id], color.Bold)
	if pp.ShowID {
		_, _ = fmt.Fprint(color.Output, spacing)
	}
	_, _ = title.Fprint(color.Output, "● ")
	pp.TitleWithCount(id.Label(), len(items))
	pp.Todos(items...)
}

// Todos prints todo items with their schedule and hour binding.
func (pp *PrettyPrint) Todos(items ...entry.TodoItem) {
	if len(items) == 0 {
		pp.none()
		return
	}
	for _, item := range items {
		pp.todo(item, false)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) todo(item entry.TodoItem, showCategory bool) {
	pp.id(item.ID)
	_, _ = fmt.Fprint(color.Output, "• ", item.Text)
	if showCategory {
		c := color.New(categoryColors[item.Category], color.Faint)
		_, _ = c.Fprintf(color.Output, "  %s", item.Category.Label())
	}
	if item.Scheduled() {
		t := color.New(tagColors[item.Schedule])
		_, _ = t.Fprintf(color.Output, "  [%s]", item.Schedule.Label())
	}
	if item.ScheduledHour != nil {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(color.Output, "  @%s", HourLabel(*item.ScheduledHour))
	}
	_, _ = fmt.Fprintln(color.Output)
}

// HourLabel renders an hour as 09:00.
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
