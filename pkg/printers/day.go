package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/lifecycle"
	"tableflip.dev/daybook/pkg/planner"
	"tableflip.dev/daybook/pkg/schedule"
)

// Day prints the hour grid for one date followed by the unassigned tray.
func (pp *PrettyPrint) Day(day planner.Day, hours []int, today schedule.Date, allDone bool) {
	title := fmt.Sprintf("%s (%s)", schedule.Describe(day.Date, today), day.Date)
	pp.TitleWithCount(title, day.PendingCount())
	pp.NewLine()

	if allDone {
		pp.AllDone()
	}

	faint := color.New(color.Faint)
	hourColor := color.New(color.FgHiWhite)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	for _, slot := range day.Slots(hours) {
		label := faint.Sprint(HourLabel(slot.Hour))
		if len(slot.Planner) > 0 || len(slot.Scheduled) > 0 {
			label = hourColor.Sprint(HourLabel(slot.Hour))
		}
		if len(slot.Planner) == 0 && len(slot.Scheduled) == 0 {
			tbl.AddRow(label, "", faint.Sprint("·"))
			continue
		}
		for _, p := range slot.Planner {
			tbl.AddRow(label, pp.cellID(p.ID), p.Text)
			label = ""
		}
		for _, t := range slot.Scheduled {
			tbl.AddRow(label, pp.cellID(t.ID), pp.scheduledCell(t))
			label = ""
		}
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()

	pp.Title(fmt.Sprintf("Unassigned (%d)", len(day.ScheduledUnassigned)))
	if len(day.ScheduledUnassigned) == 0 {
		pp.none()
		return
	}
	for _, item := range day.ScheduledUnassigned {
		pp.todo(item, true)
	}
	pp.NewLine()
}

// AllDone prints the banner shown once everything planned for today is
// finished.
func (pp *PrettyPrint) AllDone() {
	b := color.New(color.FgGreen, color.Bold)
	_, _ = b.Fprintln(color.Output, "  ✓ All done for today!")
	pp.NewLine()
}

func (pp *PrettyPrint) cellID(id string) string {
	if !pp.ShowID {
		return ""
	}
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(ShortID(id))
}

func (pp *PrettyPrint) scheduledCell(t entry.TodoItem) string {
	tag := color.New(tagColors[t.Schedule]).Sprintf("[%s]", t.Schedule.Label())
	cat := color.New(categoryColors[t.Category], color.Faint).Sprint(t.Category.Label())
	return fmt.Sprintf("%s %s  %s", t.Text, tag, cat)
}

// Archive prints archived items grouped by completion day.
func (pp *PrettyPrint) Archive(days []lifecycle.ArchiveDay, today schedule.Date) {
	if len(days) == 0 {
		pp.Title("Archive")
		pp.none()
		return
	}
	strike := color.New(color.CrossedOut, color.Faint)
	faint := color.New(color.Faint)
	for _, d := range days {
		title := "Undated"
		if !d.Date.IsZero() {
			title = schedule.Describe(d.Date, today)
		}
		pp.TitleWithCount(title, len(d.Entries))
		for _, a := range d.Entries {
			pp.id(a.ID())
			_, _ = fmt.Fprint(color.Output, "✓ ")
			_, _ = strike.Fprint(color.Output, a.Text())
			_, _ = faint.Fprintf(color.Output, "  %s", origin(a))
			if at := a.CompletedAt(); !at.IsZero() {
				_, _ = faint.Fprintf(color.Output, "  %s", at.Local().Format("15:04"))
			}
			_, _ = fmt.Fprintln(color.Output)
		}
		pp.NewLine()
	}
}

func origin(a entry.ArchiveEntry) string {
	switch a.Origin {
	case entry.OriginCategory:
		return a.Todo.Category.Label()
	case entry.OriginPlanner:
		return fmt.Sprintf("Planner %s %s", a.Planner.Date, HourLabel(a.Planner.Hour))
	}
	return ""
}

// Week prints a Monday-first strip of the week containing today. Days with
// pending items are bold and today is underlined.
func (pp *PrettyPrint) Week(today schedule.Date, pending map[schedule.Date]int) {
	week := schedule.WeekOf(today)
	header := color.New(color.FgWhite, color.Italic)
	for _, d := range week {
		_, _ = header.Fprintf(color.Output, "%-4s", d.Weekday().String()[:2])
	}
	_, _ = fmt.Fprintln(color.Output)

	for _, d := range week {
		attrs := []color.Attribute{color.Faint, color.FgWhite}
		if pending[d] > 0 {
			attrs = []color.Attribute{color.Bold, color.FgHiWhite}
		}
		if d == today {
			attrs = append(attrs, color.Underline)
		}
		_, _ = color.New(attrs...).Fprintf(color.Output, "%2d", d.Time().Day())
		_, _ = fmt.Fprint(color.Output, "  ")
	}
	_, _ = fmt.Fprintln(color.Output)

	for _, d := range week {
		c := color.New(color.Faint)
		if n := pending[d]; n > 0 {
			_, _ = c.Fprintf(color.Output, "%2d  ", n)
		} else {
			_, _ = c.Fprint(color.Output, " ·  ")
		}
	}
	_, _ = fmt.Fprint(color.Output, "\n\n")
}

// Report prints completions in a window grouped by origin.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	title := fmt.Sprintf("Completed %s to %s", r.Since.Local().Format("Jan 2 15:04"), r.Until.Local().Format("Jan 2 15:04"))
	pp.TitleWithCount(title, r.Total)
	pp.NewLine()
	if r.Total == 0 {
		pp.none()
		return
	}
	for _, section := range r.Sections {
		name := "Planner"
		if section.Name != app.PlannerSection {
			name = category.ID(section.Name).Label()
		}
		pp.Title(name)
		for _, item := range section.Entries {
			pp.id(item.Entry.ID())
			_, _ = fmt.Fprintf(color.Output, "✓ %s", item.Entry.Text())
			_, _ = color.New(color.Faint).Fprintf(color.Output, "  %s\n", item.CompletedAt.Local().Format("Mon 15:04"))
		}
		pp.NewLine()
	}
}
