// Package key prints the legend of categories and schedule tags.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/schedule"
)

// Key prints the category and schedule legend.
type Key struct{}

// Do renders both tables to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  Category"), bold.Sprint("Label"), bold.Sprint("Color"))
	for _, id := range category.All() {
		tbl.AddRow(string(id), id.Label(), id.Color())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  Schedule"), bold.Sprint("Covers"))
	for _, tag := range schedule.Tags() {
		tbl.AddRow(string(tag), covers(tag))
	}
	tbl.AddRow("none", "unscheduled")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)

	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

func covers(tag schedule.Tag) string {
	switch tag {
	case schedule.Today:
		return "the current date"
	case schedule.Tomorrow:
		return "the date after the current one"
	case schedule.ThisWeek:
		return "Monday through Sunday of the current week"
	}
	return ""
}
