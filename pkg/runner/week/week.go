// Package week provides the runner that summarizes the current week.
package week

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/schedule"
)

// Week prints the Monday-first week around today with pending counts.
type Week struct {
	Service *app.Service
}

func (n *Week) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show week, no service")
	}
	today := n.Service.Today()
	pending := make(map[schedule.Date]int, 7)
	for _, d := range schedule.WeekOf(today) {
		pending[d] = n.Service.Day(d).PendingCount()
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("This week")
	pp.Week(today, pending)
	return nil
}
