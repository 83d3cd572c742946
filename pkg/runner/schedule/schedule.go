// Package schedule provides the runners that move items in time.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	sched "tableflip.dev/daybook/pkg/schedule"
)

// Schedule sets or clears a todo's schedule tag.
type Schedule struct {
	ID      string
	Tag     sched.Tag
	Service *app.Service
}

func (n *Schedule) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not schedule, no service")
	}
	loc, err := n.Service.Schedule(n.ID, n.Tag)
	if err != nil {
		return err
	}
	if n.Tag == sched.None {
		return report(loc, "unscheduled")
	}
	return report(loc, "scheduled for "+n.Tag.Label())
}

// Move reschedules a planner item to a date, or delegates any item with a
// schedule tag.
type Move struct {
	ID       string
	On       sched.Date
	Delegate sched.Tag
	Service  *app.Service
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	var (
		loc app.Location
		err error
	)
	if n.Delegate != sched.None {
		loc, err = n.Service.Delegate(n.ID, n.Delegate)
	} else {
		loc, err = n.Service.Reschedule(n.ID, n.On)
	}
	if err != nil {
		return err
	}

	if loc.Kind == app.KindPlanner {
		moved, _ := n.Service.Snapshot().FindPlanner(loc.ID())
		return report(loc, "moved to "+sched.Describe(moved.Date, n.Service.Today())+" "+printers.HourLabel(moved.Hour))
	}
	return report(loc, "delegated to "+n.Delegate.Label())
}

// Assign binds a scheduled todo to an hour, or unbinds it when Hour is nil.
type Assign struct {
	ID      string
	Hour    *int
	Service *app.Service
}

func (n *Assign) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not assign, no service")
	}
	loc, err := n.Service.AssignHour(n.ID, n.Hour)
	if err != nil {
		return err
	}
	if n.Hour == nil {
		return report(loc, "moved to unassigned")
	}
	return report(loc, "assigned to "+printers.HourLabel(*n.Hour))
}

func report(loc app.Location, what string) error {
	_, err := fmt.Fprintf(color.Output, "%s %s %s\n", printers.ShortID(loc.ID()), loc.Text(), what)
	return err
}
