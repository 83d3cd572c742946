// Package complete provides the runners that archive and restore items.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

// Complete archives a live item.
type Complete struct {
	ID      string
	Service *app.Service
}

// Do completes the item and reprints today's archive.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if _, err := n.Service.Complete(n.ID); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	days := n.Service.Archive()
	if len(days) > 1 {
		days = days[:1]
	}
	pp.Archive(days, n.Service.Today())
	if n.Service.AllDone(n.Service.Today()) {
		pp.AllDone()
	}
	return nil
}

// Restore returns an archived item to its list or the planner.
type Restore struct {
	ID      string
	Service *app.Service
}

// Do restores the item and prints where it went.
func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no service")
	}
	loc, err := n.Service.Restore(n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	a := loc.Archived
	if a.Todo != nil {
		pp.List(a.Todo.Category, n.Service.Lists()[a.Todo.Category]...)
		return nil
	}
	day := n.Service.Day(a.Planner.Date)
	pp.Day(day, day.Hours(), n.Service.Today(), false)
	return nil
}
