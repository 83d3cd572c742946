// Package log provides the runners for the day view, the archive and the
// completion report.
package log

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/schedule"
)

// Day prints the hour grid for one date.
type Day struct {
	ShowID  bool
	On      schedule.Date
	Hours   []int
	Service *app.Service
}

func (n *Day) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show day, no service")
	}
	on := n.On
	if on.IsZero() {
		on = n.Service.Today()
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Day(n.Service.Day(on), n.Hours, n.Service.Today(), n.Service.AllDone(on))
	return nil
}

// Archive prints archived items grouped by completion day.
type Archive struct {
	ShowID  bool
	Service *app.Service
}

func (n *Archive) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show archive, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Archive(n.Service.Archive(), n.Service.Today())
	return nil
}

// Report prints what was completed between Since and now.
type Report struct {
	Since   time.Time
	Service *app.Service
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	until := n.Service.Now()
	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Report(n.Service.Report(n.Since, until))
	return nil
}
