// Package remove provides the runner that deletes live items.
package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

// Remove deletes a live todo or planner item permanently.
type Remove struct {
	ID      string
	Service *app.Service
}

// Do deletes the item.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	loc, err := n.Service.Delete(n.ID)
	if err != nil {
		return err
	}

	strike := color.New(color.CrossedOut, color.Faint)
	_, _ = fmt.Fprint(color.Output, "deleted ", printers.ShortID(loc.ID()), " ")
	_, _ = strike.Fprintln(color.Output, loc.Text())
	return nil
}
