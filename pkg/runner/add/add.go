// Package add provides the runners that create todo and planner items.
package add

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/schedule"
)

// Add appends a todo to a category list.
type Add struct {
	Category category.ID
	Text     string
	Schedule schedule.Tag
	Service  *app.Service
}

// Do adds the item and reprints its list.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	item, err := n.Service.AddTodo(n.Category, n.Text)
	if err != nil {
		return err
	}
	if n.Schedule != schedule.None {
		if _, err := n.Service.Schedule(item.ID, n.Schedule); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.List(n.Category, n.Service.Lists()[n.Category]...)
	return nil
}

// Plan books a planner item at an hour.
type Plan struct {
	On      schedule.Date
	Hour    int
	Text    string
	Service *app.Service
}

// Do adds the planner item and reprints its day.
func (n *Plan) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not plan, no service")
	}
	on := n.On
	if on.IsZero() {
		on = n.Service.Today()
	}
	if n.Hour < 0 || n.Hour > 23 {
		return fmt.Errorf("hour %d is outside 0-23", n.Hour)
	}
	if _, err := n.Service.AddPlanner(on, n.Hour, n.Text); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	day := n.Service.Day(on)
	pp.Day(day, day.Hours(), n.Service.Today(), false)
	return nil
}
