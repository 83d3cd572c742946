// Package get provides the runner that prints category lists.
package get

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/printers"
)

// Get prints one category, or all of them when Category is empty.
type Get struct {
	ShowID   bool
	Category category.ID
	Service  *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()

	lists := n.Service.Lists()
	if n.Category != "" {
		pp.List(n.Category, lists[n.Category]...)
		return nil
	}
	pp.Lists(lists)
	return nil
}
