package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show item ids.")
}

// TakeID is a cobra Args func that reads the item id from the first argument.
func (o *IDOptions) TakeID(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.New("requires an item id")
		}
		o.ID = strings.TrimSpace(args[0])
		return nil
	}
}
