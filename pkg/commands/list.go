package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list [category]",
		Aliases: []string{"ls", "get"},
		Short:   "Print category lists with their counts",
		Example: `
daybook list
daybook list work --show-id
`,
		ValidArgs: categoryNames(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cat category.ID
			if len(args) == 1 {
				var err error
				if cat, err = category.Parse(args[0]); err != nil {
					return oo.HandleError(err)
				}
			}
			return withService(cmd.Context(), func(s *session) error {
				g := get.Get{ShowID: io.ShowID, Category: cat, Service: s.svc}
				return g.Do(cmd.Context())
			})
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
