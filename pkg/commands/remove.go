package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "strike"},
		Short:   "Delete a live item permanently",
		Example: `
daybook delete 3f2a9c1e
`,
		Args:              io.TakeID(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				d := remove.Remove{ID: io.ID, Service: s.svc}
				return d.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
