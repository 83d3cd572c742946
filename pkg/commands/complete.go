package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "completed"},
		Short:   "Complete an item and move it to the archive",
		Example: `
daybook done 3f2a9c1e
`,
		Args:              io.TakeID(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				c := complete.Complete{ID: io.ID, Service: s.svc}
				return c.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addRestore(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Return an archived item to its list or the planner",
		Example: `
daybook restore 3f2a9c1e
`,
		Args:              io.TakeID(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				r := complete.Restore{ID: io.ID, Service: s.svc}
				return r.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
