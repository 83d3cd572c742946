package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/daybook/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the day planner terminal interface",
		Example: `
daybook ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.svc.Sync(cmd.Context()); err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), s.svc, s.cfg.Hours())
		},
	}

	topLevel.AddCommand(cmd)
}
