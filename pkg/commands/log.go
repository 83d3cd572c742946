package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/log"
)

func addDay(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"today", "log"},
		Short:   "Print the hourly planner for a day",
		Example: `
daybook day
daybook day --on tomorrow -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			return withService(cmd.Context(), func(s *session) error {
				d := log.Day{
					ShowID:  io.ShowID,
					On:      date,
					Hours:   s.cfg.Hours(),
					Service: s.svc,
				}
				return d.Do(cmd.Context())
			})
		},
	}
	options.AddShowIDArgs(cmd, io)
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

func addArchive(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Print completed items grouped by the day they were completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				a := log.Archive{ShowID: io.ShowID, Service: s.svc}
				return a.Do(cmd.Context())
			})
		},
	}
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print what was completed recently",
		Example: `
daybook report
daybook report --since 3d
daybook report --since week
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				wo.Now = s.svc.Now
				since, _, err := wo.Since()
				if err != nil {
					return err
				}
				r := log.Report{Since: since, Service: s.svc}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddWindowArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
