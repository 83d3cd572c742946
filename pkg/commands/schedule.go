package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/add"
	rs "tableflip.dev/daybook/pkg/runner/schedule"
	"tableflip.dev/daybook/pkg/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var tag schedule.Tag

	cmd := &cobra.Command{
		Use:   "schedule <id> <today|tomorrow|this-week|none>",
		Short: "Tag a todo for today, tomorrow or this week",
		Example: `
daybook schedule 3f2a9c1e today
daybook schedule 3f2a9c1e none
`,
		ValidArgsFunction: idCompletions,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an item id and a schedule")
			}
			if err := io.TakeID(1)(cmd, args); err != nil {
				return err
			}
			var err error
			tag, err = schedule.ParseTag(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				r := rs.Schedule{ID: io.ID, Tag: tag, Service: s.svc}
				return r.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addPlan(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var hour int

	cmd := &cobra.Command{
		Use:   "plan <hour> <text>",
		Short: "Add an item to the day planner at an hour",
		Example: `
daybook plan 9 standup
daybook plan 14:00 dentist --on tomorrow
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an hour and some text")
			}
			h, err := options.ParseHour(args[0])
			if err != nil {
				return err
			}
			if h == nil {
				return errors.New("planner items need an hour")
			}
			hour = *h
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			return withService(cmd.Context(), func(s *session) error {
				if date.IsZero() {
					date = s.svc.Today()
				}
				p := add.Plan{On: date, Hour: hour, Text: strings.Join(args[1:], " "), Service: s.svc}
				return p.Do(cmd.Context())
			})
		},
	}
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	var delegate string

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a planner item to another date, or delegate any item",
		Example: `
daybook move 3f2a9c1e --on 3/20
daybook move 3f2a9c1e --delegate tomorrow
`,
		Args:              io.TakeID(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			tag, err := schedule.ParseTag(delegate)
			if err != nil {
				return oo.HandleError(err)
			}
			if date.IsZero() == (tag == schedule.None) {
				return oo.HandleError(errors.New("use exactly one of --on or --delegate"))
			}
			return withService(cmd.Context(), func(s *session) error {
				m := rs.Move{ID: io.ID, On: date, Delegate: tag, Service: s.svc}
				return m.Do(cmd.Context())
			})
		},
	}
	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVar(&delegate, "delegate", "", "Delegate to today, tomorrow or this-week.")

	topLevel.AddCommand(cmd)
}

func addAssign(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var hour *int

	cmd := &cobra.Command{
		Use:   "assign <id> <hour|none>",
		Short: "Bind a scheduled todo to an hour of the day planner",
		Example: `
daybook assign 3f2a9c1e 15
daybook assign 3f2a9c1e none
`,
		ValidArgsFunction: idCompletions,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an item id and an hour")
			}
			if err := io.TakeID(1)(cmd, args); err != nil {
				return err
			}
			var err error
			hour, err = options.ParseHour(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(s *session) error {
				a := rs.Assign{ID: io.ID, Hour: hour, Service: s.svc}
				return a.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
