package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("Categorized todo lists, an hourly day planner and an archive, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addComplete(topLevel)
	addRestore(topLevel)
	addRemove(topLevel)
	addSchedule(topLevel)
	addPlan(topLevel)
	addMove(topLevel)
	addAssign(topLevel)
	addDay(topLevel)
	addWeek(topLevel)
	addArchive(topLevel)
	addReport(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)

	for _, sub := range topLevel.Commands() {
		switch sub.Name() {
		case "version", "completion", "ui", "mcp":
			continue
		}
		base.AddOutputArg(sub, oo)
	}
}
