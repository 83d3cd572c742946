package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/logutils"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(daybook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(daybook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// idCompletions offers short ids of live and archived items. Errors yield no
// suggestions; the log level is forced quiet so nothing leaks into the shell.
func idCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	log, closeLog, err := logutils.New("disabled", "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer closeLog()
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	snap, err := p.Load(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var ids []string
	add := func(id, text string) {
		short := printers.ShortID(id)
		if strings.HasPrefix(short, toComplete) {
			ids = append(ids, short+"\t"+text)
		}
	}
	for _, items := range snap.Lists {
		for _, t := range items {
			add(t.ID, t.Text)
		}
	}
	for _, p := range snap.Planner {
		add(p.ID, p.Text)
	}
	for _, a := range snap.Archive {
		add(a.ID(), a.Text())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
