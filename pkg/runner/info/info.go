// Package info prints where daybook keeps its configuration and data.
package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/config"
)

type Info struct {
	Config  *config.Settings
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output
	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.log-level:", n.Config.LogLevel)
	_, _ = fmt.Fprintf(out, "Config.hours: %d-%d\n", n.Config.FirstHour, n.Config.LastHour)

	if n.Service == nil {
		return fmt.Errorf("failed to open the daybook")
	}

	snap := n.Service.Snapshot()
	_, _ = fmt.Fprintln(out, "Lists:")
	counts := snap.Counts()
	for _, id := range category.All() {
		_, _ = fmt.Fprintf(out, "  %-12s %d\n", id, counts[id])
	}
	_, _ = fmt.Fprintf(out, "Planner items: %d\n", len(snap.Planner))
	_, _ = fmt.Fprintf(out, "Archived: %d\n", len(snap.Archive))

	if backups := n.Service.Backups(ctx); len(backups) > 0 {
		warn := color.New(color.FgYellow)
		_, _ = warn.Fprintf(out, "Corrupt state backups: %d\n", len(backups))
		for _, key := range backups {
			_, _ = fmt.Fprintf(out, "  %s\n", key)
		}
	}
	return nil
}
