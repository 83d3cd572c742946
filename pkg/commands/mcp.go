package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server on stdio",
		Long: `Launch an MCP server on stdin/stdout that exposes the category lists, the day
planner and the archive as Model Context Protocol tools and resources.

Logs go to the configured log file, or stderr, never stdout.`,
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

			runner := mcp.Runner{
				Service: s.svc,
				Name:    "daybook",
				Version: version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
