package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/prompt"
	"tableflip.dev/daybook/pkg/runner/add"
	"tableflip.dev/daybook/pkg/schedule"
)

func addAdd(topLevel *cobra.Command) {
	var (
		cat category.ID
		tag string
	)
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <category> <text>",
		Short: "Add a todo to a category list",
		Example: `
daybook add errands buy milk
daybook add work write the report --schedule today
daybook add -i
`,
		ValidArgs: categoryNames(),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				if i.Prompting() {
					return nil
				}
				return errors.New("requires a category and some text")
			}
			var err error
			cat, err = category.Parse(args[0])
			if err != nil {
				return err
			}
			if len(args) < 2 && !i.Prompting() {
				return errors.New("requires some text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schedule.ParseTag(tag)
			if err != nil {
				return oo.HandleError(err)
			}
			return withService(cmd.Context(), func(s *session) error {
				text := ""
				if len(args) > 1 {
					text = strings.Join(args[1:], " ")
				}
				if text == "" {
					p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
					if cat == "" {
						if cat, err = p.Category(s.svc.Counts()); err != nil {
							return err
						}
					}
					if text, err = p.Text("Text"); err != nil {
						return err
					}
					if tag == "" {
						if t, err = p.Tag(); err != nil {
							return err
						}
					}
				}
				a := add.Add{
					Category: cat,
					Text:     text,
					Schedule: t,
					Service:  s.svc,
				}
				return a.Do(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&tag, "schedule", "", "Schedule the new item: today, tomorrow or this-week.")
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func categoryNames() []string {
	names := make([]string, 0, len(category.All()))
	for _, id := range category.All() {
		names = append(names, string(id))
	}
	return names
}
