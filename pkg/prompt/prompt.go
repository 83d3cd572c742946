// Package prompt asks for the pieces of a new item on an interactive
// terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/schedule"
)

// ErrEmpty is returned by the text validator for blank input.
var ErrEmpty = errors.New("text can not be empty")

// Prompter reads answers from In and draws the prompts to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type choice struct {
	Name  string
	Label string
	Hint  string
}

// Category asks which list an item belongs to. counts annotates each
// choice with how many live items the list holds.
func (p *Prompter) Category(counts map[category.ID]int) (category.ID, error) {
	ids := category.All()
	items := make([]choice, 0, len(ids))
	for _, id := range ids {
		items = append(items, choice{Name: string(id), Label: id.Label(), Hint: countHint(counts[id])})
	}

	i, err := p.pick("Category", items)
	if err != nil {
		return "", err
	}
	return ids[i], nil
}

// Tag asks whether the new item should be scheduled.
func (p *Prompter) Tag() (schedule.Tag, error) {
	tags := []schedule.Tag{schedule.None, schedule.Today, schedule.Tomorrow, schedule.ThisWeek}
	items := make([]choice, 0, len(tags))
	for _, t := range tags {
		c := choice{Name: string(t), Label: t.Label()}
		if t == schedule.None {
			c = choice{Name: "none", Label: "Not scheduled"}
		}
		items = append(items, c)
	}

	i, err := p.pick("Schedule", items)
	if err != nil {
		return schedule.None, err
	}
	return tags[i], nil
}

// Text asks for the item text. Surrounding whitespace is trimmed.
func (p *Prompter) Text(label string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  ValidateText,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopCloser{p.Out},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// ValidateText rejects blank item text.
func ValidateText(input string) error {
	if strings.TrimSpace(input) == "" {
		return ErrEmpty
	}
	return nil
}

func (p *Prompter) pick(label string, items []choice) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Hint | faint }}",
		Inactive: "   {{ .Label }} {{ .Hint | faint }}",
		Selected: "{{ .Label | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      len(items),
		Searcher:  searcher(items),
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopCloser{p.Out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("%s prompt: %w", strings.ToLower(label), err)
	}
	return i, nil
}

func searcher(items []choice) func(string, int) bool {
	return func(input string, index int) bool {
		input = normalize(input)
		c := items[index]
		return strings.Contains(normalize(c.Label), input) || strings.Contains(normalize(c.Name), input)
	}
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func countHint(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "(1 item)"
	default:
		return fmt.Sprintf("(%d items)", n)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
