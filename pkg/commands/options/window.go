package options

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/schedule"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var windowUnits = []struct {
	label string
	value time.Duration
}{
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
}

// WindowOptions selects how far back a report looks.
type WindowOptions struct {
	Window string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Window, "since", DefaultWindow,
		`How far back to look, example: --since=3d, --since=1w2d, --since=today, --since=week.`)
}

// Since resolves the window to its start time and a compact label. "today"
// starts at local midnight and "week" on this week's Monday.
func (o *WindowOptions) Since() (time.Time, string, error) {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	at := now()

	raw := strings.ToLower(strings.TrimSpace(o.Window))
	switch raw {
	case "":
		raw = DefaultWindow
	case "today":
		return schedule.DateOf(at).Time(), "today", nil
	case "week", "this-week":
		return schedule.WeekOf(schedule.DateOf(at))[0].Time(), "this week", nil
	}

	d, err := ParseWindow(raw)
	if err != nil {
		return time.Time{}, "", err
	}
	return at.Add(-d), FormatWindow(d), nil
}

// ParseWindow reads a compact duration such as "3d" or "1w2d6h". Units are
// w, d, h and m.
func ParseWindow(raw string) (time.Duration, error) {
	var total time.Duration
	rest := strings.ReplaceAll(strings.ToLower(raw), " ", "")
	if rest == "" {
		return 0, fmt.Errorf("invalid window %q", raw)
	}
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i == len(rest) {
			return 0, fmt.Errorf("invalid window %q: use a number then w, d, h or m", raw)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", raw, err)
		}
		unit, ok := windowUnit(rest[i])
		if !ok {
			return 0, fmt.Errorf("invalid window %q: unknown unit %q", raw, rest[i])
		}
		total += time.Duration(n) * unit
		rest = rest[i+1:]
	}
	if total <= 0 {
		return 0, fmt.Errorf("invalid window %q: must be greater than zero", raw)
	}
	return total, nil
}

func windowUnit(c byte) (time.Duration, bool) {
	for _, u := range windowUnits {
		if u.label[0] == c {
			return u.value, true
		}
	}
	return 0, false
}

// FormatWindow renders d with the largest units first, for example 1w2d.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range windowUnits {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
