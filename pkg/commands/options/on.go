package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/schedule"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects a date.
type OnOptions struct {
	OnString string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-3-13", --on="3/13", --on=tomorrow.`)
}

// GetOn returns the selected date, or the zero date when none was given.
func (o *OnOptions) GetOn() (schedule.Date, error) {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	today := schedule.DateOf(now())

	raw := strings.ToLower(strings.TrimSpace(o.OnString))
	switch raw {
	case "":
		return "", nil
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	t, err := time.Parse(layoutISO, raw)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, raw)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: use 2024-3-13, 3/13, today or tomorrow", o.OnString)
		}
		t = t.AddDate(now().Year(), 0, 0)
		d := schedule.DateOf(t)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if d.Before(today) {
			d = schedule.DateOf(t.AddDate(1, 0, 0))
		}
		return d, nil
	}
	return schedule.DateOf(t), nil
}
