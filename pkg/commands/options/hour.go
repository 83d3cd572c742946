package options

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHour reads an hour of the day from "9", "09" or "9:00". "none" and
// "-" yield nil.
func ParseHour(raw string) (*int, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "none", "-", "unassigned":
		return nil, nil
	}
	raw = strings.TrimSuffix(raw, ":00")
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h > 23 {
		return nil, fmt.Errorf("invalid hour %q: use 0-23 or none", raw)
	}
	return &h, nil
}
