package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/schedule"
)

func TestGetOn(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 12, 5, 9, 0, 0, 0, time.Local) }
	tests := map[string]schedule.Date{
		"":          "",
		"today":     "2024-12-05",
		"Tomorrow":  "2024-12-06",
		"2024-3-13": "2024-03-13",
		"12/24":     "2024-12-24",
		"1/3":       "2025-01-03",
	}
	for in, want := range tests {
		o := &OnOptions{OnString: in, Now: now}
		got, err := o.GetOn()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := (&OnOptions{OnString: "someday", Now: now}).GetOn()
	assert.Error(t, err)
}

func TestParseHour(t *testing.T) {
	h, err := ParseHour("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, *h)

	h, err = ParseHour("none")
	require.NoError(t, err)
	assert.Nil(t, h)

	_, err = ParseHour("24")
	assert.Error(t, err)
	_, err = ParseHour("noon")
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	d, err := ParseWindow("1w2d6h30m")
	require.NoError(t, err)
	assert.Equal(t, (9*24+6)*time.Hour+30*time.Minute, d)
	assert.Equal(t, "1w2d6h30m", FormatWindow(d))

	for _, bad := range []string{"", "noop", "3", "d", "2y", "0d"} {
		_, err := ParseWindow(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "0m", FormatWindow(0))
}

func TestWindowSince(t *testing.T) {
	// Wednesday.
	at := time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)
	now := func() time.Time { return at }

	since, label, err := (&WindowOptions{Now: now}).Since()
	require.NoError(t, err)
	assert.Equal(t, at.Add(-7*24*time.Hour), since)
	assert.Equal(t, "1w", label)

	since, label, err = (&WindowOptions{Window: "today", Now: now}).Since()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local), since)
	assert.Equal(t, "today", label)

	since, _, err = (&WindowOptions{Window: "week", Now: now}).Since()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), since)

	_, _, err = (&WindowOptions{Window: "soon", Now: now}).Since()
	assert.Error(t, err)
}
