package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectToday(t *testing.T) {
	d := MustDate("2024-03-13")
	assert.Equal(t, []Date{d}, Project(Today, d))
}

func TestProjectTomorrow(t *testing.T) {
	assert.Equal(t, []Date{"2024-03-14"}, Project(Tomorrow, "2024-03-13"))
	assert.Equal(t, []Date{"2024-03-01"}, Project(Tomorrow, "2024-02-29"))
	assert.Equal(t, []Date{"2025-01-01"}, Project(Tomorrow, "2024-12-31"))
}

func TestProjectNone(t *testing.T) {
	assert.Empty(t, Project(None, "2024-03-13"))
	assert.Empty(t, Project(Tag("someday"), "2024-03-13"))
}

func TestProjectThisWeekProperties(t *testing.T) {
	start := MustDate("2023-12-25")
	for i := 0; i < 400; i++ {
		d := start.AddDays(i)
		week := Project(ThisWeek, d)
		require.Len(t, week, 7, d)
		assert.Equal(t, time.Monday, week[0].Weekday(), d)
		assert.Contains(t, week, d)

		seen := map[Date]struct{}{}
		for j, w := range week {
			seen[w] = struct{}{}
			if j > 0 {
				assert.Equal(t, week[j-1].AddDays(1), w)
			}
		}
		assert.Len(t, seen, 7)
	}
}

func TestProjectThisWeekFromWednesday(t *testing.T) {
	week := Project(ThisWeek, "2024-03-13")
	assert.Equal(t, Date("2024-03-11"), week[0])
	assert.Equal(t, Date("2024-03-17"), week[6])
	assert.False(t, Covers(ThisWeek, "2024-03-13", "2024-03-18"))
	assert.True(t, Covers(ThisWeek, "2024-03-13", "2024-03-17"))
}

func TestProjectThisWeekOnSunday(t *testing.T) {
	week := Project(ThisWeek, "2024-03-17")
	assert.Equal(t, Date("2024-03-11"), week[0])
	assert.Equal(t, Date("2024-03-17"), week[6])
}

func TestParseTag(t *testing.T) {
	for raw, want := range map[string]Tag{
		"today":     Today,
		"Tomorrow":  Tomorrow,
		"this-week": ThisWeek,
		"week":      ThisWeek,
		"none":      None,
		"":          None,
	} {
		got, err := ParseTag(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseTag("next-year")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-13")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d.Weekday())

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("13/03/2024")
	assert.Error(t, err)
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 3, 13, 23, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, Date("2024-03-14"), DateOf(now))
}

func TestDescribe(t *testing.T) {
	today := MustDate("2024-03-13")
	assert.Equal(t, "Today", Describe(today, today))
	assert.Equal(t, "Tomorrow", Describe("2024-03-14", today))
	assert.Equal(t, "Yesterday", Describe("2024-03-12", today))
	assert.Equal(t, "Friday 15 March", Describe("2024-03-15", today))
	assert.Equal(t, "Wednesday 1 January 2025", Describe("2025-01-01", today))
}

func TestContains(t *testing.T) {
	d := MustDate("2024-03-13")
	assert.True(t, d.Contains(time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)))
	assert.False(t, d.Contains(time.Date(2024, 3, 14, 9, 0, 0, 0, time.Local)))
	assert.False(t, d.Contains(time.Time{}))
}
