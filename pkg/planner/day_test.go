package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

var wednesday = time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local)

func newStore() *state.Store {
	n := 0
	return state.New(
		state.WithClock(func() time.Time { return wednesday }),
		state.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func ids(items []entry.TodoItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

func TestScenarioThisWeekCoversMondayToSunday(t *testing.T) {
	s := newStore()
	item, _ := s.AddTodo(category.Errands, "post office")
	s.SetSchedule(category.Errands, item.ID, schedule.ThisWeek)
	today := s.Today()

	for d := schedule.Date("2024-03-11"); d <= "2024-03-17"; d = d.AddDays(1) {
		day := Aggregate(s.Snapshot(), d, today)
		assert.Equal(t, []string{item.ID}, ids(day.ScheduledUnassigned), d)
	}
	assert.Empty(t, Aggregate(s.Snapshot(), "2024-03-18", today).ScheduledUnassigned)
	assert.Empty(t, Aggregate(s.Snapshot(), "2024-03-10", today).ScheduledUnassigned)
}

func TestScenarioAssignedHourMovesGroup(t *testing.T) {
	s := newStore()
	item, _ := s.AddTodo(category.Work, "review")
	s.SetSchedule(category.Work, item.ID, schedule.Today)
	hour := 14
	require.True(t, s.SetScheduledHour(category.Work, item.ID, &hour))

	day := Aggregate(s.Snapshot(), "2024-03-13", s.Today())
	assert.Equal(t, []string{item.ID}, ids(day.ScheduledByHour[14]))
	assert.Empty(t, day.ScheduledUnassigned)

	require.True(t, s.SetScheduledHour(category.Work, item.ID, nil))
	day = Aggregate(s.Snapshot(), "2024-03-13", s.Today())
	assert.Empty(t, day.ScheduledByHour[14])
	assert.Equal(t, []string{item.ID}, ids(day.ScheduledUnassigned))
}

func TestAggregateGroupsPlannerByHour(t *testing.T) {
	s := newStore()
	a, _ := s.AddPlanner("2024-03-13", 9, "standup")
	b, _ := s.AddPlanner("2024-03-13", 9, "coffee")
	c, _ := s.AddPlanner("2024-03-13", 15, "1:1")
	s.AddPlanner("2024-03-14", 9, "tomorrow")

	day := Aggregate(s.Snapshot(), "2024-03-13", s.Today())
	require.Len(t, day.PlannerByHour[9], 2)
	assert.Equal(t, a.ID, day.PlannerByHour[9][0].ID)
	assert.Equal(t, b.ID, day.PlannerByHour[9][1].ID)
	require.Len(t, day.PlannerByHour[15], 1)
	assert.Equal(t, c.ID, day.PlannerByHour[15][0].ID)
	assert.Equal(t, 3, day.PendingCount())
	assert.Equal(t, []int{9, 15}, day.Hours())
}

func TestAggregateTomorrowTag(t *testing.T) {
	s := newStore()
	item, _ := s.AddTodo(category.Home, "laundry")
	s.SetSchedule(category.Home, item.ID, schedule.Tomorrow)

	assert.Empty(t, Aggregate(s.Snapshot(), "2024-03-13", s.Today()).ScheduledUnassigned)
	assert.Len(t, Aggregate(s.Snapshot(), "2024-03-14", s.Today()).ScheduledUnassigned, 1)
}

func TestAggregateNoItemInTwoGroups(t *testing.T) {
	s := newStore()
	for i := 0; i < 6; i++ {
		item, _ := s.AddTodo(category.All()[i%len(category.All())], fmt.Sprintf("t%d", i))
		s.SetSchedule(item.Category, item.ID, schedule.ThisWeek)
		if i%2 == 0 {
			h := 8 + i
			s.SetScheduledHour(item.Category, item.ID, &h)
		}
	}
	s.AddTodo(category.Work, "unscheduled")

	day := Aggregate(s.Snapshot(), "2024-03-15", s.Today())
	seen := map[string]int{}
	for _, item := range day.ScheduledUnassigned {
		seen[item.ID]++
	}
	for _, items := range day.ScheduledByHour {
		for _, item := range items {
			seen[item.ID]++
		}
	}
	assert.Len(t, seen, 6)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestAggregateFollowsCategoryOrder(t *testing.T) {
	s := newStore()
	culture, _ := s.AddTodo(category.Culture, "film")
	work, _ := s.AddTodo(category.Work, "deck")
	s.SetSchedule(category.Culture, culture.ID, schedule.Today)
	s.SetSchedule(category.Work, work.ID, schedule.Today)

	day := Aggregate(s.Snapshot(), "2024-03-13", s.Today())
	assert.Equal(t, []string{work.ID, culture.ID}, ids(day.ScheduledUnassigned))
}

func TestSlotsIncludeOutOfRangeHours(t *testing.T) {
	s := newStore()
	s.AddPlanner("2024-03-13", 6, "early run")
	s.AddPlanner("2024-03-13", 9, "standup")

	day := Aggregate(s.Snapshot(), "2024-03-13", s.Today())
	slots := day.Slots(DefaultHours())
	require.Len(t, slots, len(DefaultHours())+1)
	assert.Equal(t, 6, slots[0].Hour)
	assert.Len(t, slots[0].Planner, 1)
	assert.Equal(t, 7, slots[1].Hour)
	assert.Empty(t, slots[1].Planner)
}

func TestHourRange(t *testing.T) {
	assert.Equal(t, []int{7, 8, 9}, HourRange(7, 9))
	assert.Len(t, DefaultHours(), 16)
	assert.Nil(t, HourRange(10, 9))
	assert.Len(t, HourRange(-3, 40), 24)
}

func TestAggregateNilSnapshot(t *testing.T) {
	day := Aggregate(nil, "2024-03-13", "2024-03-13")
	assert.True(t, day.Empty())
}
