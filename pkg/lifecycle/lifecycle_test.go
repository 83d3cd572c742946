package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

type fixture struct {
	now   time.Time
	store *state.Store
	mgr   *Manager
}

func newFixture() *fixture {
	f := &fixture{now: time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local)}
	n := 0
	f.store = state.New(
		state.WithClock(func() time.Time { return f.now }),
		state.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	f.mgr = New(f.store)
	return f
}

func TestCompleteAndRestoreTodo(t *testing.T) {
	f := newFixture()
	item, _ := f.store.AddTodo(category.Shopping, "eggs")

	require.True(t, f.mgr.CompleteTodo(category.Shopping, item.ID))
	assert.Empty(t, f.store.Snapshot().List(category.Shopping))
	require.Len(t, f.store.Snapshot().Archive, 1)

	require.True(t, f.mgr.Restore(item.ID))
	list := f.store.Snapshot().List(category.Shopping)
	require.Len(t, list, 1)
	assert.False(t, list[0].Completed)
	assert.Nil(t, list[0].CompletedAt)
}

func TestCompletePlannerMissingIsNoOp(t *testing.T) {
	f := newFixture()
	assert.False(t, f.mgr.CompletePlanner("missing"))
	assert.False(t, f.mgr.Restore("missing"))
}

func TestAllDoneNeedsACompletionToday(t *testing.T) {
	f := newFixture()
	today := f.store.Today()

	assert.False(t, AllDone(f.store.Snapshot(), today, today), "nothing ever existed")

	p, _ := f.store.AddPlanner(today, 9, "standup")
	assert.False(t, AllDone(f.store.Snapshot(), today, today), "work remains")

	f.mgr.CompletePlanner(p.ID)
	assert.True(t, AllDone(f.store.Snapshot(), today, today))
	assert.False(t, AllDone(f.store.Snapshot(), today.AddDays(1), today), "not viewing today")
}

func TestAllDoneCountsScheduledTodos(t *testing.T) {
	f := newFixture()
	today := f.store.Today()
	done, _ := f.store.AddTodo(category.Work, "done")
	f.mgr.CompleteTodo(category.Work, done.ID)

	left, _ := f.store.AddTodo(category.Work, "left")
	f.store.SetSchedule(category.Work, left.ID, schedule.ThisWeek)
	assert.False(t, AllDone(f.store.Snapshot(), today, today))

	f.store.SetSchedule(category.Work, left.ID, schedule.Tomorrow)
	assert.True(t, AllDone(f.store.Snapshot(), today, today))
}

func TestAllDoneIgnoresYesterdaysCompletions(t *testing.T) {
	f := newFixture()
	item, _ := f.store.AddTodo(category.Work, "old")
	f.mgr.CompleteTodo(category.Work, item.ID)

	f.now = f.now.AddDate(0, 0, 1)
	today := f.store.Today()
	assert.False(t, AllDone(f.store.Snapshot(), today, today))
}

func TestArchiveByDayNewestFirst(t *testing.T) {
	f := newFixture()
	a, _ := f.store.AddTodo(category.Work, "monday-ish")
	b, _ := f.store.AddTodo(category.Work, "same day")
	c, _ := f.store.AddPlanner("2024-03-14", 9, "next day")

	f.mgr.CompleteTodo(category.Work, a.ID)
	f.now = f.now.Add(time.Hour)
	f.mgr.CompleteTodo(category.Work, b.ID)
	f.now = f.now.AddDate(0, 0, 1)
	f.mgr.CompletePlanner(c.ID)

	days := ArchiveByDay(f.store.Snapshot())
	require.Len(t, days, 2)
	assert.Equal(t, schedule.Date("2024-03-14"), days[0].Date)
	require.Len(t, days[0].Entries, 1)
	assert.Equal(t, c.ID, days[0].Entries[0].ID())

	assert.Equal(t, schedule.Date("2024-03-13"), days[1].Date)
	require.Len(t, days[1].Entries, 2)
	assert.Equal(t, b.ID, days[1].Entries[0].ID())
	assert.Equal(t, a.ID, days[1].Entries[1].ID())
}

func TestArchiveByDayEmpty(t *testing.T) {
	assert.Empty(t, ArchiveByDay(state.Empty()))
	assert.Nil(t, ArchiveByDay(nil))
}
