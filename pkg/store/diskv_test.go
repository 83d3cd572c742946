package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

func TestLoadMissingIsEmpty(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, state.Empty(), snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	s := state.New()
	todo, _ := s.AddTodo(category.Errands, "post office")
	s.SetSchedule(category.Errands, todo.ID, schedule.ThisWeek)
	hour := 11
	s.SetScheduledHour(category.Errands, todo.ID, &hour)
	done, _ := s.AddTodo(category.Work, "report")
	s.ToggleTodo(category.Work, done.ID)
	p1, _ := s.AddPlanner("2024-03-13", 9, "standup")
	p2, _ := s.AddPlanner("2024-03-13", 10, "review")
	s.TogglePlanner(p2.ID)

	require.NoError(t, p.Save(ctx, s.Snapshot()))

	got, err := p.Load(ctx)
	require.NoError(t, err)

	item, ok := got.FindTodo(todo.ID)
	require.True(t, ok)
	assert.Equal(t, schedule.ThisWeek, item.Schedule)
	require.NotNil(t, item.ScheduledHour)
	assert.Equal(t, 11, *item.ScheduledHour)

	planned, ok := got.FindPlanner(p1.ID)
	require.True(t, ok)
	assert.Equal(t, 9, planned.Hour)

	require.Len(t, got.Archive, 2)
	assert.Equal(t, entry.OriginPlanner, got.Archive[0].Origin)
	assert.Equal(t, entry.OriginCategory, got.Archive[1].Origin)
	assert.Equal(t, category.Work, got.Archive[1].Todo.Category)
}

func TestLoadSeesExternalWrites(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	require.NoError(t, err)
	require.NoError(t, p.Save(ctx, state.Empty()))
	_, err = p.Load(ctx)
	require.NoError(t, err)

	blob := `{"lists":{"ideas":[{"id":"x","text":"kite","completed":false,"createdAt":""}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(base, StateKey), []byte(blob), 0o644))

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.List(category.Ideas), 1)
	assert.Equal(t, "kite", snap.List(category.Ideas)[0].Text)
}

func TestLoadShallowMergesMissingKeys(t *testing.T) {
	base := t.TempDir()
	blob := `{"plannerItems":[{"id":"p","text":"gym","date":"2024-03-13","hour":7,"completed":false,"createdAt":""}],"lists":{"work":[],"legacy":[{"id":"z","text":"?"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(base, StateKey), []byte(blob), 0o644))

	p, err := Load(testConfig{path: base})
	require.NoError(t, err)
	snap, err := p.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Planner, 1)
	assert.NotNil(t, snap.Archive)
	assert.Len(t, snap.Lists, len(category.All()))
	_, ok := snap.Lists["legacy"]
	assert.False(t, ok)
}

func TestLoadCorruptBacksUp(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, StateKey), []byte("{not json"), 0o644))

	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	p, err := Load(testConfig{path: base}, WithClock(func() time.Time { return now }), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, state.Empty(), snap)

	bl, ok := p.(BackupLister)
	require.True(t, ok)
	backups := bl.Backups(context.Background())
	assert.Equal(t, []string{"corrupt-20240313T100000000000000"}, backups)
	data, err := os.ReadFile(filepath.Join(base, "corrupt", "20240313T100000000000000"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestLoadRequiresBasePath(t *testing.T) {
	_, err := Load(testConfig{})
	assert.Error(t, err)
}

func TestKeyTransformRoundTrip(t *testing.T) {
	for _, key := range []string{StateKey, "corrupt-20240313T100000000000000"} {
		assert.Equal(t, key, pathToKeyTransform(keyToPathTransform(key)))
	}
}
