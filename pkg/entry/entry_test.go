package entry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/category"
)

func TestArchiveTodoStampsCompletion(t *testing.T) {
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	item := TodoItem{ID: "a", Text: "buy milk", Category: category.Errands}

	a := ArchiveTodo(item, now)

	assert.Equal(t, OriginCategory, a.Origin)
	require.NotNil(t, a.Todo)
	assert.True(t, a.Todo.Completed)
	assert.Equal(t, now, a.CompletedAt())
	assert.Equal(t, "a", a.ID())
	assert.Equal(t, "buy milk", a.Text())
	assert.False(t, item.Completed, "original value must be untouched")
}

func TestArchiveEntryLegacyDecoding(t *testing.T) {
	var todo ArchiveEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t1","text":"x","completed":true,"category":"work","createdAt":"2024-03-13T10:00:00Z","completedAt":"2024-03-13T11:00:00Z"}`), &todo))
	assert.Equal(t, OriginCategory, todo.Origin)
	require.NotNil(t, todo.Todo)
	assert.Equal(t, category.Work, todo.Todo.Category)

	var planner ArchiveEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","text":"standup","date":"2024-03-13","hour":9,"completed":true,"createdAt":"","completedAt":"2024-03-13T11:00:00Z"}`), &planner))
	assert.Equal(t, OriginPlanner, planner.Origin)
	require.NotNil(t, planner.Planner)
	assert.Equal(t, 9, planner.Planner.Hour)

	var bad ArchiveEntry
	assert.Error(t, json.Unmarshal([]byte(`{"id":"q","text":"?"}`), &bad))
}

func TestArchiveEntryTaggedDecodingValidates(t *testing.T) {
	var a ArchiveEntry
	assert.Error(t, json.Unmarshal([]byte(`{"origin":"planner"}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"origin":"elsewhere","todo":{"id":"x"}}`), &a))
}

func TestTimestampJSON(t *testing.T) {
	ts := Now(time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-13T10:00:00Z"`, string(b))

	var empty Timestamp
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	var back Timestamp
	require.NoError(t, json.Unmarshal([]byte(`""`), &back))
	assert.True(t, back.IsZero())
}

func TestArchiveEntryLegacyListField(t *testing.T) {
	var a ArchiveEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t2","text":"y","completed":true,"list":"culture","createdAt":""}`), &a))
	assert.Equal(t, OriginCategory, a.Origin)
	assert.Equal(t, category.Culture, a.Todo.Category)
}
