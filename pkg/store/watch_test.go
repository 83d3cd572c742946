package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/state"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsStateChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	require.NoError(t, err)

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	s := state.New()
	s.AddTodo(category.Work, "hello world")
	require.NoError(t, p.Save(ctx, s.Snapshot()))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			require.Equal(t, EventStateChanged, evt.Type)
			require.Equal(t, StateKey, evt.Key)
			return
		case <-deadline:
			t.Fatal("timed out waiting for state change event")
		}
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventStateChanged, Key: StateKey}, send)
	}

	select {
	case ev := <-got:
		require.Equal(t, StateKey, ev.Key)
	case <-time.After(time.Second):
		t.Fatal("no flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
