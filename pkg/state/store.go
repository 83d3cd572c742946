package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/logutils"
	"tableflip.dev/daybook/pkg/schedule"
)

// Reason explains why a new snapshot was published.
type Reason int

const (
	// ReasonMutation is a user-initiated change that should be persisted.
	ReasonMutation Reason = iota
	// ReasonReload is a snapshot loaded from persistence; it must not be
	// written back.
	ReasonReload
)

// Change is delivered to observers after every published snapshot.
type Change struct {
	Snapshot *Snapshot
	Reason   Reason
	// Op names the operation that produced the change, for logging.
	Op string
}

// Observer receives changes synchronously, after the store lock is released.
type Observer func(Change)

// Store owns the current snapshot and is its sole mutator. Each operation
// builds a new snapshot and swaps it in atomically. Operations addressing an
// unknown id, or given invalid input, leave the state untouched and return
// false.
type Store struct {
	mu        sync.RWMutex
	snap      *Snapshot
	observers map[int]Observer
	nextObs   int

	clock func() time.Time
	newID func() string
	log   zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock used for timestamps and "today".
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDs overrides the identifier generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger used for debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = logutils.Component(log, "state") }
}

// WithSnapshot seeds the store with an initial snapshot.
func WithSnapshot(snap *Snapshot) Option {
	return func(s *Store) {
		if snap != nil {
			s.snap = snap
		}
	}
}

// New creates a Store holding the empty state unless seeded.
func New(opts ...Option) *Store {
	s := &Store{
		snap:      Empty(),
		observers: make(map[int]Observer),
		clock:     time.Now,
		newID:     uuid.NewString,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap.Normalize()
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Today returns the store clock's current local date.
func (s *Store) Today() schedule.Date {
	return schedule.DateOf(s.clock())
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Subscribe registers fn for every published change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Replace installs snap wholesale, for example after loading from disk.
func (s *Store) Replace(snap *Snapshot, reason Reason) {
	if snap == nil {
		snap = Empty()
	}
	snap.Normalize()
	s.publish("replace", reason, func(*Snapshot) (*Snapshot, bool) {
		return snap, true
	})
}

// ReplaceIf installs snap only while the store still holds expected. It
// reports whether snap was installed.
func (s *Store) ReplaceIf(expected, snap *Snapshot, reason Reason) bool {
	if snap == nil {
		snap = Empty()
	}
	snap.Normalize()
	return s.publish("replace", reason, func(cur *Snapshot) (*Snapshot, bool) {
		if cur != expected {
			return cur, false
		}
		return snap, true
	})
}

// publish runs fn against the current snapshot under the write lock. fn
// returns the next snapshot and whether anything changed.
func (s *Store) publish(op string, reason Reason, fn func(cur *Snapshot) (*Snapshot, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.snap)
	if !changed {
		s.mu.Unlock()
		s.log.Debug().Str("op", op).Msg("no-op")
		return false
	}
	s.snap = next
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	s.log.Debug().Str("op", op).Msg("published snapshot")
	for _, o := range observers {
		o(Change{Snapshot: next, Reason: reason, Op: op})
	}
	return true
}

func (s *Store) mutate(op string, fn func(cur *Snapshot) (*Snapshot, bool)) bool {
	return s.publish(op, ReasonMutation, fn)
}

func indexTodo(items []entry.TodoItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func indexPlanner(items []entry.PlannerItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// withList returns a shallow copy of cur whose list for cat is replaced.
func withList(cur *Snapshot, cat category.ID, items []entry.TodoItem) *Snapshot {
	lists := make(map[category.ID][]entry.TodoItem, len(cur.Lists))
	for k, v := range cur.Lists {
		lists[k] = v
	}
	lists[cat] = items
	return &Snapshot{Lists: lists, Planner: cur.Planner, Archive: cur.Archive}
}

func without[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func replaced[T any](items []T, i int, v T) []T {
	out := append([]T{}, items...)
	out[i] = v
	return out
}

func appended[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

func prepended[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// AddTodo appends a new item to cat. Blank text is ignored.
func (s *Store) AddTodo(cat category.ID, text string) (entry.TodoItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !cat.Valid() {
		return entry.TodoItem{}, false
	}
	item := entry.TodoItem{
		ID:        s.newID(),
		Text:      text,
		Category:  cat,
		CreatedAt: entry.Now(s.clock()),
	}
	ok := s.mutate("add-todo", func(cur *Snapshot) (*Snapshot, bool) {
		return withList(cur, cat, appended(cur.Lists[cat], item)), true
	})
	return item, ok
}

// ToggleTodo completes the item and moves it to the front of the archive.
func (s *Store) ToggleTodo(cat category.ID, id string) bool {
	now := s.clock()
	return s.mutate("toggle-todo", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexTodo(cur.Lists[cat], id)
		if i < 0 {
			return cur, false
		}
		next := withList(cur, cat, without(cur.Lists[cat], i))
		next.Archive = prepended(cur.Archive, entry.ArchiveTodo(cur.Lists[cat][i], now))
		return next, true
	})
}

// DeleteTodo removes the item permanently.
func (s *Store) DeleteTodo(cat category.ID, id string) bool {
	return s.mutate("delete-todo", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexTodo(cur.Lists[cat], id)
		if i < 0 {
			return cur, false
		}
		return withList(cur, cat, without(cur.Lists[cat], i)), true
	})
}

// SetSchedule sets the schedule tag and stamps the date it was set on.
// schedule.None clears the tag, its stamp and any hour binding.
func (s *Store) SetSchedule(cat category.ID, id string, tag schedule.Tag) bool {
	if tag != schedule.None && !tag.Valid() {
		return false
	}
	today := s.Today()
	return s.mutate("set-schedule", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexTodo(cur.Lists[cat], id)
		if i < 0 {
			return cur, false
		}
		item := cur.Lists[cat][i]
		if tag == schedule.None {
			item.Schedule = schedule.None
			item.ScheduleSetOn = ""
			item.ScheduledHour = nil
		} else {
			item.Schedule = tag
			item.ScheduleSetOn = today
		}
		return withList(cur, cat, replaced(cur.Lists[cat], i, item)), true
	})
}

// SetScheduledHour binds a scheduled item to hour, or unbinds it when hour
// is nil. Items without a schedule tag are left alone.
func (s *Store) SetScheduledHour(cat category.ID, id string, hour *int) bool {
	if hour != nil && !validHour(*hour) {
		return false
	}
	return s.mutate("set-scheduled-hour", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexTodo(cur.Lists[cat], id)
		if i < 0 || !cur.Lists[cat][i].Scheduled() {
			return cur, false
		}
		item := cur.Lists[cat][i]
		if hour == nil {
			item.ScheduledHour = nil
		} else {
			h := *hour
			item.ScheduledHour = &h
		}
		return withList(cur, cat, replaced(cur.Lists[cat], i, item)), true
	})
}

func validHour(h int) bool {
	return h >= 0 && h <= 23
}

// AddPlanner appends a planner item bound to date and hour.
func (s *Store) AddPlanner(date schedule.Date, hour int, text string) (entry.PlannerItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" || date.IsZero() || !validHour(hour) {
		return entry.PlannerItem{}, false
	}
	item := entry.PlannerItem{
		ID:        s.newID(),
		Text:      text,
		Date:      date,
		Hour:      hour,
		CreatedAt: entry.Now(s.clock()),
	}
	ok := s.mutate("add-planner", func(cur *Snapshot) (*Snapshot, bool) {
		next := *cur
		next.Planner = appended(cur.Planner, item)
		return &next, true
	})
	return item, ok
}

// ReschedulePlanner moves a planner item to date, keeping its hour.
func (s *Store) ReschedulePlanner(id string, date schedule.Date) bool {
	if date.IsZero() {
		return false
	}
	return s.mutate("reschedule-planner", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexPlanner(cur.Planner, id)
		if i < 0 {
			return cur, false
		}
		item := cur.Planner[i]
		item.Date = date
		next := *cur
		next.Planner = replaced(cur.Planner, i, item)
		return &next, true
	})
}

// TogglePlanner completes the planner item and moves it to the archive.
func (s *Store) TogglePlanner(id string) bool {
	now := s.clock()
	return s.mutate("toggle-planner", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexPlanner(cur.Planner, id)
		if i < 0 {
			return cur, false
		}
		next := *cur
		next.Planner = without(cur.Planner, i)
		next.Archive = prepended(cur.Archive, entry.ArchivePlanner(cur.Planner[i], now))
		return &next, true
	})
}

// DeletePlanner removes the planner item permanently.
func (s *Store) DeletePlanner(id string) bool {
	return s.mutate("delete-planner", func(cur *Snapshot) (*Snapshot, bool) {
		i := indexPlanner(cur.Planner, id)
		if i < 0 {
			return cur, false
		}
		next := *cur
		next.Planner = without(cur.Planner, i)
		return &next, true
	})
}

// Restore takes an item out of the archive, clears its completion and
// appends it to the container it was archived from.
func (s *Store) Restore(id string) bool {
	return s.mutate("restore", func(cur *Snapshot) (*Snapshot, bool) {
		idx := -1
		for i, a := range cur.Archive {
			if a.ID() == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return cur, false
		}
		a := cur.Archive[idx]
		archive := without(cur.Archive, idx)

		switch a.Origin {
		case entry.OriginCategory:
			item := *a.Todo
			item.Completed = false
			item.CompletedAt = nil
			cat := item.Category
			if !cat.Valid() {
				return cur, false
			}
			next := withList(cur, cat, appended(cur.Lists[cat], item))
			next.Archive = archive
			return next, true
		case entry.OriginPlanner:
			item := *a.Planner
			item.Completed = false
			item.CompletedAt = nil
			next := *cur
			next.Planner = appended(cur.Planner, item)
			next.Archive = archive
			return &next, true
		}
		return cur, false
	})
}
