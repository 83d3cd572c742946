package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/lifecycle"
	"tableflip.dev/daybook/pkg/logutils"
	"tableflip.dev/daybook/pkg/planner"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
	"tableflip.dev/daybook/pkg/store"
)

var (
	ErrNotFound      = errors.New("app: no item with that id")
	ErrAmbiguous     = errors.New("app: id prefix matches more than one item")
	ErrInvalid       = errors.New("app: invalid input")
	ErrWrongKind     = errors.New("app: operation does not apply to this item")
	ErrNotScheduled  = errors.New("app: item has no schedule")
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Options configure Open.
type Options struct {
	Persistence store.Persistence
	Log         zerolog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
	// IDs defaults to random UUIDs.
	IDs func() string
}

// Service provides high-level operations over the item store.
// It wraps persistence and lifecycle rules so UIs and CLIs can share logic.
type Service struct {
	store       *state.Store
	lifecycle   *lifecycle.Manager
	persistence store.Persistence
	log         zerolog.Logger
	unsubscribe func()
}

// Open loads the stored snapshot and keeps persistence in step with every
// later mutation.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.Persistence == nil {
		return nil, ErrNoPersistence
	}
	log := logutils.Component(opts.Log, "app")

	snap, err := opts.Persistence.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load: %w", err)
	}

	storeOpts := []state.Option{state.WithSnapshot(snap), state.WithLogger(opts.Log)}
	if opts.Clock != nil {
		storeOpts = append(storeOpts, state.WithClock(opts.Clock))
	}
	if opts.IDs != nil {
		storeOpts = append(storeOpts, state.WithIDs(opts.IDs))
	}
	st := state.New(storeOpts...)

	s := &Service{
		store:       st,
		lifecycle:   lifecycle.New(st),
		persistence: opts.Persistence,
		log:         log,
	}
	s.unsubscribe = st.Subscribe(s.persist)
	return s, nil
}

// persist writes mutations back. Failed writes are logged and never undo
// the in-memory change.
func (s *Service) persist(c state.Change) {
	if c.Reason != state.ReasonMutation {
		return
	}
	if err := s.persistence.Save(context.Background(), c.Snapshot); err != nil {
		s.log.Error().Err(err).Str("op", c.Op).Msg("save failed")
	}
}

// Close stops writing changes to persistence.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Subscribe registers fn for every published snapshot.
func (s *Service) Subscribe(fn state.Observer) func() {
	return s.store.Subscribe(fn)
}

// Snapshot returns the current state.
func (s *Service) Snapshot() *state.Snapshot {
	return s.store.Snapshot()
}

// Today returns the current local date.
func (s *Service) Today() schedule.Date {
	return s.store.Today()
}

// Now returns the service clock's time.
func (s *Service) Now() time.Time {
	return s.store.Now()
}

// Kind says which container an item lives in.
type Kind int

const (
	KindTodo Kind = iota
	KindPlanner
	KindArchived
)

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindPlanner:
		return "planner"
	case KindArchived:
		return "archived"
	}
	return "unknown"
}

// Location is the result of Locate. Exactly one of Todo, Planner and Archived
// is set.
type Location struct {
	Kind     Kind
	Todo     *entry.TodoItem
	Planner  *entry.PlannerItem
	Archived *entry.ArchiveEntry
}

// ID returns the located item's full id.
func (l Location) ID() string {
	switch {
	case l.Todo != nil:
		return l.Todo.ID
	case l.Planner != nil:
		return l.Planner.ID
	case l.Archived != nil:
		return l.Archived.ID()
	}
	return ""
}

// Text returns the located item's text.
func (l Location) Text() string {
	switch {
	case l.Todo != nil:
		return l.Todo.Text
	case l.Planner != nil:
		return l.Planner.Text
	case l.Archived != nil:
		return l.Archived.Text()
	}
	return ""
}

// Locate finds the item whose id equals id, or failing that the single item
// whose id starts with it.
func (s *Service) Locate(id string) (Location, error) {
	return locate(s.store.Snapshot(), id)
}

func locate(snap *state.Snapshot, id string) (Location, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Location{}, ErrNotFound
	}
	var matches []Location
	for _, cat := range category.All() {
		for _, item := range snap.Lists[cat] {
			if item.ID == id {
				return Location{Kind: KindTodo, Todo: &item}, nil
			}
			if strings.HasPrefix(item.ID, id) {
				matches = append(matches, Location{Kind: KindTodo, Todo: &item})
			}
		}
	}
	for _, item := range snap.Planner {
		if item.ID == id {
			return Location{Kind: KindPlanner, Planner: &item}, nil
		}
		if strings.HasPrefix(item.ID, id) {
			matches = append(matches, Location{Kind: KindPlanner, Planner: &item})
		}
	}
	for _, a := range snap.Archive {
		if a.ID() == id {
			return Location{Kind: KindArchived, Archived: &a}, nil
		}
		if strings.HasPrefix(a.ID(), id) {
			matches = append(matches, Location{Kind: KindArchived, Archived: &a})
		}
	}
	switch len(matches) {
	case 0:
		return Location{}, ErrNotFound
	case 1:
		return matches[0], nil
	}
	return Location{}, ErrAmbiguous
}

// AddTodo appends text to the category list.
func (s *Service) AddTodo(cat category.ID, text string) (entry.TodoItem, error) {
	item, ok := s.store.AddTodo(cat, text)
	if !ok {
		return entry.TodoItem{}, ErrInvalid
	}
	return item, nil
}

// AddPlanner books text at date and hour.
func (s *Service) AddPlanner(date schedule.Date, hour int, text string) (entry.PlannerItem, error) {
	item, ok := s.store.AddPlanner(date, hour, text)
	if !ok {
		return entry.PlannerItem{}, ErrInvalid
	}
	return item, nil
}

// Complete archives a live todo or planner item.
func (s *Service) Complete(id string) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	switch loc.Kind {
	case KindTodo:
		return loc, s.check(s.lifecycle.CompleteTodo(loc.Todo.Category, loc.Todo.ID))
	case KindPlanner:
		return loc, s.check(s.lifecycle.CompletePlanner(loc.Planner.ID))
	}
	return loc, ErrWrongKind
}

// Restore brings an archived item back to its original container.
func (s *Service) Restore(id string) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	if loc.Kind != KindArchived {
		return loc, ErrWrongKind
	}
	return loc, s.check(s.lifecycle.Restore(loc.Archived.ID()))
}

// Delete removes a live item permanently. Archived items cannot be deleted.
func (s *Service) Delete(id string) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	switch loc.Kind {
	case KindTodo:
		return loc, s.check(s.store.DeleteTodo(loc.Todo.Category, loc.Todo.ID))
	case KindPlanner:
		return loc, s.check(s.store.DeletePlanner(loc.Planner.ID))
	}
	return loc, ErrWrongKind
}

// Schedule sets or clears a todo's schedule tag.
func (s *Service) Schedule(id string, tag schedule.Tag) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	if loc.Kind != KindTodo {
		return loc, ErrWrongKind
	}
	if tag != schedule.None && !tag.Valid() {
		return loc, ErrInvalid
	}
	return loc, s.check(s.store.SetSchedule(loc.Todo.Category, loc.Todo.ID, tag))
}

// Reschedule moves a planner item to date, keeping its hour.
func (s *Service) Reschedule(id string, date schedule.Date) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	if loc.Kind != KindPlanner {
		return loc, ErrWrongKind
	}
	if date.IsZero() {
		return loc, ErrInvalid
	}
	return loc, s.check(s.store.ReschedulePlanner(loc.Planner.ID, date))
}

// AssignHour binds a scheduled todo to hour, or unbinds it when hour is nil.
func (s *Service) AssignHour(id string, hour *int) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	if loc.Kind != KindTodo {
		return loc, ErrWrongKind
	}
	if !loc.Todo.Scheduled() {
		return loc, ErrNotScheduled
	}
	if hour != nil && (*hour < 0 || *hour > 23) {
		return loc, ErrInvalid
	}
	return loc, s.check(s.store.SetScheduledHour(loc.Todo.Category, loc.Todo.ID, hour))
}

// SetScheduledHour lets the service drive assign.Machine directly.
func (s *Service) SetScheduledHour(cat category.ID, id string, hour *int) bool {
	return s.store.SetScheduledHour(cat, id, hour)
}

// Delegate pushes an item out. Planner items move to tomorrow or to next
// Monday; todos take the schedule tag.
func (s *Service) Delegate(id string, tag schedule.Tag) (Location, error) {
	loc, err := s.Locate(id)
	if err != nil {
		return loc, err
	}
	switch loc.Kind {
	case KindTodo:
		if !tag.Valid() {
			return loc, ErrInvalid
		}
		return loc, s.check(s.store.SetSchedule(loc.Todo.Category, loc.Todo.ID, tag))
	case KindPlanner:
		date, ok := delegateDate(tag, s.Today(), loc.Planner.Date)
		if !ok {
			return loc, ErrInvalid
		}
		return loc, s.check(s.store.ReschedulePlanner(loc.Planner.ID, date))
	}
	return loc, ErrWrongKind
}

// delegateDate picks the new date for a planner item currently on from.
// Tomorrow is relative to today. This week is the Friday of from's week, or
// the day after from once from is already Friday or later.
func delegateDate(tag schedule.Tag, today, from schedule.Date) (schedule.Date, bool) {
	switch tag {
	case schedule.Today:
		return today, true
	case schedule.Tomorrow:
		return today.AddDays(1), true
	case schedule.ThisWeek:
		friday := schedule.WeekOf(from)[4]
		if !from.Before(friday) {
			return from.AddDays(1), true
		}
		return friday, true
	}
	return "", false
}

// check turns a store no-op into ErrNotFound; the item vanished between the
// lookup and the mutation.
func (s *Service) check(ok bool) error {
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Day aggregates date against today.
func (s *Service) Day(date schedule.Date) planner.Day {
	return planner.Aggregate(s.store.Snapshot(), date, s.Today())
}

// AllDone reports whether date is today and every item on it is finished.
func (s *Service) AllDone(date schedule.Date) bool {
	return lifecycle.AllDone(s.store.Snapshot(), date, s.Today())
}

// Archive returns archived items grouped by completion day, newest first.
func (s *Service) Archive() []lifecycle.ArchiveDay {
	return lifecycle.ArchiveByDay(s.store.Snapshot())
}

// Lists returns every category list.
func (s *Service) Lists() map[category.ID][]entry.TodoItem {
	return s.store.Snapshot().Lists
}

// Counts returns live item counts per category.
func (s *Service) Counts() map[category.ID]int {
	return s.store.Snapshot().Counts()
}

// Backups lists the corrupt payloads persistence has set aside, if it keeps
// any.
func (s *Service) Backups(ctx context.Context) []string {
	if bl, ok := s.persistence.(store.BackupLister); ok {
		return bl.Backups(ctx)
	}
	return nil
}

// Reload replaces the in-memory state with what persistence holds, unless
// it is identical. A mutation that lands while persistence is being read
// wins; the loaded state is dropped and the mutation's save follows.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	before := s.store.Snapshot()
	snap, err := s.persistence.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("app: reload: %w", err)
	}
	if same(snap, before) {
		return false, nil
	}
	if !s.store.ReplaceIf(before, snap, state.ReasonReload) {
		s.log.Debug().Msg("state changed during reload, keeping in-memory state")
		return false, nil
	}
	return true, nil
}

func same(a, b *state.Snapshot) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

// Sync reloads whenever persistence reports a change, until ctx is done.
func (s *Service) Sync(ctx context.Context) error {
	events, err := s.persistence.Watch(ctx)
	if err != nil {
		return fmt.Errorf("app: watch: %w", err)
	}
	go func() {
		for range events {
			if _, err := s.Reload(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("sync reload failed")
			}
		}
	}()
	return nil
}
