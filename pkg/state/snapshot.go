// Package state owns the in-memory todo lists, planner items and archive.
package state

import (
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
)

// Snapshot is one complete, immutable view of the state. The Store never
// mutates a snapshot after publishing it; callers must treat it as read-only.
type Snapshot struct {
	Lists   map[category.ID][]entry.TodoItem `json:"lists"`
	Planner []entry.PlannerItem              `json:"plannerItems"`
	Archive []entry.ArchiveEntry             `json:"archive"`
}

// Empty returns the initial state: every category present with no items.
func Empty() *Snapshot {
	lists := make(map[category.ID][]entry.TodoItem, len(category.All()))
	for _, id := range category.All() {
		lists[id] = []entry.TodoItem{}
	}
	return &Snapshot{
		Lists:   lists,
		Planner: []entry.PlannerItem{},
		Archive: []entry.ArchiveEntry{},
	}
}

// Normalize fills in missing containers so a partially decoded snapshot
// behaves like one merged onto Empty. It returns the categories that were
// dropped because they are not known.
func (s *Snapshot) Normalize() []category.ID {
	var dropped []category.ID
	if s.Lists == nil {
		s.Lists = make(map[category.ID][]entry.TodoItem, len(category.All()))
	}
	for id := range s.Lists {
		if !id.Valid() {
			dropped = append(dropped, id)
			delete(s.Lists, id)
		}
	}
	for _, id := range category.All() {
		if s.Lists[id] == nil {
			s.Lists[id] = []entry.TodoItem{}
		}
		for i := range s.Lists[id] {
			s.Lists[id][i].Category = id
		}
	}
	if s.Planner == nil {
		s.Planner = []entry.PlannerItem{}
	}
	if s.Archive == nil {
		s.Archive = []entry.ArchiveEntry{}
	}
	return dropped
}

// Clone returns a copy whose containers can be modified freely. Items are
// copied by value; pointer fields are shared because they are never mutated.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Lists:   make(map[category.ID][]entry.TodoItem, len(s.Lists)),
		Planner: append([]entry.PlannerItem{}, s.Planner...),
		Archive: append([]entry.ArchiveEntry{}, s.Archive...),
	}
	for id, items := range s.Lists {
		out.Lists[id] = append([]entry.TodoItem{}, items...)
	}
	return out
}

// List returns the items of one category.
func (s *Snapshot) List(id category.ID) []entry.TodoItem {
	return s.Lists[id]
}

// FindTodo looks an id up across all categories.
func (s *Snapshot) FindTodo(id string) (entry.TodoItem, bool) {
	for _, cat := range category.All() {
		for _, item := range s.Lists[cat] {
			if item.ID == id {
				return item, true
			}
		}
	}
	return entry.TodoItem{}, false
}

// FindPlanner looks an id up in the planner collection.
func (s *Snapshot) FindPlanner(id string) (entry.PlannerItem, bool) {
	for _, item := range s.Planner {
		if item.ID == id {
			return item, true
		}
	}
	return entry.PlannerItem{}, false
}

// FindArchived looks an id up in the archive.
func (s *Snapshot) FindArchived(id string) (entry.ArchiveEntry, bool) {
	for _, a := range s.Archive {
		if a.ID() == id {
			return a, true
		}
	}
	return entry.ArchiveEntry{}, false
}

// Counts returns the number of live items per category.
func (s *Snapshot) Counts() map[category.ID]int {
	out := make(map[category.ID]int, len(s.Lists))
	for _, id := range category.All() {
		out[id] = len(s.Lists[id])
	}
	return out
}
