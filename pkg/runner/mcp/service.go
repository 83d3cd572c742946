// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/planner"
	"tableflip.dev/daybook/pkg/schedule"
)

// Service adapts the application service to transport-friendly results.
type Service struct {
	App *app.Service
}

var errNoApp = errors.New("daybook service is not configured")

// ItemDTO is a transport-friendly projection of any item.
type ItemDTO struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Text          string `json:"text"`
	Category      string `json:"category,omitempty"`
	Schedule      string `json:"schedule,omitempty"`
	ScheduledHour *int   `json:"scheduledHour,omitempty"`
	Date          string `json:"date,omitempty"`
	Hour          *int   `json:"hour,omitempty"`
	Completed     bool   `json:"completed"`
	CreatedISO    string `json:"created,omitempty"`
	CompletedISO  string `json:"completedAt,omitempty"`
}

// ListSummary describes one category list.
type ListSummary struct {
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Count    int       `json:"count"`
	Items    []ItemDTO `json:"items"`
}

// HourDTO is one occupied hour of a day.
type HourDTO struct {
	Hour      int       `json:"hour"`
	Planner   []ItemDTO `json:"planner"`
	Scheduled []ItemDTO `json:"scheduled"`
}

// DayDTO is the aggregated view of one date.
type DayDTO struct {
	Date       string    `json:"date"`
	Hours      []HourDTO `json:"hours"`
	Unassigned []ItemDTO `json:"unassigned"`
	Pending    int       `json:"pending"`
	AllDone    bool      `json:"allDone"`
}

// ArchiveDayDTO groups archived items by completion date.
type ArchiveDayDTO struct {
	Date  string    `json:"date"`
	Items []ItemDTO `json:"items"`
}

// NewService wraps svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

// Lists returns every category with its live items in display order.
func (s *Service) Lists(ctx context.Context) ([]ListSummary, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	lists := s.App.Lists()
	out := make([]ListSummary, 0, len(category.All()))
	for _, id := range category.All() {
		items := make([]ItemDTO, 0, len(lists[id]))
		for _, t := range lists[id] {
			items = append(items, todoDTO(t))
		}
		out = append(out, ListSummary{
			Category: string(id),
			Label:    id.Label(),
			Count:    len(items),
			Items:    items,
		})
	}
	return out, nil
}

// AddTodo appends a todo to a category, optionally scheduling it.
func (s *Service) AddTodo(ctx context.Context, cat, text, tag string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	id, err := category.Parse(cat)
	if err != nil {
		return nil, err
	}
	t, err := schedule.ParseTag(tag)
	if err != nil {
		return nil, err
	}
	item, err := s.App.AddTodo(id, text)
	if err != nil {
		return nil, err
	}
	if t != schedule.None {
		if _, err := s.App.Schedule(item.ID, t); err != nil {
			return nil, err
		}
	}
	return s.item(item.ID)
}

// AddPlanner adds a planner item at date and hour. An empty date means today.
func (s *Service) AddPlanner(ctx context.Context, date string, hour int, text string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	d, err := s.date(date)
	if err != nil {
		return nil, err
	}
	p, err := s.App.AddPlanner(d, hour, text)
	if err != nil {
		return nil, err
	}
	return s.item(p.ID)
}

// Complete archives a live item.
func (s *Service) Complete(ctx context.Context, id string) (*ItemDTO, error) {
	return s.mutate(id, s.App.Complete)
}

// Restore returns an archived item to where it came from.
func (s *Service) Restore(ctx context.Context, id string) (*ItemDTO, error) {
	return s.mutate(id, s.App.Restore)
}

// Delete removes a live item and returns what it was.
func (s *Service) Delete(ctx context.Context, id string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	loc, err := s.App.Delete(id)
	if err != nil {
		return nil, err
	}
	dto := locationDTO(loc)
	return &dto, nil
}

// Schedule sets or clears a todo's tag.
func (s *Service) Schedule(ctx context.Context, id, tag string) (*ItemDTO, error) {
	t, err := schedule.ParseTag(tag)
	if err != nil {
		return nil, err
	}
	return s.mutate(id, func(id string) (app.Location, error) {
		return s.App.Schedule(id, t)
	})
}

// Reschedule moves a planner item to date.
func (s *Service) Reschedule(ctx context.Context, id, date string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	d, err := s.date(date)
	if err != nil {
		return nil, err
	}
	return s.mutate(id, func(id string) (app.Location, error) {
		return s.App.Reschedule(id, d)
	})
}

// AssignHour binds a scheduled todo to hour, or unbinds it when hour is nil.
func (s *Service) AssignHour(ctx context.Context, id string, hour *int) (*ItemDTO, error) {
	return s.mutate(id, func(id string) (app.Location, error) {
		return s.App.AssignHour(id, hour)
	})
}

// Day aggregates a date. An empty date means today.
func (s *Service) Day(ctx context.Context, date string) (*DayDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	d, err := s.date(date)
	if err != nil {
		return nil, err
	}
	return dayDTO(s.App.Day(d), s.App.AllDone(d)), nil
}

// Archive returns archived items grouped by completion day, newest first.
func (s *Service) Archive(ctx context.Context) ([]ArchiveDayDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	days := s.App.Archive()
	out := make([]ArchiveDayDTO, 0, len(days))
	for _, d := range days {
		items := make([]ItemDTO, 0, len(d.Entries))
		for _, a := range d.Entries {
			items = append(items, archiveDTO(a))
		}
		out = append(out, ArchiveDayDTO{Date: string(d.Date), Items: items})
	}
	return out, nil
}

// Item looks an id, or a unique id prefix, up.
func (s *Service) Item(ctx context.Context, id string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	return s.item(id)
}

func (s *Service) mutate(id string, fn func(string) (app.Location, error)) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	loc, err := fn(id)
	if err != nil {
		return nil, err
	}
	return s.item(loc.ID())
}

func (s *Service) item(id string) (*ItemDTO, error) {
	loc, err := s.App.Locate(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	dto := locationDTO(loc)
	return &dto, nil
}

func (s *Service) date(raw string) (schedule.Date, error) {
	if raw == "" {
		return s.App.Today(), nil
	}
	return schedule.ParseDate(raw)
}

func locationDTO(loc app.Location) ItemDTO {
	switch {
	case loc.Todo != nil:
		return todoDTO(*loc.Todo)
	case loc.Planner != nil:
		return plannerDTO(*loc.Planner)
	case loc.Archived != nil:
		return archiveDTO(*loc.Archived)
	}
	return ItemDTO{}
}

func todoDTO(t entry.TodoItem) ItemDTO {
	dto := ItemDTO{
		ID:            t.ID,
		Kind:          app.KindTodo.String(),
		Text:          t.Text,
		Category:      string(t.Category),
		Schedule:      string(t.Schedule),
		ScheduledHour: t.ScheduledHour,
		Completed:     t.Completed,
		CreatedISO:    t.CreatedAt.String(),
	}
	if t.CompletedAt != nil {
		dto.CompletedISO = t.CompletedAt.String()
	}
	return dto
}

func plannerDTO(p entry.PlannerItem) ItemDTO {
	hour := p.Hour
	dto := ItemDTO{
		ID:         p.ID,
		Kind:       app.KindPlanner.String(),
		Text:       p.Text,
		Date:       string(p.Date),
		Hour:       &hour,
		Completed:  p.Completed,
		CreatedISO: p.CreatedAt.String(),
	}
	if p.CompletedAt != nil {
		dto.CompletedISO = p.CompletedAt.String()
	}
	return dto
}

func archiveDTO(a entry.ArchiveEntry) ItemDTO {
	var dto ItemDTO
	switch {
	case a.Todo != nil:
		dto = todoDTO(*a.Todo)
	case a.Planner != nil:
		dto = plannerDTO(*a.Planner)
	}
	dto.Kind = app.KindArchived.String()
	return dto
}

func dayDTO(day planner.Day, allDone bool) *DayDTO {
	out := &DayDTO{
		Date:       string(day.Date),
		Hours:      []HourDTO{},
		Unassigned: make([]ItemDTO, 0, len(day.ScheduledUnassigned)),
		Pending:    day.PendingCount(),
		AllDone:    allDone,
	}
	for _, h := range day.Hours() {
		hd := HourDTO{Hour: h, Planner: []ItemDTO{}, Scheduled: []ItemDTO{}}
		for _, p := range day.PlannerByHour[h] {
			hd.Planner = append(hd.Planner, plannerDTO(p))
		}
		for _, t := range day.ScheduledByHour[h] {
			hd.Scheduled = append(hd.Scheduled, todoDTO(t))
		}
		out.Hours = append(out.Hours, hd)
	}
	for _, t := range day.ScheduledUnassigned {
		out.Unassigned = append(out.Unassigned, todoDTO(t))
	}
	return out
}
