package app

import (
	"time"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
)

// PlannerSection names the report section for archived planner items.
const PlannerSection = "planner"

// ReportItem captures an archived entry and the time it was completed.
type ReportItem struct {
	Entry       entry.ArchiveEntry
	CompletedAt time.Time
}

// ReportSection groups completed entries by the container they came from.
type ReportSection struct {
	// Name is a category id, or PlannerSection.
	Name    string
	Entries []ReportItem
}

// ReportResult encapsulates a completed-entries report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns archived entries completed between the provided bounds,
// grouped by category in display order with planner items last.
func (s *Service) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}

	grouped := make(map[string][]ReportItem)
	total := 0
	for _, a := range s.store.Snapshot().Archive {
		completedAt := a.CompletedAt()
		if completedAt.IsZero() || completedAt.Before(since) || completedAt.After(until) {
			continue
		}
		name := PlannerSection
		if a.Origin == entry.OriginCategory {
			name = string(a.Todo.Category)
		}
		grouped[name] = append(grouped[name], ReportItem{Entry: a, CompletedAt: completedAt})
		total++
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	if total == 0 {
		return result
	}

	order := make([]string, 0, len(category.All())+1)
	for _, id := range category.All() {
		order = append(order, string(id))
	}
	order = append(order, PlannerSection)
	for _, name := range order {
		if items := grouped[name]; len(items) > 0 {
			result.Sections = append(result.Sections, ReportSection{Name: name, Entries: items})
		}
	}
	return result
}
