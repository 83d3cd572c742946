package teaui

import (
	"tableflip.dev/daybook/pkg/assign"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/planner"
)

type rowKind int

const (
	rowEmptyHour rowKind = iota
	rowPlanner
	rowScheduled
	rowTrayHeader
	rowTrayEmpty
	rowUnassigned
)

// row is one line of the scrolling body. Hour rows carry their hour; the
// first row of each hour shows the label.
type row struct {
	kind    rowKind
	hour    int
	label   bool
	planner *entry.PlannerItem
	todo    *entry.TodoItem
}

func (r row) inGrid() bool {
	switch r.kind {
	case rowEmptyHour, rowPlanner, rowScheduled:
		return true
	}
	return false
}

// draggable reports whether the row holds a scheduled todo.
func (r row) draggable() bool {
	return r.todo != nil
}

func (r row) ref() assign.ItemRef {
	if r.todo == nil {
		return assign.ItemRef{}
	}
	return assign.ItemRef{Category: r.todo.Category, ID: r.todo.ID}
}

// buildRows flattens a day into hour rows followed by the unassigned tray.
func buildRows(day planner.Day, hours []int) []row {
	var rows []row
	for _, slot := range day.Slots(hours) {
		if len(slot.Planner) == 0 && len(slot.Scheduled) == 0 {
			rows = append(rows, row{kind: rowEmptyHour, hour: slot.Hour, label: true})
			continue
		}
		first := true
		for i := range slot.Planner {
			rows = append(rows, row{kind: rowPlanner, hour: slot.Hour, label: first, planner: &slot.Planner[i]})
			first = false
		}
		for i := range slot.Scheduled {
			rows = append(rows, row{kind: rowScheduled, hour: slot.Hour, label: first, todo: &slot.Scheduled[i]})
			first = false
		}
	}

	rows = append(rows, row{kind: rowTrayHeader})
	if len(day.ScheduledUnassigned) == 0 {
		return append(rows, row{kind: rowTrayEmpty})
	}
	for i := range day.ScheduledUnassigned {
		rows = append(rows, row{kind: rowUnassigned, todo: &day.ScheduledUnassigned[i]})
	}
	return rows
}

// gridLayout maps screen rows onto hour slots for the assign machine.
// offset is the screen line of the first body row, top the index of the
// first visible row.
type gridLayout struct {
	rows    []row
	offset  int
	top     int
	visible int
}

var _ assign.Layout = (*gridLayout)(nil)

func (g *gridLayout) rowAt(y int) (int, bool) {
	if y < g.offset || y >= g.offset+g.visible {
		return 0, false
	}
	i := g.top + y - g.offset
	if i < 0 || i >= len(g.rows) {
		return 0, false
	}
	return i, true
}

func (g *gridLayout) SlotAt(p assign.Point) (int, bool) {
	i, ok := g.rowAt(p.Y)
	if !ok || !g.rows[i].inGrid() {
		return 0, false
	}
	return g.rows[i].hour, true
}

func (g *gridLayout) Viewport() (int, int) {
	return g.offset, g.offset + g.visible
}

// scroll moves the window by delta rows, clamped to the content.
func (g *gridLayout) scroll(delta int) bool {
	top := clamp(g.top+delta, 0, g.maxTop())
	if top == g.top {
		return false
	}
	g.top = top
	return true
}

func (g *gridLayout) maxTop() int {
	if n := len(g.rows) - g.visible; n > 0 {
		return n
	}
	return 0
}

// reveal scrolls just enough to bring row i into view.
func (g *gridLayout) reveal(i int) {
	if g.visible <= 0 {
		return
	}
	switch {
	case i < g.top:
		g.top = i
	case i >= g.top+g.visible:
		g.top = i - g.visible + 1
	}
	g.top = clamp(g.top, 0, g.maxTop())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
