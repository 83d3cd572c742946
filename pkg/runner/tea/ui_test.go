package teaui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/assign"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
	"tableflip.dev/daybook/pkg/store"
)

type memoryPersistence struct {
	mu   sync.Mutex
	snap *state.Snapshot
}

func (m *memoryPersistence) Load(context.Context) (*state.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return state.Empty(), nil
	}
	return m.snap.Clone(), nil
}

func (m *memoryPersistence) Save(_ context.Context, snap *state.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	n := 0
	svc, err := app.Open(context.Background(), app.Options{
		Persistence: &memoryPersistence{},
		Log:         zerolog.Nop(),
		Clock:       func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local) },
		IDs:         func() string { n++; return "ui-" + strconv.Itoa(n) },
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

// newModel shows hours 9-11: body rows start on screen line headerLines.
func newModel(t *testing.T, svc *app.Service, height int) *Model {
	t.Helper()
	m := New(svc, []int{9, 10, 11}, true)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: height})
	return m
}

func scheduled(t *testing.T, svc *app.Service, text string, hour *int) entry.TodoItem {
	t.Helper()
	item, err := svc.AddTodo(category.Work, text)
	require.NoError(t, err)
	_, err = svc.Schedule(item.ID, schedule.Today)
	require.NoError(t, err)
	if hour != nil {
		_, err = svc.AssignHour(item.ID, hour)
		require.NoError(t, err)
	}
	return item
}

func hourOf(t *testing.T, svc *app.Service, id string) *int {
	t.Helper()
	got, ok := svc.Snapshot().FindTodo(id)
	require.True(t, ok)
	return got.ScheduledHour
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func lineOf(m *Model, i int) int {
	return headerLines + i - m.layout.top
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestBuildRowsLabelsFirstRowOfEachHour(t *testing.T) {
	svc := newService(t)
	nine := 9
	_, err := svc.AddPlanner(svc.Today(), 9, "standup")
	require.NoError(t, err)
	scheduled(t, svc, "deck", &nine)
	scheduled(t, svc, "inbox", nil)

	rows := buildRows(svc.Day(svc.Today()), []int{9, 10})
	require.Len(t, rows, 5)
	assert.Equal(t, rowPlanner, rows[0].kind)
	assert.True(t, rows[0].label)
	assert.Equal(t, rowScheduled, rows[1].kind)
	assert.False(t, rows[1].label)
	assert.Equal(t, 9, rows[1].hour)
	assert.Equal(t, rowEmptyHour, rows[2].kind)
	assert.Equal(t, rowTrayHeader, rows[3].kind)
	assert.Equal(t, rowUnassigned, rows[4].kind)
	assert.True(t, rows[4].draggable())
	assert.False(t, rows[4].inGrid())
}

func TestGridLayoutHitTesting(t *testing.T) {
	g := &gridLayout{
		rows:    []row{{kind: rowEmptyHour, hour: 9}, {kind: rowEmptyHour, hour: 10}, {kind: rowTrayHeader}},
		offset:  4,
		visible: 2,
	}
	h, ok := g.SlotAt(assign.Point{Y: 5})
	assert.True(t, ok)
	assert.Equal(t, 10, h)
	_, ok = g.SlotAt(assign.Point{Y: 3})
	assert.False(t, ok, "header")
	_, ok = g.SlotAt(assign.Point{Y: 6})
	assert.False(t, ok, "below the viewport")

	top, bottom := g.Viewport()
	assert.Equal(t, 4, top)
	assert.Equal(t, 6, bottom)

	assert.True(t, g.scroll(5))
	assert.Equal(t, 1, g.top)
	assert.False(t, g.scroll(1))
	_, ok = g.SlotAt(assign.Point{Y: 5})
	assert.False(t, ok, "tray is not a slot")
}

func TestDragFromTrayAssignsHoveredHour(t *testing.T) {
	svc := newService(t)
	item := scheduled(t, svc, "inbox", nil)
	m := newModel(t, svc, 30)

	// rows: 9, 10, 11, tray header, inbox
	m.press(assign.Point{X: 10, Y: lineOf(m, 4)})
	require.Equal(t, assign.Dragging, m.machine.State())

	m.motion(assign.Point{X: 10, Y: lineOf(m, 1)})
	hover, ok := m.machine.Hover()
	require.True(t, ok)
	assert.Equal(t, 10, hover)
	assert.Contains(t, stripANSI(m.View()), "DRAG")

	m.release(assign.Point{X: 10, Y: lineOf(m, 1)})
	assert.Equal(t, assign.Idle, m.machine.State())
	got := hourOf(t, svc, item.ID)
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)
	assert.Equal(t, "assigned to 10:00", m.footer.Status())
}

func TestDropOutsideUnassigns(t *testing.T) {
	svc := newService(t)
	ten := 10
	item := scheduled(t, svc, "deck", &ten)
	m := newModel(t, svc, 30)

	// rows: 9, 10 deck, 11, tray header, none
	m.press(assign.Point{X: 10, Y: lineOf(m, 1)})
	m.release(assign.Point{X: 10, Y: lineOf(m, 4)})

	assert.Nil(t, hourOf(t, svc, item.ID))
	assert.Equal(t, "unassigned", m.footer.Status())
}

func TestEscCancelsDrag(t *testing.T) {
	svc := newService(t)
	nine := 9
	item := scheduled(t, svc, "deck", &nine)
	m := newModel(t, svc, 8)
	// Three visible rows: lines 4 to 6.
	require.Equal(t, 3, m.layout.visible)

	m.press(assign.Point{X: 10, Y: 4})
	m.motion(assign.Point{X: 10, Y: 6})
	assert.Equal(t, 1, m.machine.ScrollDelta())

	m.onTick(time.Now())
	assert.Equal(t, 1, m.layout.top, "auto-scrolls while held in the edge zone")

	m.Update(key("esc"))
	assert.Equal(t, assign.Idle, m.machine.State())
	assert.Nil(t, m.onTick(time.Now()), "ticking stops once the gesture ends")
	got := hourOf(t, svc, item.ID)
	require.NotNil(t, got)
	assert.Equal(t, 9, *got)
}

func TestPickerAssignsCursorHour(t *testing.T) {
	svc := newService(t)
	first := scheduled(t, svc, "first", nil)
	second := scheduled(t, svc, "second", nil)
	m := newModel(t, svc, 30)

	m.Update(key("j"))
	m.Update(key("j"))
	m.Update(key("a"))
	require.Equal(t, assign.PickerOpen, m.machine.State())
	view := stripANSI(m.View())
	assert.Contains(t, view, "Assign to 11:00")
	assert.Contains(t, view, "second")

	m.Update(key("j"))
	m.Update(key("enter"))
	assert.Equal(t, assign.Idle, m.machine.State())
	assert.Nil(t, hourOf(t, svc, first.ID))
	got := hourOf(t, svc, second.ID)
	require.NotNil(t, got)
	assert.Equal(t, 11, *got)
}

func TestPickerDiscards(t *testing.T) {
	svc := newService(t)
	item := scheduled(t, svc, "only", nil)
	m := newModel(t, svc, 30)

	m.Update(key("a"))
	require.Equal(t, assign.PickerOpen, m.machine.State())
	m.Update(key("esc"))
	assert.Equal(t, assign.Idle, m.machine.State())

	m.Update(key("a"))
	m.View()
	// A press on the grid is outside the picker.
	m.press(assign.Point{X: 1, Y: headerLines})
	assert.Equal(t, assign.Idle, m.machine.State())
	assert.Nil(t, hourOf(t, svc, item.ID))
}

func TestPickerDiscardsOnPressBelowOrOnBorder(t *testing.T) {
	svc := newService(t)
	item := scheduled(t, svc, "only", nil)
	m := newModel(t, svc, 30)

	m.Update(key("a"))
	m.View()
	require.Equal(t, assign.PickerOpen, m.machine.State())
	// The footer sits below the picker.
	m.press(assign.Point{X: 1, Y: 29})
	assert.Equal(t, assign.Idle, m.machine.State())

	m.Update(key("a"))
	m.View()
	require.Equal(t, assign.PickerOpen, m.machine.State())
	m.press(assign.Point{X: 1, Y: m.pickerTop})
	assert.Equal(t, assign.Idle, m.machine.State())
	assert.Nil(t, hourOf(t, svc, item.ID))
}

func TestPickerNeedsUnassignedItems(t *testing.T) {
	svc := newService(t)
	m := newModel(t, svc, 30)

	m.Update(key("a"))
	assert.Equal(t, assign.Idle, m.machine.State())
	assert.Equal(t, "nothing scheduled without an hour", m.footer.Status())
}

func TestPlanAndComplete(t *testing.T) {
	svc := newService(t)
	m := newModel(t, svc, 30)

	m.Update(key("j"))
	m.Update(key("n"))
	for _, r := range "gym" {
		m.Update(key(string(r)))
	}
	m.Update(key("enter"))

	snap := svc.Snapshot()
	require.Len(t, snap.Planner, 1)
	assert.Equal(t, "gym", snap.Planner[0].Text)
	assert.Equal(t, 10, snap.Planner[0].Hour)
	assert.Equal(t, svc.Today(), snap.Planner[0].Date)

	r, ok := m.currentRow()
	require.True(t, ok)
	require.Equal(t, rowPlanner, r.kind)
	m.Update(key("x"))
	assert.Empty(t, svc.Snapshot().Planner)
	assert.Contains(t, stripANSI(m.View()), "All done for today!")
}

func TestDateNavigation(t *testing.T) {
	svc := newService(t)
	m := newModel(t, svc, 30)

	m.Update(key("]"))
	assert.Equal(t, svc.Today().AddDays(1), m.date)
	assert.Contains(t, stripANSI(m.View()), "Tomorrow")
	m.Update(key("["))
	m.Update(key("["))
	assert.Equal(t, svc.Today().AddDays(-1), m.date)
	m.Update(key("t"))
	assert.Equal(t, svc.Today(), m.date)
}

func TestChangedMessageRefreshes(t *testing.T) {
	svc := newService(t)
	m := newModel(t, svc, 30)
	require.Equal(t, 0, m.day.PendingCount())

	_, err := svc.AddPlanner(svc.Today(), 9, "from elsewhere")
	require.NoError(t, err)
	m.Update(changedMsg{})
	assert.Equal(t, 1, m.day.PendingCount())
}
