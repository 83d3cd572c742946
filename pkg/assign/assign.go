// Package assign is the interaction state machine that binds scheduled todo
// items to hour slots, either by dragging or through a picker.
package assign

import (
	"time"

	"tableflip.dev/daybook/pkg/category"
)

// State is the machine's current phase.
type State int

const (
	// Idle has no gesture in progress and no picker open.
	Idle State = iota
	// Pressing is a touch press waiting out the dwell before it drags.
	Pressing
	// Dragging carries an item and tracks the hovered hour.
	Dragging
	// PickerOpen shows unassigned items for one target hour.
	PickerOpen
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressing:
		return "pressing"
	case Dragging:
		return "dragging"
	case PickerOpen:
		return "picker-open"
	}
	return "unknown"
}

// Pointer is the kind of input device that started a press.
type Pointer int

const (
	// Mouse presses drag immediately.
	Mouse Pointer = iota
	// Touch presses drag only after the dwell.
	Touch
)

// Point is a position in layout coordinates.
type Point struct {
	X, Y int
}

// ItemRef addresses a todo item.
type ItemRef struct {
	Category category.ID
	ID       string
}

// Layout maps positions onto hour slots.
type Layout interface {
	// SlotAt returns the hour under p, if any.
	SlotAt(p Point) (hour int, ok bool)
	// Viewport returns the visible vertical range [top, bottom).
	Viewport() (top, bottom int)
}

// Assigner applies hour bindings.
type Assigner interface {
	SetScheduledHour(cat category.ID, id string, hour *int) bool
}

// Config tunes gesture recognition.
type Config struct {
	// Dwell is how long a touch must stay put before it becomes a drag.
	Dwell time.Duration
	// Tolerance is how far a touch may move during the dwell.
	Tolerance int
	// EdgeZone is the depth of the auto-scroll band at each viewport edge.
	EdgeZone int
	// ScrollStep is the distance scrolled per tick inside an edge zone.
	ScrollStep int
}

// DefaultConfig returns pixel-oriented defaults.
func DefaultConfig() Config {
	return Config{
		Dwell:      200 * time.Millisecond,
		Tolerance:  10,
		EdgeZone:   40,
		ScrollStep: 8,
	}
}

// Machine tracks one gesture at a time. It is not safe for concurrent use.
type Machine struct {
	cfg      Config
	layout   Layout
	assigner Assigner

	state     State
	item      ItemRef
	pointer   Pointer
	origin    Point
	pos       Point
	pressedAt time.Time
	hover     *int
	scroll    int

	pickerHour int
}

// New returns an idle Machine.
func New(assigner Assigner, layout Layout, cfg Config) *Machine {
	return &Machine{cfg: cfg, layout: layout, assigner: assigner}
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Item returns the item being pressed or dragged.
func (m *Machine) Item() (ItemRef, bool) {
	if m.state != Pressing && m.state != Dragging {
		return ItemRef{}, false
	}
	return m.item, true
}

// Pos returns the last known pointer position.
func (m *Machine) Pos() Point { return m.pos }

// Hover returns the hour currently under a dragged item.
func (m *Machine) Hover() (int, bool) {
	if m.state != Dragging || m.hover == nil {
		return 0, false
	}
	return *m.hover, true
}

// PickerHour returns the hour the open picker assigns to.
func (m *Machine) PickerHour() (int, bool) {
	if m.state != PickerOpen {
		return 0, false
	}
	return m.pickerHour, true
}

// Press starts a gesture on item. Mouse presses drag at once; touch presses
// wait for the dwell. Presses outside Idle are ignored.
func (m *Machine) Press(item ItemRef, pointer Pointer, pos Point, at time.Time) bool {
	if m.state != Idle {
		return false
	}
	m.item = item
	m.pointer = pointer
	m.origin = pos
	m.pos = pos
	m.pressedAt = at
	if pointer == Mouse {
		m.startDrag()
	} else {
		m.state = Pressing
	}
	return true
}

// Tick promotes a pending touch press to a drag once the dwell has passed.
// It reports whether the machine is dragging afterwards.
func (m *Machine) Tick(at time.Time) bool {
	if m.state == Pressing && at.Sub(m.pressedAt) >= m.cfg.Dwell {
		m.startDrag()
	}
	return m.state == Dragging
}

// Move tracks the pointer. A touch that strays beyond the tolerance before
// the dwell elapses is a scroll, and the press is abandoned.
func (m *Machine) Move(pos Point, at time.Time) {
	switch m.state {
	case Pressing:
		if at.Sub(m.pressedAt) >= m.cfg.Dwell {
			m.startDrag()
			m.track(pos)
			return
		}
		if m.strayed(pos) {
			m.reset()
			return
		}
		m.pos = pos
	case Dragging:
		m.track(pos)
	}
}

// Release ends the gesture. A drag commits the hovered hour, or detaches
// the item when dropped outside every slot. A press that never became a
// drag changes nothing. It reports whether an assignment was committed.
func (m *Machine) Release(pos Point, at time.Time) bool {
	switch m.state {
	case Pressing:
		if at.Sub(m.pressedAt) < m.cfg.Dwell {
			m.reset()
			return false
		}
		m.startDrag()
		fallthrough
	case Dragging:
		m.track(pos)
		item, hour := m.item, m.hover
		m.reset()
		return m.Assign(item, hour)
	}
	return false
}

// Cancel abandons any gesture or open picker without committing.
func (m *Machine) Cancel() {
	m.reset()
}

// ScrollDelta is the auto-scroll distance per tick while dragging inside an
// edge zone: negative scrolls up, positive scrolls down, zero otherwise.
func (m *Machine) ScrollDelta() int {
	if m.state != Dragging {
		return 0
	}
	return m.scroll
}

// OpenPicker opens the picker for hour. It only opens from Idle and only
// while unassigned items exist.
func (m *Machine) OpenPicker(hour, unassigned int) bool {
	if m.state != Idle || unassigned <= 0 || hour < 0 || hour > 23 {
		return false
	}
	m.state = PickerOpen
	m.pickerHour = hour
	return true
}

// Select binds item to the picker's hour and closes the picker.
func (m *Machine) Select(item ItemRef) bool {
	if m.state != PickerOpen {
		return false
	}
	hour := m.pickerHour
	m.reset()
	return m.Assign(item, &hour)
}

// PressOutside closes the picker without committing.
func (m *Machine) PressOutside() {
	if m.state == PickerOpen {
		m.reset()
	}
}

// Assign binds item to hour, or unbinds it when hour is nil. Every gesture
// commits through here.
func (m *Machine) Assign(item ItemRef, hour *int) bool {
	if m.assigner == nil {
		return false
	}
	return m.assigner.SetScheduledHour(item.Category, item.ID, hour)
}

func (m *Machine) startDrag() {
	m.state = Dragging
	m.track(m.pos)
}

func (m *Machine) track(pos Point) {
	m.pos = pos
	m.hover = nil
	m.scroll = 0
	if m.layout == nil {
		return
	}
	if h, ok := m.layout.SlotAt(pos); ok {
		m.hover = &h
	}
	top, bottom := m.layout.Viewport()
	switch {
	case pos.Y < top+m.cfg.EdgeZone:
		m.scroll = -m.cfg.ScrollStep
	case pos.Y >= bottom-m.cfg.EdgeZone:
		m.scroll = m.cfg.ScrollStep
	}
}

func (m *Machine) strayed(pos Point) bool {
	dx, dy := pos.X-m.origin.X, pos.Y-m.origin.Y
	return dx*dx+dy*dy > m.cfg.Tolerance*m.cfg.Tolerance
}

func (m *Machine) reset() {
	m.state = Idle
	m.item = ItemRef{}
	m.hover = nil
	m.scroll = 0
	m.pickerHour = 0
}
