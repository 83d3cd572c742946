package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/assign"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/planner"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/daybook/pkg/runner/tea/internal/calendar"
	"tableflip.dev/daybook/pkg/runner/tea/internal/panel"
	"tableflip.dev/daybook/pkg/runner/tea/internal/theme"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

// headerLines is the title, the two-line week strip and the banner line.
const headerLines = 4

// scrollInterval paces auto-scroll and touch dwell checks during a gesture.
const scrollInterval = 80 * time.Millisecond

const (
	helpNormal = "j/k move · a assign hour · u unassign · n plan · x done · [ ] t day · q quit"
	helpPicker = "j/k choose · enter assign · esc cancel"
	helpInsert = "enter save · esc cancel"
	helpDrag   = "drop on an hour, or outside to unassign · esc cancel"
)

type changedMsg struct{}
type scrollTickMsg time.Time
type errMsg struct{ err error }

// Model contains UI state.
type Model struct {
	svc   *app.Service
	hours []int
	now   func() time.Time

	date    schedule.Date
	day     planner.Day
	allDone bool

	layout  *gridLayout
	cursor  int
	machine *assign.Machine
	ticking bool

	input     textinput.Model
	inserting bool
	picker    panel.Model
	pickerTop int
	footer    bottombar.Model
	theme     theme.Theme

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service. hours are the rows
// always shown; occupied hours outside them are added as needed.
func New(svc *app.Service, hours []int, dark bool) *Model {
	ti := textinput.New()
	ti.Placeholder = "What is planned?"
	ti.CharLimit = 256
	ti.Prompt = ""

	m := &Model{
		svc:    svc,
		hours:  hours,
		now:    time.Now,
		layout: &gridLayout{offset: headerLines},
		input:  ti,
		picker: panel.New(),
		footer: bottombar.New(),
		theme:  theme.Default(dark),
	}
	if svc != nil {
		m.now = svc.Now
		m.date = svc.Today()
	}
	if len(m.hours) == 0 {
		m.hours = planner.DefaultHours()
	}
	cfg := assign.DefaultConfig()
	// Terminal cells, not pixels.
	cfg.Tolerance = 1
	cfg.EdgeZone = 1
	cfg.ScrollStep = 1
	var assigner assign.Assigner
	if svc != nil {
		assigner = svc
	}
	m.machine = assign.New(assigner, m.layout, cfg)
	m.footer.SetStyles(m.theme.Footer.Help, m.theme.Footer.Status, m.theme.Footer.Mode)
	m.footer.SetHelp(helpNormal)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages, keybindings and mouse gestures.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case changedMsg:
		// Another process, or a gesture, changed the state.
		m.refresh()
	case errMsg:
		m.footer.SetStatus("ERR: " + msg.err.Error())
	case scrollTickMsg:
		return m, m.onTick(time.Time(msg))
	case tea.KeyPressMsg:
		return m, m.onKey(msg)
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			return m, m.press(assign.Point{X: mouse.X, Y: mouse.Y})
		}
	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.motion(assign.Point{X: mouse.X, Y: mouse.Y})
	case tea.MouseReleaseMsg:
		mouse := msg.Mouse()
		m.release(assign.Point{X: mouse.X, Y: mouse.Y})
	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.layout.scroll(-1)
		case tea.MouseWheelDown:
			m.layout.scroll(1)
		}
	}
	return m, nil
}

func (m *Model) onKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.inserting {
		return m.onInsertKey(msg)
	}

	switch m.machine.State() {
	case assign.PickerOpen:
		switch key {
		case "esc", "q":
			m.closePicker("")
		case "up", "k":
			m.picker.Move(-1)
		case "down", "j":
			m.picker.Move(1)
		case "enter":
			m.selectPicked(m.picker.Selected())
		}
		return nil
	case assign.Pressing, assign.Dragging:
		if key == "esc" {
			m.machine.Cancel()
			m.setMode(bottombar.ModeNormal)
			m.footer.SetStatus("drag cancelled")
		}
		return nil
	}

	switch key {
	case "q":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "[":
		m.setDate(m.date.AddDays(-1))
	case "]":
		m.setDate(m.date.AddDays(1))
	case "t":
		m.setDate(m.today())
	case "a":
		m.openPicker()
	case "u":
		m.unassign()
	case "x":
		m.complete()
	case "n":
		return m.startInsert()
	}
	return nil
}

func (m *Model) onInsertKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopInsert()
		m.footer.SetStatus("")
		return nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		hour := m.cursorHour()
		m.stopInsert()
		if text == "" {
			m.footer.SetStatus("nothing to plan")
			return nil
		}
		if m.svc == nil {
			return nil
		}
		if _, err := m.svc.AddPlanner(m.date, hour, text); err != nil {
			return errCmd(err)
		}
		m.footer.SetStatus(fmt.Sprintf("planned %q at %s", text, printers.HourLabel(hour)))
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.footer.UpdateInput(m.insertPrompt(), m.input.View())
	return cmd
}

// press starts a drag from a scheduled item, picks from or closes the
// picker, or moves the cursor.
func (m *Model) press(pt assign.Point) tea.Cmd {
	if m.inserting {
		return nil
	}
	if m.machine.State() == assign.PickerOpen {
		if line, ok := m.picker.LineAt(pt.Y - m.pickerTop); ok && pt.Y >= m.pickerTop {
			m.selectPicked(line)
			return nil
		}
		m.closePicker("")
		return nil
	}

	i, ok := m.layout.rowAt(pt.Y)
	if !ok {
		return nil
	}
	m.cursor = i
	r := m.layout.rows[i]
	if !r.draggable() {
		return nil
	}
	if !m.machine.Press(r.ref(), assign.Mouse, pt, m.now()) {
		return nil
	}
	m.setMode(bottombar.ModeDragging)
	m.footer.SetStatus("dragging " + r.todo.Text)
	return m.startTicking()
}

func (m *Model) motion(pt assign.Point) {
	switch m.machine.State() {
	case assign.Pressing, assign.Dragging:
		m.machine.Move(pt, m.now())
	}
}

func (m *Model) release(pt assign.Point) {
	switch m.machine.State() {
	case assign.Pressing, assign.Dragging:
	default:
		return
	}
	hover, hovering := m.layout.SlotAt(pt)
	item, _ := m.machine.Item()
	committed := m.machine.Release(pt, m.now())
	m.setMode(bottombar.ModeNormal)
	switch {
	case !committed:
		m.footer.SetStatus("")
	case hovering:
		m.footer.SetStatus("assigned to " + printers.HourLabel(hover))
	default:
		m.footer.SetStatus("unassigned")
	}
	m.refresh()
	m.focus(item.ID)
}

// onTick drives the touch dwell and auto-scroll while a gesture is live.
func (m *Model) onTick(at time.Time) tea.Cmd {
	state := m.machine.State()
	if state != assign.Pressing && state != assign.Dragging {
		m.ticking = false
		return nil
	}
	m.machine.Tick(at)
	if d := m.machine.ScrollDelta(); d != 0 && m.layout.scroll(d) {
		// Re-evaluate the hovered hour under the pointer after scrolling.
		m.machine.Move(m.machine.Pos(), at)
	}
	return tick()
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(scrollInterval, func(t time.Time) tea.Msg {
		return scrollTickMsg(t)
	})
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

func (m *Model) openPicker() {
	r, ok := m.currentRow()
	if !ok || !r.inGrid() {
		m.footer.SetStatus("move to an hour first")
		return
	}
	unassigned := m.day.ScheduledUnassigned
	if !m.machine.OpenPicker(r.hour, len(unassigned)) {
		m.footer.SetStatus("nothing scheduled without an hour")
		return
	}
	lines := make([]string, 0, len(unassigned))
	for _, t := range unassigned {
		lines = append(lines, fmt.Sprintf("%s  %s", t.Text, t.Category.Label()))
	}
	m.picker.SetContent("Assign to "+printers.HourLabel(r.hour), lines)
	m.setMode(bottombar.ModePicker)
	m.applySizes()
}

func (m *Model) selectPicked(i int) {
	unassigned := m.day.ScheduledUnassigned
	if i < 0 || i >= len(unassigned) {
		return
	}
	hour, _ := m.machine.PickerHour()
	t := unassigned[i]
	if m.machine.Select(assign.ItemRef{Category: t.Category, ID: t.ID}) {
		m.closePicker(fmt.Sprintf("%q assigned to %s", t.Text, printers.HourLabel(hour)))
		m.focus(t.ID)
		return
	}
	m.closePicker("")
}

func (m *Model) closePicker(status string) {
	m.machine.PressOutside()
	m.picker.Reset()
	m.setMode(bottombar.ModeNormal)
	m.footer.SetStatus(status)
	m.refresh()
}

func (m *Model) unassign() {
	r, ok := m.currentRow()
	if !ok || r.kind != rowScheduled {
		m.footer.SetStatus("only an hour-bound todo can be unassigned")
		return
	}
	if m.machine.Assign(r.ref(), nil) {
		m.footer.SetStatus("unassigned " + r.todo.Text)
		id := r.todo.ID
		m.refresh()
		m.focus(id)
	}
}

func (m *Model) complete() {
	r, ok := m.currentRow()
	if !ok || m.svc == nil {
		return
	}
	var id, text string
	switch {
	case r.planner != nil:
		id, text = r.planner.ID, r.planner.Text
	case r.todo != nil:
		id, text = r.todo.ID, r.todo.Text
	default:
		return
	}
	if _, err := m.svc.Complete(id); err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	m.footer.SetStatus("completed " + text)
	m.refresh()
}

func (m *Model) startInsert() tea.Cmd {
	m.inserting = true
	m.input.Reset()
	m.setMode(bottombar.ModeInsert)
	m.footer.UpdateInput(m.insertPrompt(), m.input.View())
	m.applySizes()
	return m.input.Focus()
}

func (m *Model) stopInsert() {
	m.inserting = false
	m.input.Blur()
	m.input.Reset()
	m.setMode(bottombar.ModeNormal)
	m.applySizes()
}

func (m *Model) insertPrompt() string {
	return fmt.Sprintf("Plan %s %s: ", m.date, printers.HourLabel(m.cursorHour()))
}

func (m *Model) setMode(mode bottombar.Mode) {
	m.footer.SetMode(mode)
	switch mode {
	case bottombar.ModePicker:
		m.footer.SetHelp(helpPicker)
	case bottombar.ModeInsert:
		m.footer.SetHelp(helpInsert)
	case bottombar.ModeDragging:
		m.footer.SetHelp(helpDrag)
	default:
		m.footer.SetHelp(helpNormal)
	}
}

func (m *Model) setDate(d schedule.Date) {
	if d == m.date {
		return
	}
	m.date = d
	m.cursor = 0
	m.layout.top = 0
	m.footer.SetStatus("")
	m.refresh()
}

func (m *Model) today() schedule.Date {
	if m.svc != nil {
		return m.svc.Today()
	}
	return schedule.DateOf(m.now())
}

// refresh re-aggregates the selected date. The cursor keeps its index,
// clamped to the new rows.
func (m *Model) refresh() {
	if m.svc != nil {
		m.day = m.svc.Day(m.date)
		m.allDone = m.svc.AllDone(m.date)
	} else {
		m.day = planner.Aggregate(nil, m.date, m.date)
		m.allDone = false
	}
	m.layout.rows = buildRows(m.day, m.hours)
	m.cursor = clamp(m.cursor, 0, len(m.layout.rows)-1)
	m.applySizes()
}

// focus moves the cursor to the row holding id, if it is shown.
func (m *Model) focus(id string) {
	for i, r := range m.layout.rows {
		if (r.todo != nil && r.todo.ID == id) || (r.planner != nil && r.planner.ID == id) {
			m.cursor = i
			m.layout.reveal(i)
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.layout.rows)-1)
	m.layout.reveal(m.cursor)
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.layout.rows) {
		return row{}, false
	}
	return m.layout.rows[m.cursor], true
}

// cursorHour is the hour new planner items go to: the cursor's hour, or
// the first shown hour when the cursor is in the tray.
func (m *Model) cursorHour() int {
	if r, ok := m.currentRow(); ok && r.inGrid() {
		return r.hour
	}
	for _, r := range m.layout.rows {
		if r.inGrid() {
			return r.hour
		}
	}
	return planner.FirstHour
}

// applySizes recalculates the visible body rows based on the terminal size.
func (m *Model) applySizes() {
	if m.termHeight == 0 {
		m.layout.visible = len(m.layout.rows)
		return
	}
	h := m.termHeight - headerLines - m.footer.Height()
	if m.machine.State() == assign.PickerOpen {
		_, ph := m.picker.View()
		h -= ph
	}
	if h < 1 {
		h = 1
	}
	m.layout.visible = h
	m.layout.top = clamp(m.layout.top, 0, m.layout.maxTop())
	m.layout.reveal(m.cursor)
}

// View renders the header, the visible body rows, the picker and the footer.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())

	hover, hovering := m.machine.Hover()
	dragged, dragging := m.machine.Item()
	dragging = dragging && m.machine.State() == assign.Dragging

	end := m.layout.top + m.layout.visible
	if end > len(m.layout.rows) {
		end = len(m.layout.rows)
	}
	lines := 0
	for i := m.layout.top; i < end; i++ {
		r := m.layout.rows[i]
		line := m.renderRow(r)
		switch {
		case dragging && r.todo != nil && r.todo.ID == dragged.ID:
			line = m.theme.Grid.Dragged.Render(line)
		case dragging && hovering && r.inGrid() && r.hour == hover:
			line = m.theme.Grid.Hover.Render(line)
		case i == m.cursor && !dragging:
			line = m.theme.Grid.Cursor.Render(line)
		}
		b.WriteString(m.fit(line))
		b.WriteString("\n")
		lines++
	}
	for ; lines < m.layout.visible && m.termHeight > 0; lines++ {
		b.WriteString("\n")
	}

	m.pickerTop = headerLines + lines
	if m.machine.State() == assign.PickerOpen {
		view, _ := m.picker.View()
		b.WriteString(view)
		b.WriteString("\n")
	}

	footer, _ := m.footer.View()
	b.WriteString(footer)
	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("%s · %s", schedule.Describe(m.date, m.today()), m.date.Time().Format("Monday, January 2, 2006"))
	pending := m.theme.Header.Pending.Render(fmt.Sprintf("  %d pending", m.day.PendingCount()))

	strip := calendar.Render(calendar.Week(m.date, m.today(), m.pendingOn), calendar.Options{
		HeaderStyle:   m.theme.Grid.Hour,
		EmptyStyle:    m.theme.Grid.Hour,
		PendingStyle:  m.theme.Grid.HourBusy,
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		ShowHeader:    true,
	})

	banner := ""
	if m.allDone {
		banner = m.theme.Header.Banner.Render("✓ All done for today!")
	}
	return m.theme.Header.Title.Render(title) + pending + "\n" + strip + "\n" + banner + "\n"
}

func (m *Model) pendingOn(d schedule.Date) int {
	if m.svc == nil {
		return 0
	}
	return m.svc.Day(d).PendingCount()
}

func (m *Model) renderRow(r row) string {
	g := m.theme.Grid
	label := "     "
	if r.label {
		label = printers.HourLabel(r.hour)
		if r.kind == rowEmptyHour {
			label = g.Hour.Render(label)
		} else {
			label = g.HourBusy.Render(label)
		}
	}
	rule := g.Rule.Render(" │ ")

	switch r.kind {
	case rowEmptyHour:
		return label + rule + g.Empty.Render("·")
	case rowPlanner:
		return label + rule + g.Planner.Render("● "+r.planner.Text)
	case rowScheduled:
		return label + rule + m.todoCell(*r.todo)
	case rowTrayHeader:
		return g.Tray.Render(fmt.Sprintf("Unassigned (%d)", len(m.day.ScheduledUnassigned)))
	case rowTrayEmpty:
		return g.Empty.Render("  none")
	case rowUnassigned:
		return "  " + m.todoCell(*r.todo)
	}
	return ""
}

func (m *Model) todoCell(t entry.TodoItem) string {
	g := m.theme.Grid
	return fmt.Sprintf("%s %s %s",
		g.Scheduled.Render("◆ "+t.Text),
		g.Tag.Render("["+t.Schedule.Label()+"]"),
		g.Category(t.Category).Render(t.Category.Label()),
	)
}

// fit truncates a rendered line to the terminal width.
func (m *Model) fit(line string) string {
	if m.termWidth <= 0 {
		return line
	}
	return truncate.StringWithTail(line, uint(m.termWidth), "…")
}

// Run launches the Bubble Tea day planner. It returns when the user quits or
// ctx is done.
func Run(ctx context.Context, svc *app.Service, hours []int) error {
	if svc == nil {
		return errors.New("can not open ui, no service")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := requireTerminal(); err != nil {
		return err
	}

	m := New(svc, hours, darkBackground())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	unsubscribe := svc.Subscribe(func(_ state.Change) {
		// Observers run inside Update for local edits; never block the loop.
		go p.Send(changedMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
