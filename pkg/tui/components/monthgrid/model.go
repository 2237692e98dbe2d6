// Package monthgrid renders the interactive month calendar.
package monthgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/tui/theme"
)

// Model holds one visible month, a selected day, and the snapshot that
// styles the cells.
type Model struct {
	month    time.Time // first of the visible month, UTC
	selected int       // 1-indexed day of month
	snap     *calendar.Snapshot
	th       theme.Theme

	width  int
	height int
}

// SelectionChangedMsg reports the newly selected day.
type SelectionChangedMsg struct {
	Date time.Time
}

// MonthChangedMsg reports that navigation moved to another month.
type MonthChangedMsg struct {
	Month time.Time
}

// OpenRequestedMsg asks the host to open the selected day's notes.
type OpenRequestedMsg struct {
	Date time.Time
}

// New creates a grid showing the month containing now, with today selected.
func New(th theme.Theme, now time.Time) *Model {
	day := scene.Day(now)
	return &Model{
		month:    time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC),
		selected: day.Day(),
		th:       th,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles navigation keys (hjkl/arrows, [/] months, t today) and
// window sizing.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		cmd = m.handleKey(msg.String())
	}
	return m, cmd
}

// SetSnapshot swaps in a fresh classification snapshot.
func (m *Model) SetSnapshot(snap *calendar.Snapshot) {
	m.snap = snap
}

// Month returns the first day of the visible month.
func (m *Model) Month() time.Time { return m.month }

// SelectedDate returns the selected day as a UTC midnight date.
func (m *Model) SelectedDate() time.Time {
	return m.month.AddDate(0, 0, m.selected-1)
}

// JumpTo moves the grid to the month containing date and selects its day.
func (m *Model) JumpTo(date time.Time) tea.Cmd {
	day := scene.Day(date)
	changed := day.Year() != m.month.Year() || day.Month() != m.month.Month()
	m.month = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.selected = day.Day()
	if changed {
		return tea.Batch(monthChangedCmd(m.month), m.selectionCmd())
	}
	return m.selectionCmd()
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "left", "h":
		return m.moveSelection(-1)
	case "right", "l":
		return m.moveSelection(1)
	case "up", "k":
		return m.moveSelection(-7)
	case "down", "j":
		return m.moveSelection(7)
	case "[":
		return m.shiftMonth(-1)
	case "]":
		return m.shiftMonth(1)
	case "t":
		now := time.Now()
		if m.snap != nil {
			now = m.snap.Today
		}
		return m.JumpTo(now)
	case "enter":
		date := m.SelectedDate()
		return func() tea.Msg { return OpenRequestedMsg{Date: date} }
	}
	return nil
}

// moveSelection walks the selection by delta days, rolling into the
// previous or next month at the edges.
func (m *Model) moveSelection(delta int) tea.Cmd {
	if delta == 0 {
		return nil
	}
	next := m.selected + delta
	days := daysIn(m.month)
	switch {
	case next < 1:
		prev := m.month.AddDate(0, -1, 0)
		m.month = prev
		m.selected = daysIn(prev) + next
		if m.selected < 1 {
			m.selected = 1
		}
		return tea.Batch(monthChangedCmd(m.month), m.selectionCmd())
	case next > days:
		m.month = m.month.AddDate(0, 1, 0)
		m.selected = next - days
		if m.selected > daysIn(m.month) {
			m.selected = daysIn(m.month)
		}
		return tea.Batch(monthChangedCmd(m.month), m.selectionCmd())
	default:
		m.selected = next
		return m.selectionCmd()
	}
}

func (m *Model) shiftMonth(delta int) tea.Cmd {
	m.month = m.month.AddDate(0, delta, 0)
	if days := daysIn(m.month); m.selected > days {
		m.selected = days
	}
	return tea.Batch(monthChangedCmd(m.month), m.selectionCmd())
}

func (m *Model) selectionCmd() tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg { return SelectionChangedMsg{Date: date} }
}

func monthChangedCmd(month time.Time) tea.Cmd {
	return func() tea.Msg { return MonthChangedMsg{Month: month} }
}

const gridWidth = len("Su Mo Tu We Th Fr Sa")

// View renders the month: title, weekday header, then one line per week
// with a trailing completion ratio for weeks that finished scenes.
func (m *Model) View() string {
	var lines []string

	label := fmt.Sprintf("%s %d", m.month.Month(), m.month.Year())
	pad := (gridWidth - len(label)) / 2
	if pad < 0 {
		pad = 0
	}
	lines = append(lines, strings.Repeat(" ", pad)+m.th.Grid.Title.Render(label))
	lines = append(lines, m.th.Grid.Header.Render("Su Mo Tu We Th Fr Sa"))

	days := daysIn(m.month)
	offset := int(m.month.Weekday())
	rows := (offset + days + 6) / 7

	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		lastDay := 0
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cells = append(cells, m.th.Grid.Empty.Render("  "))
				continue
			}
			lastDay = day
			cells = append(cells, m.renderDay(day))
		}
		line := strings.Join(cells, " ")
		if ratio := m.weekRatio(lastDay); ratio != "" {
			line += "  " + m.th.Grid.Ratio.Render(ratio)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderDay(day int) string {
	date := m.month.AddDate(0, 0, day-1)
	style := m.styleFor(date)
	if m.snap != nil && date.Equal(m.snap.Today) {
		style = style.Inherit(m.th.Grid.Today)
	}
	if day == m.selected {
		style = style.Inherit(m.th.Grid.Selected)
	}
	return style.Render(fmt.Sprintf("%2d", day))
}

// styleFor maps the day's resolved display state onto a cell style. Split
// days blend the overdue red with the completed stage color; a stage day
// takes the color of its highest marker, italic when the ZERO marker is a
// split zero/revised indicator.
func (m *Model) styleFor(date time.Time) lipgloss.Style {
	if m.snap == nil {
		return m.th.Grid.Quiet
	}
	st := m.snap.DayState(date)
	switch st.Kind {
	case calendar.StateOverdue:
		return m.th.Grid.Overdue
	case calendar.StateSplitOverdue:
		return theme.SplitStyle(st.Stage)
	case calendar.StateWorking:
		return m.th.Grid.Working
	case calendar.StateFutureTodo:
		return m.th.Grid.FutureTodo
	case calendar.StateStages:
		top := st.Markers[len(st.Markers)-1]
		style := theme.StageStyle(top.Stage)
		for _, marker := range st.Markers {
			if marker.SplitRevised {
				style = style.Italic(true)
			}
		}
		return style
	default:
		return m.th.Grid.Quiet
	}
}

func (m *Model) weekRatio(lastDay int) string {
	if m.snap == nil || lastDay == 0 {
		return ""
	}
	bucket := m.snap.Week(m.month.AddDate(0, 0, lastDay-1))
	if bucket == nil {
		return ""
	}
	return bucket.Ratio()
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
