// Package daydetail renders the record list for the selected calendar day,
// the TUI's stand-in for the host's hover tooltip.
package daydetail

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/tui/theme"
)

// Model lists the scenes due on one day with status, stage, and word count.
type Model struct {
	date    time.Time
	records []scene.Record
	state   calendar.DayState
	th      theme.Theme
	width   int
}

// New returns an empty detail pane.
func New(th theme.Theme) *Model {
	return &Model{th: th, width: 40}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update only tracks window size; the pane is display-only.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetWidth(size.Width)
	}
	return m, nil
}

// SetDay points the pane at a date within a snapshot.
func (m *Model) SetDay(date time.Time, snap *calendar.Snapshot) {
	m.date = scene.Day(date)
	if snap == nil {
		m.records = nil
		m.state = calendar.DayState{}
		return
	}
	m.records = snap.Records(date)
	m.state = snap.DayState(date)
}

// SetWidth sets the wrap width for record titles.
func (m *Model) SetWidth(width int) {
	if width < 16 {
		width = 16
	}
	m.width = width
}

// View renders the date heading and one wrapped line per record.
func (m *Model) View() string {
	if m.date.IsZero() {
		return m.th.Detail.Meta.Render("no day selected")
	}
	var b strings.Builder
	b.WriteString(m.th.Detail.Title.Render(m.date.Format("Mon Jan 2, 2006")))
	if label := stateLabel(m.state); label != "" {
		b.WriteString("  ")
		b.WriteString(m.th.Detail.Meta.Render(label))
	}
	b.WriteString("\n")

	if len(m.records) == 0 {
		b.WriteString(m.th.Detail.Meta.Render("no scenes"))
		return b.String()
	}

	inner := m.width - m.th.Detail.Frame.GetHorizontalFrameSize()
	if inner < 12 {
		inner = 12
	}
	for _, r := range m.records {
		title := wordwrap.String(r.Title, inner)
		b.WriteString(m.th.Detail.Body.Render(title))
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(m.th.Detail.Meta.Render(metaLine(r)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func metaLine(r scene.Record) string {
	parts := []string{r.PrimaryStatus().String()}
	if r.HasStage {
		parts = append(parts, r.Stage.String())
	}
	if r.Words > 0 {
		parts = append(parts, fmt.Sprintf("%d words", r.Words))
	}
	return strings.Join(parts, " · ")
}

func stateLabel(st calendar.DayState) string {
	switch st.Kind {
	case calendar.StateOverdue:
		return "overdue"
	case calendar.StateSplitOverdue:
		return "overdue + done"
	case calendar.StateWorking:
		return "working"
	case calendar.StateFutureTodo:
		return "planned"
	case calendar.StateStages:
		names := make([]string, 0, len(st.Markers))
		for _, marker := range st.Markers {
			name := marker.Stage.String()
			if marker.SplitRevised {
				name += "/revised"
			}
			names = append(names, name)
		}
		return strings.Join(names, " ")
	default:
		return ""
	}
}
