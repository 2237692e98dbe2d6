// Package teaui hosts the Bubble Tea program for the scenecal TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/scenecal/pkg/app"
	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/tui/components/daydetail"
	"tableflip.dev/scenecal/pkg/tui/components/monthgrid"
	"tableflip.dev/scenecal/pkg/tui/components/notepane"
	"tableflip.dev/scenecal/pkg/tui/components/statusbar"
	"tableflip.dev/scenecal/pkg/tui/theme"
	"tableflip.dev/scenecal/pkg/vault"
	"tableflip.dev/scenecal/pkg/workspace"
)

const (
	leftColumnWidth = 34
	footerHeight    = 1
)

// Model contains the TUI state: the month grid, the selected-day pane, the
// note preview, the tab workspace, and the last applied snapshot.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc

	grid   *monthgrid.Model
	detail *daydetail.Model
	note   *notepane.Model
	bottom statusbar.Model
	ws     *workspace.Workspace
	th     theme.Theme

	snap    *calendar.Snapshot
	lastGen uint64

	watchCh     <-chan vault.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int
}

// New creates the UI model backed by the Service.
func New(svc *app.Service) *Model {
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		grid:   monthgrid.New(th, time.Now()),
		detail: daydetail.New(th),
		note:   notepane.New(th, 40, 20),
		bottom: statusbar.New(th),
		ws:     workspace.New(),
		th:     th,
	}
	if svc != nil {
		m.bottom.SetScope(svc.Scope)
	}
	return m
}

// Run launches the interactive TUI program.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the first refresh and the vault watch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.startWatch())
}

// messages
type snapshotMsg struct {
	snap *calendar.Snapshot
	err  error
}

type watchStartedMsg struct {
	ch     <-chan vault.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event vault.Event
}

type watchStoppedMsg struct{}

type noteLoadedMsg struct {
	path string
	body string
	err  error
}

func (m *Model) refresh() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		snap, err := svc.Snapshot(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) startWatch() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, parent := m.svc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) loadNote(path string) tea.Cmd {
	if m.svc == nil || path == "" {
		return nil
	}
	svc := m.svc
	return func() tea.Msg {
		body, err := svc.NoteBody(path)
		return noteLoadedMsg{path: path, body: body, err: err}
	}
}

// Update routes messages to the components and applies snapshots.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case snapshotMsg:
		m.applySnapshot(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.bottom.SetStatus("watch unavailable: " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if msg.event.Type == vault.EventVaultInvalidated && m.svc != nil {
			m.svc.Invalidate()
		}
		cmds = append(cmds, m.refresh(), m.waitForWatch())
	case watchStoppedMsg:
		m.watchCh = nil
	case monthgrid.SelectionChangedMsg:
		m.detail.SetDay(msg.Date, m.snap)
	case monthgrid.MonthChangedMsg:
		cmds = append(cmds, m.refresh())
	case monthgrid.OpenRequestedMsg:
		cmds = append(cmds, m.openDay(msg.Date)...)
	case noteLoadedMsg:
		if msg.err != nil {
			m.bottom.SetStatus("open: " + msg.err.Error())
			break
		}
		m.note.SetNote(msg.path, msg.body)
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg)...)
	}

	return m, tea.Batch(cmds...)
}

// applySnapshot installs a refresh result unless a newer snapshot already
// landed. Generations are monotonic per service; an older generation means
// this result raced a later refresh and lost.
func (m *Model) applySnapshot(msg snapshotMsg) {
	if msg.err != nil {
		m.bottom.SetStatus("refresh failed: " + msg.err.Error())
		return
	}
	if msg.snap == nil || msg.snap.Generation <= m.lastGen {
		return
	}
	m.snap = msg.snap
	m.lastGen = msg.snap.Generation
	m.grid.SetSnapshot(msg.snap)
	m.detail.SetDay(m.grid.SelectedDate(), msg.snap)
	m.bottom.SetStage(msg.snap.Highest)
	m.bottom.SetStatus("")
}

func (m *Model) handleKey(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		cmds = append(cmds, tea.Quit)
	case "r":
		if m.svc != nil {
			m.svc.Invalidate()
		}
		m.bottom.SetStatus("refreshing")
		cmds = append(cmds, m.refresh())
	case "tab":
		m.ws.Next()
		if active := m.ws.Active(); active != "" {
			cmds = append(cmds, m.loadNote(active))
		}
	case "w":
		if active := m.ws.Active(); active != "" {
			m.ws.Close(active)
			if next := m.ws.Active(); next != "" {
				cmds = append(cmds, m.loadNote(next))
			} else {
				m.note.SetNote("", "")
			}
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		_, cmd = m.note.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		var cmd tea.Cmd
		_, cmd = m.grid.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// openDay opens the day's actionable notes as workspace tabs. A split day
// targets only its overdue records; notes already open are revealed instead
// of duplicated, and a reveal wins activation over newly opened tabs.
func (m *Model) openDay(date time.Time) []tea.Cmd {
	if m.snap == nil {
		return nil
	}
	targets := m.snap.OpenTargets(date)
	if len(targets) == 0 {
		m.bottom.SetStatus("nothing to open")
		return nil
	}
	paths := make([]string, 0, len(targets))
	for _, r := range targets {
		paths = append(paths, r.Path)
	}
	result := m.ws.Open(paths...)
	m.bottom.SetStatus(openSummary(result))

	var cmds []tea.Cmd
	if result.Active != "" {
		if cmd := m.loadNote(result.Active); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func openSummary(result workspace.OpenResult) string {
	var parts []string
	if n := len(result.Opened); n > 0 {
		parts = append(parts, fmt.Sprintf("opened %d", n))
	}
	if n := len(result.Revealed); n > 0 {
		parts = append(parts, fmt.Sprintf("revealed %d", n))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}

func (m *Model) applySizes() {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return
	}
	noteWidth := m.termWidth - leftColumnWidth - 1
	if noteWidth < 24 {
		noteWidth = 24
	}
	m.note.SetSize(noteWidth, m.termHeight-footerHeight)
	m.detail.SetWidth(leftColumnWidth)
}

// View composes the grid and day pane on the left, the note preview on the
// right, and the status bar along the bottom.
func (m *Model) View() string {
	left := m.grid.View() + "\n\n" + m.detail.View()
	if tabs := m.tabLine(); tabs != "" {
		left += "\n\n" + tabs
	}
	body := left
	if m.termWidth > leftColumnWidth+24 {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(leftColumnWidth).Render(left),
			" ",
			m.note.View(),
		)
	}
	return body + "\n" + m.bottom.View()
}

func (m *Model) tabLine() string {
	tabs := m.ws.Tabs()
	if len(tabs) == 0 {
		return ""
	}
	active := m.ws.Active()
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		name := tabBase(tab)
		if tab == active {
			parts = append(parts, m.th.Detail.Title.Render("["+name+"]"))
		} else {
			parts = append(parts, m.th.Detail.Meta.Render(name))
		}
	}
	return strings.Join(parts, " ")
}

func tabBase(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		path = path[idx+1:]
	}
	return strings.TrimSuffix(path, ".md")
}
