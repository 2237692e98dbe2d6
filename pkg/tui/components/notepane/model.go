// Package notepane previews the active workspace note as rendered markdown.
package notepane

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"

	"tableflip.dev/scenecal/pkg/tui/theme"
)

// Model renders one note's markdown body inside a scrollable viewport.
type Model struct {
	viewport viewport.Model
	th       theme.Theme

	path     string
	markdown string
	width    int
	height   int
	wrap     int
	err      error
}

// New constructs a note pane sized to the provided bounds.
func New(th theme.Theme, width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{viewport: vp, th: th}
	m.SetSize(width, height)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// SetNote loads a note body into the pane and scrolls to the top.
func (m *Model) SetNote(path, markdown string) {
	m.path = path
	m.markdown = markdown
	m.renderContent()
}

// Path returns the path of the previewed note, or "".
func (m *Model) Path() string { return m.path }

// SetSize configures the pane dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 24, 4
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	frameX := m.th.Note.Frame.GetHorizontalFrameSize()
	frameY := m.th.Note.Frame.GetVerticalFrameSize()
	m.wrap = max(width-frameX, 1)
	m.viewport.SetWidth(m.wrap)
	m.viewport.SetHeight(max(height-frameY-1, 1))

	m.renderContent()
}

// View renders the note title and body inside the pane frame.
func (m *Model) View() string {
	title := "no note open"
	if m.path != "" {
		title = filepath.Base(m.path)
	}
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "preview unavailable: " + m.err.Error()
	}
	content := m.th.Note.Title.Render(title) + "\n" + body
	return m.th.Note.Frame.Width(m.width).Height(m.height).Render(content)
}

func (m *Model) renderContent() {
	if m.markdown == "" {
		m.viewport.SetContent("")
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(m.wrap, 10)),
	)
	if err != nil {
		m.err = err
		m.viewport.SetContent("preview unavailable: " + err.Error())
		return
	}
	content, err := renderer.Render(strings.TrimSpace(m.markdown))
	if err != nil {
		m.err = err
		m.viewport.SetContent("preview unavailable: " + err.Error())
		return
	}
	m.err = nil
	m.viewport.SetContent(stripANSI(content))
	m.viewport.SetYOffset(0)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
