// Package statusbar renders the single-line footer: manuscript stage badge,
// folder scope, refresh state, and key help.
package statusbar

import (
	"strings"

	"tableflip.dev/scenecal/pkg/stage"
	"tableflip.dev/scenecal/pkg/tui/theme"
)

// Model tracks footer rendering state.
type Model struct {
	th theme.Theme

	highest  stage.Stage
	hasStage bool
	scope    string
	status   string
	helpLine string
}

// New returns a footer with the default key help.
func New(th theme.Theme) Model {
	return Model{
		th:       th,
		helpLine: "hjkl move · [/] month · t today · enter open · tab cycle · r refresh · q quit",
	}
}

// SetStage updates the manuscript-wide highest publish stage badge.
func (m *Model) SetStage(st stage.Stage) {
	m.highest = st
	m.hasStage = true
}

// SetScope shows the active folder scope, empty for the whole vault.
func (m *Model) SetScope(scope string) {
	m.scope = scope
}

// SetStatus sets a transient status message (refreshing, errors).
func (m *Model) SetStatus(status string) {
	m.status = status
}

// View renders the footer line.
func (m Model) View() string {
	var segments []string
	if m.hasStage {
		segments = append(segments, theme.BadgeStyle(m.highest).Render(m.highest.String()))
	}
	if m.scope != "" {
		segments = append(segments, m.th.Footer.Scope.Render("scope "+m.scope))
	}
	if m.status != "" {
		segments = append(segments, m.th.Footer.Status.Render(m.status))
	}
	segments = append(segments, m.th.Footer.Help.Render(m.helpLine))
	return strings.Join(segments, " │ ")
}
