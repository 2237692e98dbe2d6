// Package theme centralizes Lip Gloss styles for the scenecal TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/scenecal/pkg/stage"
)

// Theme groups the styles used across the TUI components.
type Theme struct {
	Grid   GridTheme
	Detail DetailTheme
	Note   NoteTheme
	Footer FooterTheme
}

// GridTheme styles the month grid.
type GridTheme struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Empty      lipgloss.Style
	Quiet      lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	Overdue    lipgloss.Style
	Working    lipgloss.Style
	FutureTodo lipgloss.Style
	Ratio      lipgloss.Style
}

// DetailTheme styles the selected-day record pane.
type DetailTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Meta  lipgloss.Style
}

// NoteTheme styles the note preview pane.
type NoteTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// FooterTheme styles the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Badge  lipgloss.Style
	Scope  lipgloss.Style
}

const (
	overdueHex = "#d75f5f"
	zeroHex    = "#dadada"
	authorHex  = "#5f87d7"
	houseHex   = "#af5fd7"
	pressHex   = "#5faf5f"
)

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Grid: GridTheme{
			Title:      lipgloss.NewStyle().Bold(true),
			Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
			Quiet:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Today:      lipgloss.NewStyle().Underline(true).Bold(true),
			Selected:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			Overdue:    lipgloss.NewStyle().Foreground(lipgloss.Color(overdueHex)),
			Working:    lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
			FutureTodo: lipgloss.NewStyle().Foreground(lipgloss.Color("80")),
			Ratio:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Detail: DetailTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Note: NoteTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Badge:  lipgloss.NewStyle().Bold(true),
			Scope:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}

// StageHex returns the hex color assigned to a publish stage.
func StageHex(st stage.Stage) string {
	switch st {
	case stage.Author:
		return authorHex
	case stage.House:
		return houseHex
	case stage.Press:
		return pressHex
	default:
		return zeroHex
	}
}

// StageStyle returns the foreground style for a stage marker.
func StageStyle(st stage.Stage) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(StageHex(st)))
}

// BadgeStyle returns the bold badge style for the manuscript stage.
func BadgeStyle(st stage.Stage) lipgloss.Style {
	return StageStyle(st).Bold(true)
}

// SplitStyle styles a day holding both overdue and completed scenes: the
// overdue red in front of a tint halfway between red and the completed
// stage's color.
func SplitStyle(st stage.Stage) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(overdueHex)).
		Background(lipgloss.Color(blendHex(overdueHex, StageHex(st), 0.5)))
}

func blendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
