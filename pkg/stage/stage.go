// Package stage defines the ordered manuscript advancement stages.
package stage

import "strings"

// Stage is an ordered advancement level for a scene. Higher values mean the
// scene is further along the publishing pipeline.
type Stage int

const (
	Zero Stage = iota
	Author
	House
	Press
)

var names = [...]string{"ZERO", "AUTHOR", "HOUSE", "PRESS"}

// Legacy frontmatter values still found in older vaults map onto the
// canonical stages.
var synonyms = map[string]Stage{
	"zero":    Zero,
	"first":   Author,
	"editing": House,
	"press":   Press,
}

// String returns the canonical stage name.
func (s Stage) String() string {
	if s < Zero || s > Press {
		return names[Zero]
	}
	return names[s]
}

// Rank returns the numeric ordering of the stage, lowest first.
func (s Stage) Rank() int {
	if s < Zero || s > Press {
		return int(Zero)
	}
	return int(s)
}

// Parse resolves a frontmatter value to a stage. Matching is
// case-insensitive and accepts both canonical names and legacy synonyms.
func Parse(raw string) (Stage, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return Zero, false
	}
	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return Stage(i), true
		}
	}
	if s, ok := synonyms[trimmed]; ok {
		return s, true
	}
	return Zero, false
}

// Max returns the higher of two stages.
func Max(a, b Stage) Stage {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// All returns the stages in ascending order.
func All() []Stage {
	return []Stage{Zero, Author, House, Press}
}
