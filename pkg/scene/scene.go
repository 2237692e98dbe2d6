// Package scene models one manuscript note as seen through its frontmatter.
package scene

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/scenecal/pkg/stage"
)

// Status is the workflow state of a scene.
type Status int

const (
	Unknown Status = iota
	Todo
	Working
	Complete
)

var statusNames = [...]string{"Unknown", "Todo", "Working", "Complete"}

// String returns the display name for the status.
func (s Status) String() string {
	if s < Unknown || s > Complete {
		return statusNames[Unknown]
	}
	return statusNames[s]
}

// ParseStatus resolves a single frontmatter value to a Status. Anything
// unrecognized is Unknown.
func ParseStatus(v any) Status {
	raw, ok := v.(string)
	if !ok {
		raw = fmt.Sprint(v)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo":
		return Todo
	case "working":
		return Working
	case "complete", "completed", "done":
		return Complete
	default:
		return Unknown
	}
}

// Record is the read-only frontmatter view of one note. Path is the unique
// identifier within a vault.
type Record struct {
	Path     string
	Title    string
	Classes  []string
	Statuses []Status
	Due      time.Time
	HasDue   bool
	Revision int
	Stage    stage.Stage
	HasStage bool
	Words    int
}

// IsScene reports whether any class value matches "Scene". Only scene-classed
// records participate in date-based classification.
func (r Record) IsScene() bool {
	for _, c := range r.Classes {
		if strings.EqualFold(strings.TrimSpace(c), "scene") {
			return true
		}
	}
	return false
}

// HasStatus reports whether any of the record's status values equals want.
// Frontmatter may carry the status as a scalar or a list; a list matches when
// any element matches.
func (r Record) HasStatus(want Status) bool {
	for _, s := range r.Statuses {
		if s == want {
			return true
		}
	}
	return false
}

// PrimaryStatus returns the first supplied status, or Unknown when none.
func (r Record) PrimaryStatus() Status {
	if len(r.Statuses) == 0 {
		return Unknown
	}
	return r.Statuses[0]
}

// FromFrontmatter interprets raw frontmatter fields for the note at path.
// Field lookup is case-insensitive; every value parse is total, so malformed
// frontmatter degrades to zero values instead of failing the record.
func FromFrontmatter(path, title string, fields map[string]any) Record {
	lookup := make(map[string]any, len(fields))
	for k, v := range fields {
		lookup[strings.ToLower(strings.TrimSpace(k))] = v
	}

	r := Record{
		Path:  path,
		Title: title,
	}
	if t, ok := lookup["title"]; ok {
		if s := strings.TrimSpace(fmt.Sprint(t)); s != "" {
			r.Title = s
		}
	}

	r.Classes = stringList(lookup["class"])
	for _, v := range anyList(lookup["status"]) {
		r.Statuses = append(r.Statuses, ParseStatus(v))
	}
	r.Due, r.HasDue = ParseDue(lookup["due"])
	r.Revision = parseInt(lookup["revision"])
	if raw, ok := lookup["publish stage"]; ok {
		r.Stage, r.HasStage = stage.Parse(strings.TrimSpace(fmt.Sprint(raw)))
	}
	words, ok := lookup["words"]
	if !ok {
		words = lookup["word count"]
	}
	r.Words = ParseWordCount(words)
	return r
}

// ParseDue resolves a frontmatter due value to a day-granular date. Accepted
// forms: a plain date string, a wiki-link reference ("[[2006-01-02]]" or
// "[[path/to/2006-01-02|alias]]") whose resolved basename is the date, or a
// reference object with a "path" field. The reported time-of-day is stripped.
func ParseDue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return Day(val), true
	case map[string]any:
		// Reference object form: the resolved path carries the date string.
		if p, ok := val["path"]; ok {
			return parseDueString(fmt.Sprint(p))
		}
		return time.Time{}, false
	case string:
		return parseDueString(val)
	default:
		return parseDueString(fmt.Sprint(v))
	}
}

func parseDueString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
		if idx := strings.IndexByte(s, '|'); idx >= 0 {
			s = s[:idx]
		}
		if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	}
	for _, layout := range []string{"2006-01-02", "2006-1-2", "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// ParseWordCount converts a frontmatter word-count value to a non-negative
// integer. Numeric and comma-formatted string forms are accepted; anything
// else counts as zero.
func ParseWordCount(v any) int {
	n := parseInt(v)
	if n < 0 {
		return 0
	}
	return n
}

func parseInt(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return val
	case int64:
		return int(val)
	case uint64:
		return int(val)
	case float64:
		return int(val)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if cleaned == "" {
			return 0
		}
		if n, err := strconv.Atoi(cleaned); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// Day strips the time-of-day so dates compare at day granularity. The result
// is normalized to UTC to keep day arithmetic stable across DST transitions.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func anyList(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

func stringList(v any) []string {
	items := anyList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
