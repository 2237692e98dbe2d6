package scene

import (
	"testing"
	"time"

	"tableflip.dev/scenecal/pkg/stage"
)

func TestParseWordCount(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{1200, 1200},
		{"1500", 1500},
		{"1,500", 1500},
		{"12,345,678", 12345678},
		{float64(987), 987},
		{nil, 0},
		{"", 0},
		{"lots", 0},
		{-40, 0},
		{"-40", 0},
	}
	for _, tc := range cases {
		if got := ParseWordCount(tc.in); got != tc.want {
			t.Fatalf("ParseWordCount(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDueForms(t *testing.T) {
	want := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	cases := []any{
		"2026-03-04",
		"2026-3-4",
		"[[2026-03-04]]",
		"[[Calendar/2026-03-04]]",
		"[[Calendar/2026-03-04.md|Wednesday]]",
		map[string]any{"path": "Calendar/2026-03-04.md"},
		time.Date(2026, time.March, 4, 18, 30, 0, 0, time.Local),
	}
	for _, in := range cases {
		got, ok := ParseDue(in)
		if !ok {
			t.Fatalf("ParseDue(%v) not parsed", in)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDue(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDueRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "", "someday", "[[not a date]]", 42, map[string]any{"href": "x"}} {
		if _, ok := ParseDue(in); ok {
			t.Fatalf("ParseDue(%v) unexpectedly parsed", in)
		}
	}
}

func TestStatusListMatching(t *testing.T) {
	r := FromFrontmatter("a.md", "A", map[string]any{
		"Status": []any{"Todo", "Working"},
	})
	if !r.HasStatus(Todo) || !r.HasStatus(Working) {
		t.Fatalf("list status should match both Todo and Working: %+v", r.Statuses)
	}
	if r.HasStatus(Complete) {
		t.Fatalf("list status should not match Complete")
	}

	r = FromFrontmatter("b.md", "B", map[string]any{"Status": "Complete"})
	if !r.HasStatus(Complete) {
		t.Fatalf("scalar status should match Complete")
	}
}

func TestFromFrontmatterFields(t *testing.T) {
	r := FromFrontmatter("scenes/1.2.md", "1.2", map[string]any{
		"Class":         "Scene",
		"Status":        "Complete",
		"Due":           "2026-08-20",
		"Revision":      2,
		"Publish Stage": "First",
		"Word Count":    "2,250",
	})

	if !r.IsScene() {
		t.Fatalf("record should be scene-classed")
	}
	if !r.HasDue || r.Due != time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("due not parsed: %+v", r)
	}
	if r.Revision != 2 {
		t.Fatalf("revision = %d, want 2", r.Revision)
	}
	if !r.HasStage || r.Stage != stage.Author {
		t.Fatalf("legacy stage First should normalize to AUTHOR, got %v", r.Stage)
	}
	if r.Words != 2250 {
		t.Fatalf("words = %d, want 2250", r.Words)
	}
}

func TestFromFrontmatterDefaults(t *testing.T) {
	r := FromFrontmatter("n.md", "n", map[string]any{
		"Class":    "Scene",
		"Revision": "not a number",
	})
	if r.Revision != 0 {
		t.Fatalf("non-numeric revision should default to 0, got %d", r.Revision)
	}
	if r.HasStage {
		t.Fatalf("absent stage should leave HasStage false")
	}
	if r.Stage != stage.Zero {
		t.Fatalf("absent stage should default to ZERO")
	}
	if r.Words != 0 {
		t.Fatalf("absent word count should default to 0")
	}
	if r.HasDue {
		t.Fatalf("absent due should leave HasDue false")
	}
}

func TestFromFrontmatterCaseInsensitiveKeys(t *testing.T) {
	r := FromFrontmatter("c.md", "c", map[string]any{
		"class":         "Scene",
		"STATUS":        "Working",
		"due":           "2026-01-05",
		"publish stage": "Editing",
		"words":         500,
	})
	if !r.IsScene() || !r.HasStatus(Working) || !r.HasDue || r.Stage != stage.House || r.Words != 500 {
		t.Fatalf("case-insensitive key lookup failed: %+v", r)
	}
}

func TestClassListMatching(t *testing.T) {
	r := FromFrontmatter("d.md", "d", map[string]any{"Class": []any{"Note", "Scene"}})
	if !r.IsScene() {
		t.Fatalf("class list containing Scene should match")
	}
	r = FromFrontmatter("e.md", "e", map[string]any{"Class": "Character"})
	if r.IsScene() {
		t.Fatalf("non-scene class should not match")
	}
}
