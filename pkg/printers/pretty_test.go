package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/stage"
)

func plainSnapshot(t *testing.T) *calendar.Snapshot {
	t.Helper()
	today := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)
	records := []scene.Record{
		{
			Path:     "a.md",
			Title:    "a",
			Classes:  []string{"Scene"},
			Statuses: []scene.Status{scene.Complete},
			Due:      time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC),
			HasDue:   true,
			Stage:    stage.Author,
			HasStage: true,
			Words:    1200,
		},
	}
	return calendar.Classify(records, today)
}

func TestMonthPrintsEveryDayAndRatio(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Month(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), plainSnapshot(t))

	out := buf.String()
	if !strings.Contains(out, "August 2026") {
		t.Fatalf("missing month title:\n%s", out)
	}
	if !strings.Contains(out, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("missing weekday header:\n%s", out)
	}
	for _, day := range []string{" 1 ", "15 ", "31 "} {
		if !strings.Contains(out, day) {
			t.Fatalf("missing day %q:\n%s", day, out)
		}
	}
	if !strings.Contains(out, "1 / 12") {
		t.Fatalf("missing week ratio:\n%s", out)
	}
}

func TestMonthEmptySnapshotDoesNotCrash(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	snap := calendar.Classify(nil, time.Now())
	pp.Month(time.Now(), snap)

	if strings.Contains(buf.String(), "/") {
		t.Fatalf("empty snapshot should print no ratios:\n%s", buf.String())
	}
}

func TestWeeksTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Weeks(plainSnapshot(t))

	out := buf.String()
	if !strings.Contains(out, "2026-W35") || !strings.Contains(out, "1 / 12") {
		t.Fatalf("weeks table incomplete:\n%s", out)
	}
}

func TestStageBadge(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.StageBadge(plainSnapshot(t))

	if !strings.Contains(buf.String(), "AUTHOR") {
		t.Fatalf("badge missing stage:\n%s", buf.String())
	}
}
