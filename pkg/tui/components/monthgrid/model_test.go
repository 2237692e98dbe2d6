package monthgrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/tui/theme"
)

var testToday = time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)

func testModel() *Model {
	m := New(theme.Default(), testToday)
	records := []scene.Record{{
		Path:     "a.md",
		Title:    "a",
		Classes:  []string{"scene"},
		Statuses: []scene.Status{scene.Complete},
		Due:      time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC),
		HasDue:   true,
		Words:    900,
	}}
	m.SetSnapshot(calendar.Classify(records, testToday))
	return m
}

func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(t *testing.T, m *Model, key string) []tea.Msg {
	t.Helper()
	msg := tea.KeyPressMsg{Text: key, Code: rune(key[0])}
	_, cmd := m.Update(msg)
	return drain(t, cmd)
}

func TestSelectionMovesWithinMonth(t *testing.T) {
	m := testModel()
	msgs := press(t, m, "l")
	if got := m.SelectedDate(); got.Day() != 27 {
		t.Fatalf("selected = %v, want Aug 27", got)
	}
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v, want one selection change", msgs)
	}
	if sel, ok := msgs[0].(SelectionChangedMsg); !ok || sel.Date.Day() != 27 {
		t.Fatalf("unexpected msg %v", msgs[0])
	}

	press(t, m, "j")
	if got := m.SelectedDate(); got.Day() != 3 || got.Month() != time.September {
		t.Fatalf("down from Aug 27 should land on Sep 3, got %v", got)
	}
}

func TestSelectionRollsIntoPreviousMonth(t *testing.T) {
	m := New(theme.Default(), time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))
	msgs := press(t, m, "h")
	if got := m.SelectedDate(); got.Month() != time.July || got.Day() != 31 {
		t.Fatalf("left from Aug 1 should land on Jul 31, got %v", got)
	}
	var changed bool
	for _, msg := range msgs {
		if _, ok := msg.(MonthChangedMsg); ok {
			changed = true
		}
	}
	if !changed {
		t.Fatal("rolling into the previous month should emit MonthChangedMsg")
	}
}

func TestBracketKeysNavigateMonths(t *testing.T) {
	m := testModel()
	msgs := press(t, m, "]")
	if m.Month().Month() != time.September {
		t.Fatalf("month = %v, want September", m.Month())
	}
	var changed bool
	for _, msg := range msgs {
		if mc, ok := msg.(MonthChangedMsg); ok && mc.Month.Month() == time.September {
			changed = true
		}
	}
	if !changed {
		t.Fatal("expected MonthChangedMsg for September")
	}

	press(t, m, "[")
	press(t, m, "[")
	if m.Month().Month() != time.July {
		t.Fatalf("month = %v, want July", m.Month())
	}
}

func TestJumpToTodayAfterNavigation(t *testing.T) {
	m := testModel()
	press(t, m, "]")
	press(t, m, "]")
	press(t, m, "t")
	if got := m.SelectedDate(); !got.Equal(testToday) {
		t.Fatalf("t should return to today, got %v", got)
	}
}

func TestEnterEmitsOpenRequest(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v, want one open request", msgs)
	}
	open, ok := msgs[0].(OpenRequestedMsg)
	if !ok || !open.Date.Equal(testToday) {
		t.Fatalf("unexpected msg %v", msgs[0])
	}
}

func TestViewShowsTitleHeaderAndRatio(t *testing.T) {
	m := testModel()
	view := stripANSIString(m.View())
	if !strings.Contains(view, "August 2026") {
		t.Fatalf("missing title; view=%q", view)
	}
	if !strings.Contains(view, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("missing header; view=%q", view)
	}
	if !strings.Contains(view, "1 / 9") {
		t.Fatalf("missing week ratio; view=%q", view)
	}
}

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
