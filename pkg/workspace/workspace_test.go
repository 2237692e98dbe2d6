package workspace

import "testing"

func TestOpenActivatesFirstNewTab(t *testing.T) {
	w := New()
	result := w.Open("a.md", "b.md")

	if len(result.Opened) != 2 || len(result.Revealed) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if w.Active() != "a.md" {
		t.Fatalf("active = %q, want first newly opened tab", w.Active())
	}
}

func TestOpenRevealsExistingInsteadOfDuplicating(t *testing.T) {
	w := New()
	w.Open("a.md", "b.md")
	w.Open("c.md")

	result := w.Open("b.md")
	if len(result.Opened) != 0 {
		t.Fatalf("already-open note should not open again: %+v", result)
	}
	if len(result.Revealed) != 1 || result.Revealed[0] != "b.md" {
		t.Fatalf("expected reveal of b.md: %+v", result)
	}
	if w.Active() != "b.md" {
		t.Fatalf("revealed tab should be active, got %q", w.Active())
	}
	if len(w.Tabs()) != 3 {
		t.Fatalf("tabs = %v, want no duplicates", w.Tabs())
	}
}

func TestOpenMixedRevealWinsActivation(t *testing.T) {
	w := New()
	w.Open("a.md")

	// a.md is revealed, b.md opens as a background tab: the reveal wins.
	result := w.Open("a.md", "b.md")
	if len(result.Revealed) != 1 || len(result.Opened) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if w.Active() != "a.md" {
		t.Fatalf("active = %q, want revealed tab", w.Active())
	}
}

func TestCloseAdjustsActivation(t *testing.T) {
	w := New()
	w.Open("a.md", "b.md", "c.md")
	w.Activate("c.md")

	w.Close("c.md")
	if w.Active() != "b.md" {
		t.Fatalf("active after closing tail = %q, want b.md", w.Active())
	}

	w.Close("a.md")
	if w.Active() != "b.md" {
		t.Fatalf("closing a left neighbor should keep b.md active, got %q", w.Active())
	}

	w.Close("b.md")
	if w.Active() != "" || len(w.Tabs()) != 0 {
		t.Fatalf("workspace should be empty, active=%q tabs=%v", w.Active(), w.Tabs())
	}
}

func TestNextCycles(t *testing.T) {
	w := New()
	w.Open("a.md", "b.md")
	w.Next()
	if w.Active() != "b.md" {
		t.Fatalf("Next should advance, got %q", w.Active())
	}
	w.Next()
	if w.Active() != "a.md" {
		t.Fatalf("Next should wrap, got %q", w.Active())
	}
}
