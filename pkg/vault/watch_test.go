package vault

import (
	"context"
	"testing"
	"time"
)

func TestWatchEmitsNoteChanges(t *testing.T) {
	dir := t.TempDir()
	v := testVault(dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := v.Watch(ctx, "")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	writeNote(t, dir, "scene.md", sceneNote)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventVaultInvalidated {
				return
			}
			if evt.Type == EventNoteChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for note change event")
		}
	}
}

func TestWatchIgnoresOutOfScopeNotes(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "inside/seed.md", sceneNote)
	writeNote(t, dir, "outside/seed.md", sceneNote)
	v := testVault(dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := v.Watch(ctx, "inside")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	writeNote(t, dir, "outside/ignored.md", sceneNote)

	select {
	case evt := <-ch:
		if evt.Type == EventNoteChanged {
			t.Fatalf("out-of-scope note produced event: %+v", evt)
		}
	case <-time.After(settleDelay * 3):
		// No event: the out-of-scope write was filtered.
	}
}

func TestInScope(t *testing.T) {
	v := testVault("/vault")
	cases := []struct {
		path  string
		scope string
		want  bool
	}{
		{"/vault/a.md", "", true},
		{"/vault/book/a.md", "book", true},
		{"/vault/book/part/a.md", "book", true},
		{"/vault/other/a.md", "book", false},
		{"/elsewhere/a.md", "", false},
		{"/vault/book/a.md", `"book"`, true},
	}
	for _, tc := range cases {
		if got := v.inScope(tc.path, tc.scope); got != tc.want {
			t.Fatalf("inScope(%q, %q) = %v, want %v", tc.path, tc.scope, got, tc.want)
		}
	}
}
