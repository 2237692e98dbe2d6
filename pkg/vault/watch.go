package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a vault change notification.
type EventType int

const (
	// EventNoteChanged indicates a single note was written, created,
	// renamed, or removed.
	EventNoteChanged EventType = iota

	// EventVaultInvalidated signals a structural change (new directory,
	// watcher error) where callers should refresh everything.
	EventVaultInvalidated
)

// Event is emitted by Vault.Watch when the underlying files change.
type Event struct {
	Type EventType
	Path string
}

// settleDelay coalesces bursts of filesystem activity so a save that
// touches several files triggers one refresh, after the writes settle.
const settleDelay = 250 * time.Millisecond

// Watch streams change events until ctx is cancelled. Only markdown files
// within the given folder scope produce note events (empty scope matches
// the whole vault). Callers should drain the returned channel; the channel
// is closed once ctx is done or the watcher fails unrecoverably.
func (v *Vault) Watch(ctx context.Context, scope string) (<-chan Event, error) {
	if v.root == "" {
		return nil, errors.New("vault: root unknown")
	}
	if _, err := os.Stat(v.root); err != nil {
		return nil, fmt.Errorf("vault: stat root: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("vault: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				v.debugf("vault: watcher close: %v", err)
			}
		})
	}

	dirs, err := collectDirs(v.root)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("vault: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("vault: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// refresh picks up the changes anyway and a filesystem
				// storm must not block the watcher goroutine.
			}
		}

		throttle := newEventThrottle(settleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh to keep the
				// view in sync even when the change cannot be classified.
				throttle.Enqueue(Event{Type: EventVaultInvalidated}, send)
				v.debugf("vault: watcher: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								v.debugf("vault: watch %s: %v", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventVaultInvalidated}, send)
						continue
					}
				}

				if !strings.EqualFold(filepath.Ext(evt.Name), ".md") {
					continue
				}
				if !v.inScope(evt.Name, scope) {
					continue
				}
				throttle.Enqueue(Event{Type: EventNoteChanged, Path: evt.Name}, send)
			}
		}
	}()

	return events, nil
}

// inScope reports whether path falls within the folder scope. An empty
// scope matches every file in the vault.
func (v *Vault) inScope(path, scope string) bool {
	rel, err := filepath.Rel(v.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	scope = strings.Trim(strings.TrimSpace(scope), `"`)
	if scope == "" {
		return true
	}
	scoped, err := filepath.Rel(filepath.Clean(scope), rel)
	if err != nil {
		return false
	}
	return scoped == "." || !strings.HasPrefix(scoped, "..")
}

// collectDirs walks base and returns all directories that should be
// watched, skipping hidden ones.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so the view redraws
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Path] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, paths := range pending {
		if len(paths) == 0 {
			send(Event{Type: eventType})
			continue
		}
		for path := range paths {
			send(Event{Type: eventType, Path: path})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
