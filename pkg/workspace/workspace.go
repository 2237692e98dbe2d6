// Package workspace tracks the set of notes currently open as tabs and the
// reveal-versus-open rules for activating them.
package workspace

// Workspace is a plain tab list with one active tab. It does no I/O; the UI
// layer decides how tabs are shown.
type Workspace struct {
	tabs   []string
	active int
}

// OpenResult reports what a call to Open did.
type OpenResult struct {
	Revealed []string
	Opened   []string
	Active   string
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{active: -1}
}

// Open brings the given notes into the workspace. Notes already open are
// revealed rather than duplicated; the rest open as new tabs. When an
// existing tab was revealed it stays active; otherwise the first newly
// opened tab is activated.
func (w *Workspace) Open(paths ...string) OpenResult {
	var result OpenResult
	firstOpened := -1

	for _, path := range paths {
		if path == "" {
			continue
		}
		if idx := w.index(path); idx >= 0 {
			if len(result.Revealed) == 0 {
				w.active = idx
			}
			result.Revealed = append(result.Revealed, path)
			continue
		}
		w.tabs = append(w.tabs, path)
		if firstOpened < 0 {
			firstOpened = len(w.tabs) - 1
		}
		result.Opened = append(result.Opened, path)
	}

	if len(result.Revealed) == 0 && firstOpened >= 0 {
		w.active = firstOpened
	}
	result.Active = w.Active()
	return result
}

// Active returns the active tab's path, or "" when nothing is open.
func (w *Workspace) Active() string {
	if w.active < 0 || w.active >= len(w.tabs) {
		return ""
	}
	return w.tabs[w.active]
}

// Tabs returns the open tabs in order.
func (w *Workspace) Tabs() []string {
	return append([]string(nil), w.tabs...)
}

// Activate makes the tab at path active, if open.
func (w *Workspace) Activate(path string) bool {
	if idx := w.index(path); idx >= 0 {
		w.active = idx
		return true
	}
	return false
}

// Next cycles the active tab forward.
func (w *Workspace) Next() {
	if len(w.tabs) == 0 {
		return
	}
	w.active = (w.active + 1) % len(w.tabs)
}

// Close removes the tab at path. When the active tab closes, activation
// falls back to its left neighbor.
func (w *Workspace) Close(path string) {
	idx := w.index(path)
	if idx < 0 {
		return
	}
	w.tabs = append(w.tabs[:idx], w.tabs[idx+1:]...)
	switch {
	case len(w.tabs) == 0:
		w.active = -1
	case w.active > idx:
		w.active--
	case w.active == idx && w.active >= len(w.tabs):
		w.active = len(w.tabs) - 1
	}
}

func (w *Workspace) index(path string) int {
	for i, tab := range w.tabs {
		if tab == path {
			return i
		}
	}
	return -1
}
