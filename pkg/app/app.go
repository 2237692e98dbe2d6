// Package app provides the high-level calendar service shared by the CLI
// and the TUI: query the vault, classify, and hand out snapshots.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/vault"
)

// Service wraps a record source and the classifier so UIs and commands can
// share refresh logic. Snapshot generations are issued here; one Service
// means one monotonic sequence.
type Service struct {
	Source vault.RecordSource
	Scope  string

	// Now is the reference clock for classification. Defaults to time.Now.
	Now func() time.Time

	vault *vault.Vault
	debug io.Writer
	gen   atomic.Uint64
}

var ErrNoVault = errors.New("app: no vault configured")

// New builds a Service over a markdown vault described by cfg.
func New(cfg vault.Config) (*Service, error) {
	v, err := vault.New(cfg)
	if err != nil {
		return nil, err
	}
	debug := io.Discard
	if cfg.Debug() {
		debug = os.Stderr
	}
	return &Service{
		Source: v,
		Scope:  cfg.FolderScope(),
		vault:  v,
		debug:  debug,
	}, nil
}

// NewFromSource builds a Service over an arbitrary record source. Watch and
// NoteBody are unavailable; tests and fakes use this constructor.
func NewFromSource(src vault.RecordSource, scope string) *Service {
	return &Service{Source: src, Scope: scope, debug: io.Discard}
}

// Snapshot runs one full refresh pass: query with fallback, classify, and
// stamp the result with the next generation. The query always completes
// before classification starts; there is no partial snapshot.
func (s *Service) Snapshot(ctx context.Context) (*calendar.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := vault.Query(ctx, s.Source, s.Scope, s.debug)
	snap := calendar.Classify(records, s.now()())
	snap.Generation = s.gen.Add(1)
	return snap, nil
}

// Generation returns the most recently issued snapshot generation.
func (s *Service) Generation() uint64 {
	return s.gen.Load()
}

// Watch subscribes to vault change events, filtered to the configured scope.
func (s *Service) Watch(ctx context.Context) (<-chan vault.Event, error) {
	if s.vault == nil {
		return nil, ErrNoVault
	}
	return s.vault.Watch(ctx, s.Scope)
}

// NoteBody returns a note's markdown body with frontmatter stripped.
func (s *Service) NoteBody(path string) (string, error) {
	if s.vault == nil {
		return "", ErrNoVault
	}
	return s.vault.Body(path)
}

// Invalidate drops the parsed-frontmatter cache so the next refresh
// re-reads every note.
func (s *Service) Invalidate() {
	if s.Source != nil {
		s.Source.InvalidateCache()
	}
}

func (s *Service) now() func() time.Time {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}
