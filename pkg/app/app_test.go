package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/vault"
)

type fakeSource struct {
	records     []scene.Record
	scopedErr   error
	invalidated int
}

func (f *fakeSource) QueryAll(ctx context.Context) ([]scene.Record, error) {
	return f.records, nil
}

func (f *fakeSource) QueryByFolder(ctx context.Context, scope string) ([]scene.Record, error) {
	if f.scopedErr != nil {
		return nil, f.scopedErr
	}
	return f.records, nil
}

func (f *fakeSource) InvalidateCache() { f.invalidated++ }

var _ vault.RecordSource = (*fakeSource)(nil)

func testRecords() []scene.Record {
	due := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	return []scene.Record{{
		Path:     "ch1/opening.md",
		Title:    "opening",
		Classes:  []string{"Scene"},
		Statuses: []scene.Status{scene.Todo},
		Due:      due,
		HasDue:   true,
	}}
}

func TestSnapshotIncrementsGeneration(t *testing.T) {
	svc := NewFromSource(&fakeSource{records: testRecords()}, "")
	svc.Now = func() time.Time {
		return time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	}

	first, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	second, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if first.Generation != 1 || second.Generation != 2 {
		t.Fatalf("generations = %d, %d; want 1, 2", first.Generation, second.Generation)
	}
	if svc.Generation() != 2 {
		t.Fatalf("Generation() = %d, want 2", svc.Generation())
	}
	if first.Empty() {
		t.Fatal("snapshot should carry the queried records")
	}
}

func TestSnapshotFallsBackWhenScopedQueryFails(t *testing.T) {
	src := &fakeSource{records: testRecords(), scopedErr: errors.New("no such folder")}
	svc := NewFromSource(src, "ch1")

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Empty() {
		t.Fatal("fallback to unscoped query should still find records")
	}
}

func TestSnapshotNilSourceYieldsEmptyCalendar(t *testing.T) {
	svc := NewFromSource(nil, "")
	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snap.Empty() {
		t.Fatal("nil source should produce an empty snapshot")
	}
}

func TestSnapshotHonorsCancelledContext(t *testing.T) {
	svc := NewFromSource(&fakeSource{records: testRecords()}, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestInvalidateReachesSource(t *testing.T) {
	src := &fakeSource{}
	svc := NewFromSource(src, "")
	svc.Invalidate()
	if src.invalidated != 1 {
		t.Fatalf("invalidated = %d, want 1", src.invalidated)
	}
}

func TestWatchUnavailableWithoutVault(t *testing.T) {
	svc := NewFromSource(&fakeSource{}, "")
	if _, err := svc.Watch(context.Background()); !errors.Is(err, ErrNoVault) {
		t.Fatalf("err = %v, want ErrNoVault", err)
	}
}
