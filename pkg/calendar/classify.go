package calendar

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/stage"
)

// StateKind is the top-level visual classification of a day cell. The
// resolver assigns exactly one kind per day.
type StateKind int

const (
	StateNone StateKind = iota

	// StateOverdue marks a past-due, uncompleted scene.
	StateOverdue

	// StateSplitOverdue marks a day with both an overdue scene and a
	// completed scene: half the indicator carries the completed stage
	// color, half the overdue color.
	StateSplitOverdue

	// StateWorking marks an upcoming scene currently being worked.
	StateWorking

	// StateFutureTodo marks an upcoming scene not yet started.
	StateFutureTodo

	// StateStages marks a day with completed scenes only; the cell carries
	// one marker per distinct stage present.
	StateStages
)

// StageMarker is one per-stage indicator on a completed day.
type StageMarker struct {
	Stage stage.Stage

	// SplitRevised is set on a ZERO marker when the day has completed
	// ZERO-stage scenes both at revision 0 and at revision > 0; the marker
	// renders as a split zero/revised indicator.
	SplitRevised bool
}

// DayState is the resolved display state for one calendar day.
type DayState struct {
	Kind    StateKind
	Stage   stage.Stage   // completed stage backing a split cell
	Markers []StageMarker // populated for StateStages
}

// WeekBucket accumulates completion statistics for scenes due within one
// calendar week.
type WeekBucket struct {
	Key        string
	Year       int
	Week       int
	SceneCount int
	WordCount  int
}

// Ratio renders the bucket as scenes over hundreds of words, e.g. "3 / 25"
// for three scenes totalling 2500 words.
func (b *WeekBucket) Ratio() string {
	return fmt.Sprintf("%d / %d", b.SceneCount, b.WordCount/100)
}

// Snapshot is the derived state for one render pass. It is rebuilt from
// scratch on every refresh and never mutated afterwards; consumers compare
// Generation values to discard results from superseded passes.
type Snapshot struct {
	Generation uint64
	Today      time.Time
	Highest    stage.Stage

	futureTodo    map[time.Time][]scene.Record
	futureWorking map[time.Time][]scene.Record
	overdue       map[time.Time][]scene.Record
	completed     map[time.Time][]scene.Record
	notesByDate   map[time.Time][]scene.Record
	weeks         map[string]*WeekBucket
}

// Classify partitions records into the calendar's classification sets,
// resolves the manuscript's highest publish stage, and aggregates per-week
// completion buckets. The categories are non-exclusive: one record may feed
// several sets, but contributes to week aggregation at most once, keyed by
// its own due date's week.
//
// The highest-stage scan covers every record carrying a publish stage, not
// only scene-classed ones. Date-keyed sets take scene-classed records only,
// and silently skip records without a parsable due date.
func Classify(records []scene.Record, today time.Time) *Snapshot {
	s := &Snapshot{
		Today:         scene.Day(today),
		futureTodo:    make(map[time.Time][]scene.Record),
		futureWorking: make(map[time.Time][]scene.Record),
		overdue:       make(map[time.Time][]scene.Record),
		completed:     make(map[time.Time][]scene.Record),
		notesByDate:   make(map[time.Time][]scene.Record),
		weeks:         make(map[string]*WeekBucket),
	}

	for _, r := range records {
		if r.HasStage {
			s.Highest = stage.Max(s.Highest, r.Stage)
		}
		if !r.IsScene() || !r.HasDue {
			continue
		}

		due := scene.Day(r.Due)
		s.notesByDate[due] = append(s.notesByDate[due], r)

		if r.HasStatus(scene.Complete) {
			s.completed[due] = append(s.completed[due], r)
			if !due.After(s.Today) {
				s.accumulate(due, r)
			}
			continue
		}

		if due.Before(s.Today) {
			s.overdue[due] = append(s.overdue[due], r)
			continue
		}
		if r.HasStatus(scene.Working) {
			s.futureWorking[due] = append(s.futureWorking[due], r)
		}
		if r.HasStatus(scene.Todo) {
			s.futureTodo[due] = append(s.futureTodo[due], r)
		}
	}

	for _, list := range s.notesByDate {
		sortRecords(list)
	}
	return s
}

// accumulate counts a completed scene into its due week unconditionally.
// Earlier vaults gated this on the record's stage matching the manuscript's
// highest stage (with a revision-0 carve-out at ZERO); the current policy
// counts every completed scene once the past-due filter is satisfied.
func (s *Snapshot) accumulate(due time.Time, r scene.Record) {
	key := WeekKey(due)
	bucket, ok := s.weeks[key]
	if !ok {
		year, week := WeekNumber(due)
		bucket = &WeekBucket{Key: key, Year: year, Week: week}
		s.weeks[key] = bucket
	}
	bucket.SceneCount++
	bucket.WordCount += r.Words
}

// DayState resolves the display state for a date via a strict priority
// chain; a day never renders more than one top-level classification.
func (s *Snapshot) DayState(d time.Time) DayState {
	day := scene.Day(d)
	completed := s.completed[day]

	if len(s.overdue[day]) > 0 {
		if len(completed) > 0 {
			st := stage.Zero
			for _, r := range completed {
				st = stage.Max(st, r.Stage)
			}
			return DayState{Kind: StateSplitOverdue, Stage: st}
		}
		return DayState{Kind: StateOverdue}
	}
	if len(s.futureWorking[day]) > 0 {
		return DayState{Kind: StateWorking}
	}
	if len(s.futureTodo[day]) > 0 {
		return DayState{Kind: StateFutureTodo}
	}
	if len(completed) > 0 {
		return DayState{Kind: StateStages, Markers: stageMarkers(completed)}
	}
	return DayState{}
}

// stageMarkers derives one marker per distinct stage among the day's
// completed records, ascending by rank. A ZERO marker becomes split when the
// day carries both unrevised and revised ZERO scenes.
func stageMarkers(completed []scene.Record) []StageMarker {
	present := make(map[stage.Stage]bool)
	zeroUnrevised := false
	zeroRevised := false
	for _, r := range completed {
		present[r.Stage] = true
		if r.Stage == stage.Zero {
			if r.Revision > 0 {
				zeroRevised = true
			} else {
				zeroUnrevised = true
			}
		}
	}

	markers := make([]StageMarker, 0, len(present))
	for _, st := range stage.All() {
		if !present[st] {
			continue
		}
		m := StageMarker{Stage: st}
		if st == stage.Zero && zeroUnrevised && zeroRevised {
			m.SplitRevised = true
		}
		markers = append(markers, m)
	}
	return markers
}

// Records returns every scene record due on the given date, for tooltips and
// open actions.
func (s *Snapshot) Records(d time.Time) []scene.Record {
	return s.notesByDate[scene.Day(d)]
}

// OpenTargets resolves which notes a click on the day cell opens. Split days
// target only the overdue records; the completed ones stay visible in the
// tooltip but are excluded from the open action.
func (s *Snapshot) OpenTargets(d time.Time) []scene.Record {
	day := scene.Day(d)
	if len(s.overdue[day]) > 0 && len(s.completed[day]) > 0 {
		targets := append([]scene.Record(nil), s.overdue[day]...)
		sortRecords(targets)
		return targets
	}
	return s.Records(day)
}

// Week returns the completion bucket for the week containing d, or nil when
// nothing completed in that week.
func (s *Snapshot) Week(d time.Time) *WeekBucket {
	return s.weeks[WeekKey(d)]
}

// Weeks returns all non-empty buckets in chronological order.
func (s *Snapshot) Weeks() []*WeekBucket {
	out := make([]*WeekBucket, 0, len(s.weeks))
	for _, b := range s.weeks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

// Overdue returns every past-due record, ordered by due date then path.
func (s *Snapshot) Overdue() []scene.Record {
	return flatten(s.overdue)
}

// Completed returns every completed record, ordered by due date then path.
func (s *Snapshot) Completed() []scene.Record {
	return flatten(s.completed)
}

// Future returns the pending records due today or later. A record carrying
// both Todo and Working appears once.
func (s *Snapshot) Future() []scene.Record {
	merged := make(map[time.Time][]scene.Record, len(s.futureTodo))
	for day, records := range s.futureTodo {
		merged[day] = append(merged[day], records...)
	}
	for day, records := range s.futureWorking {
		for _, r := range records {
			if !containsPath(merged[day], r.Path) {
				merged[day] = append(merged[day], r)
			}
		}
	}
	return flatten(merged)
}

// All returns every date-classified record, ordered by due date then path.
func (s *Snapshot) All() []scene.Record {
	return flatten(s.notesByDate)
}

func flatten(byDate map[time.Time][]scene.Record) []scene.Record {
	days := make([]time.Time, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var out []scene.Record
	for _, day := range days {
		records := append([]scene.Record(nil), byDate[day]...)
		sortRecords(records)
		out = append(out, records...)
	}
	return out
}

func containsPath(records []scene.Record, path string) bool {
	for _, r := range records {
		if r.Path == path {
			return true
		}
	}
	return false
}

// Empty reports whether the snapshot carries no classified records at all.
func (s *Snapshot) Empty() bool {
	return len(s.notesByDate) == 0
}

func sortRecords(records []scene.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
}
