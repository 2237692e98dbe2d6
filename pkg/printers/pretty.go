// Package printers renders calendar snapshots for plain CLI output.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/scene"
	"tableflip.dev/scenecal/pkg/stage"
)

// PrettyPrint writes colorized calendar output.
type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// NoColorIfPiped disables color output when stdout is not a terminal.
func NoColorIfPiped() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}
}

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the month grid for then, one line per week, with day cells
// colored by display state and a trailing scenes/hundred-words ratio for
// weeks that completed anything.
func (pp *PrettyPrint) Month(then time.Time, snap *calendar.Snapshot) {
	w := pp.out()

	title := color.New(color.FgWhite, color.Italic)
	label := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(label)) / 2
	if mid < 0 {
		mid = 0
	}
	title.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), label)

	header := color.New(color.Faint)
	header.Fprintln(w, "Su Mo Tu We Th Fr Sa")

	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := daysIn(then)
	weekday := first.Weekday()

	for i := time.Sunday; i < weekday; i++ {
		fmt.Fprint(w, "   ")
	}

	for day := 1; day <= days; day++ {
		date := first.AddDate(0, 0, day-1)
		pp.printDay(w, date, day, snap)

		weekday++
		if weekday > time.Saturday {
			weekday = time.Sunday
			pp.printWeekRatio(w, date, snap)
			fmt.Fprint(w, "\n")
		}
	}
	if weekday != time.Sunday {
		last := first.AddDate(0, 0, days-1)
		for i := weekday; i <= time.Saturday; i++ {
			fmt.Fprint(w, "   ")
		}
		pp.printWeekRatio(w, last, snap)
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, "\n")
}

func (pp *PrettyPrint) printDay(w io.Writer, date time.Time, day int, snap *calendar.Snapshot) {
	printer := dayPrinter(snap, date)
	if snap != nil && scene.Day(date).Equal(snap.Today) {
		printer = printer.Add(color.Bold, color.Underline)
	}
	printer.Fprintf(w, "%2d ", day)
}

func (pp *PrettyPrint) printWeekRatio(w io.Writer, date time.Time, snap *calendar.Snapshot) {
	if snap == nil {
		return
	}
	bucket := snap.Week(date)
	if bucket == nil {
		return
	}
	faint := color.New(color.Faint)
	faint.Fprintf(w, " %s", bucket.Ratio())
}

// dayPrinter maps a resolved display state to its terminal color. Split
// days carry the completed stage color behind the overdue red.
func dayPrinter(snap *calendar.Snapshot, date time.Time) *color.Color {
	if snap == nil {
		return quietPrinter()
	}
	st := snap.DayState(date)
	switch st.Kind {
	case calendar.StateOverdue:
		return color.New(color.FgRed)
	case calendar.StateSplitOverdue:
		return color.New(color.FgRed).Add(stageBg(st.Stage))
	case calendar.StateWorking:
		return color.New(color.FgYellow)
	case calendar.StateFutureTodo:
		return color.New(color.FgCyan)
	case calendar.StateStages:
		top := st.Markers[len(st.Markers)-1]
		return stageColor(top.Stage)
	default:
		return quietPrinter()
	}
}

// quietPrinter picks a background-appropriate faint style for days without
// indicators.
func quietPrinter() *color.Color {
	if termenv.HasDarkBackground() {
		return color.New(color.Faint, color.FgWhite)
	}
	return color.New(color.Faint, color.FgBlack)
}

func stageColor(st stage.Stage) *color.Color {
	switch st {
	case stage.Author:
		return color.New(color.FgBlue)
	case stage.House:
		return color.New(color.FgMagenta)
	case stage.Press:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgHiWhite)
	}
}

func stageBg(st stage.Stage) color.Attribute {
	switch st {
	case stage.Author:
		return color.BgBlue
	case stage.House:
		return color.BgMagenta
	case stage.Press:
		return color.BgGreen
	default:
		return color.BgWhite
	}
}

// Weeks prints the per-week completion buckets as a table.
func (pp *PrettyPrint) Weeks(snap *calendar.Snapshot) {
	w := pp.out()
	buckets := snap.Weeks()
	if len(buckets) == 0 {
		faint := color.New(color.Faint, color.Italic)
		faint.Fprintln(w, " no completed scenes")
		return
	}

	table := uitable.New()
	table.AddRow("WEEK", "SCENES", "WORDS", "RATIO")
	for _, b := range buckets {
		table.AddRow(b.Key, b.SceneCount, b.WordCount, b.Ratio())
	}
	fmt.Fprintln(w, table)
}

// StageBadge prints the manuscript-wide highest publish stage.
func (pp *PrettyPrint) StageBadge(snap *calendar.Snapshot) {
	w := pp.out()
	label := color.New(color.Faint)
	label.Fprint(w, "Manuscript stage: ")
	badge := stageColor(snap.Highest).Add(color.Bold)
	badge.Fprintln(w, snap.Highest.String())
}

// Scenes prints one line per record, the way day tooltips list them.
func (pp *PrettyPrint) Scenes(records []scene.Record) {
	w := pp.out()
	if len(records) == 0 {
		faint := color.New(color.Faint, color.Italic)
		faint.Fprintln(w, " none")
		return
	}
	plain := color.New()
	faint := color.New(color.Faint)
	for _, r := range records {
		plain.Fprintf(w, "%s", r.Title)
		faint.Fprintf(w, "  %s", r.PrimaryStatus())
		if r.HasStage {
			faint.Fprintf(w, "  %s", r.Stage)
		}
		if r.Words > 0 {
			faint.Fprintf(w, "  %d words", r.Words)
		}
		if r.HasDue {
			faint.Fprintf(w, "  due %s", r.Due.Format("2006-01-02"))
		}
		fmt.Fprintln(w)
	}
}

func daysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
