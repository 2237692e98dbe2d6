// Package calendar classifies scene records onto a month grid: per-day
// display states, per-week completion buckets, and the manuscript-wide
// highest publish stage.
package calendar

import (
	"fmt"
	"time"

	"tableflip.dev/scenecal/pkg/scene"
)

const daysPerWeek = 7

// WeekNumber returns the 1-based week a date belongs to, with the year that
// owns the week. Weeks run Sunday through Saturday. A date whose week also
// contains January 1st of the following year belongs to week 1 of that year;
// otherwise the week number counts Sunday boundaries since the Sunday on or
// before January 1st of the date's own year.
//
// This is deliberately not ISO-8601: the boundary rule looks forward, and
// weeks start on Sunday.
func WeekNumber(d time.Time) (year, week int) {
	d = scene.Day(d)
	weekStart := d.AddDate(0, 0, -int(d.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek-1)

	nextJan1 := time.Date(d.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !weekEnd.Before(nextJan1) {
		return d.Year() + 1, 1
	}

	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	firstWeekStart := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	elapsed := int(weekStart.Sub(firstWeekStart) / (daysPerWeek * 24 * time.Hour))
	return d.Year(), elapsed + 1
}

// WeekKey formats the bucket key for the week containing d, e.g. "2026-W35".
func WeekKey(d time.Time) string {
	year, week := WeekNumber(d)
	return fmt.Sprintf("%d-W%d", year, week)
}

// WeekStart returns the Sunday on or before d.
func WeekStart(d time.Time) time.Time {
	d = scene.Day(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
