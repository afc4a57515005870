// Package calendar holds the pure scheduling engine behind the calendar view:
// month grids, campaign overlays, per-day post aggregation and filtering.
// Nothing here touches the store; every function is safe for concurrent use.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

const daysPerWeek = 7

// BuildMonthGrid returns the weeks of the month containing anchor. Every week
// holds exactly seven contiguous dates starting on weekStart; leading and
// trailing cells are filled from the adjacent months.
func BuildMonthGrid(anchor civil.Date, weekStart time.Weekday) [][]civil.Date {
	if !anchor.IsValid() {
		return nil
	}
	weekStart = normalizeWeekday(weekStart)

	first := civil.Date{Year: anchor.Year, Month: anchor.Month, Day: 1}
	last := first.AddDays(DaysIn(anchor.Year, anchor.Month) - 1)

	leading := (int(Weekday(first)) - int(weekStart) + daysPerWeek) % daysPerWeek
	trailing := (int(weekStart) + daysPerWeek - 1 - int(Weekday(last)) + daysPerWeek) % daysPerWeek

	start := first.AddDays(-leading)
	total := last.DaysSince(start) + 1 + trailing

	weeks := make([][]civil.Date, 0, total/daysPerWeek)
	for w := 0; w < total/daysPerWeek; w++ {
		week := make([]civil.Date, daysPerWeek)
		for d := range week {
			week[d] = start.AddDays(w*daysPerWeek + d)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// GridRange returns the first and last date a month grid covers.
func GridRange(anchor civil.Date, weekStart time.Weekday) (civil.Date, civil.Date, bool) {
	weeks := BuildMonthGrid(anchor, weekStart)
	if len(weeks) == 0 {
		return civil.Date{}, civil.Date{}, false
	}
	return weeks[0][0], weeks[len(weeks)-1][daysPerWeek-1], true
}

// SameMonth reports whether d belongs to the anchor's month.
func SameMonth(d, anchor civil.Date) bool {
	return d.Year == anchor.Year && d.Month == anchor.Month
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

func normalizeWeekday(w time.Weekday) time.Weekday {
	return time.Weekday(((int(w) % daysPerWeek) + daysPerWeek) % daysPerWeek)
}
