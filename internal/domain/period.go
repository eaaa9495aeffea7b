package domain

import "time"

// Accounting periods are classified in UTC. Two distinct rules coexist on
// purpose: SamePeriod asks "do these instants share a calendar bucket?",
// while ShouldReset asks "has a full cadence window elapsed?". For monthly
// habits the two disagree near 31-day month boundaries; callers pick the
// rule that matches their question.

// SamePeriod reports whether a and b fall into the same accounting period
// for the given cadence. Daily compares UTC calendar days, weekly compares
// ISO weeks (Monday first), monthly compares calendar year and month.
func SamePeriod(c Cadence, a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	switch c {
	case CadenceWeekly:
		ay, aw := a.ISOWeek()
		by, bw := b.ISOWeek()
		return ay == by && aw == bw
	case CadenceMonthly:
		return a.Year() == b.Year() && a.Month() == b.Month()
	default:
		ay, am, ad := a.Date()
		by, bm, bd := b.Date()
		return ay == by && am == bm && ad == bd
	}
}

// ShouldReset reports whether enough time has elapsed since anchor that the
// progress accumulated there belongs to a finished period. A nil anchor
// always resets. The monthly window is a fixed 30 days, not calendar-aware.
func ShouldReset(c Cadence, anchor *time.Time, now time.Time) bool {
	if anchor == nil {
		return true
	}
	elapsed := now.UTC().Sub(anchor.UTC())
	switch c {
	case CadenceWeekly:
		return elapsed >= 7*24*time.Hour
	case CadenceMonthly:
		return elapsed >= 30*24*time.Hour
	default:
		return elapsed >= 24*time.Hour
	}
}

// PeriodStart returns the UTC start of the accounting period containing t.
func PeriodStart(c Cadence, t time.Time) time.Time {
	t = t.UTC()
	switch c {
	case CadenceWeekly:
		// Walk back to Monday 00:00 UTC.
		offset := (int(t.Weekday()) + 6) % 7
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -offset)
	case CadenceMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
