package domain

import "time"

// ProgressRecord is the single live ledger row for a habit: cumulative
// progress inside the current accounting period, the completion flag, and
// the points mirror accumulated over the period.
type ProgressRecord struct {
	ID          string
	HabitID     string
	PeriodStart time.Time
	Progress    int
	Completed   bool
	Points      int
	UpdatedAt   time.Time
}

// AtGoal reports whether the record has reached the given goal.
func (r *ProgressRecord) AtGoal(goal int) bool {
	return r.Progress >= goal
}

// Rollover resets the record for a new accounting period anchored at now.
// The completion flag and points mirror start over with the progress.
func (r *ProgressRecord) Rollover(now time.Time) {
	r.Progress = 0
	r.Completed = false
	r.Points = 0
	r.PeriodStart = now
}
