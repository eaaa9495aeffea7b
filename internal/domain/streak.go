package domain

import "time"

// Streak tracks consecutive completed periods for a habit's ledger row.
// LastExtended is the anchor the grace window is measured from; a protector
// rescue moves it forward without incrementing the count.
type Streak struct {
	ID           string
	ProgressID   string
	StartedAt    time.Time
	LastExtended time.Time
	Count        int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// graceWindow returns the cadence-specific window, measured from the last
// extension, inside which a streak is rescuable and past which it expires.
func graceWindow(c Cadence) (open, close time.Duration) {
	switch c {
	case CadenceWeekly:
		return 6 * 24 * time.Hour, 7 * 24 * time.Hour
	case CadenceMonthly:
		return 29 * 24 * time.Hour, 31 * 24 * time.Hour
	default:
		return 20 * time.Hour, 24 * time.Hour
	}
}

// Expired reports whether the grace window has fully elapsed since the last
// extension without a completion or rescue.
func (s *Streak) Expired(c Cadence, now time.Time) bool {
	_, close := graceWindow(c)
	return now.Sub(s.LastExtended) > close
}

// InGrace reports whether the streak is in the rescuable window: past the
// point where a completion is overdue, but not yet expired.
func (s *Streak) InGrace(c Cadence, now time.Time) bool {
	open, close := graceWindow(c)
	elapsed := now.Sub(s.LastExtended)
	return elapsed >= open && elapsed <= close
}

// Extend advances the streak by one period.
func (s *Streak) Extend(now time.Time) {
	s.Count++
	s.LastExtended = now
	s.UpdatedAt = now
}

// Rescue moves the grace anchor to now without crediting a period.
func (s *Streak) Rescue(now time.Time) {
	s.LastExtended = now
	s.UpdatedAt = now
}
