package domain

import (
	"fmt"
	"time"
)

type Habit struct {
	ID         string
	Name       string
	Cadence    Cadence
	Goal       int
	Difficulty Difficulty
	Unit       string
	Status     HabitStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks that the habit carries a usable cadence, difficulty and goal.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name is required")
	}
	if !ValidCadences[string(h.Cadence)] {
		return fmt.Errorf("cadence %q must be one of: daily, weekly, monthly", h.Cadence)
	}
	if !ValidDifficulties[string(h.Difficulty)] {
		return fmt.Errorf("difficulty %q must be one of: easy, medium, hard", h.Difficulty)
	}
	if h.Goal < 1 {
		return fmt.Errorf("goal must be at least 1, got %d", h.Goal)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (h *Habit) DisplayID() string {
	if len(h.ID) >= 8 {
		return h.ID[:8]
	}
	return h.ID
}
