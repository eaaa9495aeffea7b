package testutil

import (
	"time"

	"github.com/arozanski/cadence/internal/domain"
	"github.com/google/uuid"
)

// Habit options
type HabitOption func(*domain.Habit)

func WithCadence(c domain.Cadence) HabitOption {
	return func(h *domain.Habit) {
		h.Cadence = c
	}
}

func WithGoal(g int) HabitOption {
	return func(h *domain.Habit) {
		h.Goal = g
	}
}

func WithDifficulty(d domain.Difficulty) HabitOption {
	return func(h *domain.Habit) {
		h.Difficulty = d
	}
}

func WithUnit(u string) HabitOption {
	return func(h *domain.Habit) {
		h.Unit = u
	}
}

func NewTestHabit(name string, opts ...HabitOption) *domain.Habit {
	now := time.Now().UTC()
	h := &domain.Habit{
		ID:         uuid.New().String(),
		Name:       name,
		Cadence:    domain.CadenceDaily,
		Goal:       5,
		Difficulty: domain.DifficultyMedium,
		Unit:       "times",
		Status:     domain.HabitActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ProgressRecord options
type ProgressOption func(*domain.ProgressRecord)

func WithProgress(p int) ProgressOption {
	return func(r *domain.ProgressRecord) {
		r.Progress = p
	}
}

func WithCompleted(c bool) ProgressOption {
	return func(r *domain.ProgressRecord) {
		r.Completed = c
	}
}

func WithPeriodStart(t time.Time) ProgressOption {
	return func(r *domain.ProgressRecord) {
		r.PeriodStart = t
	}
}

func NewTestProgress(habitID string, opts ...ProgressOption) *domain.ProgressRecord {
	now := time.Now().UTC()
	r := &domain.ProgressRecord{
		ID:          uuid.New().String(),
		HabitID:     habitID,
		PeriodStart: now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Streak options
type StreakOption func(*domain.Streak)

func WithCount(n int) StreakOption {
	return func(s *domain.Streak) {
		s.Count = n
	}
}

func WithLastExtended(t time.Time) StreakOption {
	return func(s *domain.Streak) {
		s.StartedAt = t
		s.LastExtended = t
	}
}

func WithInactive() StreakOption {
	return func(s *domain.Streak) {
		s.Active = false
	}
}

func NewTestStreak(progressID string, opts ...StreakOption) *domain.Streak {
	now := time.Now().UTC()
	s := &domain.Streak{
		ID:           uuid.New().String(),
		ProgressID:   progressID,
		StartedAt:    now,
		LastExtended: now,
		Count:        1,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
