package service

import (
	"context"

	"github.com/arozanski/cadence/internal/domain"
)

// AdvanceRequest identifies one "advance" action on a habit. Quantity
// defaults to 1 when zero.
type AdvanceRequest struct {
	HabitID  string
	UserID   string
	Quantity int
}

// AdvanceResult describes the outcome of one advance. Success is false for
// the expected already-completed case; genuine failures are returned as
// errors instead.
type AdvanceResult struct {
	Success     bool
	NewProgress int
	PointsAdded int
	Completed   bool
	Message     string
}

// HabitProgressView joins a habit with its live ledger row and, when one is
// active, its streak.
type HabitProgressView struct {
	Habit    *domain.Habit
	Progress *domain.ProgressRecord
	Streak   *domain.Streak
}

type ProgressService interface {
	Advance(ctx context.Context, req AdvanceRequest) (*AdvanceResult, error)
	Overview(ctx context.Context) ([]HabitProgressView, error)
}

type StreakService interface {
	// RecordCompletion starts or extends the streak for a ledger row.
	// Called best-effort after an advance completes a period.
	RecordCompletion(ctx context.Context, userID, progressID string, cadence domain.Cadence) error
	// SweepExpired deactivates active streaks whose grace window has fully
	// elapsed. Returns the number of streaks deactivated.
	SweepExpired(ctx context.Context) (int, error)
	// UseProtector spends one protector grant to move a streak's grace
	// anchor to now. Manual, user-triggered.
	UseProtector(ctx context.Context, userID, streakID string) error
	GrantProtectors(ctx context.Context, userID string, n int) error
	ListActive(ctx context.Context) ([]*domain.Streak, error)
}

type HabitService interface {
	// Create stores the habit and its initial ledger row in one transaction.
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
