package repository

import (
	"context"

	"github.com/arozanski/cadence/internal/domain"
)

type HabitRepo interface {
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ProgressRepo interface {
	Create(ctx context.Context, r *domain.ProgressRecord) error
	GetByHabit(ctx context.Context, habitID string) (*domain.ProgressRecord, error)
	// CurrentProgress is the fail-open read: a missing or unreadable row
	// reads as zero progress, never as an error.
	CurrentProgress(ctx context.Context, habitID string) int
	// UpdateConditional persists the record only if the stored progress
	// still equals expectedProgress. A concurrent writer surfaces as
	// ErrConflict; a vanished row as ErrNotFound.
	UpdateConditional(ctx context.Context, r *domain.ProgressRecord, expectedProgress int) error
}

type StreakRepo interface {
	Create(ctx context.Context, s *domain.Streak) error
	GetByID(ctx context.Context, id string) (*domain.Streak, error)
	GetActiveByProgress(ctx context.Context, progressID string) (*domain.Streak, error)
	ListActive(ctx context.Context) ([]*domain.Streak, error)
	Update(ctx context.Context, s *domain.Streak) error
	Deactivate(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
	// AddPoints credits the balance atomically in SQL.
	AddPoints(ctx context.Context, id string, delta int) error
	AddProtectors(ctx context.Context, id string, n int) error
	// ConsumeProtector decrements the protector count, guarded in SQL so
	// the stock can never go below zero.
	ConsumeProtector(ctx context.Context, id string) error
	RecordStreakLength(ctx context.Context, id string, length int) error
}
