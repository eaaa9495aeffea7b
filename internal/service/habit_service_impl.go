package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/arozanski/cadence/internal/repository"
	"github.com/google/uuid"
)

type habitService struct {
	habits repository.HabitRepo
	uow    db.UnitOfWork
}

func NewHabitService(habits repository.HabitRepo, uow db.UnitOfWork) HabitService {
	return &habitService{habits: habits, uow: uow}
}

// Create validates the habit and stores it together with its initial ledger
// row. The accounting engine never creates ledger rows lazily, so a habit
// without one would be unable to record progress.
func (s *habitService) Create(ctx context.Context, h *domain.Habit) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Status == "" {
		h.Status = domain.HabitActive
	}
	if err := h.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHabits := repository.NewSQLiteHabitRepo(tx)
		txProgress := repository.NewSQLiteProgressRepo(tx)

		if err := txHabits.Create(ctx, h); err != nil {
			return err
		}
		return txProgress.Create(ctx, &domain.ProgressRecord{
			ID:          uuid.New().String(),
			HabitID:     h.ID,
			PeriodStart: now,
			UpdatedAt:   now,
		})
	})
}

func (s *habitService) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return s.habits.GetByID(ctx, id)
}

func (s *habitService) List(ctx context.Context, includeArchived bool) ([]*domain.Habit, error) {
	return s.habits.List(ctx, includeArchived)
}

func (s *habitService) Update(ctx context.Context, h *domain.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	h.UpdatedAt = time.Now().UTC()
	return s.habits.Update(ctx, h)
}

func (s *habitService) Archive(ctx context.Context, id string) error {
	return s.habits.Archive(ctx, id)
}

func (s *habitService) Delete(ctx context.Context, id string) error {
	h, err := s.habits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if h.Status != domain.HabitArchived {
		return fmt.Errorf("habit must be archived before deletion")
	}
	return s.habits.Delete(ctx, id)
}
