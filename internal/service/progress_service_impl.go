package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/arozanski/cadence/internal/logger"
	"github.com/arozanski/cadence/internal/repository"
)

const (
	msgProgressRecorded = "progress recorded"
	msgHabitCompleted   = "habit completed"
	msgAlreadyCompleted = "habit already completed for this period"
)

type progressService struct {
	habits   repository.HabitRepo
	progress repository.ProgressRepo
	streaks  StreakService
	uow      db.UnitOfWork
}

// NewProgressService wires the accounting engine. The streak service may be
// nil; streak tracking is an optional side effect, never a dependency of the
// points/progress path.
func NewProgressService(habits repository.HabitRepo, progress repository.ProgressRepo, streaks StreakService, uow db.UnitOfWork) ProgressService {
	return &progressService{habits: habits, progress: progress, streaks: streaks, uow: uow}
}

// Advance records one advance on a habit: read the ledger, roll the period
// if it is stale, guard the goal, award points, persist, credit the balance.
// The ledger write and the point credit commit together or not at all; the
// streak update runs after the commit and cannot undo it.
func (s *progressService) Advance(ctx context.Context, req AdvanceRequest) (*AdvanceResult, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var (
		result     *AdvanceResult
		cadence    domain.Cadence
		progressID string
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHabits := repository.NewSQLiteHabitRepo(tx)
		txProgress := repository.NewSQLiteProgressRepo(tx)
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)

		habit, err := txHabits.GetByID(ctx, req.HabitID)
		if err != nil {
			return err
		}
		cadence = habit.Cadence

		rec, err := txProgress.GetByHabit(ctx, req.HabitID)
		if err != nil {
			return fmt.Errorf("reading ledger for habit %s: %w", req.HabitID, err)
		}
		progressID = rec.ID

		// The conditional write below matches on the progress value as
		// stored, not as rolled over.
		storedProgress := rec.Progress

		now := time.Now().UTC()
		if domain.ShouldReset(habit.Cadence, &rec.PeriodStart, now) {
			logger.Debug("rolling ledger into new period",
				"habit", habit.ID, "cadence", habit.Cadence, "old_anchor", rec.PeriodStart)
			rec.Rollover(now)
		}

		candidate := rec.Progress + quantity
		if candidate > habit.Goal {
			result = &AdvanceResult{
				Success:     false,
				NewProgress: rec.Progress,
				PointsAdded: 0,
				Completed:   true,
				Message:     msgAlreadyCompleted,
			}
			return nil
		}

		completed := candidate >= habit.Goal
		points := domain.AwardedPoints(habit.Difficulty, completed)

		rec.Progress = candidate
		rec.Completed = completed
		rec.Points += points
		rec.UpdatedAt = now

		if err := txProgress.UpdateConditional(ctx, rec, storedProgress); err != nil {
			return err
		}
		if err := txProfiles.AddPoints(ctx, req.UserID, points); err != nil {
			return err
		}

		message := msgProgressRecorded
		if completed {
			message = msgHabitCompleted
		}
		result = &AdvanceResult{
			Success:     true,
			NewProgress: candidate,
			PointsAdded: points,
			Completed:   completed,
			Message:     message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Streak tracking is best-effort: the points and progress above are
	// already committed, and a streak failure must not surface as a failed
	// advance.
	if result.Success && result.Completed && s.streaks != nil {
		if err := s.streaks.RecordCompletion(ctx, req.UserID, progressID, cadence); err != nil {
			logger.Error("streak update failed after completed advance",
				"habit", req.HabitID, "progress", progressID, "error", err)
		}
	}

	return result, nil
}

func (s *progressService) Overview(ctx context.Context) ([]HabitProgressView, error) {
	habits, err := s.habits.List(ctx, false)
	if err != nil {
		return nil, err
	}

	streaksByProgress := map[string]*domain.Streak{}
	if s.streaks != nil {
		active, err := s.streaks.ListActive(ctx)
		if err != nil {
			logger.Warn("listing streaks for overview", "error", err)
		}
		for _, st := range active {
			streaksByProgress[st.ProgressID] = st
		}
	}

	views := make([]HabitProgressView, 0, len(habits))
	for _, h := range habits {
		view := HabitProgressView{Habit: h}

		rec, err := s.progress.GetByHabit(ctx, h.ID)
		switch {
		case err == nil:
			view.Progress = rec
			view.Streak = streaksByProgress[rec.ID]
		case errors.Is(err, repository.ErrNotFound):
			// Habit without a ledger row shows as zero progress.
		default:
			return nil, err
		}

		views = append(views, view)
	}
	return views, nil
}
