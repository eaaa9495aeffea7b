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
	"github.com/google/uuid"
)

// ErrNoProtectors is returned when a rescue is requested with an empty stock.
var ErrNoProtectors = errors.New("no protectors available")

// ErrStreakInactive is returned when a rescue targets a deactivated streak.
var ErrStreakInactive = errors.New("streak is no longer active")

type streakService struct {
	streaks  repository.StreakRepo
	profiles repository.UserProfileRepo
	uow      db.UnitOfWork
}

func NewStreakService(streaks repository.StreakRepo, profiles repository.UserProfileRepo, uow db.UnitOfWork) StreakService {
	return &streakService{streaks: streaks, profiles: profiles, uow: uow}
}

func (s *streakService) RecordCompletion(ctx context.Context, userID, progressID string, cadence domain.Cadence) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStreaks := repository.NewSQLiteStreakRepo(tx)
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)
		now := time.Now().UTC()

		st, err := txStreaks.GetActiveByProgress(ctx, progressID)
		if errors.Is(err, repository.ErrNotFound) {
			return txStreaks.Create(ctx, &domain.Streak{
				ID:           uuid.New().String(),
				ProgressID:   progressID,
				StartedAt:    now,
				LastExtended: now,
				Count:        1,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
		if err != nil {
			return err
		}

		switch {
		case domain.SamePeriod(cadence, st.LastExtended, now):
			// Already counted this period.
			return nil
		case st.Expired(cadence, now):
			// The old run lapsed before this completion; retire it and
			// start over at one.
			if err := txStreaks.Deactivate(ctx, st.ID); err != nil {
				return err
			}
			return txStreaks.Create(ctx, &domain.Streak{
				ID:           uuid.New().String(),
				ProgressID:   progressID,
				StartedAt:    now,
				LastExtended: now,
				Count:        1,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		default:
			st.Extend(now)
			if err := txStreaks.Update(ctx, st); err != nil {
				return err
			}
			return txProfiles.RecordStreakLength(ctx, userID, st.Count)
		}
	})
}

// SweepExpired walks active streaks and deactivates the ones whose grace
// window has fully elapsed. Cadence is derived from the owning habit.
func (s *streakService) SweepExpired(ctx context.Context) (int, error) {
	swept := 0
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStreaks := repository.NewSQLiteStreakRepo(tx)
		now := time.Now().UTC()

		active, err := txStreaks.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, st := range active {
			cadence, err := streakCadence(ctx, tx, st)
			if err != nil {
				logger.Warn("skipping streak with unresolvable cadence", "streak", st.ID, "error", err)
				continue
			}
			if !st.Expired(cadence, now) {
				continue
			}
			if err := txStreaks.Deactivate(ctx, st.ID); err != nil {
				return err
			}
			swept++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}

func (s *streakService) UseProtector(ctx context.Context, userID, streakID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStreaks := repository.NewSQLiteStreakRepo(tx)
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)

		st, err := txStreaks.GetByID(ctx, streakID)
		if err != nil {
			return err
		}
		if !st.Active {
			return fmt.Errorf("streak %s: %w", streakID, ErrStreakInactive)
		}

		if err := txProfiles.ConsumeProtector(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("user %s: %w", userID, ErrNoProtectors)
			}
			return err
		}

		st.Rescue(time.Now().UTC())
		return txStreaks.Update(ctx, st)
	})
}

func (s *streakService) GrantProtectors(ctx context.Context, userID string, n int) error {
	if n < 1 {
		return fmt.Errorf("protector grant must be positive, got %d", n)
	}
	return s.profiles.AddProtectors(ctx, userID, n)
}

func (s *streakService) ListActive(ctx context.Context) ([]*domain.Streak, error) {
	return s.streaks.ListActive(ctx)
}

// streakCadence resolves the cadence of the habit behind a streak's ledger row.
func streakCadence(ctx context.Context, tx db.DBTX, st *domain.Streak) (domain.Cadence, error) {
	var cadence string
	err := tx.QueryRowContext(ctx,
		`SELECT h.cadence FROM habits h
		JOIN progress_records p ON p.habit_id = h.id
		WHERE p.id = ?`, st.ProgressID).Scan(&cadence)
	if err != nil {
		return "", fmt.Errorf("resolving cadence for streak %s: %w", st.ID, err)
	}
	return domain.Cadence(cadence), nil
}
