package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/arozanski/cadence/internal/repository"
	"github.com/arozanski/cadence/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	habits   *repository.SQLiteHabitRepo
	progress *repository.SQLiteProgressRepo
	streaks  *repository.SQLiteStreakRepo
	profiles *repository.SQLiteUserProfileRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		habits:   repository.NewSQLiteHabitRepo(database),
		progress: repository.NewSQLiteProgressRepo(database),
		streaks:  repository.NewSQLiteStreakRepo(database),
		profiles: repository.NewSQLiteUserProfileRepo(database),
	}
}

func (e *testEnv) habitService() HabitService {
	return NewHabitService(e.habits, e.uow)
}

func (e *testEnv) streakService() StreakService {
	return NewStreakService(e.streaks, e.profiles, e.uow)
}

func (e *testEnv) progressService(streaks StreakService) ProgressService {
	return NewProgressService(e.habits, e.progress, streaks, e.uow)
}

// createHabit stores a habit plus its ledger row through the habit service.
func (e *testEnv) createHabit(t *testing.T, opts ...testutil.HabitOption) *domain.Habit {
	t.Helper()
	h := testutil.NewTestHabit("Habit", opts...)
	require.NoError(t, e.habitService().Create(context.Background(), h))
	return h
}

func (e *testEnv) points(t *testing.T) int {
	t.Helper()
	p, err := e.profiles.Get(context.Background(), "default")
	require.NoError(t, err)
	return p.Points
}

// stubStreakService records completion calls and optionally fails them.
type stubStreakService struct {
	completions int
	err         error
}

func (s *stubStreakService) RecordCompletion(ctx context.Context, userID, progressID string, cadence domain.Cadence) error {
	s.completions++
	return s.err
}

func (s *stubStreakService) SweepExpired(ctx context.Context) (int, error) { return 0, nil }

func (s *stubStreakService) UseProtector(ctx context.Context, userID, streakID string) error {
	return nil
}

func (s *stubStreakService) GrantProtectors(ctx context.Context, userID string, n int) error {
	return nil
}

func (s *stubStreakService) ListActive(ctx context.Context) ([]*domain.Streak, error) {
	return nil, nil
}
