package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arozanski/cadence/internal/domain"
	"github.com/arozanski/cadence/internal/repository"
	"github.com/arozanski/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_PointsByDifficulty(t *testing.T) {
	cases := []struct {
		difficulty domain.Difficulty
		points     int
	}{
		{domain.DifficultyEasy, 3},
		{domain.DifficultyMedium, 5},
		{domain.DifficultyHard, 8},
	}
	for _, tc := range cases {
		t.Run(string(tc.difficulty), func(t *testing.T) {
			env := setupEnv(t)
			svc := env.progressService(nil)
			h := env.createHabit(t, testutil.WithGoal(5), testutil.WithDifficulty(tc.difficulty))

			res, err := svc.Advance(context.Background(), AdvanceRequest{HabitID: h.ID, UserID: "default"})
			require.NoError(t, err)

			assert.True(t, res.Success)
			assert.Equal(t, 1, res.NewProgress)
			assert.Equal(t, tc.points, res.PointsAdded)
			assert.False(t, res.Completed)
			assert.Equal(t, "progress recorded", res.Message)
			assert.Equal(t, tc.points, env.points(t))
		})
	}
}

func TestAdvance_CompletionDoublesPoints(t *testing.T) {
	cases := []struct {
		difficulty domain.Difficulty
		points     int
	}{
		{domain.DifficultyEasy, 6},
		{domain.DifficultyHard, 16},
	}
	for _, tc := range cases {
		t.Run(string(tc.difficulty), func(t *testing.T) {
			env := setupEnv(t)
			svc := env.progressService(nil)
			h := env.createHabit(t, testutil.WithGoal(1), testutil.WithDifficulty(tc.difficulty))

			res, err := svc.Advance(context.Background(), AdvanceRequest{HabitID: h.ID, UserID: "default"})
			require.NoError(t, err)

			assert.True(t, res.Success)
			assert.True(t, res.Completed)
			assert.Equal(t, tc.points, res.PointsAdded)
			assert.Equal(t, "habit completed", res.Message)
		})
	}
}

func TestAdvance_RejectsOverGoal(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	h := env.createHabit(t, testutil.WithGoal(2), testutil.WithDifficulty(domain.DifficultyEasy))
	ctx := context.Background()

	req := AdvanceRequest{HabitID: h.ID, UserID: "default"}
	_, err := svc.Advance(ctx, req)
	require.NoError(t, err)
	res, err := svc.Advance(ctx, req)
	require.NoError(t, err)
	require.True(t, res.Completed)

	creditedBefore := env.points(t)

	res, err = svc.Advance(ctx, req)
	require.NoError(t, err, "over-goal is an expected outcome, not an error")
	assert.False(t, res.Success)
	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.NewProgress)
	assert.Equal(t, 0, res.PointsAdded)
	assert.Contains(t, res.Message, "already completed")

	rec, err := env.progress.GetByHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Progress, "rejected advance must not mutate the ledger")
	assert.Equal(t, creditedBefore, env.points(t), "rejected advance must not credit points")
}

func TestAdvance_ProgressNeverExceedsGoal(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	h := env.createHabit(t, testutil.WithGoal(3))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
		require.NoError(t, err)

		rec, err := env.progress.GetByHabit(ctx, h.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, rec.Progress, 3)
		assert.Equal(t, rec.Progress >= 3, rec.Completed)
	}
}

func TestAdvance_QuantityAccumulates(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	h := env.createHabit(t, testutil.WithGoal(10))
	ctx := context.Background()

	res, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, res.NewProgress)

	res, err = svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default", Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, 10, res.NewProgress)
	assert.True(t, res.Completed)
}

func TestAdvance_RollsOverStalePeriod(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	h := env.createHabit(t, testutil.WithGoal(2))
	ctx := context.Background()

	// Backdate the ledger row to a finished, completed period.
	rec, err := env.progress.GetByHabit(ctx, h.ID)
	require.NoError(t, err)
	rec.Progress = 2
	rec.Completed = true
	rec.PeriodStart = time.Now().UTC().Add(-25 * time.Hour)
	require.NoError(t, env.progress.UpdateConditional(ctx, rec, 0))

	res, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	require.NoError(t, err)

	assert.True(t, res.Success, "a new period should accept progress again")
	assert.Equal(t, 1, res.NewProgress)
	assert.False(t, res.Completed)

	fresh, err := env.progress.GetByHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Progress)
	assert.WithinDuration(t, time.Now().UTC(), fresh.PeriodStart, time.Minute,
		"anchor should move to the new period")
}

func TestAdvance_KeepsFreshPeriod(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	h := env.createHabit(t, testutil.WithGoal(5))
	ctx := context.Background()

	_, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	require.NoError(t, err)
	res, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.NewProgress, "same-period advances must accumulate")
}

func TestAdvance_UnknownHabit(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)

	_, err := svc.Advance(context.Background(), AdvanceRequest{HabitID: "nope", UserID: "default"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdvance_MissingLedgerRowIsAnError(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(nil)
	ctx := context.Background()

	// Habit stored without its ledger row (bypassing the habit service).
	h := testutil.NewTestHabit("Orphan")
	require.NoError(t, env.habits.Create(ctx, h))

	_, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	assert.ErrorIs(t, err, repository.ErrNotFound,
		"the engine does not create ledger rows lazily")
}

func TestAdvance_RollsBackLedgerWhenCreditFails(t *testing.T) {
	env := setupEnv(t)
	h := env.createHabit(t, testutil.WithGoal(5))
	ctx := context.Background()

	// Within the advance transaction the ledger update is the first write
	// and the point credit the second; fail the credit.
	boom := errors.New("credit failed")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 2, Err: boom}
	svc := NewProgressService(env.habits, env.progress, nil, failing)

	_, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	require.Error(t, err)

	rec, getErr := env.progress.GetByHabit(ctx, h.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, rec.Progress, "ledger write must roll back with the failed credit")
	assert.Equal(t, 0, env.points(t))
}

func TestAdvance_CompletionTriggersStreak(t *testing.T) {
	env := setupEnv(t)
	stub := &stubStreakService{}
	svc := env.progressService(stub)
	h := env.createHabit(t, testutil.WithGoal(2))
	ctx := context.Background()

	req := AdvanceRequest{HabitID: h.ID, UserID: "default"}
	_, err := svc.Advance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, stub.completions, "non-completing advance must not touch streaks")

	_, err = svc.Advance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.completions)
}

func TestAdvance_StreakFailureDoesNotFailAdvance(t *testing.T) {
	env := setupEnv(t)
	stub := &stubStreakService{err: errors.New("streak store down")}
	svc := env.progressService(stub)
	h := env.createHabit(t, testutil.WithGoal(1))
	ctx := context.Background()

	res, err := svc.Advance(ctx, AdvanceRequest{HabitID: h.ID, UserID: "default"})
	require.NoError(t, err, "streak updates are best-effort")
	assert.True(t, res.Success)
	assert.True(t, res.Completed)
	assert.Equal(t, 6, env.points(t), "points stay committed despite the streak failure")
}

func TestOverview(t *testing.T) {
	env := setupEnv(t)
	svc := env.progressService(env.streakService())
	ctx := context.Background()

	h1 := env.createHabit(t, testutil.WithGoal(1))
	h2 := env.createHabit(t, testutil.WithGoal(5))

	_, err := svc.Advance(ctx, AdvanceRequest{HabitID: h1.ID, UserID: "default"})
	require.NoError(t, err)

	views, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[string]HabitProgressView{}
	for _, v := range views {
		byID[v.Habit.ID] = v
	}

	require.NotNil(t, byID[h1.ID].Progress)
	assert.Equal(t, 1, byID[h1.ID].Progress.Progress)
	assert.True(t, byID[h1.ID].Progress.Completed)
	require.NotNil(t, byID[h1.ID].Streak, "completed habit should show its streak")
	assert.Equal(t, 1, byID[h1.ID].Streak.Count)

	require.NotNil(t, byID[h2.ID].Progress)
	assert.Equal(t, 0, byID[h2.ID].Progress.Progress)
	assert.Nil(t, byID[h2.ID].Streak)
}
