package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertHabit(ctx context.Context, tx DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO habits (id, name, cadence, goal, difficulty, created_at, updated_at)
		VALUES (?, 'Test', 'daily', 1, 'easy', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id)
	return err
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		return insertHabit(ctx, tx, "h1")
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := insertHabit(ctx, tx, "h1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&n))
	assert.Equal(t, 0, n, "insert should have been rolled back")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
			if err := insertHabit(ctx, tx, "h1"); err != nil {
				return err
			}
			panic("unexpected")
		})
	})

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&n))
	assert.Equal(t, 0, n, "insert should have been rolled back after panic")
}
