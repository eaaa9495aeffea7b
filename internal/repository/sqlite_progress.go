package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/arozanski/cadence/internal/logger"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Create(ctx context.Context, rec *domain.ProgressRecord) error {
	query := `INSERT INTO progress_records (id, habit_id, period_start, progress, completed, points, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.HabitID,
		rec.PeriodStart.UTC().Format(timeLayout),
		rec.Progress,
		boolToInt(rec.Completed),
		rec.Points,
		rec.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("creating progress record: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) GetByHabit(ctx context.Context, habitID string) (*domain.ProgressRecord, error) {
	query := `SELECT id, habit_id, period_start, progress, completed, points, updated_at
		FROM progress_records WHERE habit_id = ?`
	row := r.db.QueryRowContext(ctx, query, habitID)

	var rec domain.ProgressRecord
	var periodStart, updatedAt string
	var completed int
	err := row.Scan(&rec.ID, &rec.HabitID, &periodStart, &rec.Progress, &completed, &rec.Points, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("progress record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning progress record: %w", err)
	}

	rec.Completed = intToBool(completed)
	rec.PeriodStart, _ = time.Parse(timeLayout, periodStart)
	rec.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &rec, nil
}

// CurrentProgress reads the accumulated progress for a habit, failing open
// to zero. A missing row means the habit has no progress yet; a read error
// is logged and also reads as zero rather than breaking the caller.
func (r *SQLiteProgressRepo) CurrentProgress(ctx context.Context, habitID string) int {
	rec, err := r.GetByHabit(ctx, habitID)
	if err != nil {
		logger.Warn("progress read failed open to zero", "habit", habitID, "error", err)
		return 0
	}
	return rec.Progress
}

// UpdateConditional writes the record back only if the stored progress still
// equals expectedProgress. Zero rows affected means either the row is gone
// (ErrNotFound) or a concurrent advance won the race (ErrConflict).
func (r *SQLiteProgressRepo) UpdateConditional(ctx context.Context, rec *domain.ProgressRecord, expectedProgress int) error {
	query := `UPDATE progress_records
		SET period_start = ?, progress = ?, completed = ?, points = ?, updated_at = ?
		WHERE habit_id = ? AND progress = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.PeriodStart.UTC().Format(timeLayout),
		rec.Progress,
		boolToInt(rec.Completed),
		rec.Points,
		rec.UpdatedAt.UTC().Format(timeLayout),
		rec.HabitID,
		expectedProgress,
	)
	if err != nil {
		return fmt.Errorf("updating progress record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		var exists int
		if scanErr := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM progress_records WHERE habit_id = ?`, rec.HabitID).Scan(&exists); scanErr == nil && exists == 0 {
			return fmt.Errorf("progress record: %w", ErrNotFound)
		}
		return fmt.Errorf("progress record for habit %s: %w", rec.HabitID, ErrConflict)
	}
	return nil
}
