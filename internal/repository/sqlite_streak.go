package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
)

// SQLiteStreakRepo implements StreakRepo using a SQLite database.
type SQLiteStreakRepo struct {
	db db.DBTX
}

// NewSQLiteStreakRepo creates a new SQLiteStreakRepo.
func NewSQLiteStreakRepo(conn db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{db: conn}
}

const streakColumns = `id, progress_id, started_at, last_extended, count, active, created_at, updated_at`

func (r *SQLiteStreakRepo) Create(ctx context.Context, s *domain.Streak) error {
	query := `INSERT INTO streaks (` + streakColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProgressID,
		s.StartedAt.UTC().Format(timeLayout),
		s.LastExtended.UTC().Format(timeLayout),
		s.Count,
		boolToInt(s.Active),
		s.CreatedAt.UTC().Format(timeLayout),
		s.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("creating streak: %w", err)
	}
	return nil
}

func (r *SQLiteStreakRepo) GetByID(ctx context.Context, id string) (*domain.Streak, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+streakColumns+` FROM streaks WHERE id = ?`, id)
	s, err := scanStreak(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("streak: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteStreakRepo) GetActiveByProgress(ctx context.Context, progressID string) (*domain.Streak, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+streakColumns+` FROM streaks WHERE progress_id = ? AND active = 1`, progressID)
	s, err := scanStreak(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("active streak: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteStreakRepo) ListActive(ctx context.Context) ([]*domain.Streak, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+streakColumns+` FROM streaks WHERE active = 1 ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing active streaks: %w", err)
	}
	defer rows.Close()

	var streaks []*domain.Streak
	for rows.Next() {
		s, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, s)
	}
	return streaks, rows.Err()
}

func (r *SQLiteStreakRepo) Update(ctx context.Context, s *domain.Streak) error {
	query := `UPDATE streaks SET last_extended = ?, count = ?, active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.LastExtended.UTC().Format(timeLayout),
		s.Count,
		boolToInt(s.Active),
		s.UpdatedAt.UTC().Format(timeLayout),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating streak: %w", err)
	}
	return requireRowAffected(res, "streak")
}

func (r *SQLiteStreakRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE streaks SET active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("deactivating streak: %w", err)
	}
	return requireRowAffected(res, "streak")
}

func scanStreak(row rowScanner) (*domain.Streak, error) {
	var s domain.Streak
	var startedAt, lastExtended, createdAt, updatedAt string
	var active int

	err := row.Scan(&s.ID, &s.ProgressID, &startedAt, &lastExtended, &s.Count, &active, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning streak: %w", err)
	}

	s.Active = intToBool(active)
	s.StartedAt, _ = time.Parse(timeLayout, startedAt)
	s.LastExtended, _ = time.Parse(timeLayout, lastExtended)
	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	s.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &s, nil
}
