package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
)

// SQLiteHabitRepo implements HabitRepo using a SQLite database.
type SQLiteHabitRepo struct {
	db db.DBTX
}

// NewSQLiteHabitRepo creates a new SQLiteHabitRepo.
func NewSQLiteHabitRepo(conn db.DBTX) *SQLiteHabitRepo {
	return &SQLiteHabitRepo{db: conn}
}

func (r *SQLiteHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	query := `INSERT INTO habits (id, name, cadence, goal, difficulty, unit, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.Name,
		string(h.Cadence),
		h.Goal,
		string(h.Difficulty),
		h.Unit,
		string(h.Status),
		nullableTimeToString(h.ArchivedAt),
		h.CreatedAt.UTC().Format(timeLayout),
		h.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("creating habit: %w", err)
	}
	return nil
}

func (r *SQLiteHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT id, name, cadence, goal, difficulty, unit, status, archived_at, created_at, updated_at
		FROM habits WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteHabitRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Habit, error) {
	query := `SELECT id, name, cadence, goal, difficulty, unit, status, archived_at, created_at, updated_at
		FROM habits`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *SQLiteHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	query := `UPDATE habits SET name = ?, cadence = ?, goal = ?, difficulty = ?, unit = ?,
		status = ?, archived_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		h.Name,
		string(h.Cadence),
		h.Goal,
		string(h.Difficulty),
		h.Unit,
		string(h.Status),
		nullableTimeToString(h.ArchivedAt),
		h.UpdatedAt.UTC().Format(timeLayout),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	return requireRowAffected(res, "habit")
}

func (r *SQLiteHabitRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := r.db.ExecContext(ctx,
		`UPDATE habits SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`,
		now, now, id)
	if err != nil {
		return fmt.Errorf("archiving habit: %w", err)
	}
	return requireRowAffected(res, "habit")
}

func (r *SQLiteHabitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	return requireRowAffected(res, "habit")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteHabitRepo) scanOne(row *sql.Row) (*domain.Habit, error) {
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("habit: %w", ErrNotFound)
	}
	return h, err
}

func scanHabit(row rowScanner) (*domain.Habit, error) {
	var h domain.Habit
	var cadence, difficulty, status, createdAt, updatedAt string
	var archivedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &cadence, &h.Goal, &difficulty, &h.Unit,
		&status, &archivedAt, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning habit: %w", err)
	}

	h.Cadence = domain.Cadence(cadence)
	h.Difficulty = domain.Difficulty(difficulty)
	h.Status = domain.HabitStatus(status)
	h.ArchivedAt = parseNullableTime(archivedAt)
	h.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	h.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &h, nil
}

// requireRowAffected converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
