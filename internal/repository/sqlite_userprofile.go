package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT id, points, protectors, longest_streak, created_at, updated_at
		FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.UserProfile
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Points, &p.Protectors, &p.LongestStreak, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	p.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profile (id, points, protectors, longest_streak, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Points,
		p.Protectors,
		p.LongestStreak,
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

// AddPoints credits the balance with a single atomic UPDATE; there is no
// read-modify-write window for concurrent credits to lose.
func (r *SQLiteUserProfileRepo) AddPoints(ctx context.Context, id string, delta int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profile SET points = points + ?, updated_at = ? WHERE id = ?`,
		delta, time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("crediting points: %w", err)
	}
	return requireRowAffected(res, "user profile")
}

func (r *SQLiteUserProfileRepo) AddProtectors(ctx context.Context, id string, n int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profile SET protectors = protectors + ?, updated_at = ? WHERE id = ?`,
		n, time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("granting protectors: %w", err)
	}
	return requireRowAffected(res, "user profile")
}

// ConsumeProtector decrements the protector stock. The protectors > 0 guard
// lives in the statement itself, so an empty stock surfaces as ErrConflict
// instead of ever writing a negative count.
func (r *SQLiteUserProfileRepo) ConsumeProtector(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profile SET protectors = protectors - 1, updated_at = ?
		WHERE id = ? AND protectors > 0`,
		time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("consuming protector: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no protectors available for %s: %w", id, ErrConflict)
	}
	return nil
}

// RecordStreakLength raises longest_streak if length beats the stored value.
func (r *SQLiteUserProfileRepo) RecordStreakLength(ctx context.Context, id string, length int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_profile SET longest_streak = ?, updated_at = ?
		WHERE id = ? AND longest_streak < ?`,
		length, time.Now().UTC().Format(timeLayout), id, length)
	if err != nil {
		return fmt.Errorf("recording streak length: %w", err)
	}
	return nil
}
