// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ports/secondary"
)

// HabitRepository implements secondary.HabitRepository with SQLite.
type HabitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a new SQLite habit repository.
func NewHabitRepository(db *sql.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// Upsert stores a habit. An existing row is updated in place so its position
// is kept, and its completions are deleted.
func (r *HabitRepository) Upsert(ctx context.Context, habit *secondary.HabitRecord) (*secondary.HabitRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	previous, err := getByName(ctx, tx, habit.Name)
	if err != nil {
		return nil, err
	}

	if previous == nil {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO habits (name, target_frequency, created_at) VALUES (?, ?, ?)",
			habit.Name, habit.TargetFrequency, habit.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create habit: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE habits SET target_frequency = ?, created_at = ? WHERE name = ?",
			habit.TargetFrequency, habit.CreatedAt, habit.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update habit: %w", err)
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM habit_completions WHERE habit_name = ?", habit.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to reset completions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit habit: %w", err)
	}

	return previous, nil
}

// GetByName retrieves a habit by its name.
func (r *HabitRepository) GetByName(ctx context.Context, name string) (*secondary.HabitRecord, error) {
	record, err := getByName(ctx, r.db, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("habit %q: %w", name, corehabit.ErrNotFound)
	}
	return record, nil
}

// AppendCompletion adds a completion to the named habit.
func (r *HabitRepository) AppendCompletion(ctx context.Context, completion *secondary.CompletionRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habits WHERE name = ?", completion.HabitName,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check habit: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("habit %q: %w", completion.HabitName, corehabit.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO habit_completions (id, habit_name, completed_at) VALUES (?, ?, ?)",
		completion.ID, completion.HabitName, completion.CompletedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record completion: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habit_completions WHERE habit_name = ?", completion.HabitName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit completion: %w", err)
	}

	return count, nil
}

// List retrieves all habits in insertion order.
func (r *HabitRepository) List(ctx context.Context) ([]*secondary.HabitRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		"SELECT name, target_frequency, created_at FROM habits ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits := []*secondary.HabitRecord{}
	byName := make(map[string]*secondary.HabitRecord)
	for rows.Next() {
		record := &secondary.HabitRecord{}
		if err := rows.Scan(&record.Name, &record.TargetFrequency, &record.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, record)
		byName[record.Name] = record
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	rows.Close()

	rows, err = tx.QueryContext(ctx,
		"SELECT id, habit_name, completed_at FROM habit_completions ORDER BY rowid ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := &secondary.CompletionRecord{}
		if err := rows.Scan(&c.ID, &c.HabitName, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		if h, ok := byName[c.HabitName]; ok {
			h.Completions = append(h.Completions, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	return habits, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// getByName loads a habit with its completions, or nil when absent.
func getByName(ctx context.Context, q queryer, name string) (*secondary.HabitRecord, error) {
	var createdAt time.Time

	record := &secondary.HabitRecord{}
	err := q.QueryRowContext(ctx,
		"SELECT name, target_frequency, created_at FROM habits WHERE name = ?",
		name,
	).Scan(&record.Name, &record.TargetFrequency, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	record.CreatedAt = createdAt

	rows, err := q.QueryContext(ctx,
		"SELECT id, habit_name, completed_at FROM habit_completions WHERE habit_name = ? ORDER BY rowid ASC",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := &secondary.CompletionRecord{}
		if err := rows.Scan(&c.ID, &c.HabitName, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		record.Completions = append(record.Completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get completions: %w", err)
	}

	return record, nil
}

// Ensure HabitRepository implements the interface.
var _ secondary.HabitRepository = (*HabitRepository)(nil)
