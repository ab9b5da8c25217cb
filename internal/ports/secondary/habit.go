// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// HabitRepository defines the secondary port for habit storage.
type HabitRepository interface {
	// Upsert stores a habit keyed by name. An existing habit keeps its position
	// in the listing order but loses its completions. The previous record is
	// returned when one was replaced, nil otherwise.
	Upsert(ctx context.Context, habit *HabitRecord) (*HabitRecord, error)

	// GetByName retrieves a habit by its name.
	// The error wraps habit.ErrNotFound when no habit has that name.
	GetByName(ctx context.Context, name string) (*HabitRecord, error)

	// AppendCompletion adds a completion to the named habit and returns the
	// habit's new completion count.
	AppendCompletion(ctx context.Context, completion *CompletionRecord) (int, error)

	// List retrieves all habits in insertion order.
	List(ctx context.Context) ([]*HabitRecord, error)
}

// HabitRecord represents a habit as stored.
type HabitRecord struct {
	Name            string
	TargetFrequency int
	Completions     []*CompletionRecord
	CreatedAt       time.Time
}

// CompletionRecord represents a single recorded completion of a habit.
type CompletionRecord struct {
	ID          string
	HabitName   string
	CompletedAt time.Time
}
