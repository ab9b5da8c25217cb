// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// HabitService defines the primary port for habit operations.
type HabitService interface {
	// AddHabit creates a habit, or replaces an existing habit with the same name.
	AddHabit(ctx context.Context, req AddHabitRequest) (*AddHabitResponse, error)

	// RecordCompletion appends a completion to an existing habit.
	RecordCompletion(ctx context.Context, name string) (*RecordCompletionResponse, error)

	// GetHabit retrieves a habit by name.
	GetHabit(ctx context.Context, name string) (*Habit, error)

	// ListHabits retrieves all habits in insertion order.
	ListHabits(ctx context.Context) ([]*Habit, error)
}

// AddHabitRequest contains the raw form input for adding a habit.
type AddHabitRequest struct {
	Name           string
	FrequencyInput string
}

// AddHabitResponse contains the result of adding a habit.
type AddHabitResponse struct {
	Habit *Habit
	// Replaced is true when a habit with the same name existed and was overwritten.
	Replaced bool
	// DiscardedCompletions is the completion count of the overwritten habit.
	DiscardedCompletions int
}

// RecordCompletionResponse contains the result of recording a completion.
type RecordCompletionResponse struct {
	Habit        *Habit
	CompletionID string
}

// Habit represents a habit at the port boundary.
type Habit struct {
	Name            string
	TargetFrequency int
	CompletionCount int
	CreatedAt       string
}
