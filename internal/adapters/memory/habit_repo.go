// Package memory contains in-process implementations of repository interfaces.
// Nothing is written to disk; state lives as long as the repository value.
package memory

import (
	"context"
	"fmt"
	"sync"

	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ports/secondary"
)

// HabitRepository implements secondary.HabitRepository with an insertion-ordered map.
type HabitRepository struct {
	mu     sync.RWMutex
	index  map[string]int // name -> position in habits
	habits []*secondary.HabitRecord
}

// NewHabitRepository creates an empty in-memory habit repository.
func NewHabitRepository() *HabitRepository {
	return &HabitRepository{
		index: make(map[string]int),
	}
}

// Upsert stores a habit, replacing any habit with the same name in place.
func (r *HabitRepository) Upsert(ctx context.Context, habit *secondary.HabitRecord) (*secondary.HabitRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := cloneHabit(habit)
	stored.Completions = nil

	r.mu.Lock()
	defer r.mu.Unlock()

	if pos, ok := r.index[habit.Name]; ok {
		previous := r.habits[pos]
		r.habits[pos] = stored
		return previous, nil
	}

	r.index[habit.Name] = len(r.habits)
	r.habits = append(r.habits, stored)
	return nil, nil
}

// GetByName retrieves a habit by its name.
func (r *HabitRepository) GetByName(ctx context.Context, name string) (*secondary.HabitRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("habit %q: %w", name, corehabit.ErrNotFound)
	}
	return cloneHabit(r.habits[pos]), nil
}

// AppendCompletion adds a completion to the named habit.
func (r *HabitRepository) AppendCompletion(ctx context.Context, completion *secondary.CompletionRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[completion.HabitName]
	if !ok {
		return 0, fmt.Errorf("habit %q: %w", completion.HabitName, corehabit.ErrNotFound)
	}

	c := *completion
	h := r.habits[pos]
	h.Completions = append(h.Completions, &c)
	return len(h.Completions), nil
}

// List retrieves a snapshot of all habits in insertion order.
func (r *HabitRepository) List(ctx context.Context) ([]*secondary.HabitRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*secondary.HabitRecord, len(r.habits))
	for i, h := range r.habits {
		habits[i] = cloneHabit(h)
	}
	return habits, nil
}

func cloneHabit(h *secondary.HabitRecord) *secondary.HabitRecord {
	c := *h
	if h.Completions != nil {
		c.Completions = make([]*secondary.CompletionRecord, len(h.Completions))
		for i, comp := range h.Completions {
			cc := *comp
			c.Completions[i] = &cc
		}
	}
	return &c
}

// Ensure HabitRepository implements the interface.
var _ secondary.HabitRepository = (*HabitRepository)(nil)
