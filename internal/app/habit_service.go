// Package app contains the application services that orchestrate business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ctxutil"
	"github.com/example/habits/internal/ports/primary"
	"github.com/example/habits/internal/ports/secondary"
)

// HabitServiceImpl implements the HabitService interface.
type HabitServiceImpl struct {
	habitRepo secondary.HabitRepository
	logger    *zap.Logger

	allowNonPositive bool
	now              func() time.Time
	newID            func() string
}

// HabitServiceOption configures a HabitServiceImpl.
type HabitServiceOption func(*HabitServiceImpl)

// WithNonPositiveFrequency accepts zero and negative weekly targets.
func WithNonPositiveFrequency(allow bool) HabitServiceOption {
	return func(s *HabitServiceImpl) { s.allowNonPositive = allow }
}

// WithClock sets the time source used to stamp habits and completions.
func WithClock(now func() time.Time) HabitServiceOption {
	return func(s *HabitServiceImpl) { s.now = now }
}

// WithIDGenerator sets the generator for completion IDs.
func WithIDGenerator(newID func() string) HabitServiceOption {
	return func(s *HabitServiceImpl) { s.newID = newID }
}

// NewHabitService creates a new HabitService with injected dependencies.
func NewHabitService(habitRepo secondary.HabitRepository, logger *zap.Logger, opts ...HabitServiceOption) *HabitServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HabitServiceImpl{
		habitRepo: habitRepo,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddHabit validates the form input and stores the habit.
// Re-adding an existing name replaces it and discards its completions.
func (s *HabitServiceImpl) AddHabit(ctx context.Context, req primary.AddHabitRequest) (*primary.AddHabitResponse, error) {
	logger := s.logger.With(zap.String("surface", ctxutil.SurfaceFromContext(ctx)))

	guard := corehabit.CanAddHabit(corehabit.AddHabitContext{
		Name:             req.Name,
		FrequencyInput:   req.FrequencyInput,
		AllowNonPositive: s.allowNonPositive,
	})
	if err := guard.Error(); err != nil {
		logger.Debug("habit rejected",
			zap.String("habit", req.Name),
			zap.String("frequency", req.FrequencyInput),
			zap.String("reason", guard.Reason))
		return nil, err
	}

	// CanAddHabit has already parsed the input.
	freq, _ := corehabit.ParseFrequency(req.FrequencyInput)

	record := &secondary.HabitRecord{
		Name:            req.Name,
		TargetFrequency: freq,
		CreatedAt:       s.now(),
	}

	previous, err := s.habitRepo.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save habit: %w", err)
	}

	resp := &primary.AddHabitResponse{Habit: s.recordToHabit(record)}
	if previous != nil {
		resp.Replaced = true
		resp.DiscardedCompletions = len(previous.Completions)
		logger.Info("habit replaced",
			zap.String("habit", record.Name),
			zap.Int("previous_frequency", previous.TargetFrequency),
			zap.Int("discarded_completions", resp.DiscardedCompletions))
	}

	logger.Debug("habit saved",
		zap.String("habit", record.Name),
		zap.Int("frequency", record.TargetFrequency))

	return resp, nil
}

// RecordCompletion appends a completion marker to an existing habit.
func (s *HabitServiceImpl) RecordCompletion(ctx context.Context, name string) (*primary.RecordCompletionResponse, error) {
	logger := s.logger.With(zap.String("surface", ctxutil.SurfaceFromContext(ctx)))

	record, err := s.habitRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, corehabit.ErrNotFound) {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	guard := corehabit.CanRecordCompletion(corehabit.RecordCompletionContext{
		Name:   name,
		Exists: record != nil,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	completion := &secondary.CompletionRecord{
		ID:          s.newID(),
		HabitName:   name,
		CompletedAt: s.now(),
	}
	count, err := s.habitRepo.AppendCompletion(ctx, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	logger.Debug("completion recorded",
		zap.String("habit", name),
		zap.String("completion_id", completion.ID),
		zap.Int("count", count))

	habit := s.recordToHabit(record)
	habit.CompletionCount = count

	return &primary.RecordCompletionResponse{
		Habit:        habit,
		CompletionID: completion.ID,
	}, nil
}

// GetHabit retrieves a habit by name.
func (s *HabitServiceImpl) GetHabit(ctx context.Context, name string) (*primary.Habit, error) {
	record, err := s.habitRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.recordToHabit(record), nil
}

// ListHabits retrieves all habits in insertion order.
func (s *HabitServiceImpl) ListHabits(ctx context.Context) ([]*primary.Habit, error) {
	records, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits := make([]*primary.Habit, len(records))
	for i, r := range records {
		habits[i] = s.recordToHabit(r)
	}
	return habits, nil
}

// Helper methods

func (s *HabitServiceImpl) recordToHabit(r *secondary.HabitRecord) *primary.Habit {
	return &primary.Habit{
		Name:            r.Name,
		TargetFrequency: r.TargetFrequency,
		CompletionCount: len(r.Completions),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

// Ensure HabitServiceImpl implements the interface.
var _ primary.HabitService = (*HabitServiceImpl)(nil)
