package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ports/secondary"
)

var testTime = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func names(habits []*secondary.HabitRecord) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.Name
	}
	return out
}

func TestHabitRepository_UpsertAndGet(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	previous, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "Run", TargetFrequency: 3, CreatedAt: testTime})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if previous != nil {
		t.Errorf("expected no previous habit, got %+v", previous)
	}

	got, err := repo.GetByName(ctx, "Run")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	want := &secondary.HabitRecord{Name: "Run", TargetFrequency: 3, CreatedAt: testTime}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetByName mismatch (-want +got):\n%s", diff)
	}
}

func TestHabitRepository_UpsertDropsIncomingCompletions(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &secondary.HabitRecord{
		Name:            "Run",
		TargetFrequency: 3,
		Completions:     []*secondary.CompletionRecord{{ID: "stray", HabitName: "Run"}},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, _ := repo.GetByName(ctx, "Run")
	if len(got.Completions) != 0 {
		t.Errorf("expected a new habit to start with no completions, got %d", len(got.Completions))
	}
}

func TestHabitRepository_UpsertReplacesInPlace(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	for _, n := range []string{"A", "B", "C"} {
		if _, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: n, TargetFrequency: 1}); err != nil {
			t.Fatalf("Upsert %s failed: %v", n, err)
		}
	}
	if _, err := repo.AppendCompletion(ctx, &secondary.CompletionRecord{ID: "c1", HabitName: "B"}); err != nil {
		t.Fatalf("AppendCompletion failed: %v", err)
	}

	previous, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "B", TargetFrequency: 9})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if previous == nil || len(previous.Completions) != 1 {
		t.Fatalf("expected previous B with 1 completion, got %+v", previous)
	}

	habits, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, names(habits)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if habits[1].TargetFrequency != 9 || len(habits[1].Completions) != 0 {
		t.Errorf("expected B replaced with frequency 9 and no completions, got %+v", habits[1])
	}
}

func TestHabitRepository_GetByName_NotFound(t *testing.T) {
	repo := NewHabitRepository()

	_, err := repo.GetByName(context.Background(), "nope")
	if !errors.Is(err, corehabit.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitRepository_AppendCompletion(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "Read", TargetFrequency: 4}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		count, err := repo.AppendCompletion(ctx, &secondary.CompletionRecord{
			ID:          string(rune('a' + i)),
			HabitName:   "Read",
			CompletedAt: testTime,
		})
		if err != nil {
			t.Fatalf("AppendCompletion failed: %v", err)
		}
		if count != i {
			t.Errorf("expected count %d, got %d", i, count)
		}
	}
}

func TestHabitRepository_AppendCompletion_UnknownHabit(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	_, err := repo.AppendCompletion(ctx, &secondary.CompletionRecord{ID: "c1", HabitName: "Unknown"})
	if !errors.Is(err, corehabit.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	habits, _ := repo.List(ctx)
	if len(habits) != 0 {
		t.Errorf("expected no habits, got %d", len(habits))
	}
}

func TestHabitRepository_ListIsSnapshot(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "Run", TargetFrequency: 3}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	snapshot, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	snapshot[0].TargetFrequency = 100

	if _, err := repo.AppendCompletion(ctx, &secondary.CompletionRecord{ID: "c1", HabitName: "Run"}); err != nil {
		t.Fatalf("AppendCompletion failed: %v", err)
	}

	if len(snapshot[0].Completions) != 0 {
		t.Error("expected snapshot to be unaffected by later completions")
	}
	got, _ := repo.GetByName(ctx, "Run")
	if got.TargetFrequency != 3 {
		t.Errorf("expected stored frequency to be unaffected by snapshot edits, got %d", got.TargetFrequency)
	}
}

func TestHabitRepository_CanceledContext(t *testing.T) {
	repo := NewHabitRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "Run", TargetFrequency: 3}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	habits, _ := repo.List(context.Background())
	if len(habits) != 0 {
		t.Errorf("expected no habits after canceled upsert, got %d", len(habits))
	}
}

func TestHabitRepository_ConcurrentCompletions(t *testing.T) {
	repo := NewHabitRepository()
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &secondary.HabitRecord{Name: "Run", TargetFrequency: 3}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.AppendCompletion(ctx, &secondary.CompletionRecord{HabitName: "Run"})
			_, _ = repo.List(ctx)
		}()
	}
	wg.Wait()

	got, _ := repo.GetByName(ctx, "Run")
	if len(got.Completions) != 50 {
		t.Errorf("expected 50 completions, got %d", len(got.Completions))
	}
}
