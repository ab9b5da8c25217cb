// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ports/primary"
)

// HabitAdapter is a thin adapter that translates CLI operations to HabitService calls.
// It depends only on the HabitService interface, enabling easy testing with mocks.
type HabitAdapter struct {
	service primary.HabitService
	out     io.Writer
	color   bool
}

// NewHabitAdapter creates a new HabitAdapter with the given service.
func NewHabitAdapter(service primary.HabitService, out io.Writer, useColor bool) *HabitAdapter {
	return &HabitAdapter{
		service: service,
		out:     out,
		color:   useColor,
	}
}

// Add saves a habit from raw form input.
// Validation failures are printed as input errors and returned.
func (a *HabitAdapter) Add(ctx context.Context, name, frequency string) (*primary.AddHabitResponse, error) {
	resp, err := a.service.AddHabit(ctx, primary.AddHabitRequest{
		Name:           name,
		FrequencyInput: frequency,
	})
	if err != nil {
		a.Warn(err)
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Habit '%s' added successfully.\n", a.paint(color.FgGreen, "✓"), resp.Habit.Name)
	if resp.Replaced {
		fmt.Fprintf(a.out, "  Replaced the existing habit (%d completion(s) discarded)\n", resp.DiscardedCompletions)
	}
	return resp, nil
}

// Done records one completion of the named habit.
func (a *HabitAdapter) Done(ctx context.Context, name string) (*primary.RecordCompletionResponse, error) {
	resp, err := a.service.RecordCompletion(ctx, name)
	if err != nil {
		a.Warn(err)
		return nil, err
	}

	h := resp.Habit
	fmt.Fprintf(a.out, "%s Marked '%s' done (%d/%d this week)\n",
		a.paint(color.FgGreen, "✓"), h.Name, h.CompletionCount, h.TargetFrequency)
	return resp, nil
}

// Progress prints each habit's weekly target and completion count in store order.
func (a *HabitAdapter) Progress(ctx context.Context) ([]*primary.Habit, error) {
	habits, err := a.service.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	fmt.Fprintln(a.out, a.paint(color.Bold, "Weekly Progress"))
	fmt.Fprintln(a.out)

	if len(habits) == 0 {
		fmt.Fprintln(a.out, "No habits yet.")
		fmt.Fprintln(a.out, "Choose \"Add Habit\" from the main menu to create one.")
		return habits, nil
	}

	for _, h := range habits {
		fmt.Fprintln(a.out, FormatTarget(h))
		line := FormatProgress(h)
		if h.TargetFrequency > 0 && h.CompletionCount >= h.TargetFrequency {
			line += " " + a.paint(color.FgGreen, "✓")
		}
		fmt.Fprintln(a.out, line)
	}

	return habits, nil
}

// Warn prints an error the way the add form reports bad input.
func (a *HabitAdapter) Warn(err error) {
	title := "Error"
	var guardErr *corehabit.GuardError
	if errors.As(err, &guardErr) {
		title = "Input Error"
		if errors.Is(err, corehabit.ErrNotFound) {
			title = "Not Found"
		}
	}
	fmt.Fprintf(a.out, "%s %s: %s\n", a.paint(color.FgRed, "✗"), title, err)
}

func (a *HabitAdapter) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if a.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// FormatTarget renders "<name> - <n> times/week".
func FormatTarget(h *primary.Habit) string {
	return fmt.Sprintf("%s - %d times/week", h.Name, h.TargetFrequency)
}

// FormatProgress renders "Completed <n> times this week".
func FormatProgress(h *primary.Habit) string {
	return fmt.Sprintf("Completed %d times this week", h.CompletionCount)
}
