// Package habit contains the pure business logic for habit operations.
// Guards are pure functions that evaluate preconditions without side effects.
package habit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error kinds reported by habit operations. Match with errors.Is.
var (
	ErrEmptyName        = errors.New("empty habit name")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrNotFound         = errors.New("habit not found")
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Err     error // sentinel classifying a rejection
}

// GuardError is a rejected guard: the message is the reason, the cause the sentinel.
type GuardError struct {
	Reason string
	Err    error
}

func (e *GuardError) Error() string { return e.Reason }

func (e *GuardError) Unwrap() error { return e.Err }

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Err == nil {
		return fmt.Errorf("%s", r.Reason)
	}
	return &GuardError{Reason: r.Reason, Err: r.Err}
}

// AddHabitContext provides context for habit creation guards.
type AddHabitContext struct {
	Name           string
	FrequencyInput string
	// AllowNonPositive accepts zero and negative frequencies.
	AllowNonPositive bool
}

// CanAddHabit evaluates whether a habit can be added.
// Rules:
// - Name must not be empty or whitespace
// - Frequency must parse as an integer
// - Frequency must be positive unless AllowNonPositive is set
func CanAddHabit(ctx AddHabitContext) GuardResult {
	// Rule 1: Name must not be empty
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "Please enter a habit name.",
			Err:     ErrEmptyName,
		}
	}

	// Rule 2: Frequency must be an integer
	freq, err := ParseFrequency(ctx.FrequencyInput)
	if err != nil {
		return GuardResult{
			Allowed: false,
			Reason:  "Please enter a valid number for frequency.",
			Err:     ErrInvalidFrequency,
		}
	}

	// Rule 3: Frequency must be positive
	if freq <= 0 && !ctx.AllowNonPositive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Frequency must be at least 1 time per week (got %d).", freq),
			Err:     ErrInvalidFrequency,
		}
	}

	return GuardResult{Allowed: true}
}

// RecordCompletionContext provides context for completion guards.
type RecordCompletionContext struct {
	Name   string
	Exists bool
}

// CanRecordCompletion evaluates whether a completion can be recorded.
// Rules:
// - The habit must exist
func CanRecordCompletion(ctx RecordCompletionContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("habit %q not found", ctx.Name),
			Err:     ErrNotFound,
		}
	}

	return GuardResult{Allowed: true}
}

// ParseFrequency parses a times-per-week value typed by a user.
// Surrounding whitespace and a leading sign are accepted; fractions are not.
func ParseFrequency(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidFrequency, input)
	}
	return n, nil
}
