package habit

import (
	"errors"
	"testing"
)

func TestCanAddHabit(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AddHabitContext
		wantAllowed bool
		wantErr     error
		wantReason  string
	}{
		{
			name:        "can add habit with name and integer frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "3"},
			wantAllowed: true,
		},
		{
			name:        "surrounding whitespace in frequency is accepted",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: " 4 "},
			wantAllowed: true,
		},
		{
			name:        "cannot add habit with empty name",
			ctx:         AddHabitContext{Name: "", FrequencyInput: "3"},
			wantAllowed: false,
			wantErr:     ErrEmptyName,
			wantReason:  "Please enter a habit name.",
		},
		{
			name:        "cannot add habit with whitespace-only name",
			ctx:         AddHabitContext{Name: " \t ", FrequencyInput: "3"},
			wantAllowed: false,
			wantErr:     ErrEmptyName,
			wantReason:  "Please enter a habit name.",
		},
		{
			name:        "empty name is reported before bad frequency",
			ctx:         AddHabitContext{Name: "", FrequencyInput: "abc"},
			wantAllowed: false,
			wantErr:     ErrEmptyName,
			wantReason:  "Please enter a habit name.",
		},
		{
			name:        "cannot add habit with non-numeric frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "abc"},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Please enter a valid number for frequency.",
		},
		{
			name:        "cannot add habit with fractional frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "3.5"},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Please enter a valid number for frequency.",
		},
		{
			name:        "cannot add habit with empty frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: ""},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Please enter a valid number for frequency.",
		},
		{
			name:        "cannot add habit with zero frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "0"},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Frequency must be at least 1 time per week (got 0).",
		},
		{
			name:        "cannot add habit with negative frequency",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "-2"},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Frequency must be at least 1 time per week (got -2).",
		},
		{
			name:        "non-positive frequency allowed when configured",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "0", AllowNonPositive: true},
			wantAllowed: true,
		},
		{
			name:        "non-numeric frequency rejected even when non-positive allowed",
			ctx:         AddHabitContext{Name: "Run", FrequencyInput: "x", AllowNonPositive: true},
			wantAllowed: false,
			wantErr:     ErrInvalidFrequency,
			wantReason:  "Please enter a valid number for frequency.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAddHabit(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if tt.wantAllowed {
				if err := result.Error(); err != nil {
					t.Errorf("Error() = %v, want nil", err)
				}
				return
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			err := result.Error()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Error() = %v, want errors.Is %v", err, tt.wantErr)
			}
			if err.Error() != tt.wantReason {
				t.Errorf("Error().Error() = %q, want %q", err.Error(), tt.wantReason)
			}
		})
	}
}

func TestCanRecordCompletion(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordCompletionContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can record completion for existing habit",
			ctx:         RecordCompletionContext{Name: "Read", Exists: true},
			wantAllowed: true,
		},
		{
			name:        "cannot record completion for unknown habit",
			ctx:         RecordCompletionContext{Name: " Unknown ", Exists: false},
			wantAllowed: false,
			wantReason:  `habit "Unknown" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecordCompletion(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed {
				if result.Reason != tt.wantReason {
					t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
				}
				if !errors.Is(result.Error(), ErrNotFound) {
					t.Errorf("Error() = %v, want ErrNotFound", result.Error())
				}
			}
		})
	}
}

func TestGuardResult_ErrorWithoutSentinel(t *testing.T) {
	result := GuardResult{Allowed: false, Reason: "nope"}
	err := result.Error()
	if err == nil || err.Error() != "nope" {
		t.Errorf("Error() = %v, want \"nope\"", err)
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "3", want: 3},
		{input: "+5", want: 5},
		{input: " 7\n", want: 7},
		{input: "-1", want: -1},
		{input: "0", want: 0},
		{input: "abc", wantErr: true},
		{input: "3.5", wantErr: true},
		{input: "", wantErr: true},
		{input: "1e3", wantErr: true},
		{input: "1_000", wantErr: true},
		{input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFrequency) {
					t.Errorf("ParseFrequency(%q) err = %v, want ErrInvalidFrequency", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrequency(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFrequency(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
