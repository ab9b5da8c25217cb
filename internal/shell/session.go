// Package shell runs the habit tracker as a line-oriented menu session for
// terminals where the full-screen UI is unavailable.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	cliadapter "github.com/example/habits/internal/adapters/cli"
	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ctxutil"
	"github.com/example/habits/internal/ports/primary"
)

// Settings holds the settings form values. They are shown back to the user
// but nothing reads them: reminders and notifications are not delivered.
type Settings struct {
	Reminder      string
	Notifications string
}

// Options configures a Session.
type Options struct {
	Color  bool
	Logger *zap.Logger
}

// maxLineBytes bounds one input line. Longer lines are discarded and the
// prompt is repeated.
const maxLineBytes = 64 * 1024

// Session is one interactive run of the menu loop.
type Session struct {
	service  primary.HabitService
	adapter  *cliadapter.HabitAdapter
	in       *bufio.Reader
	out      io.Writer
	logger   *zap.Logger
	settings Settings
	readErr  error
}

// New creates a session reading commands from in and writing to out.
func New(service primary.HabitService, in io.Reader, out io.Writer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		service: service,
		adapter: cliadapter.NewHabitAdapter(service, out, opts.Color),
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Settings returns the values entered in the settings form.
func (s *Session) Settings() Settings {
	return s.settings
}

// Run shows the main menu until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	ctx = ctxutil.WithSurface(ctx, "shell")
	s.logger.Debug("shell session started")
	defer s.logger.Debug("shell session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, ok := s.prompt("> ")
		if !ok {
			fmt.Fprintln(s.out)
			return s.readErr
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "a", "add":
			s.addHabit(ctx)
		case "2", "p", "progress":
			s.viewProgress(ctx)
		case "3", "d", "done":
			s.markDone(ctx)
		case "4", "s", "settings":
			s.editSettings()
		case "5", "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown choice %q\n", strings.TrimSpace(choice))
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Daily Habit Tracker")
	fmt.Fprintln(s.out, "  1) Add Habit")
	fmt.Fprintln(s.out, "  2) View Progress")
	fmt.Fprintln(s.out, "  3) Mark Habit Done")
	fmt.Fprintln(s.out, "  4) Settings")
	fmt.Fprintln(s.out, "  5) Exit")
}

// addHabit shows the add form until a habit is saved or the user gives up.
func (s *Session) addHabit(ctx context.Context) {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Add New Habit")
		name, ok := s.prompt("Habit Name: ")
		if !ok {
			return
		}
		freq, ok := s.prompt("Frequency (times per week): ")
		if !ok {
			return
		}

		if _, err := s.adapter.Add(ctx, name, freq); err == nil {
			return
		}
		if !s.confirm("Try again? [Y/n] ") {
			return
		}
	}
}

func (s *Session) viewProgress(ctx context.Context) {
	fmt.Fprintln(s.out)
	if _, err := s.adapter.Progress(ctx); err != nil {
		s.adapter.Warn(err)
	}
}

func (s *Session) markDone(ctx context.Context) {
	habits, err := s.service.ListHabits(ctx)
	if err != nil {
		s.adapter.Warn(err)
		return
	}

	fmt.Fprintln(s.out)
	if len(habits) == 0 {
		fmt.Fprintln(s.out, "No habits yet.")
		return
	}
	for i, h := range habits {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, h.Name)
	}

	answer, ok := s.prompt("Habit name or number: ")
	if !ok {
		return
	}
	if _, err := s.adapter.Done(ctx, resolveHabit(habits, answer)); err != nil {
		s.logger.Debug("completion rejected", zap.String("input", answer), zap.Error(err))
	}
}

func (s *Session) editSettings() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Settings")

	if v, ok := s.promptDefault("Reminder Settings", s.settings.Reminder); ok {
		s.settings.Reminder = v
	} else {
		return
	}
	if v, ok := s.promptDefault("Notification Preferences", s.settings.Notifications); ok {
		s.settings.Notifications = v
	} else {
		return
	}

	fmt.Fprintln(s.out, "Settings kept for this session only; reminders and notifications are not sent.")
}

// resolveHabit maps an exact name, or else a 1-based list number, to a habit
// name. Anything else is passed through unchanged for the store to reject.
func resolveHabit(habits []*primary.Habit, answer string) string {
	for _, h := range habits {
		if h.Name == answer {
			return h.Name
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && n >= 1 && n <= len(habits) {
		return habits[n-1].Name
	}
	return answer
}

// prompt reads one line. ok is false when input is exhausted or unreadable.
// An overlong line is rejected and the prompt repeated.
func (s *Session) prompt(label string) (string, bool) {
	for {
		fmt.Fprint(s.out, label)
		line, tooLong, err := s.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.readErr = fmt.Errorf("failed to read input: %w", err)
			}
			return "", false
		}
		if tooLong {
			s.logger.Debug("input line discarded", zap.Int("limit", maxLineBytes))
			s.adapter.Warn(&corehabit.GuardError{
				Reason: fmt.Sprintf("Input longer than %d bytes was discarded; please try again.", maxLineBytes),
			})
			continue
		}
		return line, true
	}
}

// readLine returns the next line without its terminator. A line over
// maxLineBytes is consumed in full and reported as tooLong.
func (s *Session) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, more, err := s.in.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !more {
			return string(buf), tooLong, nil
		}
	}
}

func (s *Session) promptDefault(label, current string) (string, bool) {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	v, ok := s.prompt(label + ": ")
	if !ok {
		return "", false
	}
	if strings.TrimSpace(v) == "" {
		return current, true
	}
	return strings.TrimSpace(v), true
}

func (s *Session) confirm(label string) bool {
	v, ok := s.prompt(label)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "y", "yes":
		return true
	}
	return false
}
