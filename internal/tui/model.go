// Package tui implements the full-screen habit tracker.
//
// The main menu leads to the add form, the weekly progress list (where a
// habit can be marked done) and the session-only settings form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	cliadapter "github.com/example/habits/internal/adapters/cli"
	corehabit "github.com/example/habits/internal/core/habit"
	"github.com/example/habits/internal/ctxutil"
	"github.com/example/habits/internal/ports/primary"
)

type screen int

const (
	screenMenu screen = iota
	screenAdd
	screenProgress
	screenSettings
)

type menuItem struct {
	label  string
	target screen
	exit   bool
}

var menuItems = []menuItem{
	{label: "Add Habit", target: screenAdd},
	{label: "View Progress", target: screenProgress},
	{label: "Settings", target: screenSettings},
	{label: "Exit", exit: true},
}

// Settings holds the settings form values for the current session.
type Settings struct {
	Reminder      string
	Notifications string
}

// Options configures the model.
type Options struct {
	Color  bool
	Logger *zap.Logger
}

// Model is the bubbletea model for the tracker.
type Model struct {
	ctx     context.Context
	service primary.HabitService
	logger  *zap.Logger
	styles  Styles

	screen     screen
	menuCursor int

	nameInput textinput.Model
	freqInput textinput.Model
	addFocus  int

	habits       []*primary.Habit
	habitsCursor int

	reminderInput textinput.Model
	notifyInput   textinput.Model
	settingsFocus int
	settings      Settings

	status    string
	statusErr bool
	width     int
	quitting  bool
}

// New creates the model on the main menu.
func New(ctx context.Context, service primary.HabitService, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := PlainStyles()
	if opts.Color {
		styles = DefaultStyles()
	}

	return Model{
		ctx:           ctxutil.WithSurface(ctx, "tui"),
		service:       service,
		logger:        logger,
		styles:        styles,
		nameInput:     newInput("e.g. Exercise", 64),
		freqInput:     newInput("e.g. 3", 6),
		reminderInput: newInput("e.g. Every morning at 8", 64),
		notifyInput:   newInput("e.g. Desktop", 64),
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "
	return ti
}

// Run starts the program and blocks until the user exits.
func Run(ctx context.Context, service primary.HabitService, opts Options) error {
	p := tea.NewProgram(New(ctx, service, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Settings returns the settings entered in this session.
func (m Model) Settings() Settings {
	return m.settings
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for _, ti := range []*textinput.Model{&m.nameInput, &m.freqInput, &m.reminderInput, &m.notifyInput} {
			ti.Width = max(10, min(60, msg.Width-8))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenAdd:
			return m.updateAdd(msg)
		case screenProgress:
			return m.updateProgress(msg)
		case screenSettings:
			return m.updateSettings(msg)
		}
	}

	return m.updateInputs(msg)
}

// ============================================================================
// Main menu
// ============================================================================

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case "enter":
		return m.open(menuItems[m.menuCursor])
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		m.menuCursor = idx
		return m.open(menuItems[idx])
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) open(item menuItem) (tea.Model, tea.Cmd) {
	if item.exit {
		m.quitting = true
		return m, tea.Quit
	}

	m.status = ""
	m.screen = item.target
	m.logger.Debug("screen opened", zap.String("screen", item.label))

	switch item.target {
	case screenAdd:
		m.nameInput.Reset()
		m.freqInput.Reset()
		cmd := m.focusAdd(0)
		return m, cmd
	case screenProgress:
		m.habitsCursor = 0
		m.refresh()
	case screenSettings:
		m.reminderInput.SetValue(m.settings.Reminder)
		m.notifyInput.SetValue(m.settings.Notifications)
		cmd := m.focusSettings(0)
		return m, cmd
	}
	return m, nil
}

func (m *Model) back() {
	m.screen = screenMenu
	m.nameInput.Blur()
	m.freqInput.Blur()
	m.reminderInput.Blur()
	m.notifyInput.Blur()
}

// ============================================================================
// Add Habit
// ============================================================================

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.status = ""
		m.back()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		cmd := m.focusAdd(1 - m.addFocus)
		return m, cmd
	case tea.KeyEnter:
		if m.addFocus == 0 {
			cmd := m.focusAdd(1)
			return m, cmd
		}
		return m.submitAdd()
	}
	return m.updateInputs(msg)
}

func (m *Model) focusAdd(field int) tea.Cmd {
	m.addFocus = field
	if field == 0 {
		m.freqInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.freqInput.Focus()
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	resp, err := m.service.AddHabit(m.ctx, primary.AddHabitRequest{
		Name:           m.nameInput.Value(),
		FrequencyInput: m.freqInput.Value(),
	})
	if err != nil {
		m.setError(err)
		field := 1
		if errors.Is(err, corehabit.ErrEmptyName) {
			field = 0
		}
		cmd := m.focusAdd(field)
		return m, cmd
	}

	status := fmt.Sprintf("Habit '%s' added successfully.", resp.Habit.Name)
	if resp.Replaced {
		status += fmt.Sprintf(" Replaced the existing habit (%d completion(s) discarded).", resp.DiscardedCompletions)
	}
	m.setStatus(status)
	m.back()
	return m, nil
}

// ============================================================================
// View Progress
// ============================================================================

func (m Model) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.status = ""
		m.back()
	case "up", "k":
		if m.habitsCursor > 0 {
			m.habitsCursor--
		}
	case "down", "j":
		if m.habitsCursor < len(m.habits)-1 {
			m.habitsCursor++
		}
	case "enter", "d":
		if len(m.habits) == 0 {
			return m, nil
		}
		name := m.habits[m.habitsCursor].Name
		resp, err := m.service.RecordCompletion(m.ctx, name)
		if err != nil {
			m.setError(err)
		} else {
			h := resp.Habit
			m.setStatus(fmt.Sprintf("Marked '%s' done (%d/%d this week)", h.Name, h.CompletionCount, h.TargetFrequency))
		}
		m.refresh()
	}
	return m, nil
}

func (m *Model) refresh() {
	habits, err := m.service.ListHabits(m.ctx)
	if err != nil {
		m.setError(err)
		m.habits = nil
		return
	}
	m.habits = habits
	if m.habitsCursor >= len(habits) {
		m.habitsCursor = max(0, len(habits)-1)
	}
}

// ============================================================================
// Settings
// ============================================================================

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.status = ""
		m.back()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		cmd := m.focusSettings(1 - m.settingsFocus)
		return m, cmd
	case tea.KeyEnter:
		if m.settingsFocus == 0 {
			cmd := m.focusSettings(1)
			return m, cmd
		}
		m.settings = Settings{
			Reminder:      strings.TrimSpace(m.reminderInput.Value()),
			Notifications: strings.TrimSpace(m.notifyInput.Value()),
		}
		m.setStatus("Settings saved for this session.")
		m.back()
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m *Model) focusSettings(field int) tea.Cmd {
	m.settingsFocus = field
	if field == 0 {
		m.notifyInput.Blur()
		return m.reminderInput.Focus()
	}
	m.reminderInput.Blur()
	return m.notifyInput.Focus()
}

// updateInputs forwards msg to the focused text input, if any.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenAdd:
		if m.addFocus == 0 {
			m.nameInput, cmd = m.nameInput.Update(msg)
		} else {
			m.freqInput, cmd = m.freqInput.Update(msg)
		}
	case screenSettings:
		if m.settingsFocus == 0 {
			m.reminderInput, cmd = m.reminderInput.Update(msg)
		} else {
			m.notifyInput, cmd = m.notifyInput.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.statusErr = true
	var guardErr *corehabit.GuardError
	if errors.As(err, &guardErr) {
		m.status = err.Error()
		return
	}
	m.logger.Warn("store operation failed", zap.Error(err))
	m.status = "Error: " + err.Error()
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	var help string

	switch m.screen {
	case screenMenu:
		b.WriteString(m.styles.Title.Render("Daily Habit Tracker"))
		b.WriteString("\n")
		for i, item := range menuItems {
			line := fmt.Sprintf("%d. %s", i+1, item.label)
			if i == m.menuCursor {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.Item.Render("  " + line))
			}
			b.WriteString("\n")
		}
		help = "↑/↓ move • enter select • q quit"

	case screenAdd:
		b.WriteString(m.styles.Title.Render("Add New Habit"))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Habit Name"))
		b.WriteString("\n" + m.nameInput.View() + "\n\n")
		b.WriteString(m.styles.Label.Render("Frequency (times per week)"))
		b.WriteString("\n" + m.freqInput.View() + "\n")
		help = "tab switch field • enter save • esc back"

	case screenProgress:
		b.WriteString(m.styles.Title.Render("Weekly Progress"))
		b.WriteString("\n")
		if len(m.habits) == 0 {
			b.WriteString("No habits yet.\n")
		}
		for i, h := range m.habits {
			marker := "  "
			target := cliadapter.FormatTarget(h)
			if i == m.habitsCursor {
				marker = "> "
				target = m.styles.Selected.Render(target)
			}
			progress := cliadapter.FormatProgress(h)
			if h.TargetFrequency > 0 && h.CompletionCount >= h.TargetFrequency {
				progress += " " + m.styles.Success.Render("✓")
			}
			b.WriteString(marker + target + "\n")
			b.WriteString("  " + progress + "\n")
		}
		help = "↑/↓ move • enter mark done • esc back"

	case screenSettings:
		b.WriteString(m.styles.Title.Render("Settings"))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Reminder Settings"))
		b.WriteString("\n" + m.reminderInput.View() + "\n\n")
		b.WriteString(m.styles.Label.Render("Notification Preferences"))
		b.WriteString("\n" + m.notifyInput.View() + "\n\n")
		b.WriteString(m.styles.Help.Render("Kept for this session only; reminders and notifications are not sent."))
		b.WriteString("\n")
		help = "tab switch field • enter save • esc back"
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(help))

	return m.styles.Frame.Render(b.String())
}
