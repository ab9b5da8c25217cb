package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/habits/internal/tui"
)

// TUICmd returns the tui command
func TUICmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen habit tracker",
		Long: `Open the full-screen habit tracker.

The main menu offers Add Habit, View Progress, Settings and Exit.
Habits live only as long as the program runs.

This is also what runs when habits is invoked without a command.`,
		Args: cobra.NoArgs,
		RunE: TUIRunE(opts),
	}
}

// TUIRunE runs the full-screen tracker. The root command uses it directly.
func TUIRunE(opts *Options) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// The screen belongs to the TUI, so logs only go to a configured file.
		sess, err := openSession(opts, "")
		if err != nil {
			return err
		}
		defer sess.Close()

		service, err := sess.container.HabitService()
		if err != nil {
			return err
		}

		return tui.Run(cmd.Context(), service, tui.Options{
			Color:  sess.cfg.UI.Color,
			Logger: sess.logger.Named("tui"),
		})
	}
}
