package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/habits/internal/shell"
)

// ShellCmd returns the shell command
func ShellCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Track habits from a line-oriented menu",
		Long: `Track habits from a numbered menu read line by line.

Works where the full-screen tracker does not: pipes, dumb terminals, scripts.

Examples:
  habits shell
  printf '1\nExercise\n3\n2\n5\n' | habits shell --backend sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts, "stderr")
			if err != nil {
				return err
			}
			defer sess.Close()

			service, err := sess.container.HabitService()
			if err != nil {
				return err
			}

			s := shell.New(service, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
				Color:  sess.cfg.UI.Color,
				Logger: sess.logger.Named("shell"),
			})
			return s.Run(cmd.Context())
		},
	}
}
