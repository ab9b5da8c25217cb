package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/habits/internal/cli"
	"github.com/example/habits/internal/version"
)

func main() {
	opts := &cli.Options{}

	rootCmd := &cobra.Command{
		Use:     "habits",
		Short:   "Daily habit tracker",
		Version: version.String(),
		Long: `habits tracks a weekly target and completion count for each habit.

Habits are kept in memory for the life of the process. Run without a
command to open the full-screen tracker, or use 'habits shell' for a
line-oriented menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cli.TUIRunE(opts),
	}

	cli.AddGlobalFlags(rootCmd, opts)

	rootCmd.AddCommand(cli.TUICmd(opts))
	rootCmd.AddCommand(cli.ShellCmd(opts))
	rootCmd.AddCommand(cli.ConfigCmd(opts))
	rootCmd.AddCommand(cli.VersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
