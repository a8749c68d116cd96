// Package cli defines Cobra command definitions for the reststyle CLI.
// This file contains the root command, global flags, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/internal/tui"
	"github.com/mindvr/reststyle/internal/tui/app"
)

var (
	dirFlag string
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "reststyle",
	Short: "Find your workplace rest style in 12 questions",
	Long: `reststyle asks twelve A/B questions about how you spend short breaks
at work, maps your score to one of eight rest personas, and helps you
share the result.

Run without arguments in a terminal for the interactive quiz, or use the
subcommands to answer one question at a time.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		// Without a terminal, explain how to continue with subcommands.
		if !tui.IsTTY() {
			return tui.NewFallbackRunner(cmd.OutOrStdout()).Run(e.persister.Load())
		}

		tuiApp := app.New(app.Deps{
			Cfg:       e.cfg,
			Dir:       e.dir,
			Logger:    e.logger,
			Persister: e.persister,
			Resolver:  e.resolver(),
			Kakao:     e.kakaoSharer(),
			Opener:    e.opener(),
		})
		defer tuiApp.Close()
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "App directory (default $RESTSTYLE_HOME or ~/.reststyle)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print file paths and fall-through errors")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(cleanCmd)
}
