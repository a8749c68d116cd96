// clean.go implements the "reststyle clean" command for pruning the event log.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/internal/cleanup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old sessions from the event log",
	Long: `Remove old quiz sessions from log.jsonl.

By default, removes sessions older than the configured max_age_days (default 30).
Use --keep to keep only the N most recent sessions instead.
Use --dry-run to preview what would be removed.`,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N sessions (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var pruned []string
	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(e.logger, keepFlag, dryRunFlag)
	} else {
		maxAge := e.cfg.Cleanup.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(e.logger, maxAge, dryRunFlag)
	}
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Fprintln(out, "No sessions to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}
	for _, id := range pruned {
		fmt.Fprintf(out, "  %s %s\n", verb, id)
	}
	fmt.Fprintf(out, "%s %d session(s).\n", verb, len(pruned))
	return nil
}
