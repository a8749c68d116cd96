// reset.go implements the "reststyle reset" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over",
	Long: `Return to the start screen with no answers.
Use --purge to remove the saved state entirely instead.`,
	RunE: runReset,
}

var purgeFlag bool

func init() {
	resetCmd.Flags().BoolVar(&purgeFlag, "purge", false, "Delete the saved state")
}

func runReset(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if purgeFlag {
		if err := e.persister.Clear(); err != nil {
			return fmt.Errorf("removing saved state: %w", err)
		}
		fmt.Fprintln(out, "Saved state removed.")
		return nil
	}

	s := e.newSession(nil)
	e.restore(s)
	s.Reset()
	s.Close()
	fmt.Fprintln(out, "Back to start. Begin with: reststyle answer A|B")
	return nil
}
