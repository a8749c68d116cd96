// types.go implements the "reststyle types" command.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/quiz"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the rest personas and their score ranges",
	RunE:  runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	n := len(content.Questions())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSCORE\tNAME\tTAGLINE")
	for i, p := range content.Personas() {
		lo, hi, ok := quiz.ScoreRange(i, n)
		rng := "-"
		if ok {
			rng = fmt.Sprintf("%d-%d", lo, hi)
			if lo == hi {
				rng = fmt.Sprintf("%d", lo)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, rng, p.Name, p.Tagline)
	}
	return w.Flush()
}
