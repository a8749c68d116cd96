// preview.go implements the "reststyle preview" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write the result page with social preview tags",
	Long: `Rewrite result.html (or the file given with -o) with og: and twitter:
meta tags for the saved result. Existing tags are updated in place.`,
	RunE: runPreview,
}

var outputFlag string

func init() {
	previewCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default <dir>/result.html)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	st, err := e.resultState()
	if err != nil {
		return err
	}
	p := e.payload(st)

	var path string
	if outputFlag == "" {
		path, err = e.writePreview(p)
	} else {
		path = outputFlag
		err = preview.WriteFile(path, e.meta(p))
		ev := log.LogEvent{Event: log.EventPreviewWritten, Path: path}
		if err != nil {
			ev.Error = err.Error()
		}
		_ = e.logger.Append(ev)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
