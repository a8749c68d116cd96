// result.go implements the "reststyle result" command rendering the persona card.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/report"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Show your rest style card",
	Long: `Render the persona card for the saved answers as markdown.
Use --raw to print the markdown source and --save to also write result.md
into the app directory.`,
	RunE: runResult,
}

var (
	rawFlag  bool
	saveFlag bool
)

func init() {
	resultCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print markdown without rendering")
	resultCmd.Flags().BoolVar(&saveFlag, "save", false, "Also write result.md to the app directory")
}

func runResult(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	st, err := e.resultState()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	r := report.GenerateReport(st, len(content.Questions()), e.dir)
	md := report.FormatMarkdown(r)

	if saveFlag {
		path, err := report.WriteReport(e.dir, r)
		if err != nil {
			return err
		}
		debugf("report written: %s", path)
	}

	if rawFlag {
		fmt.Fprint(out, md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()-4),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}

// terminalWidth returns the stdout width, or 80 when unknown.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 20 {
		return 80
	}
	return w
}
