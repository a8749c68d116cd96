// init.go implements the "reststyle init" command.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml",
	Long: `Create the app directory and write config.yaml with default values.
Set kakao_app_key, kakao_access_token and type_og_base_url there to
enable Kakao sharing.`,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := filepath.Join(e.dir, "config.yaml")
	if _, statErr := os.Stat(path); statErr == nil && !forceFlag {
		fmt.Fprintf(out, "Config already exists: %s (use --force to overwrite)\n", path)
		return nil
	}

	if err := config.WriteConfig(e.dir, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
