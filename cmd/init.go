package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to $HOME/.resume-batch/config.json (or --config).

API keys may be left out of the file and supplied through OPENAI_API_KEY,
ANTHROPIC_API_KEY or GEMINI_API_KEY, or a .env file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Config written to %s\n", path)
	return err
}
