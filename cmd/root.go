package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/logging"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var logFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-batch",
	Short: "Generate tailored one-page LaTeX résumés from a CSV of job postings",
	Long: `resume-batch reads a profile and a CSV of job postings and, for every posting,
asks a text-generation service for a tailored one-page LaTeX résumé, writes the
.tex source and compiles it to PDF with pdflatex.

Projects and competitions are chosen from the profile's pools by keyword overlap
with the posting; every generated document is checked against the layout rules
and any violations are reported as warnings.

Run without a subcommand it behaves like 'resume-batch run' with default paths.`,
	Args:          cobra.NoArgs,
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-batch/config.json)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatConsole, "Diagnostic log format: console or json")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the diagnostic logger from the persistent flags.
func newLogger() (logger *logging.Logger, err error) {
	logger, err = logging.New(logFormat, getVerbose())
	return logger, err
}
