package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/batch"
	"github.com/nikogura/resume-batch/pkg/config"
	"github.com/nikogura/resume-batch/pkg/jobs"
	"github.com/nikogura/resume-batch/pkg/llm"
	"github.com/nikogura/resume-batch/pkg/logging"
	"github.com/nikogura/resume-batch/pkg/profile"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runFlags pipelineFlags

//nolint:gochecknoglobals // Cobra boilerplate
var jobsFile string

//nolint:gochecknoglobals // Cobra boilerplate
var pace time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a résumé for every posting in the jobs CSV",
	Long: `Generate a tailored résumé for every row of the jobs CSV, in file order.

The CSV needs a header row with a Job_Description column; Company and Role
columns are optional. Rows with an empty description are skipped.

For each row the .tex source is written to <output-dir>/TeX_Files and compiled
into <output-dir>/PDF_Files. A failed compile keeps the source and its logs for
inspection and the batch moves on. A failed generation call is reported and the
batch moves on unless --fail-fast is set.

Example:
  resume-batch run
  resume-batch run --profile me.json --jobs postings.csv --provider anthropic
  resume-batch run --fail-fast --pace 2s`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&jobsFile, "jobs", "", "Path to jobs CSV file (default jobs.csv)")
	runCmd.Flags().BoolVar(&runFlags.failFast, "fail-fast", false, "Stop the batch on the first generation failure")
	runCmd.Flags().DurationVar(&pace, "pace", config.DefaultPace.Std(), "Delay after each processed row")
}

func runRun(cmd *cobra.Command, _ []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	cfg, err = runFlags.loadConfig()
	if err != nil {
		return err
	}

	if jobsFile != "" {
		cfg.Jobs = jobsFile
	}
	if cmd.Flags().Changed("pace") {
		cfg.Pace = config.Duration(pace)
	}

	// Inputs are checked before anything is written.
	var p *profile.Profile
	p, err = loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	var rows []jobs.Row
	rows, err = jobs.Read(cfg.Jobs)
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("✓ Loaded %d rows from %s\n", len(rows), cfg.Jobs)
	}

	var logger *logging.Logger
	logger, err = newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var client *llm.Client
	client, err = newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	driver, compiler := newDriver(cfg, p, client, os.Stdout, logger)

	err = driver.Prepare()
	if err != nil {
		return err
	}

	fmt.Printf("Starting batch (%s).\n  TeX files -> %s/\n  PDF files -> %s/\n", cfg.Provider, cfg.SourceDir(), cfg.ArtifactDir())
	warnMissingCompiler(compiler)

	var summary batch.Summary
	summary, err = driver.Run(ctx, rows)
	printSummary(summary)

	return err
}

func printSummary(s batch.Summary) {
	fmt.Println()
	fmt.Printf("Processed %d rows: %d compiled", s.Processed, s.Compiled)
	if s.CompileFailed > 0 {
		fmt.Printf(", %d failed to compile", s.CompileFailed)
	}
	if s.GenerationFailed > 0 {
		fmt.Printf(", %d failed to generate", s.GenerationFailed)
	}
	if s.WriteFailed > 0 {
		fmt.Printf(", %d could not be written", s.WriteFailed)
	}
	if s.Skipped > 0 {
		fmt.Printf(" (%d blank rows skipped)", s.Skipped)
	}
	fmt.Println()
}
