package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/batch"
	"github.com/nikogura/resume-batch/pkg/config"
	"github.com/nikogura/resume-batch/pkg/jd"
	"github.com/nikogura/resume-batch/pkg/jobs"
	"github.com/nikogura/resume-batch/pkg/llm"
	"github.com/nikogura/resume-batch/pkg/logging"
	"github.com/nikogura/resume-batch/pkg/profile"
)

//nolint:gochecknoglobals // Cobra boilerplate
var oneFlags pipelineFlags

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var role string

//nolint:gochecknoglobals // Cobra boilerplate
var oneCmd = &cobra.Command{
	Use:   "one <jd-file-or-url>",
	Short: "Generate a résumé for a single job posting",
	Long: `Generate a tailored résumé for one job description without a CSV.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

Example:
  resume-batch one jd.txt --company "Acme Corp" --role "Quant Intern"
  resume-batch one https://example.com/jobs/123 --company Acme`,
	Args: cobra.ExactArgs(1),
	RunE: runOne,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(oneCmd)
	oneFlags.register(oneCmd)
	oneCmd.Flags().StringVar(&company, "company", "", "Company name (default Unknown)")
	oneCmd.Flags().StringVar(&role, "role", "", "Role title (default Resume)")
}

func runOne(_ *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var cfg config.Config
	cfg, err = oneFlags.loadConfig()
	if err != nil {
		return err
	}

	var p *profile.Profile
	p, err = loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", args[0])
	}

	var description string
	description, err = jd.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("✓ Job description loaded (%d characters)\n", len(description))
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

	var gen batch.Generator = client
	if !getVerbose() {
		gen = spinningGenerator{inner: client, message: fmt.Sprintf("Generating with %s...", cfg.Provider)}
	}

	driver, compiler := newDriver(cfg, p, gen, os.Stdout, logger)

	err = driver.Prepare()
	if err != nil {
		return err
	}
	warnMissingCompiler(compiler)

	outcome := driver.Process(ctx, jobs.Row{Index: 1, Company: company, Role: role, JobDescription: description})

	switch outcome.Status {
	case batch.StatusCompiled:
		fmt.Printf("\n  TeX: %s\n  PDF: %s\n", outcome.SourcePath, outcome.ArtifactPath)
	case batch.StatusCompileFailed:
		fmt.Printf("\n  TeX: %s\n", outcome.SourcePath)
		if getVerbose() && outcome.Err != nil {
			fmt.Printf("  %v\n", outcome.Err)
		}
	default:
		err = outcome.Err
	}

	return err
}
