// Package batch drives the per-row pipeline: posting, instruction, generated
// document, source file, compiled artifact.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nikogura/resume-batch/pkg/audit"
	"github.com/nikogura/resume-batch/pkg/jobs"
	"github.com/nikogura/resume-batch/pkg/logging"
	"github.com/nikogura/resume-batch/pkg/profile"
	"github.com/nikogura/resume-batch/pkg/prompt"
	"github.com/nikogura/resume-batch/pkg/renderer"
	"github.com/nikogura/resume-batch/pkg/selection"
)

// DefaultPace is the delay after each processed row.
const DefaultPace = time.Second

// Generator turns an instruction into a document.
type Generator interface {
	Generate(ctx context.Context, instruction string) (document string, err error)
}

// Compiler turns a source file into an artifact. It never fails loudly.
type Compiler interface {
	Compile(ctx context.Context, sourcePath string) (result renderer.Result)
}

// InstructionBuilder builds the generation instruction for one posting.
type InstructionBuilder func(p *profile.Profile, jobDescription string) (instruction string, err error)

// Options controls a batch run.
type Options struct {
	SourceDir   string
	ArtifactDir string
	Owner       string
	Pace        time.Duration
	// FailFast aborts the run on the first generation failure instead of
	// reporting it and moving to the next row.
	FailFast bool
	// Audit runs the structural document check on every generated document.
	Audit   bool
	Verbose bool
}

// Driver runs rows through the pipeline sequentially, in input order.
type Driver struct {
	Profile   *profile.Profile
	Generator Generator
	Compiler  Compiler
	Build     InstructionBuilder
	Options   Options
	Out       io.Writer
	Logger    *logging.Logger

	sleep func(ctx context.Context, d time.Duration) (err error)
}

// NewDriver creates a driver using the standard instruction builder.
func NewDriver(p *profile.Profile, gen Generator, comp Compiler, opts Options, out io.Writer, logger *logging.Logger) (driver *Driver) {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.Nop()
	}

	driver = &Driver{
		Profile:   p,
		Generator: gen,
		Compiler:  comp,
		Build:     prompt.Build,
		Options:   opts,
		Out:       out,
		Logger:    logger,
		sleep:     sleepContext,
	}
	return driver
}

// Prepare creates the source and artifact directories.
func (d *Driver) Prepare() (err error) {
	for _, dir := range []string{d.Options.SourceDir, d.Options.ArtifactDir} {
		err = os.MkdirAll(dir, 0750)
		if err != nil {
			err = errors.Wrapf(err, "failed to create output directory: %s", dir)
			return err
		}
	}
	return err
}

// Run processes rows in order. With FailFast set, a generation failure stops
// the run and is returned; otherwise failures are counted and the run goes on.
// A cancelled context stops the run between rows.
func (d *Driver) Run(ctx context.Context, rows []jobs.Row) (summary Summary, err error) {
	runID := uuid.NewString()
	logger := d.Logger.With("run_id", runID)
	logger.Info("batch started", "rows", len(rows), "source_dir", d.Options.SourceDir, "artifact_dir", d.Options.ArtifactDir)

	for _, row := range rows {
		err = ctx.Err()
		if err != nil {
			err = errors.Wrap(err, "batch interrupted")
			return summary, err
		}

		outcome := d.process(ctx, row, logger)
		summary.add(outcome)

		if outcome.Status == StatusSkipped {
			continue
		}

		if outcome.Status == StatusGenerationFailed && d.Options.FailFast {
			err = errors.Wrapf(outcome.Err, "row %d (%s at %s)", row.Index, outcome.Role, outcome.Company)
			logger.Error("batch aborted", "row", row.Index, "error", err)
			return summary, err
		}

		if d.Options.Pace > 0 {
			err = d.sleep(ctx, d.Options.Pace)
			if err != nil {
				err = errors.Wrap(err, "batch interrupted")
				return summary, err
			}
		}
	}

	logger.Info("batch finished",
		"processed", summary.Processed,
		"compiled", summary.Compiled,
		"compile_failed", summary.CompileFailed,
		"generation_failed", summary.GenerationFailed,
		"write_failed", summary.WriteFailed,
		"skipped", summary.Skipped,
	)

	return summary, err
}

// Process runs a single row through the pipeline.
func (d *Driver) Process(ctx context.Context, row jobs.Row) (outcome Outcome) {
	outcome = d.process(ctx, row, d.Logger)
	return outcome
}

func (d *Driver) process(ctx context.Context, row jobs.Row, logger *logging.Logger) (outcome Outcome) {
	outcome = newOutcome(row, d.Options.Owner)
	if outcome.Status == StatusSkipped {
		logger.Debug("row skipped", "row", row.Index, "reason", "blank job description")
		return outcome
	}

	logger = logger.With("row", row.Index, "company", outcome.Company, "role", outcome.Role)
	fmt.Fprintf(d.Out, "\nProcessing: %s at %s\n", outcome.Role, outcome.Company)

	outcome = d.generate(ctx, outcome)
	if outcome.Status == StatusGenerationFailed {
		fmt.Fprintf(d.Out, "✗ Generation failed: %v\n", outcome.Err)
		logger.Error("generation failed", "error", outcome.Err)
		return outcome
	}

	outcome = d.write(outcome)
	if outcome.Status == StatusWriteFailed {
		fmt.Fprintf(d.Out, "✗ Could not write source file: %v\n", outcome.Err)
		logger.Error("write failed", "path", outcome.SourcePath, "error", outcome.Err)
		return outcome
	}

	if d.Options.Audit {
		d.audit(outcome, logger)
	}

	fmt.Fprintln(d.Out, "  -> Compiling PDF...")
	outcome = d.compile(ctx, outcome)
	if outcome.Status == StatusCompiled {
		fmt.Fprintf(d.Out, "✓ Success! PDF saved to %s\n", outcome.ArtifactPath)
		logger.Info("row compiled", "artifact", outcome.ArtifactPath)
		return outcome
	}

	fmt.Fprintf(d.Out, "Warning: PDF compilation failed. TeX file saved in %s\n", outcome.SourcePath)
	logger.Warn("compile failed", "source", outcome.SourcePath, "error", outcome.Err)
	return outcome
}

// generate builds the instruction and calls the generator.
func (d *Driver) generate(ctx context.Context, outcome Outcome) (next Outcome) {
	next = outcome

	instruction, err := d.Build(d.Profile, next.Row.JobDescription)
	if err != nil {
		next.Status = StatusGenerationFailed
		next.Err = errors.Wrap(err, "failed to build instruction")
		return next
	}

	next.Document, err = d.Generator.Generate(ctx, instruction)
	if err != nil {
		next.Status = StatusGenerationFailed
		next.Err = err
		return next
	}

	next.Status = StatusGenerated
	return next
}

func (d *Driver) write(outcome Outcome) (next Outcome) {
	next = outcome
	next.SourcePath = filepath.Join(d.Options.SourceDir, next.BaseName+renderer.SourceExtension)

	err := renderer.WriteSource(next.Document, next.SourcePath)
	if err != nil {
		next.Status = StatusWriteFailed
		next.Err = err
		return next
	}

	next.Status = StatusWritten
	return next
}

func (d *Driver) compile(ctx context.Context, outcome Outcome) (next Outcome) {
	next = outcome

	result := d.Compiler.Compile(ctx, next.SourcePath)
	if !result.OK {
		next.Status = StatusCompileFailed
		next.Err = result.Err
		return next
	}

	next.ArtifactPath = result.ArtifactPath
	next.Status = StatusCompiled
	return next
}

func (d *Driver) audit(outcome Outcome, logger *logging.Logger) {
	sel := selection.SelectExtras(outcome.Row.JobDescription, d.Profile.Extras)
	report := audit.Check(outcome.Document, sel)

	for _, v := range report.Violations {
		fmt.Fprintf(d.Out, "  Warning: %s\n", v)
		logger.Warn("document check", "rule", v.Rule, "line", v.Line, "detail", v.Message)
	}

	if d.Options.Verbose {
		for _, note := range report.Notes {
			fmt.Fprintf(d.Out, "  Note: %s\n", note)
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) (err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}
	return err
}

// blank reports whether s has no visible content.
func blank(s string) (empty bool) {
	empty = strings.TrimSpace(s) == ""
	return empty
}
