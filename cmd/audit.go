package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/audit"
	"github.com/nikogura/resume-batch/pkg/jd"
	"github.com/nikogura/resume-batch/pkg/profile"
	"github.com/nikogura/resume-batch/pkg/selection"
)

//nolint:gochecknoglobals // Cobra boilerplate
var auditProfile string

//nolint:gochecknoglobals // Cobra boilerplate
var auditJD string

//nolint:gochecknoglobals // Cobra boilerplate
var strict bool

//nolint:gochecknoglobals // Cobra boilerplate
var auditCmd = &cobra.Command{
	Use:   "audit <tex-file>...",
	Short: "Check generated .tex files against the layout rules",
	Long: `Check one or more generated .tex files for the layout rules the instruction
asks for: at most 2 projects and 2 competitions and 3 combined, 2-3 bullets per
entry, the Additional Information section present exactly when fewer than 3
projects and competitions are shown, no line over 125 characters and no
leaked selection keywords.

With --jd and --profile the chosen projects and competitions are also compared
with the lexical ranking.

Example:
  resume-batch audit Tailored_Resumes/TeX_Files/*.tex
  resume-batch audit Acme_Quant_Intern_Jordan_Lee.tex --jd jd.txt --profile profile.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringVar(&auditProfile, "profile", "", "Profile used to rank pooled entries (needs --jd)")
	auditCmd.Flags().StringVar(&auditJD, "jd", "", "Job description file or URL the document was generated for")
	auditCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any file has violations")
}

func runAudit(_ *cobra.Command, args []string) (err error) {
	var sel selection.Selection
	sel, err = auditSelection()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read %s", path)
			return err
		}

		report := audit.Check(string(data), sel)
		if report.OK() {
			fmt.Printf("✓ %s (%d projects, %d competitions)\n", path, len(report.Projects), len(report.Competitions))
		} else {
			failed++
			fmt.Printf("%s:\n", path)
			for _, v := range report.Violations {
				fmt.Printf("  Warning: %s\n", v)
			}
		}

		for _, note := range report.Notes {
			fmt.Printf("  Note: %s\n", note)
		}
	}

	if strict && failed > 0 {
		err = errors.Errorf("%d of %d files have violations", failed, len(args))
		return err
	}

	return err
}

// auditSelection ranks the profile's pools against --jd when both flags are set.
func auditSelection() (sel selection.Selection, err error) {
	if auditJD == "" || auditProfile == "" {
		return sel, err
	}

	var p *profile.Profile
	p, err = profile.Load(auditProfile)
	if err != nil {
		return sel, err
	}

	var description string
	description, err = jd.Fetch(context.Background(), auditJD)
	if err != nil {
		return sel, err
	}

	sel = selection.SelectExtras(description, p.Extras)
	return sel, err
}
