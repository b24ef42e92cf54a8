package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/config"
	"github.com/nikogura/resume-batch/pkg/jd"
	"github.com/nikogura/resume-batch/pkg/profile"
	"github.com/nikogura/resume-batch/pkg/prompt"
	"github.com/nikogura/resume-batch/pkg/selection"
)

//nolint:gochecknoglobals // Cobra boilerplate
var promptProfile string

//nolint:gochecknoglobals // Cobra boilerplate
var promptCmd = &cobra.Command{
	Use:   "prompt <jd-file-or-url>",
	Short: "Print the generation instruction for a job description",
	Long: `Print the full instruction that would be sent to the generation service for
one job description. Nothing is sent and no files are written.

With --verbose the lexical selection of projects and competitions is printed
first.

Example:
  resume-batch prompt jd.txt > instruction.txt
  resume-batch prompt jd.txt --profile me.yaml -v`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVar(&promptProfile, "profile", "", "Path to profile JSON or YAML file (default profile.json)")
}

func runPrompt(_ *cobra.Command, args []string) (err error) {
	path := promptProfile
	if path == "" {
		path = config.DefaultProfile
	}

	var p *profile.Profile
	p, err = profile.Load(path)
	if err != nil {
		return err
	}

	var description string
	description, err = jd.Fetch(context.Background(), args[0])
	if err != nil {
		return err
	}

	if getVerbose() {
		sel := selection.SelectExtras(description, p.Extras)
		for _, r := range append(sel.Projects, sel.Competitions...) {
			fmt.Printf("# selected %s: %s (score %d)\n", r.Pool, r.Entry.Title, r.Score)
		}
		fmt.Printf("# additional information: %t\n\n", sel.NeedsAdditionalInfo())
	}

	var instruction string
	instruction, err = prompt.Build(p, description)
	if err != nil {
		return err
	}

	fmt.Println(instruction)
	return err
}
