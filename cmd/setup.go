package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-batch/pkg/batch"
	"github.com/nikogura/resume-batch/pkg/config"
	"github.com/nikogura/resume-batch/pkg/llm"
	"github.com/nikogura/resume-batch/pkg/logging"
	"github.com/nikogura/resume-batch/pkg/naming"
	"github.com/nikogura/resume-batch/pkg/profile"
	"github.com/nikogura/resume-batch/pkg/renderer"
)

// pipelineFlags are shared by the commands that generate documents.
type pipelineFlags struct {
	profile   string
	owner     string
	outputDir string
	provider  string
	model     string
	failFast  bool
	noAudit   bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Path to profile JSON or YAML file (default profile.json)")
	cmd.Flags().StringVar(&f.owner, "owner", "", "File name suffix (default derived from the profile name)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "Base output directory (default Tailored_Resumes)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Generation provider: openai, anthropic or gemini")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name (default per provider)")
	cmd.Flags().BoolVar(&f.noAudit, "no-audit", false, "Skip the layout check on generated documents")
}

// loadConfig loads the config file and applies flag overrides.
func (f *pipelineFlags) loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return cfg, err
	}

	if f.profile != "" {
		cfg.Profile = f.profile
	}
	if f.owner != "" {
		cfg.Owner = f.owner
	}
	if f.outputDir != "" {
		cfg.Output.BaseDir = f.outputDir
	}
	if f.provider != "" {
		cfg.UseProvider(f.provider)
	}
	if f.model != "" {
		cfg.Model = f.model
	}
	if f.failFast {
		cfg.FailFast = true
	}
	if f.noAudit {
		cfg.Audit = false
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid settings")
		return cfg, err
	}

	return cfg, err
}

// loadProfile loads the profile and reports it in verbose mode.
func loadProfile(path string) (p *profile.Profile, err error) {
	if getVerbose() {
		fmt.Printf("Loading profile from: %s\n", path)
	}

	p, err = profile.Load(path)
	if err != nil {
		return p, err
	}

	if getVerbose() {
		fmt.Printf("✓ Profile loaded: %s (%d projects, %d competitions)\n",
			p.PersonalInfo.Name, len(p.Extras.Projects), len(p.Extras.Competitions))
	}

	return p, err
}

// ownerFor returns the configured owner or one derived from the profile name.
func ownerFor(cfg config.Config, p *profile.Profile) (owner string) {
	owner = cfg.Owner
	if owner == "" {
		owner = p.PersonalInfo.Name
	}
	owner = naming.SanitizeFilename(owner)
	return owner
}

// newClient builds the generation client for the configured provider.
func newClient(ctx context.Context, cfg config.Config) (client *llm.Client, err error) {
	err = cfg.RequireAPIKey()
	if err != nil {
		return client, err
	}

	var provider llm.Provider
	provider, err = llm.NewProvider(ctx, llm.Options{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout.Std(),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create generation client")
		return client, err
	}

	client = llm.NewClient(provider)
	return client, err
}

// newDriver wires the batch driver from the settings.
func newDriver(cfg config.Config, p *profile.Profile, gen batch.Generator, out io.Writer, logger *logging.Logger) (driver *batch.Driver, compiler *renderer.Compiler) {
	compiler = renderer.NewCompiler(cfg.Compiler.Binary, cfg.ArtifactDir(), cfg.Compiler.Timeout.Std())

	driver = batch.NewDriver(p, gen, compiler, batch.Options{
		SourceDir:   cfg.SourceDir(),
		ArtifactDir: cfg.ArtifactDir(),
		Owner:       ownerFor(cfg, p),
		Pace:        cfg.Pace.Std(),
		FailFast:    cfg.FailFast,
		Audit:       cfg.Audit,
		Verbose:     getVerbose(),
	}, out, logger)

	return driver, compiler
}

// warnMissingCompiler prints a warning when the compiler is not installed.
// Sources are still written; every compile will fail and be reported.
func warnMissingCompiler(compiler *renderer.Compiler) {
	err := compiler.CheckCompiler()
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}
