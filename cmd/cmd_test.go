package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/resume-batch/pkg/config"
	"github.com/nikogura/resume-batch/pkg/jobs"
	"github.com/nikogura/resume-batch/pkg/profile/profiletest"
)

func writeFile(t *testing.T, dir, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func isolate(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{config.EnvOpenAIKey, config.EnvAnthropicKey, config.EnvGeminiKey, config.EnvModel, config.EnvProvider} {
		t.Setenv(key, "")
	}
	configFile = ""
	return dir
}

func TestRunMissingColumnWritesNothing(t *testing.T) {
	dir := isolate(t)
	t.Setenv(config.EnvOpenAIKey, "sk-test")

	runFlags = pipelineFlags{
		profile:   writeFile(t, dir, "profile.json", profiletest.JSON),
		outputDir: filepath.Join(dir, "Tailored_Resumes"),
	}
	jobsFile = writeFile(t, dir, "jobs.csv", "Company,Role,Description\nAcme,Quant Intern,options pricing\n")

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jobs.ErrMissingColumn))
	assert.Contains(t, err.Error(), "Company, Role, Description")
	assert.NoDirExists(t, filepath.Join(dir, "Tailored_Resumes"))
}

func TestRunMissingJobsFile(t *testing.T) {
	dir := isolate(t)

	runFlags = pipelineFlags{profile: writeFile(t, dir, "profile.json", profiletest.JSON)}
	jobsFile = filepath.Join(dir, "absent.csv")

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jobs.ErrFileNotFound))
}

func TestRunMissingProfileKey(t *testing.T) {
	dir := isolate(t)

	runFlags = pipelineFlags{profile: writeFile(t, dir, "profile.json", `{"personal_info": {}}`)}
	jobsFile = writeFile(t, dir, "jobs.csv", "Job_Description\nx\n")

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "education")
}

func TestOwnerFor(t *testing.T) {
	p := profiletest.Profile(t)

	cfg := config.Default()
	assert.Equal(t, "Jordan_Lee", ownerFor(cfg, p))

	cfg.Owner = "J. Lee"
	assert.Equal(t, "J._Lee", ownerFor(cfg, p))
}

func TestPipelineFlagsOverrideConfig(t *testing.T) {
	isolate(t)

	flags := pipelineFlags{
		profile:   "me.yaml",
		owner:     "Owner",
		outputDir: "out",
		provider:  "anthropic",
		model:     "claude-test",
		failFast:  true,
		noAudit:   true,
	}

	cfg, err := flags.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "me.yaml", cfg.Profile)
	assert.Equal(t, "Owner", cfg.Owner)
	assert.Equal(t, filepath.Join("out", "TeX_Files"), cfg.SourceDir())
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-test", cfg.Model)
	assert.True(t, cfg.FailFast)
	assert.False(t, cfg.Audit)

	t.Setenv(config.EnvModel, "gpt-5.2")

	flags = pipelineFlags{provider: "anthropic"}
	cfg, err = flags.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Empty(t, cfg.Model)

	flags = pipelineFlags{}
	cfg, err = flags.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gpt-5.2", cfg.Model)

		flags = pipelineFlags{provider: "mystery"}
	_, err = flags.loadConfig()
	assert.Error(t, err)
}

func TestRootRunsBatchWithDefaults(t *testing.T) {
	dir := isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(config.EnvOpenAIKey, "sk-test")
	runFlags = pipelineFlags{}
	jobsFile = ""

	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.DefaultProfile)
	assert.NoDirExists(t, filepath.Join(dir, config.DefaultBaseDir))
}
