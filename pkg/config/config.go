// Package config loads resume-batch settings from an optional JSON file with
// environment overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Environment variables.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvModel        = "OPENAI_RESUME_MODEL"
	EnvProvider     = "RESUME_PROVIDER"
)

// Defaults.
const (
	DefaultProvider    = "openai"
	DefaultProfile     = "profile.json"
	DefaultJobs        = "jobs.csv"
	DefaultBaseDir     = "Tailored_Resumes"
	DefaultSourceDir   = "TeX_Files"
	DefaultArtifactDir = "PDF_Files"
	DefaultCompiler    = "pdflatex"
	DefaultPace        = Duration(time.Second)
	DefaultCompileTime = Duration(2 * time.Minute)
	DefaultGenTime     = Duration(3 * time.Minute)
)

// Duration is a time.Duration written as a string ("1s", "2m") in JSON.
type Duration time.Duration

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() (data []byte, err error) {
	data, err = json.Marshal(time.Duration(d).String())
	return data, err
}

// UnmarshalJSON accepts "1s"-style strings or integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) (err error) {
	var s string
	if json.Unmarshal(data, &s) == nil {
		var parsed time.Duration
		parsed, err = time.ParseDuration(s)
		if err != nil {
			err = errors.Wrapf(err, "invalid duration %q", s)
			return err
		}
		*d = Duration(parsed)
		return err
	}

	var n int64
	err = json.Unmarshal(data, &n)
	if err != nil {
		err = errors.Errorf("invalid duration %s", string(data))
		return err
	}
	*d = Duration(n)
	return err
}

// Std returns the value as a time.Duration.
func (d Duration) Std() (td time.Duration) {
	td = time.Duration(d)
	return td
}

// Config represents the application configuration.
type Config struct {
	// Owner is the file-name suffix. Empty means derive it from the profile name.
	Owner           string         `json:"owner,omitempty"`
	Profile         string         `json:"profile" validate:"required"`
	Jobs            string         `json:"jobs" validate:"required"`
	Provider        string         `json:"provider" validate:"required,oneof=openai anthropic gemini"`
	Model           string         `json:"model,omitempty"`
	BaseURL         string         `json:"base_url,omitempty" validate:"omitempty,url"`
	OpenAIAPIKey    string         `json:"openai_api_key,omitempty"`
	AnthropicAPIKey string         `json:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string         `json:"gemini_api_key,omitempty"`
	Output          OutputConfig   `json:"output"`
	Compiler        CompilerConfig `json:"compiler"`
	Pace            Duration       `json:"pace" validate:"gte=0"`
	Timeout         Duration       `json:"generation_timeout" validate:"gte=0"`
	FailFast        bool           `json:"fail_fast"`
	Audit           bool           `json:"audit"`

	envModel string
}

// OutputConfig holds the output directory layout.
type OutputConfig struct {
	BaseDir     string `json:"base_dir" validate:"required"`
	SourceDir   string `json:"source_dir" validate:"required"`
	ArtifactDir string `json:"artifact_dir" validate:"required"`
}

// CompilerConfig holds the document compiler settings.
type CompilerConfig struct {
	Binary  string   `json:"binary" validate:"required"`
	Timeout Duration `json:"timeout" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() (cfg Config) {
	cfg = Config{
		Profile:  DefaultProfile,
		Jobs:     DefaultJobs,
		Provider: DefaultProvider,
		Output: OutputConfig{
			BaseDir:     DefaultBaseDir,
			SourceDir:   DefaultSourceDir,
			ArtifactDir: DefaultArtifactDir,
		},
		Compiler: CompilerConfig{
			Binary:  DefaultCompiler,
			Timeout: DefaultCompileTime,
		},
		Pace:    DefaultPace,
		Timeout: DefaultGenTime,
		Audit:   true,
	}
	return cfg
}

// DefaultPath returns ~/.resume-batch/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-batch", "config.json")
	return path, err
}

// Load reads configuration with environment variable overrides. With an empty
// configPath the default location is tried and its absence is not an error;
// an explicit path must exist.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-batch init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyEnv()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// applyEnv overrides file values with environment variables that are set.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv(EnvAnthropicKey); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv(EnvGeminiKey); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = strings.ToLower(v)
	}
	c.envModel = os.Getenv(EnvModel)
	if c.envModel != "" && c.Provider == DefaultProvider {
		c.Model = c.envModel
	}
}

// UseProvider switches the provider. A model chosen for the previous provider
// is dropped; OPENAI_RESUME_MODEL applies again when switching to openai.
func (c *Config) UseProvider(provider string) {
	provider = strings.ToLower(provider)
	if provider == c.Provider {
		return
	}

	c.Provider = provider
	c.Model = ""
	if provider == DefaultProvider {
		c.Model = c.envModel
	}
}

// Validate checks field constraints.
func (c *Config) Validate() (err error) {
	err = validator.New().Struct(c)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
			}
			err = errors.Errorf("invalid fields: %s", strings.Join(fields, ", "))
			return err
		}
		return err
	}

	return err
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() (key string) {
	switch c.Provider {
	case "anthropic":
		key = c.AnthropicAPIKey
	case "gemini":
		key = c.GeminiAPIKey
	default:
		key = c.OpenAIAPIKey
	}
	return key
}

// RequireAPIKey fails when the configured provider has no key.
func (c *Config) RequireAPIKey() (err error) {
	if c.APIKey() != "" {
		return err
	}

	env := EnvOpenAIKey
	switch c.Provider {
	case "anthropic":
		env = EnvAnthropicKey
	case "gemini":
		env = EnvGeminiKey
	}
	err = errors.Errorf("no API key for provider %s (set %s or add it to the config file)", c.Provider, env)
	return err
}

// SourceDir is the directory for generated .tex files.
func (c *Config) SourceDir() (dir string) {
	dir = filepath.Join(c.Output.BaseDir, c.Output.SourceDir)
	return dir
}

// ArtifactDir is the directory for compiled PDFs.
func (c *Config) ArtifactDir() (dir string) {
	dir = filepath.Join(c.Output.BaseDir, c.Output.ArtifactDir)
	return dir
}

// InitConfig writes the default configuration file. It refuses to overwrite.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	var data []byte
	data, err = json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
