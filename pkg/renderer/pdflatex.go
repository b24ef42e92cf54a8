// Package renderer writes document sources and compiles them with a LaTeX engine.
package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultBinary is the compiler invoked when none is configured.
	DefaultBinary = "pdflatex"
	// DefaultTimeout bounds one compilation.
	DefaultTimeout = 2 * time.Minute
	// ArtifactExtension is the extension of the compiled artifact.
	ArtifactExtension = ".pdf"
)

// DefaultAuxExtensions are the byproducts removed after a successful compile.
func DefaultAuxExtensions() (exts []string) {
	exts = []string{".aux", ".log", ".out"}
	return exts
}

// Runner executes the compiler binary with args. Console output is discarded.
type Runner func(ctx context.Context, binary string, args ...string) (err error)

// Result is the outcome of one compilation.
type Result struct {
	OK           bool
	ArtifactPath string
	Err          error
}

// Compiler runs a LaTeX engine in nonstop mode against one source file.
type Compiler struct {
	Binary        string
	OutputDir     string
	AuxExtensions []string
	Timeout       time.Duration
	run           Runner
}

// NewCompiler creates a compiler writing artifacts into outputDir.
func NewCompiler(binary, outputDir string, timeout time.Duration) (compiler *Compiler) {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	compiler = &Compiler{
		Binary:        binary,
		OutputDir:     outputDir,
		AuxExtensions: DefaultAuxExtensions(),
		Timeout:       timeout,
		run:           execRunner,
	}
	return compiler
}

// WithRunner replaces the process runner.
func (c *Compiler) WithRunner(run Runner) (compiler *Compiler) {
	c.run = run
	compiler = c
	return compiler
}

// Compile compiles sourcePath into the output directory. It never returns an
// error: failure is reported through Result. On success the auxiliary files
// for the source's base name are removed from the output directory. On
// failure nothing is removed. The source file is never touched.
func (c *Compiler) Compile(ctx context.Context, sourcePath string) (result Result) {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	result.ArtifactPath = filepath.Join(c.OutputDir, base+ArtifactExtension)

	runCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	err := c.run(runCtx, c.Binary,
		"-interaction=nonstopmode",
		"-output-directory="+c.OutputDir,
		sourcePath,
	)
	if err != nil {
		result.Err = errors.Wrapf(err, "%s failed for %s", c.Binary, sourcePath)
		return result
	}

	result.OK = true
	c.cleanup(base)

	return result
}

// cleanup removes <base><ext> for every auxiliary extension. Missing files are ignored.
func (c *Compiler) cleanup(base string) {
	for _, ext := range c.AuxExtensions {
		_ = os.Remove(filepath.Join(c.OutputDir, base+ext))
	}
}

// CheckCompiler verifies the compiler binary is on PATH.
func (c *Compiler) CheckCompiler() (err error) {
	_, err = exec.LookPath(c.Binary)
	if err != nil {
		err = errors.Errorf("%s not found in PATH (install a TeX distribution to compile PDFs)", c.Binary)
		return err
	}
	return err
}

// execRunner runs the binary with no stdin and with stdout and stderr discarded.
func execRunner(ctx context.Context, binary string, args ...string) (err error) {
	err = exec.CommandContext(ctx, binary, args...).Run()
	return err
}
