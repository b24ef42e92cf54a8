package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SourceExtension is the extension of written document sources.
const SourceExtension = ".tex"

// WriteSource writes the document text verbatim, creating the parent directory.
func WriteSource(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write source file: %s", outputPath)
		return err
	}

	return err
}
