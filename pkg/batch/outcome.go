package batch

import (
	"strings"

	"github.com/nikogura/resume-batch/pkg/jobs"
	"github.com/nikogura/resume-batch/pkg/naming"
)

// Status is how far a row got through the pipeline.
type Status int

const (
	StatusPending Status = iota
	StatusSkipped
	StatusGenerated
	StatusGenerationFailed
	StatusWritten
	StatusWriteFailed
	StatusCompiled
	StatusCompileFailed
)

func (s Status) String() (name string) {
	switch s {
	case StatusPending:
		name = "pending"
	case StatusSkipped:
		name = "skipped"
	case StatusGenerated:
		name = "generated"
	case StatusGenerationFailed:
		name = "generation-failed"
	case StatusWritten:
		name = "written"
	case StatusWriteFailed:
		name = "write-failed"
	case StatusCompiled:
		name = "compiled"
	case StatusCompileFailed:
		name = "compile-failed"
	default:
		name = "unknown"
	}
	return name
}

// Outcome carries one row through the pipeline stages. Each stage returns a
// new Outcome; nothing is shared between rows.
type Outcome struct {
	Row          jobs.Row
	Company      string
	Role         string
	BaseName     string
	Document     string
	SourcePath   string
	ArtifactPath string
	Status       Status
	Err          error
}

// newOutcome applies the field defaults and derives the base name. Rows with a
// blank description come back already skipped.
func newOutcome(row jobs.Row, owner string) (outcome Outcome) {
	outcome = Outcome{
		Row:     row,
		Company: strings.TrimSpace(row.Company),
		Role:    strings.TrimSpace(row.Role),
	}

	if blank(row.JobDescription) {
		outcome.Status = StatusSkipped
		return outcome
	}

	if outcome.Company == "" {
		outcome.Company = naming.DefaultCompany
	}
	if outcome.Role == "" {
		outcome.Role = naming.DefaultRole
	}
	outcome.BaseName = naming.BaseName(outcome.Company, outcome.Role, owner)

	return outcome
}

// Summary counts row outcomes for one run. Skipped rows are not processed rows.
type Summary struct {
	Processed        int
	Compiled         int
	CompileFailed    int
	GenerationFailed int
	WriteFailed      int
	Skipped          int
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusSkipped:
		s.Skipped++
		return
	case StatusCompiled:
		s.Compiled++
	case StatusCompileFailed:
		s.CompileFailed++
	case StatusGenerationFailed:
		s.GenerationFailed++
	case StatusWriteFailed:
		s.WriteFailed++
	}
	s.Processed++
}
