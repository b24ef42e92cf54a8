// Package prompt builds the selection-and-writing instruction sent to the
// generation service for one job description.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-batch/pkg/latex"
	"github.com/nikogura/resume-batch/pkg/profile"
	"github.com/nikogura/resume-batch/pkg/selection"
)

// Writing limits encoded in every instruction.
const (
	MinBullets       = 2
	MaxBullets       = 3
	MinBulletWords   = 20
	MaxBulletWords   = 35
	MaxLineChars     = 125
	OtherSkillsCount = 3
)

//go:embed templates/instruction.tmpl
var instructionSource string

//nolint:gochecknoglobals // parsed once, read-only
var instructionTemplate = template.Must(
	template.New("instruction").Delims("[[", "]]").Parse(instructionSource),
)

// instructionData feeds the instruction template.
type instructionData struct {
	JobDescription string
	Name           string
	Contact        string
	Education      []string
	Ranking        []selection.Ranked

	Skills     string
	Experience string
	Extras     string
	Courses    string
	Additional string

	MaxPerPool   int
	MaxCombined  int
	OtherSkills  int
	MinBullets   int
	MaxBullets   int
	MinWords     int
	MaxWords     int
	MaxLineChars int
}

// Build returns the full instruction for one job description. It does no I/O
// and returns identical text for identical inputs. Callers must not pass an
// empty job description.
func Build(p *profile.Profile, jobDescription string) (instruction string, err error) {
	if p == nil {
		err = errors.New("profile is required")
		return instruction, err
	}

	ranking := append(
		selection.Rank(jobDescription, selection.PoolProjects, p.Extras.Projects),
		selection.Rank(jobDescription, selection.PoolCompetitions, p.Extras.Competitions)...,
	)

	data := instructionData{
		JobDescription: jobDescription,
		Name:           latex.Escape(p.PersonalInfo.Name),
		Contact:        latex.Escape(p.ContactLine()),
		Education:      p.EducationAnnotations(),
		Ranking:        ranking,

		Skills:     p.Block("skills"),
		Experience: p.Block("experience_data"),
		Extras:     p.Block("extras_pool"),
		Courses:    p.Block("course_pool"),
		Additional: p.Block("additional_info"),

		MaxPerPool:   selection.MaxPerPool,
		MaxCombined:  selection.MaxCombined,
		OtherSkills:  OtherSkillsCount,
		MinBullets:   MinBullets,
		MaxBullets:   MaxBullets,
		MinWords:     MinBulletWords,
		MaxWords:     MaxBulletWords,
		MaxLineChars: MaxLineChars,
	}

	var sb strings.Builder
	err = instructionTemplate.Execute(&sb, data)
	if err != nil {
		err = errors.Wrap(err, "failed to render instruction template")
		return instruction, err
	}

	instruction = strings.TrimSpace(sb.String())
	return instruction, err
}
