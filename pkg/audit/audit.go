// Package audit checks a generated document against the structural rules the
// instruction asks for. Findings are warnings; they never fail a row.
package audit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nikogura/resume-batch/pkg/latex"
	"github.com/nikogura/resume-batch/pkg/prompt"
	"github.com/nikogura/resume-batch/pkg/selection"
)

// Rule names.
const (
	RulePerPoolCap     = "per-pool-cap"
	RuleCombinedCap    = "combined-cap"
	RuleBulletCount    = "bullet-count"
	RuleAdditionalInfo = "additional-info"
	RuleLineLength     = "line-length"
	RuleKeywordLeak    = "keyword-leak"
)

var (
	sectionPattern = regexp.MustCompile(`\\(?:cvsection|section\*?)\{([^}]*)\}`)
	itemPattern    = regexp.MustCompile(`\\item(?:[^a-zA-Z]|$)`)
	titlePattern   = regexp.MustCompile(`^\\textbf\{(.*?)\}`)
	leakPattern    = regexp.MustCompile(`(?i)(?:\bkeywords\s*[:=}]|"keywords")`)
)

type sectionKind int

const (
	sectionOther sectionKind = iota
	sectionExperience
	sectionProjects
	sectionCompetitions
	sectionAdditional
)

// Violation is one broken rule. Line is 1-based, 0 when not tied to a line.
type Violation struct {
	Rule    string
	Line    int
	Message string
}

func (v Violation) String() (s string) {
	if v.Line > 0 {
		s = fmt.Sprintf("line %d: %s: %s", v.Line, v.Rule, v.Message)
		return s
	}
	s = fmt.Sprintf("%s: %s", v.Rule, v.Message)
	return s
}

// Entry is one titled block with its bullet count.
type Entry struct {
	Title   string
	Line    int
	Bullets int
}

// Report is the result of Check.
type Report struct {
	Experience    []Entry
	Projects      []Entry
	Competitions  []Entry
	HasAdditional bool
	Violations    []Violation
	// Notes are advisory differences from the lexical pre-selection.
	Notes []string
}

// OK reports whether no rule was violated.
func (r Report) OK() (ok bool) {
	ok = len(r.Violations) == 0
	return ok
}

// Extras is the combined number of project and competition entries.
func (r Report) Extras() (n int) {
	n = len(r.Projects) + len(r.Competitions)
	return n
}

// Check inspects doc. sel is the lexical pre-selection the instruction carried;
// disagreements with it are recorded as notes, not violations.
func Check(doc string, sel selection.Selection) (report Report) {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	inBody := false
	kind := sectionOther
	var current *Entry

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(latex.StripComment(raw), " \t")
		trimmed := strings.TrimSpace(line)

		if strings.Contains(trimmed, `\begin{document}`) {
			inBody = true
			continue
		}
		if !inBody || trimmed == "" {
			continue
		}

		if n := utf8.RuneCountInString(line); n > prompt.MaxLineChars {
			report.Violations = append(report.Violations, Violation{
				Rule:    RuleLineLength,
				Line:    lineNo,
				Message: fmt.Sprintf("%d characters (limit %d)", n, prompt.MaxLineChars),
			})
		}

		if leakPattern.MatchString(trimmed) {
			report.Violations = append(report.Violations, Violation{
				Rule:    RuleKeywordLeak,
				Line:    lineNo,
				Message: "selection keywords reproduced in the document",
			})
		}

		if m := sectionPattern.FindStringSubmatch(trimmed); m != nil {
			kind = classify(m[1])
			current = nil
			if kind == sectionAdditional {
				report.HasAdditional = true
			}
			continue
		}

		switch kind {
		case sectionExperience:
			if strings.HasPrefix(trimmed, `\cventry{`) {
				report.Experience = append(report.Experience, Entry{Title: firstArgument(trimmed), Line: lineNo})
				current = &report.Experience[len(report.Experience)-1]
			}
		case sectionProjects, sectionCompetitions:
			if m := titlePattern.FindStringSubmatch(trimmed); m != nil {
				entry := Entry{Title: m[1], Line: lineNo}
				if kind == sectionProjects {
					report.Projects = append(report.Projects, entry)
					current = &report.Projects[len(report.Projects)-1]
				} else {
					report.Competitions = append(report.Competitions, entry)
					current = &report.Competitions[len(report.Competitions)-1]
				}
			}
		default:
			continue
		}

		if current != nil {
			current.Bullets += len(itemPattern.FindAllStringIndex(trimmed, -1))
		}
	}

	report.checkCaps()
	report.checkBullets()
	report.checkAdditional()
	report.compare(sel)

	return report
}

func classify(name string) (kind sectionKind) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "experience"):
		kind = sectionExperience
	case strings.Contains(lower, "project"):
		kind = sectionProjects
	case strings.Contains(lower, "competition"):
		kind = sectionCompetitions
	case strings.Contains(lower, "additional"):
		kind = sectionAdditional
	default:
		kind = sectionOther
	}
	return kind
}

// firstArgument returns the text of the first {...} group on the line.
func firstArgument(line string) (arg string) {
	start := strings.Index(line, "{")
	if start < 0 {
		return arg
	}
	end := strings.Index(line[start:], "}")
	if end < 0 {
		return arg
	}
	arg = line[start+1 : start+end]
	return arg
}

func (r *Report) checkCaps() {
	if len(r.Projects) > selection.MaxPerPool {
		r.Violations = append(r.Violations, Violation{
			Rule:    RulePerPoolCap,
			Message: fmt.Sprintf("%d projects (limit %d)", len(r.Projects), selection.MaxPerPool),
		})
	}
	if len(r.Competitions) > selection.MaxPerPool {
		r.Violations = append(r.Violations, Violation{
			Rule:    RulePerPoolCap,
			Message: fmt.Sprintf("%d competitions (limit %d)", len(r.Competitions), selection.MaxPerPool),
		})
	}
	if r.Extras() > selection.MaxCombined {
		r.Violations = append(r.Violations, Violation{
			Rule:    RuleCombinedCap,
			Message: fmt.Sprintf("%d projects and competitions (limit %d)", r.Extras(), selection.MaxCombined),
		})
	}
}

func (r *Report) checkBullets() {
	groups := [][]Entry{r.Experience, r.Projects, r.Competitions}
	for _, group := range groups {
		for _, e := range group {
			if e.Bullets < prompt.MinBullets || e.Bullets > prompt.MaxBullets {
				r.Violations = append(r.Violations, Violation{
					Rule: RuleBulletCount,
					Line: e.Line,
					Message: fmt.Sprintf("%q has %d bullets (want %d-%d)",
						e.Title, e.Bullets, prompt.MinBullets, prompt.MaxBullets),
				})
			}
		}
	}
}

func (r *Report) checkAdditional() {
	want := r.Extras() < selection.MaxCombined
	switch {
	case want && !r.HasAdditional:
		r.Violations = append(r.Violations, Violation{
			Rule:    RuleAdditionalInfo,
			Message: fmt.Sprintf("missing with only %d projects and competitions", r.Extras()),
		})
	case !want && r.HasAdditional:
		r.Violations = append(r.Violations, Violation{
			Rule:    RuleAdditionalInfo,
			Message: fmt.Sprintf("present with %d projects and competitions", r.Extras()),
		})
	}
}

// compare notes entries the document chose that the lexical ranking did not.
func (r *Report) compare(sel selection.Selection) {
	r.Notes = append(r.Notes, unmatched(r.Projects, sel.Projects, "project")...)
	r.Notes = append(r.Notes, unmatched(r.Competitions, sel.Competitions, "competition")...)
}

func unmatched(entries []Entry, picked []selection.Ranked, label string) (notes []string) {
	for _, e := range entries {
		title := normalizeTitle(e.Title)
		found := false
		for _, p := range picked {
			if normalizeTitle(latex.Escape(p.Entry.Title)) == title {
				found = true
				break
			}
		}
		if !found {
			notes = append(notes, fmt.Sprintf("%s %q was not a lexical top pick", label, e.Title))
		}
	}
	return notes
}

func normalizeTitle(s string) (n string) {
	n = strings.ToLower(strings.TrimSpace(s))
	return n
}
