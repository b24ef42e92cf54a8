// Package selection scores pooled projects and competitions against a job
// description by lexical overlap and applies the per-pool and combined caps.
package selection

import (
	"sort"
	"strings"
	"unicode"

	"github.com/nikogura/resume-batch/pkg/profile"
)

const (
	// MaxPerPool is the most entries taken from one pool.
	MaxPerPool = 2
	// MaxCombined is the most projects plus competitions on one résumé.
	MaxCombined = 3

	keywordWeight = 3
	titleWeight   = 2
	bulletWeight  = 1
)

// Pool names.
const (
	PoolProjects     = "projects"
	PoolCompetitions = "competitions"
)

//nolint:gochecknoglobals // fixed stop word list
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true,
	"by": true, "for": true, "from": true, "in": true, "is": true, "it": true, "of": true,
	"on": true, "or": true, "our": true, "the": true, "to": true, "we": true, "will": true,
	"with": true, "you": true, "your": true, "this": true, "that": true, "per": true,
}

// Ranked is a pool entry with its lexical score.
type Ranked struct {
	Pool  string
	Index int
	Entry profile.PoolEntry
	Score int
}

// Selection is the outcome of SelectExtras.
type Selection struct {
	Projects     []Ranked
	Competitions []Ranked
}

// Total is the combined number of selected entries.
func (s Selection) Total() (n int) {
	n = len(s.Projects) + len(s.Competitions)
	return n
}

// NeedsAdditionalInfo reports whether the Additional Information block belongs
// on the résumé. It is all-or-nothing.
func (s Selection) NeedsAdditionalInfo() (needed bool) {
	needed = s.Total() < MaxCombined
	return needed
}

// Tokenize lower-cases text and splits it into terms. '+' and '#' stay attached
// so "C++" and "C#" survive; stop words are dropped.
func Tokenize(text string) (tokens []string) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) (split bool) {
		split = !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
		return split
	})

	tokens = make([]string, 0, len(fields))
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}

// Score returns the lexical overlap between a job description and an entry.
// Keyword phrases count when they appear in order in the description; title
// and bullet terms count once each.
func Score(jobDescription string, entry profile.PoolEntry) (score int) {
	jdTokens := Tokenize(jobDescription)
	jdSet := make(map[string]bool, len(jdTokens))
	for _, tok := range jdTokens {
		jdSet[tok] = true
	}
	jdPhrase := " " + strings.Join(jdTokens, " ") + " "

	for _, kw := range entry.Keywords {
		kwTokens := Tokenize(kw)
		if len(kwTokens) == 0 {
			continue
		}
		if strings.Contains(jdPhrase, " "+strings.Join(kwTokens, " ")+" ") {
			score += keywordWeight
		}
	}

	score += titleWeight * overlap(jdSet, Tokenize(entry.Title))

	var bulletTokens []string
	for _, b := range entry.Bullets {
		bulletTokens = append(bulletTokens, Tokenize(b)...)
	}
	score += bulletWeight * overlap(jdSet, bulletTokens)

	return score
}

func overlap(set map[string]bool, tokens []string) (n int) {
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if set[tok] {
			n++
		}
	}
	return n
}

// Rank scores every entry of a pool, highest first, keeping input order on ties.
func Rank(jobDescription, pool string, entries []profile.PoolEntry) (ranked []Ranked) {
	ranked = make([]Ranked, 0, len(entries))
	for i, e := range entries {
		ranked = append(ranked, Ranked{
			Pool:  pool,
			Index: i,
			Entry: e,
			Score: Score(jobDescription, e),
		})
	}

	sort.SliceStable(ranked, func(i, j int) (less bool) {
		less = ranked[i].Score > ranked[j].Score
		return less
	})

	return ranked
}

// SelectExtras takes up to two relevant entries from each pool and trims the
// weaker second choice when both pools would exceed the combined cap. On a
// tie the competition is dropped.
func SelectExtras(jobDescription string, extras profile.ExtrasPool) (sel Selection) {
	sel.Projects = topRelevant(Rank(jobDescription, PoolProjects, extras.Projects))
	sel.Competitions = topRelevant(Rank(jobDescription, PoolCompetitions, extras.Competitions))

	for sel.Total() > MaxCombined {
		lastP := sel.Projects[len(sel.Projects)-1]
		lastC := sel.Competitions[len(sel.Competitions)-1]
		if lastC.Score > lastP.Score {
			sel.Projects = sel.Projects[:len(sel.Projects)-1]
			continue
		}
		sel.Competitions = sel.Competitions[:len(sel.Competitions)-1]
	}

	return sel
}

func topRelevant(ranked []Ranked) (top []Ranked) {
	top = make([]Ranked, 0, MaxPerPool)
	for _, r := range ranked {
		if len(top) == MaxPerPool || r.Score == 0 {
			break
		}
		top = append(top, r)
	}
	return top
}
