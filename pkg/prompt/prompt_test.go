package prompt

import (
	"strings"
	"testing"

	"github.com/nikogura/resume-batch/pkg/profile/profiletest"
)

const testJD = "options pricing, C++, low latency"

func TestBuild(t *testing.T) {
	p := profiletest.Profile(t)

	instruction, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := []string{
		"JOB DESCRIPTION:\n" + testJD,
		`{\LARGE \textbf{Jordan Lee}} \\`,
		"(555) 010-2030 | jordan.lee@example.com | linkedin.com/in/jordanlee",
		"% School 1: Columbia University | New York, NY | M.S. Financial Engineering | GPA: 3.9/4.0 | Dec 2025",
		"% School 2: University of Toronto | Toronto, ON | B.Sc. Mathematics | May 2024",
		`\documentclass[10pt,letterpaper]{article}`,
		`\newcommand{\cventry}[4]{%`,
		`\cvsection{Projects}`,
		`\cvsection{Competitions}`,
		`% \cvsection{Additional Information}`,
		`\end{document}`,
		"Select the 2 highest-scoring entries",
		"must be at most 3",
		"keep exactly the 3 most relevant items",
		"Always include every item of SKILLS[\"certifications\"]",
		"at least 20 and at most 35 words",
		"must have 2–3 bullets",
		"no line may exceed 125 characters",
		"Never reproduce it in the output",
	}

	for _, want := range expected {
		if !strings.Contains(instruction, want) {
			t.Errorf("Instruction should contain %q", want)
		}
	}
}

func TestBuildEmbedsProfileBlocks(t *testing.T) {
	p := profiletest.Profile(t)

	instruction, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, label := range []string{"SKILLS:", "EXPERIENCE_DATA:", "EXTRAS_POOL:", "COURSE_POOL:", "ADDITIONAL_INFO:"} {
		if !strings.Contains(instruction, label+"\n") {
			t.Errorf("Instruction should contain data block %s", label)
		}
	}

	for _, want := range []string{`"KDB+/q"`, `"Anacapa Advisors"`, `"Kaggle Credit Risk"`, `"Derivatives Pricing"`, `"Jazz piano"`, `"CFA Level I"`} {
		if !strings.Contains(instruction, want) {
			t.Errorf("Instruction should embed profile value %s", want)
		}
	}
}

func TestBuildSelectionPrecedesWriting(t *testing.T) {
	p := profiletest.Profile(t)

	instruction, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	sel := strings.Index(instruction, "SELECTION (")
	writing := strings.Index(instruction, "WRITING (")
	tmpl := strings.Index(instruction, "LATEX TEMPLATE")

	if sel < 0 || writing < 0 || tmpl < 0 {
		t.Fatalf("Missing section markers: selection=%d writing=%d template=%d", sel, writing, tmpl)
	}

	if !(sel < writing && writing < tmpl) {
		t.Errorf("Expected selection < writing < template, got %d, %d, %d", sel, writing, tmpl)
	}
}

func TestBuildIncludesLexicalRanking(t *testing.T) {
	p := profiletest.Profile(t)

	instruction, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := []string{
		"projects | Options Pricing Engine | score 11",
		"projects | Low Latency Order Book | score 11",
		"projects | Sentiment Dashboard | score 0",
		"competitions | IMC Prosperity Trading Challenge | score 4",
		"competitions | Kaggle Credit Risk | score 0",
	}

	for _, want := range expected {
		if !strings.Contains(instruction, want) {
			t.Errorf("Instruction should contain ranking line %q", want)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := profiletest.Profile(t)

	first, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := Build(p, testJD)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if again != first {
			t.Fatal("Build returned different text for identical inputs")
		}
	}
}

func TestBuildEscapesHeader(t *testing.T) {
	p := profiletest.Profile(t)
	p.PersonalInfo.Name = "Jo & Co"
	p.PersonalInfo.Email = "jo_co@example.com"

	instruction, err := Build(p, testJD)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !strings.Contains(instruction, `\textbf{Jo \& Co}`) {
		t.Error("Expected escaped name in header")
	}

	if !strings.Contains(instruction, `jo\_co@example.com`) {
		t.Error("Expected escaped email in contact line")
	}
}

func TestBuildNilProfile(t *testing.T) {
	_, err := Build(nil, testJD)
	if err == nil {
		t.Error("Expected error for nil profile, got nil")
	}
}
