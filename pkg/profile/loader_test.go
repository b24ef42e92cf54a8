package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const testProfile = `{
  "personal_info": {"name": "Test User", "phone": "555", "email": "t@example.com", "linkedin": "in/test"},
  "education": [
    {"school": "Test University", "location": "Test City", "degree": "B.S.", "gpa": "3.8", "date": "2024"},
    {"school": "Second School", "location": "Elsewhere", "degree": "M.S.", "date": "2026"}
  ],
  "skills": {"technical": ["Go"], "other": ["Chess"], "certifications": ["CKA"]},
  "experience_data": [{"employer": "Test Corp", "role": "Engineer", "location": "Remote", "dates": "2020", "bullets": ["Did things with 50% gain"], "supervisor": "Ada"}],
  "extras_pool": {
    "projects": [{"title": "Proj", "keywords": ["go"], "bullets": ["Built it"]}],
    "competitions": []
  },
  "course_pool": {"Test University": ["Algorithms"]},
  "additional_info": {"languages": ["English"], "interests": ["Go"], "hobbies": ["Running"]}
}`

func writeProfile(t *testing.T, name, content string) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeProfile(t, "profile.json", testProfile)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load profile: %v", err)
	}

	if p.PersonalInfo.Name != "Test User" {
		t.Errorf("Expected name 'Test User', got '%s'", p.PersonalInfo.Name)
	}

	if len(p.Education) != 2 {
		t.Errorf("Expected 2 education entries, got %d", len(p.Education))
	}

	if len(p.Extras.Projects) != 1 || p.Extras.Projects[0].Title != "Proj" {
		t.Errorf("Unexpected projects: %+v", p.Extras.Projects)
	}

	if got := p.Courses["Test University"]; len(got) != 1 || got[0] != "Algorithms" {
		t.Errorf("Unexpected course pool: %+v", p.Courses)
	}
}

func TestLoadYAML(t *testing.T) {
	// JSON is valid YAML, so the fixture doubles as a YAML document.
	path := writeProfile(t, "profile.yaml", testProfile)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load YAML profile: %v", err)
	}

	if p.Skills.Certifications[0] != "CKA" {
		t.Errorf("Expected certification 'CKA', got %v", p.Skills.Certifications)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/profile.json")
	if err == nil {
		t.Error("Expected error loading nonexistent file, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeProfile(t, "invalid.json", "not valid json")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error loading invalid JSON, got nil")
	}
}

func TestParseMissingKey(t *testing.T) {
	for _, key := range RequiredKeys {
		t.Run(key, func(t *testing.T) {
			var doc map[string]json.RawMessage
			err := json.Unmarshal([]byte(testProfile), &doc)
			if err != nil {
				t.Fatalf("Failed to decode fixture: %v", err)
			}
			delete(doc, key)

			data, err := json.Marshal(doc)
			if err != nil {
				t.Fatalf("Failed to encode fixture: %v", err)
			}

			_, err = Parse(data)
			if !errors.Is(err, ErrMissingKey) {
				t.Fatalf("Expected ErrMissingKey, got %v", err)
			}

			if !strings.Contains(err.Error(), key) {
				t.Errorf("Expected error to name %q, got %v", key, err)
			}
		})
	}
}

func TestParseSchemaViolation(t *testing.T) {
	bad := strings.Replace(testProfile, `"technical": ["Go"]`, `"technical": "Go"`, 1)

	_, err := Parse([]byte(bad))
	if err == nil {
		t.Fatal("Expected schema error, got nil")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
	}

	if !strings.Contains(schemaErr.Error(), "technical") {
		t.Errorf("Expected schema error to mention 'technical', got %v", schemaErr)
	}
}

func TestBlockPreservesUnmodelledFields(t *testing.T) {
	p, err := Parse([]byte(testProfile))
	if err != nil {
		t.Fatalf("Failed to parse profile: %v", err)
	}

	block := p.Block("experience_data")

	if !strings.Contains(block, `"supervisor": "Ada"`) {
		t.Errorf("Expected raw block to keep unmodelled field, got:\n%s", block)
	}

	if !strings.Contains(block, "\n  {") {
		t.Errorf("Expected two-space indentation, got:\n%s", block)
	}
}

func TestBlockForProfileBuiltInCode(t *testing.T) {
	p := &Profile{Skills: Skills{Technical: []string{"C++ & Rust"}}}

	block := p.Block("skills")

	if !strings.Contains(block, `"C++ & Rust"`) {
		t.Errorf("Expected unescaped ampersand, got:\n%s", block)
	}
}

func TestContactLine(t *testing.T) {
	p, err := Parse([]byte(testProfile))
	if err != nil {
		t.Fatalf("Failed to parse profile: %v", err)
	}

	want := "555 | t@example.com | in/test"
	if got := p.ContactLine(); got != want {
		t.Errorf("Expected contact line '%s', got '%s'", want, got)
	}
}

func TestEducationAnnotations(t *testing.T) {
	p, err := Parse([]byte(testProfile))
	if err != nil {
		t.Fatalf("Failed to parse profile: %v", err)
	}

	lines := p.EducationAnnotations()
	want := []string{
		"School 1: Test University | Test City | B.S. | GPA: 3.8 | 2024",
		"School 2: Second School | Elsewhere | M.S. | 2026",
	}

	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(lines))
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected '%s', got '%s'", i, want[i], lines[i])
		}
	}
}
