package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrMissingKey is returned when a required top-level profile key is absent.
var ErrMissingKey = errors.New("profile is missing a required key")

// Load reads a profile document (JSON, or YAML by extension), checks the
// required keys and the schema, and returns the decoded profile.
func Load(path string) (p *Profile, err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return p, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		fileData, err = yamlToJSON(fileData)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse profile YAML: %s", path)
			return p, err
		}
	}

	p, err = Parse(fileData)
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile: %s", path)
		return p, err
	}

	return p, err
}

// Parse decodes and validates a JSON profile document.
func Parse(data []byte) (p *Profile, err error) {
	var raw map[string]json.RawMessage
	err = json.Unmarshal(data, &raw)
	if err != nil {
		err = errors.Wrap(err, "failed to parse profile JSON")
		return p, err
	}

	for _, key := range RequiredKeys {
		if _, ok := raw[key]; !ok {
			err = errors.Wrapf(ErrMissingKey, "missing %q", key)
			return p, err
		}
	}

	err = validateSchema(data)
	if err != nil {
		return p, err
	}

	p = &Profile{}
	err = json.Unmarshal(data, p)
	if err != nil {
		err = errors.Wrap(err, "failed to decode profile")
		p = nil
		return p, err
	}
	p.raw = raw

	return p, err
}

// Block returns the named top-level block as indented JSON, preserving the
// source document's fields and non-ASCII text.
func (p *Profile) Block(key string) (block string) {
	src, ok := p.raw[key]
	if !ok {
		src, _ = marshalNoEscape(p.fieldFor(key))
	}

	var buf bytes.Buffer
	err := json.Indent(&buf, src, "", "  ")
	if err != nil {
		block = string(src)
		return block
	}

	block = buf.String()
	return block
}

// fieldFor maps a top-level key to the decoded value, used when a profile was
// built in code rather than loaded.
func (p *Profile) fieldFor(key string) (v interface{}) {
	switch key {
	case "personal_info":
		v = p.PersonalInfo
	case "education":
		v = p.Education
	case "skills":
		v = p.Skills
	case "experience_data":
		v = p.Experience
	case "extras_pool":
		v = p.Extras
	case "course_pool":
		v = p.Courses
	case "additional_info":
		v = p.Additional
	}
	return v
}

// ContactLine renders "phone | email | linkedin".
func (p *Profile) ContactLine() (line string) {
	line = strings.Join([]string{p.PersonalInfo.Phone, p.PersonalInfo.Email, p.PersonalInfo.LinkedIn}, " | ")
	return line
}

// EducationAnnotations renders one fixed-value line per school, numbered from 1.
func (p *Profile) EducationAnnotations() (lines []string) {
	lines = make([]string, 0, len(p.Education))
	for i, edu := range p.Education {
		parts := []string{edu.School, edu.Location, edu.Degree}
		if edu.GPA != "" {
			parts = append(parts, "GPA: "+edu.GPA)
		}
		parts = append(parts, edu.Date)
		lines = append(lines, "School "+strconv.Itoa(i+1)+": "+strings.Join(parts, " | "))
	}
	return lines
}

func marshalNoEscape(v interface{}) (out []byte, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err = enc.Encode(v)
	if err != nil {
		return out, err
	}
	out = bytes.TrimRight(buf.Bytes(), "\n")
	return out, err
}

// yamlToJSON converts a YAML profile into the JSON form the schema expects.
func yamlToJSON(data []byte) (out []byte, err error) {
	var doc interface{}
	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return out, err
	}

	out, err = marshalNoEscape(normalizeYAML(doc))
	return out, err
}

// normalizeYAML turns yaml.v3 generic maps into JSON-encodable maps.
func normalizeYAML(v interface{}) (out interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = normalizeYAML(val)
		}
		out = m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[toString(k)] = normalizeYAML(val)
		}
		out = m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = normalizeYAML(val)
		}
		out = s
	default:
		out = v
	}
	return out
}

func toString(v interface{}) (s string) {
	if str, ok := v.(string); ok {
		s = str
		return s
	}
	b, _ := json.Marshal(v)
	s = string(b)
	return s
}
