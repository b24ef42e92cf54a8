// Package naming derives output file names from posting fields.
package naming

import (
	"regexp"
	"strings"
)

const (
	// DefaultCompany replaces an empty company field.
	DefaultCompany = "Unknown"
	// DefaultRole replaces an empty role field.
	DefaultRole = "Resume"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SanitizeFilename trims s, replaces whitespace runs with one underscore and
// every remaining character outside [A-Za-z0-9._-] with an underscore.
func SanitizeFilename(s string) (name string) {
	name = strings.TrimSpace(s)
	name = whitespace.ReplaceAllString(name, "_")
	name = disallowed.ReplaceAllString(name, "_")
	return name
}

// BaseName returns the "{company}_{role}_{owner}" stem shared by the source
// file and the compiled artifact. Each part is sanitized on its own. Empty
// fields fall back to the defaults.
func BaseName(company, role, owner string) (base string) {
	if strings.TrimSpace(company) == "" {
		company = DefaultCompany
	}
	if strings.TrimSpace(role) == "" {
		role = DefaultRole
	}

	base = SanitizeFilename(company) + "_" + SanitizeFilename(role) + "_" + SanitizeFilename(owner)
	return base
}
