// Package latex holds LaTeX text helpers shared by the prompt builder and the
// document audit.
package latex

import "strings"

// Escape escapes LaTeX special characters in plain text:
// \ { } $ & % # ^ _ ~
func Escape(text string) (escaped string) {
	if text == "" {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		default:
			b.WriteRune(r)
		}
	}

	escaped = b.String()
	return escaped
}

// StripComment removes a trailing % comment from a line, honouring \%.
func StripComment(line string) (content string) {
	content = line
	for i := 0; i < len(line); i++ {
		if line[i] != '%' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			content = line[:i]
			return content
		}
	}
	return content
}
