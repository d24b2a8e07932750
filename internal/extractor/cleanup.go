// internal/extractor/cleanup.go
package extractor

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe     = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// cleanPayload strips the decoration models wrap around JSON: code fences,
// markdown emphasis, heading markers, and prose before the first brace.
func cleanPayload(s string) string {
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "#") {
		s = strings.TrimPrefix(s, "#")
		s = strings.TrimSpace(s)
	}
	if i := strings.IndexByte(s, '{'); i > 0 {
		s = s[i:]
	}
	return s
}

// removeTrailingCommas fixes the most common model JSON defect: a comma
// before a closing brace or bracket.
func removeTrailingCommas(s string) string {
	prev := ""
	for prev != s {
		prev = s
		s = trailingCommaRe.ReplaceAllString(s, "$1")
	}
	return s
}

// lowerASCII folds only ASCII letters, leaving every byte offset aligned
// with the original string. strings.ToLower can change byte length on
// characters like U+0130, which would break marker index arithmetic.
func lowerASCII(s string) string {
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// balancedObject returns the first brace-balanced JSON object starting at or
// after `from`, honoring string literals and escapes.
func balancedObject(s string, from int) (string, int, bool) {
	start := strings.IndexByte(s[from:], '{')
	if start < 0 {
		return "", -1, false
	}
	start += from

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], i + 1, true
			}
		}
	}
	return "", -1, false
}
