// Package repair recovers a parseable JSON object from collaborator output
// that arrives wrapped in prose or code fences, or truncated mid-object.
// Recovery is an explicitly ordered chain of strategies, each attempted
// exactly once; the first candidate that parses wins.
package repair

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Prose prefixes longer than this are not stripped; the output is treated as
// narrative rather than JSON with a preamble.
const maxProsePrefix = 200

var trailingCommaPattern = regexp.MustCompile(`,(\s*[\]}])`)

// Recover runs the strategy chain over raw collaborator text and returns
// recovered JSON. On failure it returns an UnrecoverableError carrying the
// original decode detail and a fragment of the text for diagnostics.
func Recover(raw string) (string, error) {
	normalized := StripWrappers(raw)

	firstErr := parseCheck(normalized)
	if firstErr == nil {
		return normalized, nil
	}

	sliced := BraceSlice(normalized)
	if sliced != "" && parseCheck(sliced) == nil {
		return sliced, nil
	}

	// Truncated output may have no closing brace at all; repair the
	// normalized text in that case.
	damaged := sliced
	if damaged == "" {
		damaged = normalized
	}
	if repaired := StructuralRepair(damaged); repaired != "" && parseCheck(repaired) == nil {
		return repaired, nil
	}

	return "", &UnrecoverableError{Fragment: fragment(raw), Cause: firstErr}
}

// StripWrappers removes a short explanatory prose prefix and markdown code
// fences around the payload.
func StripWrappers(raw string) string {
	s := strings.TrimSpace(raw)

	if !strings.HasPrefix(s, "{") {
		if start := strings.Index(s, "{"); start > 0 {
			prefix := strings.TrimSpace(s[:start])
			if len(prefix) > 0 && len(prefix) < maxProsePrefix {
				s = s[start:]
			}
		}
	}

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// BraceSlice cuts the text from the first opening brace to the last closing
// brace. It returns "" when no braced region exists.
func BraceSlice(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// StructuralRepair fixes common truncation damage: unterminated string
// literals at line ends, trailing commas before closers, and unbalanced
// braces. When a complete top-level object exists it truncates to it;
// otherwise it appends the missing closers.
func StructuralRepair(s string) string {
	if s == "" {
		return ""
	}
	s = closeUnterminatedStrings(s)
	s = trailingCommaPattern.ReplaceAllString(s, "$1")

	if idx := lastCompleteObjectEnd(s); idx >= 0 {
		return s[:idx+1]
	}
	return appendClosers(s)
}

func parseCheck(s string) error {
	var probe any
	return json.Unmarshal([]byte(s), &probe)
}

// lastCompleteObjectEnd returns the index of the closing brace of the last
// complete top-level object, or -1 when braces never balance. The scan is
// string-aware so braces inside literals do not count.
func lastCompleteObjectEnd(s string) int {
	depth := 0
	last := -1
	inString := false
	escaped := false
	for i, c := range s {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					last = i
				}
			}
		}
	}
	return last
}

// appendClosers closes a string still open at end of text and appends the
// closing bracket for every unclosed scope, innermost first.
func appendClosers(s string) string {
	var stack []rune
	inString := false
	escaped := false
	for _, c := range s {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, c)
			}
		case '}':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// closeUnterminatedStrings appends a closing quote to any line carrying an
// odd number of unescaped quotes.
func closeUnterminatedStrings(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if countUnescapedQuotes(line)%2 == 1 {
			lines[i] = line + `"`
		}
	}
	return strings.Join(lines, "\n")
}

func countUnescapedQuotes(line string) int {
	count := 0
	escaped := false
	for _, c := range line {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			count++
		}
	}
	return count
}

func fragment(raw string) string {
	const limit = 500
	if len(raw) > limit {
		return raw[:limit]
	}
	return raw
}
