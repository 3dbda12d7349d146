package ai

import "encoding/json"

// Model output is untrusted free text: the JSON we asked for may arrive
// wrapped in prose, markdown code fences, or alongside partial fragments.
// These helpers return the first syntactically valid JSON array/object
// substring, or "" when none exists.

// ExtractJSONArray returns the first balanced, valid JSON array in s.
func ExtractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// ExtractJSONObject returns the first balanced, valid JSON object in s.
func ExtractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

func extractBalanced(s string, open, close byte) string {
	for start := 0; start < len(s); start++ {
		if s[start] != open {
			continue
		}

		if span := balancedSpan(s[start:], open, close); span != "" {
			if json.Valid([]byte(span)) {
				return span
			}
		}
	}
	return ""
}

// balancedSpan scans from the opening delimiter at s[0] to its matching
// closing delimiter, skipping over string literals and escapes, and returns
// the span or "" when the text ends before the delimiter closes.
func balancedSpan(s string, open, close byte) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
