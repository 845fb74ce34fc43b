package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON unwraps a model answer that should be a JSON object. Code fences
// are removed; if the remainder is still not valid JSON the first balanced
// {...} block is tried. Otherwise the fence-stripped text is returned as is
// and the caller's decoder reports the problem.
func ExtractJSON(s string) string {
	s = stripCodeFences(s)
	if json.Valid([]byte(s)) {
		return s
	}
	if obj := findFirstJSON(s); obj != "" && json.Valid([]byte(obj)) {
		return obj
	}
	return s
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s, "`")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// findFirstJSON returns the first balanced {...} block, ignoring braces that
// appear inside JSON strings.
func findFirstJSON(s string) string {
	start, depth := -1, 0
	inString, escaped := false, false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
