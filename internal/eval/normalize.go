package eval

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencePattern = regexp.MustCompile("```json|```")
	pyTrue       = regexp.MustCompile(`\bTrue\b`)
	pyFalse      = regexp.MustCompile(`\bFalse\b`)
	pyNone       = regexp.MustCompile(`\bNone\b`)
)

// Normalize extracts a single structured record from free-form model output
// that may be wrapped in prose or code fences. It never fails to the caller:
// text that cannot be parsed becomes an explicit error record carrying the
// original response.
func Normalize(text string) Record {
	if strings.TrimSpace(text) == "" {
		return Record{"error": "received empty response from model"}
	}

	stripped := strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))

	// Substring extraction by first/last brace; not bracket-balanced, so an
	// unescaped '}' inside a string value before the true closing brace
	// mis-extracts.
	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start != -1 && end != -1 && start < end {
		var rec Record
		if err := json.Unmarshal([]byte(stripped[start:end+1]), &rec); err == nil {
			return rec
		}
	}

	if rec, ok := parseLooseLiteral(text); ok {
		return rec
	}

	return Record{
		"error":        "failed to parse model output as JSON",
		"raw_response": text,
	}
}

// parseLooseLiteral accepts Python-flavored object literals: single-quoted
// strings and the True/False/None keywords. The keyword rewrite is textual
// and can touch string contents; this path only runs after strict parsing
// has already failed.
func parseLooseLiteral(text string) (Record, bool) {
	t := strings.TrimSpace(text)
	var b strings.Builder
	b.Grow(len(t))
	inSingle, inDouble := false, false
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c == '\\' && i+1 < len(t):
			// JSON has no \' escape; unwrap it.
			if t[i+1] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte(c)
				b.WriteByte(t[i+1])
			}
			i++
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
		case c == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	normalized := pyTrue.ReplaceAllString(b.String(), "true")
	normalized = pyFalse.ReplaceAllString(normalized, "false")
	normalized = pyNone.ReplaceAllString(normalized, "null")

	var rec Record
	if err := json.Unmarshal([]byte(normalized), &rec); err != nil {
		return nil, false
	}
	return rec, true
}
