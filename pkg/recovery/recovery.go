// Package recovery extracts well-formed JSON from noisy free-text model
// output. Models asked to "return JSON only" still wrap their answer in
// prose or markdown fences often enough that every response goes through the
// same sequence of fallbacks.
package recovery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// excerptLimit bounds the amount of offending text carried on an Error.
const excerptLimit = 500

// Error reports that no recovery strategy produced structured data. It
// carries a truncated excerpt of the offending text for diagnostics.
type Error struct {
	Excerpt string
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not recover JSON from response: %s", e.Excerpt)
}

var fencedBlock = regexp.MustCompile("```(?:[a-zA-Z]+)?\\s*([\\s\\S]*?)```")

// Extract recovers a JSON object from text. Strategies are tried in order
// and the first success wins:
//  1. the whole text as JSON,
//  2. the interior of a fenced code block (optionally language-tagged),
//  3. the span from the first '{' to the last '}'.
//
// A confidently fenced block must beat an accidental brace match in the
// surrounding prose, which is why (2) precedes (3).
func Extract(text string) (map[string]any, error) {
	var result map[string]any
	if err := ExtractInto(text, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractInto is Extract with a caller-supplied destination, so callers with
// a known shape can decode straight into typed structs.
func ExtractInto(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	if match := fencedBlock.FindStringSubmatch(text); match != nil {
		if err := json.Unmarshal([]byte(match[1]), v); err == nil {
			return nil
		}
	}

	if span, ok := braceSpan(text); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	return &Error{Excerpt: excerpt(text)}
}

// braceSpan returns the substring from the first '{' to the last '}'.
func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= excerptLimit {
		return text
	}
	// Back off to a rune boundary so the excerpt stays valid UTF-8.
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
