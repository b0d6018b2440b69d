package validation

import (
	"strings"
	"time"
)

// statementDateLayouts are the formats accepted for statement dates, most
// specific first. Everything is normalized to ISO yyyy-mm-dd.
var statementDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// NormalizeISODate parses a date string in one of the accepted layouts and
// returns it in ISO yyyy-mm-dd form. The second return value reports whether
// the input was parseable.
func NormalizeISODate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
