// Package matching infers training type, submission date, and operator
// identity from free-form uploaded filenames. Filenames come from many hands
// in many formats; everything here favors rejecting a file over guessing
// wrong, since a bad match silently lands on another operator's record.
package matching

import (
	"regexp"
	"strings"
	"time"
)

var eightDigitRe = regexp.MustCompile(`\d{8}`)

// TrainingType resolves a filename to a canonical training type. The filename
// is normalized to lowercase with spaces and hyphens collapsed to
// underscores, then alias keys are tested longest-first and accepted only as
// complete underscore-delimited tokens.
func (a *Aliases) TrainingType(filename string) (string, bool) {
	normalized := strings.ToLower(filename)
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	for _, key := range a.sortedTypeKeys {
		if strings.Contains(normalized, "_"+key+"_") ||
			strings.HasPrefix(normalized, key+"_") ||
			strings.HasSuffix(normalized, "_"+key) {
			return a.TrainingTypes[key], true
		}
	}
	return "", false
}

// DateFromFilename extracts the first 8-digit run and parses it strictly as
// YYYYMMDD. Runs that do not form a valid calendar date do not fall back to
// another format; the file is rejected instead.
func DateFromFilename(filename string) (time.Time, bool) {
	raw := eightDigitRe.FindString(filename)
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("20060102", raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
