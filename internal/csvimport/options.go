package csvimport

import (
	"fmt"
	"strings"
)

// ParseOptions parses a multiple-choice options cell in the form
// "a.Option one,b.Option two,c.Option three" into the option texts, prefixes
// stripped. Options must start with "a.", letters must be strictly
// sequential, and every option needs content after its prefix; any violation
// fails with the offending option named, never a silent drop or reorder.
func ParseOptions(optionsStr string) ([]string, error) {
	optionsStr = strings.TrimSpace(optionsStr)
	if optionsStr == "" {
		return nil, fmt.Errorf("options string is empty")
	}
	if !strings.HasPrefix(optionsStr, "a.") {
		return nil, fmt.Errorf("options must start with 'a.', got %q", optionsStr)
	}

	// Split at each ",<next letter>." boundary. Scanning for the expected
	// letter (instead of splitting on every comma) keeps commas inside
	// option text intact.
	starts := []int{0}
	nextLetter := byte('b')
	for pos := 0; pos+2 < len(optionsStr); pos++ {
		if optionsStr[pos] == ',' && optionsStr[pos+1] == nextLetter && optionsStr[pos+2] == '.' {
			starts = append(starts, pos+1)
			nextLetter++
		}
	}

	options := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(optionsStr)
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		raw := strings.TrimSpace(optionsStr[start:end])
		letter := byte('a' + i)
		if len(raw) < 2 {
			return nil, fmt.Errorf("option %c is too short: %q", letter, raw)
		}
		if raw[0] != letter {
			return nil, fmt.Errorf("option %c has wrong letter prefix: %q", letter, raw)
		}
		if raw[1] != '.' {
			return nil, fmt.Errorf("option %c is missing period after letter: %q", letter, raw)
		}
		text := strings.TrimSpace(raw[2:])
		if text == "" {
			return nil, fmt.Errorf("option %c has no content after letter prefix: %q", letter, raw)
		}
		options = append(options, text)
	}
	return options, nil
}

// ResolveCorrectOption validates a correct-answer value against parsed
// options and returns the option text it references. Full option strings
// ("b.Green") are reduced to their leading letter.
func ResolveCorrectOption(answer string, options []string) (string, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return "", fmt.Errorf("correct answer is empty")
	}
	if idx := strings.Index(answer, "."); idx >= 0 {
		answer = strings.TrimSpace(answer[:idx])
	}
	if len(answer) != 1 || answer[0] < 'a' || answer[0] > 'z' {
		return "", fmt.Errorf("correct answer must be a single letter for multiple_choice, got %q", answer)
	}
	index := int(answer[0] - 'a')
	if index >= len(options) {
		return "", fmt.Errorf("correct answer %q must be between 'a' and %q; found %d options: %v",
			answer, string(rune('a'+len(options)-1)), len(options), options)
	}
	return options[index], nil
}
