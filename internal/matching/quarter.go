package matching

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// QuarterInfo is the result of running a legal-brief filename through the
// quarter cascade.
type QuarterInfo struct {
	Year      int
	Quarter   int
	Submitted time.Time
}

var (
	quarterWordRe = regexp.MustCompile(`(?i)(First|Second|Third|Fourth)\s+Quarter`)
	quarterNumRe  = regexp.MustCompile(`(?i)Q([1-4])`)
	// 24July2023
	monthDateRe = regexp.MustCompile(`(\d{1,2})([A-Za-z]+)(\d{4})`)
	// 17Jan25
	shortMonthDateRe = regexp.MustCompile(`(\d{1,2})([A-Za-z]+)(\d{2})`)
	// 14 Aug 2024, 14-Aug-2024, 14_Aug_2024
	spacedDateRe = regexp.MustCompile(`(\d{1,2})[\s\-_]([A-Za-z]{3,9})[\s\-_](\d{4})`)
)

var quarterWords = map[string]int{
	"first":  1,
	"second": 2,
	"third":  3,
	"fourth": 4,
}

// quarterRule pairs a rule name with its extractor. Rules are evaluated in
// slice order and the first success wins; the order is a fixed part of the
// parsing contract and must not be rearranged.
type quarterRule struct {
	name    string
	extract func(filename string) (QuarterInfo, bool)
}

var quarterRules = []quarterRule{
	{"quarter-word + 8-digit date", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterWord(f))(findEightDigitDate(f))
	}},
	{"Q# + 8-digit date", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterNum(f))(findEightDigitDate(f))
	}},
	{"quarter-word + DDMonthYYYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterWord(f))(findMonthDate(f))
	}},
	{"quarter-word + DDMonthYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterWord(f))(findShortMonthDate(f))
	}},
	{"Q# + DDMonthYYYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterNum(f))(findMonthDate(f))
	}},
	{"Q# + DDMonthYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterNum(f))(findShortMonthDate(f))
	}},
	{"quarter-word + DD Month YYYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterWord(f))(findSpacedDate(f))
	}},
	{"Q# + DD Month YYYY", func(f string) (QuarterInfo, bool) {
		return combine(findQuarterNum(f))(findSpacedDate(f))
	}},
	{"8-digit date alone", func(f string) (QuarterInfo, bool) {
		return inferFromDate(findEightDigitDate(f))
	}},
	{"DDMonthYYYY alone", func(f string) (QuarterInfo, bool) {
		return inferFromDate(findMonthDate(f))
	}},
	{"DDMonthYY alone", func(f string) (QuarterInfo, bool) {
		return inferFromDate(findShortMonthDate(f))
	}},
	{"DD Month YYYY alone", func(f string) (QuarterInfo, bool) {
		return inferFromDate(findSpacedDate(f))
	}},
}

// ExtractQuarterInfo runs the legal-brief quarter cascade: each rule combines
// a quarter indicator (First..Fourth Quarter or Q1..Q4) with one of four date
// shapes, falling back to quarter-from-month inference when only a date is
// present. The first rule whose substrings are present and form a valid
// calendar date wins.
func ExtractQuarterInfo(filename string) (QuarterInfo, bool) {
	for _, rule := range quarterRules {
		if info, ok := rule.extract(filename); ok {
			return info, true
		}
	}
	return QuarterInfo{}, false
}

// QuarterEnd returns the last calendar day of the given quarter, computed as
// the first day of the next quarter minus one day so month lengths and leap
// years fall out of the date arithmetic.
func QuarterEnd(year, quarter int) time.Time {
	if quarter < 1 || quarter > 4 {
		quarter = 4
	}
	firstOfNext := time.Date(year, time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// QuarterStart returns the first calendar day of the given quarter.
func QuarterStart(year, quarter int) time.Time {
	if quarter < 1 || quarter > 4 {
		quarter = 1
	}
	return time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// QuarterOf returns the 1-4 quarter number a month falls in.
func QuarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

func combine(quarter int, qok bool) func(time.Time, bool) (QuarterInfo, bool) {
	return func(d time.Time, dok bool) (QuarterInfo, bool) {
		if !qok || !dok {
			return QuarterInfo{}, false
		}
		return QuarterInfo{Year: d.Year(), Quarter: quarter, Submitted: d}, true
	}
}

func inferFromDate(d time.Time, ok bool) (QuarterInfo, bool) {
	if !ok {
		return QuarterInfo{}, false
	}
	return QuarterInfo{Year: d.Year(), Quarter: QuarterOf(d.Month()), Submitted: d}, true
}

func findQuarterWord(filename string) (int, bool) {
	m := quarterWordRe.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	q, ok := quarterWords[strings.ToLower(m[1])]
	return q, ok
}

func findQuarterNum(filename string) (int, bool) {
	m := quarterNumRe.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	q, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return q, true
}

// findEightDigitDate tries YYYYMMDD first, then MMDDYYYY.
func findEightDigitDate(filename string) (time.Time, bool) {
	raw := eightDigitRe.FindString(filename)
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse("20060102", raw); err == nil {
		return d, true
	}
	if d, err := time.Parse("01022006", raw); err == nil {
		return d, true
	}
	return time.Time{}, false
}

func findMonthDate(filename string) (time.Time, bool) {
	return monthNameDate(monthDateRe.FindStringSubmatch(filename), false)
}

func findShortMonthDate(filename string) (time.Time, bool) {
	return monthNameDate(shortMonthDateRe.FindStringSubmatch(filename), true)
}

func findSpacedDate(filename string) (time.Time, bool) {
	return monthNameDate(spacedDateRe.FindStringSubmatch(filename), false)
}

func monthNameDate(m []string, shortYear bool) (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := parseMonthName(m[2])
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	if shortYear && year < 100 {
		// two-digit years are always 2000-based in these filenames
		year += 2000
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		// time.Date normalized an out-of-range day (e.g. 31June)
		return time.Time{}, false
	}
	return d, true
}

// parseMonthName accepts full month names and 3-letter abbreviations.
func parseMonthName(name string) (time.Month, bool) {
	if t, err := time.Parse("January", name); err == nil {
		return t.Month(), true
	}
	if t, err := time.Parse("Jan", name); err == nil {
		return t.Month(), true
	}
	return 0, false
}
