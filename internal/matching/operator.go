package matching

import (
	"regexp"
	"strings"

	"github.com/redcell/readiness-backend/internal/types"
)

// Outcome distinguishes "nobody matched" from "more than one operator
// matched". Callers log and report which failure mode occurred; neither one
// ever auto-assigns a record.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeFound
	OutcomeAmbiguous
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Match is the result of resolving a filename against the roster.
type Match struct {
	Outcome      Outcome
	OperatorName string
}

var (
	extensionRe = regexp.MustCompile(`\.(pdf|doc|docx|txt)$`)
	bracketRe   = regexp.MustCompile(`\[.*?\]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// MatchOperator resolves a filename to at most one operator from the roster.
// Tiers run most-specific first: full-name variants (with nickname and
// initials expansion), then firstInitial+lastName, then bare last name with
// disambiguation. More than one hit at a tier makes the result ambiguous;
// weaker tiers are only consulted when a tier produced zero hits.
func (a *Aliases) MatchOperator(filename string, roster []types.Operator) Match {
	namePart := normalizeFilename(filename)
	namePartNoSpace := strings.ReplaceAll(namePart, " ", "")

	var fullMatches []string
	var initialsLastMatches []string
	type lastNameHit struct {
		name    string
		initial string
		first   string
	}
	var lastNameMatches []lastNameHit

	for i := range roster {
		member := &roster[i]
		opName := strings.ToLower(strings.TrimSpace(member.Name))
		if opName == "" {
			continue
		}
		opFirst := member.FirstName()
		opLast := member.LastName()

		expanded := a.expandNameVariants(opName, opFirst, opLast)

		matched := false
		for _, variant := range expanded {
			if strings.Contains(namePart, variant) || strings.Contains(namePartNoSpace, variant) {
				fullMatches = append(fullMatches, member.Name)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if opLast != "" && strings.Contains(namePart, opLast) {
			initial := ""
			if opFirst != "" {
				initial = opFirst[:1]
			}
			lastNameMatches = append(lastNameMatches, lastNameHit{name: member.Name, initial: initial, first: opFirst})
		}
		if opFirst != "" && opLast != "" && strings.Contains(namePartNoSpace, opFirst[:1]+opLast) {
			initialsLastMatches = append(initialsLastMatches, member.Name)
		}
	}

	switch {
	case len(fullMatches) == 1:
		return Match{Outcome: OutcomeFound, OperatorName: fullMatches[0]}
	case len(fullMatches) > 1:
		return Match{Outcome: OutcomeAmbiguous}
	}

	switch {
	case len(initialsLastMatches) == 1:
		return Match{Outcome: OutcomeFound, OperatorName: initialsLastMatches[0]}
	case len(initialsLastMatches) > 1:
		return Match{Outcome: OutcomeAmbiguous}
	}

	switch {
	case len(lastNameMatches) == 1:
		return Match{Outcome: OutcomeFound, OperatorName: lastNameMatches[0].name}
	case len(lastNameMatches) > 1:
		// several operators share the last name; require a first-name or
		// first-initial signal before picking one
		for _, hit := range lastNameMatches {
			last := strings.ToLower(lastWord(hit.name))
			if hit.initial != "" && strings.Contains(namePartNoSpace, hit.initial+last) {
				return Match{Outcome: OutcomeFound, OperatorName: hit.name}
			}
			if hit.first != "" && strings.Contains(namePartNoSpace, hit.first+last) {
				return Match{Outcome: OutcomeFound, OperatorName: hit.name}
			}
			if hit.first != "" && strings.Contains(namePartNoSpace, last+hit.first) {
				return Match{Outcome: OutcomeFound, OperatorName: hit.name}
			}
		}
		return Match{Outcome: OutcomeAmbiguous}
	}

	return Match{Outcome: OutcomeNotFound}
}

// expandNameVariants builds every spelling of an operator's name the matcher
// accepts as a full-name hit: first-last and last-first, spaced and
// space-stripped, nickname forms in both directions, and any initials alias
// pointing at this operator.
func (a *Aliases) expandNameVariants(opName, opFirst, opLast string) []string {
	variants := nameOrderVariants(opFirst, opLast, opName)

	if canonical, ok := a.Nicknames[opFirst]; ok && canonical != opFirst {
		variants = append(variants, nameOrderVariants(canonical, opLast, canonical+" "+opLast)...)
	}
	for nickname, canonical := range a.Nicknames {
		if opFirst == canonical && nickname != opFirst {
			variants = append(variants, nameOrderVariants(nickname, opLast, nickname+" "+opLast)...)
		}
	}
	for initials, target := range a.Initials {
		t := strings.ToLower(target)
		if t == opName || t == opFirst || strings.Contains(opName, t) {
			lower := strings.ToLower(initials)
			variants = append(variants, lower, strings.ReplaceAll(lower, " ", ""))
		}
	}
	return variants
}

func nameOrderVariants(first, last, full string) []string {
	firstLast := full
	lastFirst := last + " " + first
	return []string{
		firstLast,
		strings.ReplaceAll(firstLast, " ", ""),
		lastFirst,
		strings.ReplaceAll(lastFirst, " ", ""),
	}
}

func normalizeFilename(filename string) string {
	s := strings.ToLower(filename)
	s = extensionRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func lastWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
