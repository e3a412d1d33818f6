package matching

import (
	"testing"

	"github.com/redcell/readiness-backend/internal/types"
)

func roster(names ...string) []types.Operator {
	ops := make([]types.Operator, 0, len(names))
	for _, n := range names {
		ops = append(ops, types.Operator{Name: n, Active: true})
	}
	return ops
}

func TestMatchOperatorFullName(t *testing.T) {
	aliases := DefaultAliases()
	team := roster("Anthony Lee", "Sarah Meow")

	cases := []struct {
		name     string
		filename string
		want     string
		outcome  Outcome
	}{
		{
			name:     "first_last_with_underscores",
			filename: "anthony_lee_nda_20240115.pdf",
			want:     "Anthony Lee",
			outcome:  OutcomeFound,
		},
		{
			name:     "last_first_order",
			filename: "Lee Anthony - code of conduct agreement 20240110.pdf",
			want:     "Anthony Lee",
			outcome:  OutcomeFound,
		},
		{
			name:     "space_stripped_full_name",
			filename: "AnthonyLee_nda_20240115.pdf",
			want:     "Anthony Lee",
			outcome:  OutcomeFound,
		},
		{
			name:     "bracket_suffix_stripped",
			filename: "anthony_lee_nda_20240115[1].pdf",
			want:     "Anthony Lee",
			outcome:  OutcomeFound,
		},
		{
			name:     "nickname_resolves_to_canonical_first_name",
			filename: "tony_lee_nda_20240115.pdf",
			want:     "Anthony Lee",
			outcome:  OutcomeFound,
		},
		{
			name:     "nobody_in_filename",
			filename: "nda_20240115.pdf",
			outcome:  OutcomeNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := aliases.MatchOperator(tc.filename, team)
			if m.Outcome != tc.outcome {
				t.Fatalf("MatchOperator(%q) outcome=%s, want %s", tc.filename, m.Outcome, tc.outcome)
			}
			if m.OperatorName != tc.want {
				t.Fatalf("MatchOperator(%q)=%q, want %q", tc.filename, m.OperatorName, tc.want)
			}
		})
	}
}

func TestMatchOperatorTiering(t *testing.T) {
	aliases := DefaultAliases()
	team := roster("Anthony Lee", "Anthony Park")

	// A bare last name is unique across the roster, so tier 3 resolves it.
	m := aliases.MatchOperator("lee_nda_20240115.pdf", team)
	if m.Outcome != OutcomeFound || m.OperatorName != "Anthony Lee" {
		t.Fatalf("bare last name: got (%s, %q), want (found, Anthony Lee)", m.Outcome, m.OperatorName)
	}

	// A bare first name is not a generated variant and matches no tier.
	m = aliases.MatchOperator("anthony_nda_20240115.pdf", team)
	if m.Outcome == OutcomeFound {
		t.Fatalf("bare first name: got (%s, %q), want no unique match", m.Outcome, m.OperatorName)
	}
}

func TestMatchOperatorInitialLast(t *testing.T) {
	aliases := DefaultAliases()
	team := roster("Sarah Meow", "Anthony Lee")

	m := aliases.MatchOperator("SMeow_data_handling_agreement_20230301.pdf", team)
	if m.Outcome != OutcomeFound || m.OperatorName != "Sarah Meow" {
		t.Fatalf("initial+last: got (%s, %q), want (found, Sarah Meow)", m.Outcome, m.OperatorName)
	}
}

func TestMatchOperatorSharedLastName(t *testing.T) {
	aliases := DefaultAliases()
	team := roster("Anthony Smith", "David Smith")

	// Shared last name with no first-name signal stays ambiguous.
	m := aliases.MatchOperator("smith_nda_20240115.pdf", team)
	if m.Outcome != OutcomeAmbiguous {
		t.Fatalf("shared last name: outcome=%s, want ambiguous", m.Outcome)
	}

	// First initial disambiguates.
	m = aliases.MatchOperator("dsmith_nda_20240115.pdf", team)
	if m.Outcome != OutcomeFound || m.OperatorName != "David Smith" {
		t.Fatalf("initial disambiguation: got (%s, %q), want (found, David Smith)", m.Outcome, m.OperatorName)
	}
}

func TestMatchOperatorDuplicateDisplayNames(t *testing.T) {
	// Two active operators with the same display name cannot be told apart;
	// the matcher must refuse rather than pick one.
	aliases := DefaultAliases()
	team := roster("Anthony Lee", "Anthony Lee")

	m := aliases.MatchOperator("anthony_lee_nda_20240115.pdf", team)
	if m.Outcome != OutcomeAmbiguous {
		t.Fatalf("duplicate names: outcome=%s, want ambiguous", m.Outcome)
	}
}

func TestMatchOperatorInitialsAlias(t *testing.T) {
	aliases := NewAliases(nil, nil, map[string]string{"SAP": "Sharaya"})
	team := roster("Sharaya Pruitt", "Anthony Lee")

	m := aliases.MatchOperator("SAP_mission_risk_agreement_20240201.pdf", team)
	if m.Outcome != OutcomeFound || m.OperatorName != "Sharaya Pruitt" {
		t.Fatalf("initials alias: got (%s, %q), want (found, Sharaya Pruitt)", m.Outcome, m.OperatorName)
	}
}
