package matching

import "sort"

// Aliases holds the static lookup tables the filename parser and operator
// matcher run against. Loaded once at startup and passed in explicitly so the
// matcher stays testable with small fixture tables.
type Aliases struct {
	TrainingTypes map[string]string
	Nicknames     map[string]string
	Initials      map[string]string

	// training type keys sorted longest-first so short aliases never win
	// inside a longer token
	sortedTypeKeys []string
}

func NewAliases(trainingTypes, nicknames, initials map[string]string) *Aliases {
	keys := make([]string, 0, len(trainingTypes))
	for k := range trainingTypes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Aliases{
		TrainingTypes:  trainingTypes,
		Nicknames:      nicknames,
		Initials:       initials,
		sortedTypeKeys: keys,
	}
}

// DefaultAliases returns the production alias tables.
func DefaultAliases() *Aliases {
	return NewAliases(defaultTrainingTypes, defaultNicknames, defaultInitials)
}

var defaultTrainingTypes = map[string]string{
	"red_team_code_of_ethics_agreement":             "Red Team Code of Ethics Agreement",
	"red_team_code_of_ethics_v2":                    "Red Team Code of Ethics Agreement",
	"code_of_ethics_agreement":                      "Red Team Code of Ethics Agreement",
	"red_team_methodology_and_mission_risk_agreement": "Red Team Methodology and Mission Risk Agreement",
	"red_team_methodology_and_mission_risk":         "Red Team Methodology and Mission Risk Agreement",
	"red_team_member_non_disclosure_agreement":      "Red Team Member Non-Disclosure Agreement",
	"rt_member_non_disclosure_agreement":            "Red Team Member Non-Disclosure Agreement",
	"rt_non_disclosure_agreement":                   "Red Team Member Non-Disclosure Agreement",
	"nda":                                           "Red Team Member Non-Disclosure Agreement",
	"red_team_data_handling_agreement":              "Red Team Data Handling Agreement",
	"red_team_data_handlingagreement":               "Red Team Data Handling Agreement",
	"data_handling_agreement":                       "Red Team Data Handling Agreement",
	"red_team_code_of_conduct_agreement":            "Red Team Code of Conduct Agreement",
	"red_team_code_of_conduct_v2":                   "Red Team Code of Conduct Agreement",
	"code_of_conduct_agreement":                     "Red Team Code of Conduct Agreement",
	"red_team_data_protection_agreement":            "Red Team Data Protection Agreement",
	"data_protection_agreement":                     "Red Team Data Protection Agreement",
	"red_team_mission_risk_agreement":               "Red Team Mission Risk Agreement",
	"mission_risk_agreement":                        "Red Team Mission Risk Agreement",
	"red_team_legal_brief":                          "Red Team Legal Brief",
	"org_cyber_red_team_legal_brief":                "Red Team Legal Brief",
}

// TrainingTypeLegalBrief is the canonical type that routes a filename through
// the quarter cascade instead of plain date extraction.
const TrainingTypeLegalBrief = "Red Team Legal Brief"

var defaultNicknames = map[string]string{
	"tony":    "anthony",
	"bob":     "robert",
	"rob":     "robert",
	"jim":     "james",
	"jimmy":   "james",
	"mike":    "michael",
	"mikey":   "michael",
	"chris":   "christopher",
	"nick":    "nicholas",
	"alex":    "alexander",
	"sam":     "samuel",
	"dan":     "daniel",
	"danny":   "daniel",
	"joe":     "joseph",
	"tom":     "thomas",
	"tommy":   "thomas",
	"dave":    "david",
	"davey":   "david",
	"steve":   "steven",
	"bill":    "william",
	"billy":   "william",
	"will":    "william",
	"willy":   "william",
	"rick":    "richard",
	"dick":    "richard",
	"rich":    "richard",
	"ken":     "kenneth",
	"kenny":   "kenneth",
	"larry":   "lawrence",
	"gary":    "garrett",
	"phil":    "phillip",
	"tim":     "timothy",
	"timmy":   "timothy",
	"ron":     "ronald",
	"ronnie":  "ronald",
	"don":     "donald",
	"donnie":  "donald",
	"frank":   "franklin",
	"frankie": "franklin",
	"ray":     "raymond",
	"gene":    "eugene",
	"ed":      "edward",
	"eddie":   "edward",
	"ted":     "edward",
	"teddy":   "edward",
	"fred":    "frederick",
	"freddie": "frederick",
	"greg":    "gregory",
	"jeff":    "jeffrey",
	"mark":    "marcus",
}

var defaultInitials = map[string]string{
	"SAP": "Sharaya",
	"Ru":  "Rudolph",
}
