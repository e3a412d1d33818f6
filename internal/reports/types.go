// Package reports computes training-compliance matrices from the roster and
// the persisted training records. Everything here is a pure function of its
// inputs: reports are rebuilt from scratch on every request and nothing is
// cached or mutated.
package reports

import (
	"math"
	"time"
)

type Status string

const (
	StatusCompleted     Status = "Completed"
	StatusMissing       Status = "Missing"
	StatusNotApplicable Status = "Not Applicable"
)

// OperatorStatus is one cell of a compliance matrix.
type OperatorStatus struct {
	OperatorHandle string     `json:"operator_handle"`
	Status         Status     `json:"status"`
	Reason         string     `json:"reason,omitempty"`
	DateSubmitted  *time.Time `json:"date_submitted"`
	FileURL        string     `json:"file_url,omitempty"`
}

type TrainingTypeStatuses struct {
	Operators map[string]OperatorStatus `json:"operators"`
}

type AnnualYear struct {
	Year                  int                              `json:"year"`
	RequiredTrainingTypes []string                         `json:"required_training_types"`
	TrainingTypes         map[string]*TrainingTypeStatuses `json:"training_types"`
}

type AnnualSummary struct {
	TotalOperators              int     `json:"total_operators"`
	CurrentYearRequiredRecords  int     `json:"current_year_required_records"`
	CurrentYearCompletedRecords int     `json:"current_year_completed_records"`
	CurrentYearNotApplicable    int     `json:"current_year_not_applicable"`
	CurrentYearComplianceRate   float64 `json:"current_year_compliance_rate"`
}

type AnnualReport struct {
	ReportType                   string           `json:"report_type"`
	GeneratedAt                  time.Time        `json:"generated_at"`
	CurrentYear                  int              `json:"current_year"`
	RequiredTrainingTypes        []string         `json:"required_training_types"`
	PerYearRequiredTrainingTypes map[int][]string `json:"per_year_required_training_types"`
	Summary                      AnnualSummary    `json:"summary"`
	Data                         []AnnualYear     `json:"data"`
	Years                        []int            `json:"years"`
}

type QuarterStatuses struct {
	Name      string                    `json:"name"`
	Operators map[string]OperatorStatus `json:"operators"`
}

type QuarterlyYear struct {
	Year     int                         `json:"year"`
	Quarters map[string]*QuarterStatuses `json:"quarters"`
}

type QuarterlySummary struct {
	TotalOperators        int     `json:"total_operators"`
	TotalRequiredRecords  int     `json:"total_required_records"`
	TotalCompletedRecords int     `json:"total_completed_records"`
	TotalNotApplicable    int     `json:"total_not_applicable"`
	ComplianceRate        float64 `json:"compliance_rate"`
}

type QuarterlyReport struct {
	ReportType  string           `json:"report_type"`
	GeneratedAt time.Time        `json:"generated_at"`
	Summary     QuarterlySummary `json:"summary"`
	Data        []QuarterlyYear  `json:"data"`
	Years       []int            `json:"years"`
}

// complianceRate is completed/required as a percentage rounded to one
// decimal; NotApplicable cells are excluded from the denominator before this
// is called, and a zero denominator yields 0.
func complianceRate(completed, required int) float64 {
	if required == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(required)*1000) / 10
}

const onboardedDateFormat = "01/02/2006"
