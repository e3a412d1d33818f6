package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/redcell/readiness-backend/internal/types"
)

// AnnualPolicy maps a calendar year to the agreement set every operator must
// have on file for that year. Years without an explicit entry use Default.
type AnnualPolicy struct {
	ByYear  map[int][]string
	Default []string
}

// DefaultAnnualPolicy reflects the agreement packet as it evolved: five
// documents for 2021 through 2023, consolidated to four from 2024 onward.
func DefaultAnnualPolicy() AnnualPolicy {
	legacy := []string{
		"Red Team Member Non-Disclosure Agreement",
		"Red Team Code of Ethics Agreement",
		"Red Team Methodology and Mission Risk Agreement",
		"Red Team Data Handling Agreement",
		"Red Team Code of Conduct Agreement",
	}
	return AnnualPolicy{
		ByYear: map[int][]string{
			2021: legacy,
			2022: legacy,
			2023: legacy,
		},
		Default: []string{
			"Red Team Member Non-Disclosure Agreement",
			"Red Team Mission Risk Agreement",
			"Red Team Data Protection Agreement",
			"Red Team Code of Conduct Agreement",
		},
	}
}

func (p AnnualPolicy) RequiredFor(year int) []string {
	if required, ok := p.ByYear[year]; ok {
		return required
	}
	return p.Default
}

type annualKey struct {
	operatorName string
	year         int
	trainingType string
}

// BuildAnnual computes the year-by-year agreement matrix for the whole
// roster. Reported years are every year that appears in the records plus the
// current one, newest first. An operator onboarded after a report year is
// Not Applicable for that entire year rather than Missing.
func BuildAnnual(policy AnnualPolicy, roster []types.Operator, records []types.TrainingRecord, now time.Time) *AnnualReport {
	currentYear := now.Year()

	yearSet := map[int]struct{}{currentYear: {}}
	latest := map[annualKey]*types.TrainingRecord{}
	for i := range records {
		record := &records[i]
		if record.DateSubmitted == nil {
			continue
		}
		year := record.DateSubmitted.Year()
		yearSet[year] = struct{}{}
		key := annualKey{record.OperatorName, year, record.TrainingType}
		if existing, ok := latest[key]; !ok || record.DateSubmitted.After(*existing.DateSubmitted) {
			latest[key] = record
		}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	operators := make([]types.Operator, len(roster))
	copy(operators, roster)
	sort.Slice(operators, func(i, j int) bool { return operators[i].Name < operators[j].Name })

	perYearRequired := map[int][]string{}
	data := make([]AnnualYear, 0, len(years))
	var summary AnnualSummary
	summary.TotalOperators = len(operators)

	for _, year := range years {
		required := policy.RequiredFor(year)
		perYearRequired[year] = required

		yearData := AnnualYear{
			Year:                  year,
			RequiredTrainingTypes: required,
			TrainingTypes:         map[string]*TrainingTypeStatuses{},
		}
		for _, trainingType := range required {
			statuses := &TrainingTypeStatuses{Operators: map[string]OperatorStatus{}}
			for _, op := range operators {
				cell := annualCell(op, year, trainingType, latest)
				statuses.Operators[op.Name] = cell

				if year == currentYear {
					switch cell.Status {
					case StatusNotApplicable:
						summary.CurrentYearNotApplicable++
					case StatusCompleted:
						summary.CurrentYearRequiredRecords++
						summary.CurrentYearCompletedRecords++
					default:
						summary.CurrentYearRequiredRecords++
					}
				}
			}
			yearData.TrainingTypes[trainingType] = statuses
		}
		data = append(data, yearData)
	}

	summary.CurrentYearComplianceRate = complianceRate(summary.CurrentYearCompletedRecords, summary.CurrentYearRequiredRecords)

	return &AnnualReport{
		ReportType:                   "annual_training",
		GeneratedAt:                  now,
		CurrentYear:                  currentYear,
		RequiredTrainingTypes:        policy.RequiredFor(currentYear),
		PerYearRequiredTrainingTypes: perYearRequired,
		Summary:                      summary,
		Data:                         data,
		Years:                        years,
	}
}

func annualCell(op types.Operator, year int, trainingType string, latest map[annualKey]*types.TrainingRecord) OperatorStatus {
	cell := OperatorStatus{OperatorHandle: op.OperatorHandle, Status: StatusMissing}

	if op.OnboardingDate != nil && op.OnboardingDate.Year() > year {
		cell.Status = StatusNotApplicable
		cell.Reason = fmt.Sprintf("Onboarded %s", op.OnboardingDate.Format(onboardedDateFormat))
		return cell
	}

	if record, ok := latest[annualKey{op.Name, year, trainingType}]; ok {
		cell.Status = StatusCompleted
		cell.DateSubmitted = record.DateSubmitted
		cell.FileURL = record.FileURL
	}
	return cell
}
