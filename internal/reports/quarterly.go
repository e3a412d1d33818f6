package reports

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/types"
)

type quarterlyKey struct {
	operatorName string
	trainingName string
}

// BuildQuarterly computes the legal-briefing matrix. briefings should hold
// only legal-brief records; their training names carry the quarter label
// ("2024 Q1"), and reported years come from the leading 4 digits of those
// labels plus the current year, newest first.
//
// Onboarding interacts with the quarter window in three ways: onboarded
// after the quarter ends means Not Applicable, onboarded mid-quarter means
// Not Applicable unless a record exists (evidence wins over the partial
// quarter default), and onboarded before the quarter means the usual
// Completed or Missing lookup.
func BuildQuarterly(roster []types.Operator, briefings []types.TrainingRecord, now time.Time) *QuarterlyReport {
	yearSet := map[int]struct{}{now.Year(): {}}
	latest := map[quarterlyKey]*types.TrainingRecord{}
	for i := range briefings {
		record := &briefings[i]
		year, ok := leadingYear(record.TrainingName)
		if !ok {
			continue
		}
		yearSet[year] = struct{}{}
		key := quarterlyKey{record.OperatorName, record.TrainingName}
		existing, seen := latest[key]
		if !seen {
			latest[key] = record
			continue
		}
		if record.DateSubmitted != nil && (existing.DateSubmitted == nil || record.DateSubmitted.After(*existing.DateSubmitted)) {
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

	var summary QuarterlySummary
	summary.TotalOperators = len(operators)

	data := make([]QuarterlyYear, 0, len(years))
	for _, year := range years {
		yearData := QuarterlyYear{Year: year, Quarters: map[string]*QuarterStatuses{}}
		for quarter := 1; quarter <= 4; quarter++ {
			label := fmt.Sprintf("%d Q%d", year, quarter)
			statuses := &QuarterStatuses{
				Name:      label,
				Operators: map[string]OperatorStatus{},
			}
			start := matching.QuarterStart(year, quarter)
			end := matching.QuarterEnd(year, quarter)

			for _, op := range operators {
				cell := quarterCell(op, label, start, end, latest)
				statuses.Operators[op.Name] = cell

				switch cell.Status {
				case StatusNotApplicable:
					summary.TotalNotApplicable++
				case StatusCompleted:
					summary.TotalRequiredRecords++
					summary.TotalCompletedRecords++
				default:
					summary.TotalRequiredRecords++
				}
			}
			yearData.Quarters[fmt.Sprintf("Q%d", quarter)] = statuses
		}
		data = append(data, yearData)
	}

	summary.ComplianceRate = complianceRate(summary.TotalCompletedRecords, summary.TotalRequiredRecords)

	return &QuarterlyReport{
		ReportType:  "quarterly_legal_briefings",
		GeneratedAt: now,
		Summary:     summary,
		Data:        data,
		Years:       years,
	}
}

func quarterCell(op types.Operator, label string, start, end time.Time, latest map[quarterlyKey]*types.TrainingRecord) OperatorStatus {
	cell := OperatorStatus{OperatorHandle: op.OperatorHandle, Status: StatusMissing}

	record, hasRecord := latest[quarterlyKey{op.Name, label}]

	if op.OnboardingDate != nil {
		onboarded := dateOnly(*op.OnboardingDate)
		if onboarded.After(end) {
			cell.Status = StatusNotApplicable
			cell.Reason = fmt.Sprintf("Onboarded %s", op.OnboardingDate.Format(onboardedDateFormat))
			return cell
		}
		// Onboarded partway through the quarter: a submitted briefing still
		// counts, but the absence of one is not held against the operator.
		if !onboarded.Before(start) && !hasRecord {
			cell.Status = StatusNotApplicable
			cell.Reason = fmt.Sprintf("Onboarded %s", op.OnboardingDate.Format(onboardedDateFormat))
			return cell
		}
	}

	if hasRecord {
		cell.Status = StatusCompleted
		cell.DateSubmitted = record.DateSubmitted
		cell.FileURL = record.FileURL
	}
	return cell
}

// leadingYear parses the 4-digit year prefix of a quarter label.
func leadingYear(trainingName string) (int, bool) {
	fields := strings.Fields(trainingName)
	if len(fields) == 0 || len(fields[0]) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return year, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
