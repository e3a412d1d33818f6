package reports

import (
	"testing"
	"time"

	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/types"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testPolicy() AnnualPolicy {
	return AnnualPolicy{
		ByYear:  map[int][]string{2023: {"Old Agreement"}},
		Default: []string{"NDA", "Code of Conduct"},
	}
}

func TestBuildAnnualStatuses(t *testing.T) {
	roster := []types.Operator{
		{Name: "anthony lee", OperatorHandle: "alee", OnboardingDate: date(2022, time.March, 1)},
		{Name: "sharaya meow", OperatorHandle: "smeow", OnboardingDate: date(2025, time.January, 10)},
	}
	records := []types.TrainingRecord{
		{
			OperatorName:  "anthony lee",
			TrainingName:  "2024 Agreement",
			TrainingType:  "NDA",
			DateSubmitted: date(2024, time.June, 1),
			FileURL:       "/uploads/anthony_lee/training/nda/abc.pdf",
		},
	}
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

	report := BuildAnnual(testPolicy(), roster, records, now)

	if report.CurrentYear != 2024 {
		t.Fatalf("current year=%d, want 2024", report.CurrentYear)
	}
	// years: record year 2024 plus current year 2024, deduped
	if len(report.Years) != 1 || report.Years[0] != 2024 {
		t.Fatalf("years=%v, want [2024]", report.Years)
	}

	yearData := report.Data[0]
	if len(yearData.RequiredTrainingTypes) != 2 {
		t.Fatalf("required types=%v, want default pair", yearData.RequiredTrainingTypes)
	}

	nda := yearData.TrainingTypes["NDA"].Operators
	cell := nda["anthony lee"]
	if cell.Status != StatusCompleted {
		t.Fatalf("anthony lee NDA status=%q, want Completed", cell.Status)
	}
	if cell.DateSubmitted == nil || !cell.DateSubmitted.Equal(*records[0].DateSubmitted) {
		t.Fatalf("completed cell should carry the submission date, got %+v", cell)
	}
	if cell.FileURL != records[0].FileURL {
		t.Fatalf("completed cell should carry the file url, got %q", cell.FileURL)
	}

	conduct := yearData.TrainingTypes["Code of Conduct"].Operators
	if conduct["anthony lee"].Status != StatusMissing {
		t.Fatalf("anthony lee conduct status=%q, want Missing", conduct["anthony lee"].Status)
	}

	// onboarded in 2025, so every 2024 cell is Not Applicable with a reason
	cell = nda["sharaya meow"]
	if cell.Status != StatusNotApplicable {
		t.Fatalf("sharaya meow NDA status=%q, want Not Applicable", cell.Status)
	}
	if cell.Reason != "Onboarded 01/10/2025" {
		t.Fatalf("reason=%q", cell.Reason)
	}
}

func TestBuildAnnualPolicyFallback(t *testing.T) {
	roster := []types.Operator{{Name: "anthony lee", OperatorHandle: "alee", OnboardingDate: date(2020, time.January, 1)}}
	records := []types.TrainingRecord{
		{OperatorName: "anthony lee", TrainingType: "Old Agreement", DateSubmitted: date(2023, time.May, 2)},
	}
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	report := BuildAnnual(testPolicy(), roster, records, now)

	if len(report.Years) != 2 || report.Years[0] != 2024 || report.Years[1] != 2023 {
		t.Fatalf("years=%v, want [2024 2023]", report.Years)
	}
	if got := report.PerYearRequiredTrainingTypes[2023]; len(got) != 1 || got[0] != "Old Agreement" {
		t.Fatalf("2023 required types=%v, want the explicit policy entry", got)
	}
	if got := report.PerYearRequiredTrainingTypes[2024]; len(got) != 2 {
		t.Fatalf("2024 required types=%v, want the default list", got)
	}

	// 2023 uses the old policy and the record satisfies it
	for _, yearData := range report.Data {
		if yearData.Year != 2023 {
			continue
		}
		cell := yearData.TrainingTypes["Old Agreement"].Operators["anthony lee"]
		if cell.Status != StatusCompleted {
			t.Fatalf("2023 Old Agreement status=%q, want Completed", cell.Status)
		}
	}
}

func TestBuildAnnualSummaryRate(t *testing.T) {
	// Two operators and two required types gives 4 current-year cells;
	// 3 completed should land on exactly 75.0.
	roster := []types.Operator{
		{Name: "anthony lee", OperatorHandle: "alee", OnboardingDate: date(2020, time.January, 1)},
		{Name: "david smith", OperatorHandle: "dsmith", OnboardingDate: date(2020, time.January, 1)},
	}
	records := []types.TrainingRecord{
		{OperatorName: "anthony lee", TrainingType: "NDA", DateSubmitted: date(2024, time.March, 1)},
		{OperatorName: "anthony lee", TrainingType: "Code of Conduct", DateSubmitted: date(2024, time.March, 1)},
		{OperatorName: "david smith", TrainingType: "NDA", DateSubmitted: date(2024, time.April, 1)},
	}
	now := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	report := BuildAnnual(testPolicy(), roster, records, now)

	s := report.Summary
	if s.TotalOperators != 2 {
		t.Fatalf("total operators=%d, want 2", s.TotalOperators)
	}
	if s.CurrentYearRequiredRecords != 4 || s.CurrentYearCompletedRecords != 3 {
		t.Fatalf("required=%d completed=%d, want 4/3", s.CurrentYearRequiredRecords, s.CurrentYearCompletedRecords)
	}
	if s.CurrentYearComplianceRate != 75.0 {
		t.Fatalf("compliance rate=%v, want 75.0", s.CurrentYearComplianceRate)
	}
}

func TestBuildAnnualNotApplicableExcludedFromRate(t *testing.T) {
	roster := []types.Operator{
		{Name: "anthony lee", OperatorHandle: "alee", OnboardingDate: date(2020, time.January, 1)},
		{Name: "new hire", OperatorHandle: "nhire", OnboardingDate: date(2025, time.June, 1)},
	}
	records := []types.TrainingRecord{
		{OperatorName: "anthony lee", TrainingType: "NDA", DateSubmitted: date(2024, time.March, 1)},
		{OperatorName: "anthony lee", TrainingType: "Code of Conduct", DateSubmitted: date(2024, time.March, 2)},
	}
	now := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	report := BuildAnnual(testPolicy(), roster, records, now)

	s := report.Summary
	if s.CurrentYearNotApplicable != 2 {
		t.Fatalf("not applicable=%d, want 2", s.CurrentYearNotApplicable)
	}
	if s.CurrentYearRequiredRecords != 2 || s.CurrentYearCompletedRecords != 2 {
		t.Fatalf("required=%d completed=%d, want 2/2", s.CurrentYearRequiredRecords, s.CurrentYearCompletedRecords)
	}
	if s.CurrentYearComplianceRate != 100.0 {
		t.Fatalf("compliance rate=%v, want 100.0", s.CurrentYearComplianceRate)
	}
}

func TestDefaultAnnualPolicyTypesAreCanonical(t *testing.T) {
	canonical := map[string]bool{}
	for _, trainingType := range matching.DefaultAliases().TrainingTypes {
		canonical[trainingType] = true
	}

	policy := DefaultAnnualPolicy()
	for year, required := range policy.ByYear {
		for _, trainingType := range required {
			if !canonical[trainingType] {
				t.Errorf("policy year %d requires %q, which no filename alias can ever produce", year, trainingType)
			}
		}
	}
	for _, trainingType := range policy.Default {
		if !canonical[trainingType] {
			t.Errorf("default policy requires %q, which no filename alias can ever produce", trainingType)
		}
	}
}

func TestBuildAnnualLegacyYearCompletable(t *testing.T) {
	// A record carrying the canonical NDA type must satisfy the 2021-2023
	// policy, which predates the consolidated agreement set.
	aliases := matching.DefaultAliases()
	ndaType, ok := aliases.TrainingType("anthony_lee_nda_20230502.pdf")
	if !ok {
		t.Fatal("nda alias did not resolve")
	}

	roster := []types.Operator{
		{Name: "anthony lee", OperatorHandle: "alee", OnboardingDate: date(2020, time.January, 1)},
	}
	records := []types.TrainingRecord{
		{OperatorName: "anthony lee", TrainingType: ndaType, DateSubmitted: date(2023, time.May, 2)},
	}
	now := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)

	report := BuildAnnual(DefaultAnnualPolicy(), roster, records, now)

	yearData := report.Data[0]
	if yearData.Year != 2023 {
		t.Fatalf("first year=%d, want 2023", yearData.Year)
	}
	statuses, ok := yearData.TrainingTypes[ndaType]
	if !ok {
		t.Fatalf("2023 matrix has no column for %q; required types: %v", ndaType, yearData.RequiredTrainingTypes)
	}
	if cell := statuses.Operators["anthony lee"]; cell.Status != StatusCompleted {
		t.Fatalf("2023 %s status=%q, want Completed", ndaType, cell.Status)
	}
}

func TestComplianceRateRounding(t *testing.T) {
	if got := complianceRate(1, 3); got != 33.3 {
		t.Fatalf("complianceRate(1,3)=%v, want 33.3", got)
	}
	if got := complianceRate(2, 3); got != 66.7 {
		t.Fatalf("complianceRate(2,3)=%v, want 66.7", got)
	}
	if got := complianceRate(0, 0); got != 0 {
		t.Fatalf("complianceRate(0,0)=%v, want 0", got)
	}
}
