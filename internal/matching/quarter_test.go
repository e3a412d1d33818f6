package matching

import (
	"testing"
	"time"
)

func TestExtractQuarterInfo(t *testing.T) {
	cases := []struct {
		name      string
		filename  string
		wantYear  int
		wantQ     int
		wantDate  string
		wantFound bool
	}{
		{
			name:      "quarter_word_with_yyyymmdd",
			filename:  "Smith_Legal_Brief_Second Quarter_20210623.pdf",
			wantYear:  2021,
			wantQ:     2,
			wantDate:  "2021-06-23",
			wantFound: true,
		},
		{
			name:      "quarter_word_with_mmddyyyy_fallback",
			filename:  "Smith_Legal_Brief_First Quarter_03012022.pdf",
			wantYear:  2022,
			wantQ:     1,
			wantDate:  "2022-03-01",
			wantFound: true,
		},
		{
			name:      "qnum_with_eight_digit_date",
			filename:  "smith_legal_brief_Q3_20230815.pdf",
			wantYear:  2023,
			wantQ:     3,
			wantDate:  "2023-08-15",
			wantFound: true,
		},
		{
			name:      "quarter_word_with_ddmonthyyyy",
			filename:  "Smith First Quarter_24July2023.pdf",
			wantYear:  2023,
			wantQ:     1,
			wantDate:  "2023-07-24",
			wantFound: true,
		},
		{
			name:      "quarter_word_with_two_digit_year",
			filename:  "Smith Fourth Quarter 17Jan25.pdf",
			wantYear:  2025,
			wantQ:     4,
			wantDate:  "2025-01-17",
			wantFound: true,
		},
		{
			name:      "qnum_with_spaced_date",
			filename:  "smith_q2_14 Aug 2024.pdf",
			wantYear:  2024,
			wantQ:     2,
			wantDate:  "2024-08-14",
			wantFound: true,
		},
		{
			name:      "date_only_infers_quarter_from_month",
			filename:  "smith_legal_brief_20211105.pdf",
			wantYear:  2021,
			wantQ:     4,
			wantDate:  "2021-11-05",
			wantFound: true,
		},
		{
			name:      "month_name_date_only",
			filename:  "smith_legal_brief_03March2022.pdf",
			wantYear:  2022,
			wantQ:     1,
			wantDate:  "2022-03-03",
			wantFound: true,
		},
		{
			name:      "explicit_quarter_beats_month_inference",
			filename:  "smith_Q4_20210215.pdf",
			wantYear:  2021,
			wantQ:     4,
			wantDate:  "2021-02-15",
			wantFound: true,
		},
		{
			name:      "no_date_indicator",
			filename:  "smith_legal_brief_first_quarter.pdf",
			wantFound: false,
		},
		{
			name:      "nothing_usable",
			filename:  "smith_legal_brief.pdf",
			wantFound: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info, ok := ExtractQuarterInfo(tc.filename)
			if ok != tc.wantFound {
				t.Fatalf("ExtractQuarterInfo(%q) ok=%v, want %v", tc.filename, ok, tc.wantFound)
			}
			if !ok {
				return
			}
			if info.Year != tc.wantYear || info.Quarter != tc.wantQ {
				t.Fatalf("ExtractQuarterInfo(%q)=(%d, Q%d), want (%d, Q%d)", tc.filename, info.Year, info.Quarter, tc.wantYear, tc.wantQ)
			}
			if got := info.Submitted.Format(time.DateOnly); got != tc.wantDate {
				t.Fatalf("ExtractQuarterInfo(%q) date=%s, want %s", tc.filename, got, tc.wantDate)
			}
		})
	}
}

func TestQuarterRuleOrder(t *testing.T) {
	// A filename satisfying both rule 1 (quarter-word + 8-digit) and rule 9
	// (8-digit alone) must resolve through rule 1: the explicit Third Quarter
	// marker wins over the month-derived Q1.
	filename := "smith_Third Quarter_20240110.pdf"
	info, ok := ExtractQuarterInfo(filename)
	if !ok {
		t.Fatalf("ExtractQuarterInfo(%q) found nothing", filename)
	}
	if info.Quarter != 3 {
		t.Fatalf("ExtractQuarterInfo(%q) quarter=%d, want 3 (rule order violated)", filename, info.Quarter)
	}
}

func TestQuarterEnd(t *testing.T) {
	cases := []struct {
		year    int
		quarter int
		want    string
	}{
		{2024, 1, "2024-03-31"},
		{2024, 2, "2024-06-30"},
		{2024, 3, "2024-09-30"},
		{2024, 4, "2024-12-31"},
		{2023, 1, "2023-03-31"},
	}
	for _, tc := range cases {
		got := QuarterEnd(tc.year, tc.quarter).Format(time.DateOnly)
		if got != tc.want {
			t.Fatalf("QuarterEnd(%d, %d)=%s, want %s", tc.year, tc.quarter, got, tc.want)
		}
	}
}

func TestQuarterStart(t *testing.T) {
	if got := QuarterStart(2024, 3).Format(time.DateOnly); got != "2024-07-01" {
		t.Fatalf("QuarterStart(2024, 3)=%s, want 2024-07-01", got)
	}
}
