package matching

import (
	"testing"
	"time"
)

func TestTrainingType(t *testing.T) {
	aliases := DefaultAliases()

	cases := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{
			name:     "underscore_delimited_token",
			filename: "Smith_John_nda_20240115.pdf",
			want:     "Red Team Member Non-Disclosure Agreement",
			wantOK:   true,
		},
		{
			name:     "spaces_and_hyphens_normalized",
			filename: "John Smith - code of ethics agreement - 20230601.pdf",
			want:     "Red Team Code of Ethics Agreement",
			wantOK:   true,
		},
		{
			name:     "longest_alias_wins_over_embedded_short_one",
			filename: "lee_rt_member_non_disclosure_agreement_20240110.pdf",
			want:     "Red Team Member Non-Disclosure Agreement",
			wantOK:   true,
		},
		{
			name:     "key_at_start_of_filename",
			filename: "data_handling_agreement_smith_20230215.pdf",
			want:     "Red Team Data Handling Agreement",
			wantOK:   true,
		},
		{
			name:     "key_at_end_of_normalized_string",
			filename: "20230215_smith_red_team_legal_brief",
			want:     "Red Team Legal Brief",
			wantOK:   true,
		},
		{
			name:     "alias_inside_longer_token_rejected",
			filename: "smith_mondayagenda_20240101.pdf",
			wantOK:   false,
		},
		{
			name:     "no_alias_present",
			filename: "smith_travel_voucher_20240101.pdf",
			wantOK:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := aliases.TrainingType(tc.filename)
			if ok != tc.wantOK {
				t.Fatalf("TrainingType(%q) ok=%v, want %v", tc.filename, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("TrainingType(%q)=%q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestDateFromFilename(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{name: "valid_yyyymmdd", filename: "smith_nda_20240115.pdf", want: "2024-01-15", wantOK: true},
		{name: "no_digit_run", filename: "smith_nda.pdf", wantOK: false},
		{name: "invalid_calendar_date_no_fallback", filename: "smith_nda_20241345.pdf", wantOK: false},
		{name: "leap_day", filename: "smith_nda_20240229.pdf", want: "2024-02-29", wantOK: true},
		{name: "non_leap_feb_29_rejected", filename: "smith_nda_20230229.pdf", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DateFromFilename(tc.filename)
			if ok != tc.wantOK {
				t.Fatalf("DateFromFilename(%q) ok=%v, want %v", tc.filename, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if got.Format(time.DateOnly) != tc.want {
				t.Fatalf("DateFromFilename(%q)=%s, want %s", tc.filename, got.Format(time.DateOnly), tc.want)
			}
		})
	}
}
