package csvimport

import (
	"strings"
	"testing"
)

const validCSV = `question_text,question_type,options,correct_answer,category_name,points
What port does SSH use?,multiple_choice,"a.21,b.22,c.23",b,Networking,2
Describe a pass-the-hash attack.,free_form,,Reuse of NTLM hashes without cracking,Credential Access,
Which record maps a name to an IPv4 address?,multiple_choice,"a.A,b.AAAA,c.MX",a.A,DNS,1
`

func TestParseQuestions(t *testing.T) {
	questions, rowErrors, err := ParseQuestions(validCSV)
	if err != nil {
		t.Fatalf("ParseQuestions failed: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrors)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	q := questions[0]
	if q.QuestionType != "multiple_choice" || q.CorrectAnswer != "22" || q.Points != 2 {
		t.Fatalf("row 1 parsed wrong: %+v", q)
	}
	if len(q.Options) != 3 || q.Options[1] != "22" {
		t.Fatalf("row 1 options parsed wrong: %v", q.Options)
	}

	q = questions[1]
	if q.QuestionType != "free_form" || q.CorrectAnswer != "Reuse of NTLM hashes without cracking" {
		t.Fatalf("row 2 parsed wrong: %+v", q)
	}
	if q.Points != 1 {
		t.Fatalf("row 2 points=%d, want default 1", q.Points)
	}

	// full option string as correct_answer reduces to its letter
	q = questions[2]
	if q.CorrectAnswer != "A" {
		t.Fatalf("row 3 correct answer=%q, want %q", q.CorrectAnswer, "A")
	}
}

func TestParseQuestionsMissingColumnsAbortsBatch(t *testing.T) {
	csvText := "question_text,question_type\nWhat is DNS?,free_form\n"
	_, _, err := ParseQuestions(csvText)
	if err == nil {
		t.Fatal("expected missing-column error")
	}
	for _, col := range []string{"options", "correct_answer", "category_name"} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("error should name missing column %q, got: %v", col, err)
		}
	}
}

func TestParseQuestionsRowErrorsDoNotAbort(t *testing.T) {
	csvText := `question_text,question_type,options,correct_answer,category_name
Good question?,multiple_choice,"a.Yes,b.No",a,General
Bad answer?,multiple_choice,"a.Yes,b.No",z,General
,multiple_choice,"a.Yes,b.No",a,General
Another good one?,free_form,,Some answer,General
`
	questions, rowErrors, err := ParseQuestions(csvText)
	if err != nil {
		t.Fatalf("ParseQuestions failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2 (bad rows skipped)", len(questions))
	}
	if len(rowErrors) != 2 {
		t.Fatalf("got %d row errors, want 2: %v", len(rowErrors), rowErrors)
	}
	if !strings.Contains(rowErrors[0], "row 2") {
		t.Fatalf("row error should reference row 2, got %q", rowErrors[0])
	}
}

func TestParseQuestionsEmpty(t *testing.T) {
	if _, _, err := ParseQuestions(""); err == nil {
		t.Fatal("expected error for empty CSV")
	}
	if _, _, err := ParseQuestions("question_text,question_type,options,correct_answer,category_name\n"); err == nil {
		t.Fatal("expected error for header-only CSV")
	}
}

func TestDecodeContent(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "plain_utf8", input: []byte("hello"), want: "hello"},
		{name: "utf8_bom_stripped", input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), want: "hello"},
		// 0x93/0x94 are curly quotes in Windows-1252; they come out as ASCII
		{name: "cp1252_smart_quotes", input: []byte{0x93, 'h', 'i', 0x94}, want: `"hi"`},
		// 0x97 is an em dash in Windows-1252
		{name: "cp1252_em_dash", input: []byte{'a', 0x97, 'b'}, want: "a-b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeContent(tc.input)
			if err != nil {
				t.Fatalf("DecodeContent failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DecodeContent=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeContentNormalizesUTF8Punctuation(t *testing.T) {
	got, err := DecodeContent([]byte("it’s “fine” — mostly…"))
	if err != nil {
		t.Fatalf("DecodeContent failed: %v", err)
	}
	if got != `it's "fine" - mostly...` {
		t.Fatalf("DecodeContent=%q", got)
	}
}
