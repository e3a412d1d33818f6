package csvimport

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Question is one successfully parsed CSV row, ready for persistence.
type Question struct {
	Row           int
	QuestionText  string
	QuestionType  string
	Options       []string
	CorrectAnswer string
	Points        int
	CategoryName  string
}

var requiredColumns = []string{"question_text", "question_type", "options", "correct_answer", "category_name"}

// ParseQuestions parses decoded CSV text into questions. A missing required
// column aborts the whole import with the missing names; content problems in
// individual rows are collected as messages and the rest of the batch keeps
// going.
func ParseQuestions(csvText string) ([]Question, []string, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid CSV format: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}

	header := map[string]int{}
	for i, col := range records[0] {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	if len(records) == 1 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}

	var questions []Question
	var rowErrors []string

	for i, record := range records[1:] {
		rowNum := i + 1
		q, err := parseQuestionRow(rowNum, record, header)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("error processing row %d: %v", rowNum, err))
			continue
		}
		questions = append(questions, q)
	}
	return questions, rowErrors, nil
}

func parseQuestionRow(rowNum int, record []string, header map[string]int) (Question, error) {
	field := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	q := Question{
		Row:          rowNum,
		QuestionText: field("question_text"),
		QuestionType: strings.ToLower(field("question_type")),
		CategoryName: field("category_name"),
		Points:       parsePoints(field("points")),
	}
	if q.QuestionText == "" {
		return Question{}, fmt.Errorf("missing question_text")
	}
	if q.QuestionType == "" {
		return Question{}, fmt.Errorf("missing question_type")
	}
	answer := field("correct_answer")
	if answer == "" {
		return Question{}, fmt.Errorf("missing correct_answer")
	}

	switch q.QuestionType {
	case "multiple_choice":
		optionsStr := field("options")
		if optionsStr == "" {
			return Question{}, fmt.Errorf("missing options for multiple_choice question")
		}
		options, err := ParseOptions(optionsStr)
		if err != nil {
			return Question{}, err
		}
		correct, err := ResolveCorrectOption(answer, options)
		if err != nil {
			return Question{}, err
		}
		q.Options = options
		q.CorrectAnswer = correct
	case "free_form":
		// the correct answer is the expected answer text, no options
		q.CorrectAnswer = answer
	default:
		return Question{}, fmt.Errorf("unsupported question type: %s", q.QuestionType)
	}
	return q, nil
}

// parsePoints defaults to 1 for missing, unparseable, or non-positive values.
func parsePoints(raw string) int {
	if raw == "" {
		return 1
	}
	points, err := strconv.Atoi(raw)
	if err != nil || points <= 0 {
		return 1
	}
	return points
}
