package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/csvimport"
	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/types"
)

// CSVImportSummary reports what a question import did, including per-row
// problems that did not abort the batch.
type CSVImportSummary struct {
	AssessmentID      uuid.UUID `json:"assessment_id"`
	QuestionsImported int       `json:"questions_imported"`
	RowErrors         []string  `json:"row_errors"`
}

// InlineQuestion is one question supplied directly in a create request
// instead of through a CSV upload.
type InlineQuestion struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	QuestionType  string   `json:"question_type" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points"`
	CategoryName  string   `json:"category_name"`
}

type AssessmentService interface {
	Create(ctx context.Context, title, description string, createdBy *uuid.UUID, questions []InlineQuestion) (*types.Assessment, error)
	CreateFromCSV(ctx context.Context, title, description string, createdBy *uuid.UUID, raw []byte) (*CSVImportSummary, error)
	ImportQuestionsFromCSV(ctx context.Context, assessmentID uuid.UUID, raw []byte) (*CSVImportSummary, error)
	GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*types.Assessment, error)
	ListAssessments(ctx context.Context) ([]types.Assessment, error)
	DeleteAssessment(ctx context.Context, assessmentID uuid.UUID) error
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	assessmentRepo repos.AssessmentRepo
	categoryRepo   repos.CategoryRepo
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	assessmentRepo repos.AssessmentRepo,
	categoryRepo repos.CategoryRepo,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		assessmentRepo: assessmentRepo,
		categoryRepo:   categoryRepo,
	}
}

func (s *assessmentService) Create(ctx context.Context, title, description string, createdBy *uuid.UUID, questions []InlineQuestion) (*types.Assessment, error) {
	if title == "" {
		return nil, fmt.Errorf("assessment title is required")
	}

	parsed := make([]csvimport.Question, 0, len(questions))
	for i, q := range questions {
		question := csvimport.Question{
			Row:           i + 1,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			CategoryName:  q.CategoryName,
		}
		if question.Points <= 0 {
			question.Points = 1
		}
		if q.QuestionType == types.QuestionTypeMultipleChoice {
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("question %d: multiple_choice requires options", i+1)
			}
			correct, err := csvimport.ResolveCorrectOption(q.CorrectAnswer, q.Options)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			question.Options = q.Options
			question.CorrectAnswer = correct
		}
		parsed = append(parsed, question)
	}

	assessment := &types.Assessment{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		IsActive:    true,
		CreatedBy:   createdBy,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assessmentRepo.Create(ctx, tx, assessment); err != nil {
			return fmt.Errorf("Failed to create assessment: %w", err)
		}
		if _, err := s.persistQuestions(ctx, tx, assessment.ID, 0, parsed); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.assessmentRepo.GetByID(ctx, nil, assessment.ID)
}

func (s *assessmentService) CreateFromCSV(ctx context.Context, title, description string, createdBy *uuid.UUID, raw []byte) (*CSVImportSummary, error) {
	if title == "" {
		return nil, fmt.Errorf("assessment title is required")
	}

	questions, rowErrors, err := s.parseCSV(raw)
	if err != nil {
		return nil, err
	}

	summary := &CSVImportSummary{RowErrors: rowErrors}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment := &types.Assessment{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
			IsActive:    true,
			CreatedBy:   createdBy,
		}
		if _, err := s.assessmentRepo.Create(ctx, tx, assessment); err != nil {
			return fmt.Errorf("Failed to create assessment: %w", err)
		}
		created, err := s.persistQuestions(ctx, tx, assessment.ID, 0, questions)
		if err != nil {
			return err
		}
		summary.AssessmentID = assessment.ID
		summary.QuestionsImported = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *assessmentService) ImportQuestionsFromCSV(ctx context.Context, assessmentID uuid.UUID, raw []byte) (*CSVImportSummary, error) {
	if _, err := s.assessmentRepo.GetByID(ctx, nil, assessmentID); err != nil {
		return nil, fmt.Errorf("Failed to load assessment: %w", err)
	}

	questions, rowErrors, err := s.parseCSV(raw)
	if err != nil {
		return nil, err
	}

	summary := &CSVImportSummary{AssessmentID: assessmentID, RowErrors: rowErrors}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.assessmentRepo.MaxQuestionOrder(ctx, tx, assessmentID)
		if err != nil {
			return fmt.Errorf("Failed to find max question order: %w", err)
		}
		created, err := s.persistQuestions(ctx, tx, assessmentID, maxOrder, questions)
		if err != nil {
			return err
		}
		summary.QuestionsImported = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *assessmentService) parseCSV(raw []byte) ([]csvimport.Question, []string, error) {
	csvText, err := csvimport.DecodeContent(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode CSV file: %w", err)
	}
	return csvimport.ParseQuestions(csvText)
}

// persistQuestions appends parsed questions after startOrder, resolving
// category names to rows as it goes.
func (s *assessmentService) persistQuestions(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, startOrder int, questions []csvimport.Question) (int, error) {
	rows := make([]*types.AssessmentQuestion, 0, len(questions))
	for i, q := range questions {
		row := &types.AssessmentQuestion{
			ID:            uuid.New(),
			AssessmentID:  assessmentID,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Order:         startOrder + i + 1,
		}
		if len(q.Options) > 0 {
			encoded, err := json.Marshal(q.Options)
			if err != nil {
				return 0, fmt.Errorf("Failed to encode options for row %d: %w", q.Row, err)
			}
			row.Options = datatypes.JSON(encoded)
		}
		if q.CategoryName != "" {
			category, err := s.categoryRepo.GetOrCreate(ctx, tx, q.CategoryName)
			if err != nil {
				return 0, fmt.Errorf("Failed to resolve category %q: %w", q.CategoryName, err)
			}
			row.CategoryID = &category.ID
		}
		rows = append(rows, row)
	}

	if _, err := s.assessmentRepo.CreateQuestions(ctx, tx, rows); err != nil {
		return 0, fmt.Errorf("Failed to create assessment questions: %w", err)
	}
	return len(rows), nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*types.Assessment, error) {
	return s.assessmentRepo.GetByID(ctx, nil, assessmentID)
}

func (s *assessmentService) ListAssessments(ctx context.Context) ([]types.Assessment, error) {
	return s.assessmentRepo.ListAll(ctx, nil)
}

func (s *assessmentService) DeleteAssessment(ctx context.Context, assessmentID uuid.UUID) error {
	return s.assessmentRepo.Delete(ctx, nil, assessmentID)
}
