package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (*types.Assessment, error)
	GetByID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]types.Assessment, error)
	CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) ([]*types.AssessmentQuestion, error)
	MaxQuestionOrder(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int, error)
	Delete(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(assessment).Error; err != nil {
		return nil, err
	}
	return assessment, nil
}

func (ar *assessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Assessment
	if err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		Where("id = ?", assessmentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *assessmentRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []types.Assessment
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) ([]*types.AssessmentQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(questions) == 0 {
		return []*types.AssessmentQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// MaxQuestionOrder returns the highest question_order for an assessment, 0
// when it has no questions yet.
func (ar *assessmentRepo) MaxQuestionOrder(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var maxOrder int
	if err := transaction.WithContext(ctx).
		Model(&types.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
		Select("COALESCE(MAX(question_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder, nil
}

func (ar *assessmentRepo) Delete(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", assessmentID).
		Delete(&types.Assessment{}).Error
}
