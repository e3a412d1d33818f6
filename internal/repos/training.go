package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/types"
)

type TrainingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.TrainingRecord) ([]*types.TrainingRecord, error)
	Exists(ctx context.Context, tx *gorm.DB, operatorName, trainingType string, dateSubmitted time.Time) (bool, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]types.TrainingRecord, error)
	ListByTypes(ctx context.Context, tx *gorm.DB, trainingTypes []string) ([]types.TrainingRecord, error)
	ListByOperator(ctx context.Context, tx *gorm.DB, operatorName string) ([]types.TrainingRecord, error)
	RenameOperator(ctx context.Context, tx *gorm.DB, oldName, newName string) error
}

type trainingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingRepo(db *gorm.DB, baseLog *logger.Logger) TrainingRepo {
	repoLog := baseLog.With("repo", "TrainingRepo")
	return &trainingRepo{db: db, log: repoLog}
}

func (tr *trainingRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.TrainingRecord) ([]*types.TrainingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(records) == 0 {
		return []*types.TrainingRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// Exists reports whether a record with the exact duplicate-detection triple
// is already persisted.
func (tr *trainingRepo) Exists(ctx context.Context, tx *gorm.DB, operatorName, trainingType string, dateSubmitted time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TrainingRecord{}).
		Where("operator_name = ? AND training_type = ? AND date_submitted = ?", operatorName, trainingType, dateSubmitted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *trainingRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]types.TrainingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []types.TrainingRecord
	if err := transaction.WithContext(ctx).
		Order("date_submitted DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *trainingRepo) ListByTypes(ctx context.Context, tx *gorm.DB, trainingTypes []string) ([]types.TrainingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []types.TrainingRecord
	if len(trainingTypes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("training_type IN ?", trainingTypes).
		Order("date_submitted DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *trainingRepo) ListByOperator(ctx context.Context, tx *gorm.DB, operatorName string) ([]types.TrainingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []types.TrainingRecord
	if err := transaction.WithContext(ctx).
		Where("operator_name = ?", operatorName).
		Order("date_submitted DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// RenameOperator keeps training history attached when a roster entry's
// display name changes. Records reference operators by name, not by id.
func (tr *trainingRepo) RenameOperator(ctx context.Context, tx *gorm.DB, oldName, newName string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.TrainingRecord{}).
		Where("operator_name = ?", oldName).
		Update("operator_name", newName).Error
}
