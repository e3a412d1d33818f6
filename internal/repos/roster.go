package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/types"
)

type RosterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, operators []*types.Operator) ([]*types.Operator, error)
	GetByID(ctx context.Context, tx *gorm.DB, operatorID uuid.UUID) (*types.Operator, error)
	GetByHandle(ctx context.Context, tx *gorm.DB, handle string) (*types.Operator, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]types.Operator, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]types.Operator, error)
	Update(ctx context.Context, tx *gorm.DB, operator *types.Operator) (*types.Operator, error)
	Delete(ctx context.Context, tx *gorm.DB, operatorID uuid.UUID) error
}

type rosterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRosterRepo(db *gorm.DB, baseLog *logger.Logger) RosterRepo {
	repoLog := baseLog.With("repo", "RosterRepo")
	return &rosterRepo{db: db, log: repoLog}
}

func (rr *rosterRepo) Create(ctx context.Context, tx *gorm.DB, operators []*types.Operator) ([]*types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(operators) == 0 {
		return []*types.Operator{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&operators).Error; err != nil {
		return nil, err
	}

	return operators, nil
}

func (rr *rosterRepo) GetByID(ctx context.Context, tx *gorm.DB, operatorID uuid.UUID) (*types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Operator
	if err := transaction.WithContext(ctx).
		Where("id = ?", operatorID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *rosterRepo) GetByHandle(ctx context.Context, tx *gorm.DB, handle string) (*types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Operator
	if err := transaction.WithContext(ctx).
		Where("operator_handle = ?", handle).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *rosterRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []types.Operator
	if err := transaction.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rosterRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []types.Operator
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rosterRepo) Update(ctx context.Context, tx *gorm.DB, operator *types.Operator) (*types.Operator, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Save(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

func (rr *rosterRepo) Delete(ctx context.Context, tx *gorm.DB, operatorID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", operatorID).
		Delete(&types.Operator{}).Error
}
