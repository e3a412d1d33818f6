package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/types"
)

type CategoryRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Category, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Category
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if err == nil {
		return &result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	result = types.Category{Name: name}
	if err := transaction.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
