package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/types"
	"github.com/redcell/readiness-backend/internal/utils"
)

// RosterService manages team roster entries. Renames cascade into training
// history, which references operators by display name.
type RosterService interface {
	CreateOperator(ctx context.Context, operator *types.Operator, password string) (*types.Operator, error)
	GetOperator(ctx context.Context, operatorID uuid.UUID) (*types.Operator, error)
	ListOperators(ctx context.Context, activeOnly bool) ([]types.Operator, error)
	UpdateOperator(ctx context.Context, operator *types.Operator) (*types.Operator, error)
	SetOperatorAvatar(ctx context.Context, operatorID uuid.UUID, raw []byte) (*types.Operator, error)
	DeactivateOperator(ctx context.Context, operatorID uuid.UUID) error
}

type rosterService struct {
	db            *gorm.DB
	log           *logger.Logger
	rosterRepo    repos.RosterRepo
	trainingRepo  repos.TrainingRepo
	avatarService AvatarService
}

func NewRosterService(
	db *gorm.DB,
	log *logger.Logger,
	rosterRepo repos.RosterRepo,
	trainingRepo repos.TrainingRepo,
	avatarService AvatarService,
) RosterService {
	serviceLog := log.With("service", "RosterService")
	return &rosterService{
		db:            db,
		log:           serviceLog,
		rosterRepo:    rosterRepo,
		trainingRepo:  trainingRepo,
		avatarService: avatarService,
	}
}

func (rs *rosterService) CreateOperator(ctx context.Context, operator *types.Operator, password string) (*types.Operator, error) {
	operator.Name = strings.ToLower(strings.TrimSpace(operator.Name))
	operator.OperatorHandle = strings.ToLower(strings.TrimSpace(operator.OperatorHandle))
	if operator.Name == "" || operator.OperatorHandle == "" {
		return nil, fmt.Errorf("name and operator handle are required")
	}

	if password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("Failed to hash password: %w", err)
		}
		operator.Password = hashed
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		operator.ID = uuid.New()
		if err := rs.avatarService.CreateOperatorAvatar(ctx, operator); err != nil {
			return fmt.Errorf("Failed to create operator avatar: %w", err)
		}
		if _, err := rs.rosterRepo.Create(ctx, tx, []*types.Operator{operator}); err != nil {
			return fmt.Errorf("Failed to create operator in postgres: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return operator, nil
}

func (rs *rosterService) GetOperator(ctx context.Context, operatorID uuid.UUID) (*types.Operator, error) {
	return rs.rosterRepo.GetByID(ctx, nil, operatorID)
}

func (rs *rosterService) ListOperators(ctx context.Context, activeOnly bool) ([]types.Operator, error) {
	if activeOnly {
		return rs.rosterRepo.ListActive(ctx, nil)
	}
	return rs.rosterRepo.ListAll(ctx, nil)
}

func (rs *rosterService) UpdateOperator(ctx context.Context, operator *types.Operator) (*types.Operator, error) {
	operator.Name = strings.ToLower(strings.TrimSpace(operator.Name))

	existing, err := rs.rosterRepo.GetByID(ctx, nil, operator.ID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load operator: %w", err)
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if existing.Name != operator.Name {
			rs.log.Info("Operator renamed, updating training history", "from", existing.Name, "to", operator.Name)
			if err := rs.trainingRepo.RenameOperator(ctx, tx, existing.Name, operator.Name); err != nil {
				return fmt.Errorf("Failed to rename training history: %w", err)
			}
		}
		if _, err := rs.rosterRepo.Update(ctx, tx, operator); err != nil {
			return fmt.Errorf("Failed to update operator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return operator, nil
}

func (rs *rosterService) SetOperatorAvatar(ctx context.Context, operatorID uuid.UUID, raw []byte) (*types.Operator, error) {
	operator, err := rs.rosterRepo.GetByID(ctx, nil, operatorID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load operator: %w", err)
	}
	if err := rs.avatarService.CreateOperatorAvatarFromImage(ctx, operator, raw); err != nil {
		return nil, err
	}
	if _, err := rs.rosterRepo.Update(ctx, nil, operator); err != nil {
		return nil, fmt.Errorf("Failed to update operator avatar url: %w", err)
	}
	return operator, nil
}

// DeactivateOperator marks a roster entry inactive instead of deleting it so
// training history and report lookups stay intact.
func (rs *rosterService) DeactivateOperator(ctx context.Context, operatorID uuid.UUID) error {
	operator, err := rs.rosterRepo.GetByID(ctx, nil, operatorID)
	if err != nil {
		return fmt.Errorf("Failed to load operator: %w", err)
	}
	operator.Active = false
	if _, err := rs.rosterRepo.Update(ctx, nil, operator); err != nil {
		return fmt.Errorf("Failed to deactivate operator: %w", err)
	}
	return nil
}
