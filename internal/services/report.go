package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/reports"
	"github.com/redcell/readiness-backend/internal/repos"
)

// ReportService assembles compliance reports from a fresh read of the roster
// and record store on every call.
type ReportService interface {
	AnnualReport(ctx context.Context) (*reports.AnnualReport, error)
	QuarterlyReport(ctx context.Context) (*reports.QuarterlyReport, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	rosterRepo   repos.RosterRepo
	trainingRepo repos.TrainingRepo
	policy       reports.AnnualPolicy
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	rosterRepo repos.RosterRepo,
	trainingRepo repos.TrainingRepo,
	policy reports.AnnualPolicy,
) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{
		db:           db,
		log:          serviceLog,
		rosterRepo:   rosterRepo,
		trainingRepo: trainingRepo,
		policy:       policy,
	}
}

func (rs *reportService) AnnualReport(ctx context.Context) (*reports.AnnualReport, error) {
	roster, err := rs.rosterRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load roster: %w", err)
	}
	records, err := rs.trainingRepo.ListByTypes(ctx, nil, rs.annualTypes())
	if err != nil {
		return nil, fmt.Errorf("Failed to load training records: %w", err)
	}
	return reports.BuildAnnual(rs.policy, roster, records, time.Now().UTC()), nil
}

func (rs *reportService) QuarterlyReport(ctx context.Context) (*reports.QuarterlyReport, error) {
	roster, err := rs.rosterRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load roster: %w", err)
	}
	briefings, err := rs.trainingRepo.ListByTypes(ctx, nil, []string{matching.TrainingTypeLegalBrief})
	if err != nil {
		return nil, fmt.Errorf("Failed to load legal brief records: %w", err)
	}
	return reports.BuildQuarterly(roster, briefings, time.Now().UTC()), nil
}

// annualTypes is the union of every policy year's required list, so records
// filed under a past policy still show up.
func (rs *reportService) annualTypes() []string {
	seen := map[string]bool{}
	var all []string
	for _, trainingType := range rs.policy.Default {
		if !seen[trainingType] {
			seen[trainingType] = true
			all = append(all, trainingType)
		}
	}
	for _, required := range rs.policy.ByYear {
		for _, trainingType := range required {
			if !seen[trainingType] {
				seen[trainingType] = true
				all = append(all, trainingType)
			}
		}
	}
	return all
}
