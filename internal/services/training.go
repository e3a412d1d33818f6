package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/types"
)

// UploadedFile is one item of an import batch as delivered by the HTTP layer.
type UploadedFile struct {
	Filename string
	Content  []byte
}

// TrainingService turns uploaded training documents into persisted records.
// Each file is parsed and matched independently so one bad filename never
// sinks the batch, and all created records commit in a single transaction.
type TrainingService interface {
	ImportFiles(ctx context.Context, files []UploadedFile) (*types.ImportResult, error)
	ListRecords(ctx context.Context) ([]types.TrainingRecord, error)
	ListByOperator(ctx context.Context, operatorName string) ([]types.TrainingRecord, error)
}

type trainingService struct {
	db           *gorm.DB
	log          *logger.Logger
	aliases      *matching.Aliases
	rosterRepo   repos.RosterRepo
	trainingRepo repos.TrainingRepo
	fileService  FileService
}

func NewTrainingService(
	db *gorm.DB,
	log *logger.Logger,
	aliases *matching.Aliases,
	rosterRepo repos.RosterRepo,
	trainingRepo repos.TrainingRepo,
	fileService FileService,
) TrainingService {
	serviceLog := log.With("service", "TrainingService")
	return &trainingService{
		db:           db,
		log:          serviceLog,
		aliases:      aliases,
		rosterRepo:   rosterRepo,
		trainingRepo: trainingRepo,
		fileService:  fileService,
	}
}

type dedupeKey struct {
	operatorName  string
	trainingType  string
	dateSubmitted time.Time
}

func (ts *trainingService) ImportFiles(ctx context.Context, files []UploadedFile) (*types.ImportResult, error) {
	tracer := otel.Tracer("readiness-backend/training")
	ctx, span := tracer.Start(ctx, "training.import_batch",
		trace.WithAttributes(attribute.Int("import.files", len(files))))
	defer span.End()

	result := &types.ImportResult{
		Errors:  []string{},
		Skipped: []string{},
		Records: []*types.TrainingRecord{},
	}

	roster, err := ts.rosterRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load roster: %w", err)
	}

	tx := ts.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("Failed to begin import transaction: %w", tx.Error)
	}

	// Triples created earlier in this same batch also count as duplicates.
	seen := map[dedupeKey]bool{}

	for _, file := range files {
		record, skipReason, err := ts.importOne(ctx, tx, roster, seen, file)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if skipReason != "" {
			result.Skipped = append(result.Skipped, skipReason)
			continue
		}
		result.Imported++
		result.Records = append(result.Records, record)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		span.SetAttributes(attribute.String("import.commit_error", err.Error()))
		// Item-level outcomes still go back to the caller so it can see what
		// would have been imported.
		return result, fmt.Errorf("Failed to commit import batch: %w", err)
	}

	span.SetAttributes(
		attribute.Int("import.imported", result.Imported),
		attribute.Int("import.skipped", len(result.Skipped)),
		attribute.Int("import.errors", len(result.Errors)),
	)
	ts.log.Info("Import batch finished",
		"imported", result.Imported,
		"skipped", len(result.Skipped),
		"errors", len(result.Errors))
	return result, nil
}

func (ts *trainingService) importOne(
	ctx context.Context,
	tx *gorm.DB,
	roster []types.Operator,
	seen map[dedupeKey]bool,
	file UploadedFile,
) (*types.TrainingRecord, string, error) {
	trainingType, ok := ts.aliases.TrainingType(file.Filename)
	if !ok {
		return nil, "", fmt.Errorf("could not determine training type from filename: %s", file.Filename)
	}

	match := ts.aliases.MatchOperator(file.Filename, roster)
	switch match.Outcome {
	case matching.OutcomeFound:
	case matching.OutcomeAmbiguous:
		return nil, "", fmt.Errorf("filename %s matches more than one operator", file.Filename)
	default:
		return nil, "", fmt.Errorf("could not match an operator for filename: %s", file.Filename)
	}

	record := &types.TrainingRecord{
		ID:           uuid.New(),
		OperatorName: match.OperatorName,
		TrainingType: trainingType,
	}

	if trainingType == matching.TrainingTypeLegalBrief {
		info, ok := matching.ExtractQuarterInfo(file.Filename)
		if !ok {
			return nil, "", fmt.Errorf("could not determine quarter for legal brief: %s", file.Filename)
		}
		submitted := info.Submitted
		quarterEnd := matching.QuarterEnd(info.Year, info.Quarter)
		record.TrainingName = fmt.Sprintf("%d Q%d", info.Year, info.Quarter)
		record.DateSubmitted = &submitted
		record.DueDate = &quarterEnd
		record.ExpirationDate = &quarterEnd
	} else {
		submitted, ok := matching.DateFromFilename(file.Filename)
		if !ok {
			return nil, "", fmt.Errorf("could not extract a submission date from filename: %s", file.Filename)
		}
		yearEnd := time.Date(submitted.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		record.TrainingName = fmt.Sprintf("%d Agreement", submitted.Year())
		record.DateSubmitted = &submitted
		record.DueDate = &yearEnd
		record.ExpirationDate = &yearEnd
	}

	key := dedupeKey{record.OperatorName, record.TrainingType, *record.DateSubmitted}
	if seen[key] {
		return nil, fmt.Sprintf("%s: duplicate of %s %s submitted %s",
			file.Filename, record.OperatorName, record.TrainingType,
			record.DateSubmitted.Format("2006-01-02")), nil
	}
	exists, err := ts.trainingRepo.Exists(ctx, tx, record.OperatorName, record.TrainingType, *record.DateSubmitted)
	if err != nil {
		return nil, "", fmt.Errorf("failed duplicate check for %s: %v", file.Filename, err)
	}
	if exists {
		return nil, fmt.Sprintf("%s: duplicate of %s %s submitted %s",
			file.Filename, record.OperatorName, record.TrainingType,
			record.DateSubmitted.Format("2006-01-02")), nil
	}

	url, err := ts.fileService.SaveTrainingFile(record.OperatorName, record.TrainingType, file.Content, file.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to store %s: %v", file.Filename, err)
	}
	record.FileURL = url

	if _, err := ts.trainingRepo.Create(ctx, tx, []*types.TrainingRecord{record}); err != nil {
		return nil, "", fmt.Errorf("failed to persist record for %s: %v", file.Filename, err)
	}
	seen[key] = true
	return record, "", nil
}

func (ts *trainingService) ListRecords(ctx context.Context) ([]types.TrainingRecord, error) {
	return ts.trainingRepo.ListAll(ctx, nil)
}

func (ts *trainingService) ListByOperator(ctx context.Context, operatorName string) ([]types.TrainingRecord, error) {
	return ts.trainingRepo.ListByOperator(ctx, nil, operatorName)
}
