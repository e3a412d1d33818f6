package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/types"
)

type memoryFileService struct {
	saved int
}

func (m *memoryFileService) SaveTrainingFile(operatorName, documentType string, content []byte, originalFilename string) (string, error) {
	m.saved++
	return fmt.Sprintf("/uploads/%s/training/%s/%d.pdf", operatorName, documentType, m.saved), nil
}

func (m *memoryFileService) SaveAvatar(handle string, content []byte) (string, error) {
	return "/uploads/avatars/" + handle + "/test.png", nil
}

func (m *memoryFileService) Remove(relativeURL string) error { return nil }

func newTestTrainingService(t *testing.T) (TrainingService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.Operator{}, &types.TrainingRecord{}))
	require.NoError(t, db.Exec("DELETE FROM team_roster").Error)
	require.NoError(t, db.Exec("DELETE FROM red_team_training").Error)

	log, err := logger.New("test")
	require.NoError(t, err)

	rosterRepo := repos.NewRosterRepo(db, log)
	trainingRepo := repos.NewTrainingRepo(db, log)

	onboarded := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	operators := []*types.Operator{
		{ID: uuid.New(), Name: "anthony lee", OperatorHandle: "alee", Email: "alee@example.mil", OnboardingDate: &onboarded, Active: true},
		{ID: uuid.New(), Name: "sharaya meow", OperatorHandle: "smeow", Email: "smeow@example.mil", OnboardingDate: &onboarded, Active: true},
	}
	_, err = rosterRepo.Create(context.Background(), nil, operators)
	require.NoError(t, err)

	service := NewTrainingService(db, log, matching.DefaultAliases(), rosterRepo, trainingRepo, &memoryFileService{})
	return service, db
}

func TestImportFiles(t *testing.T) {
	service, _ := newTestTrainingService(t)
	ctx := context.Background()

	files := []UploadedFile{
		{Filename: "anthony_lee_nda_20240115.pdf", Content: []byte("pdf")},
		{Filename: "sharaya_meow_code_of_conduct_agreement_20240301.pdf", Content: []byte("pdf")},
	}

	result, err := service.ImportFiles(ctx, files)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Empty(t, result.Errors)
	require.Empty(t, result.Skipped)
	require.Len(t, result.Records, 2)

	record := result.Records[0]
	require.Equal(t, "anthony lee", record.OperatorName)
	require.Equal(t, "2024 Agreement", record.TrainingName)
	require.NotNil(t, record.DueDate)
	require.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), *record.DueDate)
	require.NotEmpty(t, record.FileURL)
}

func TestImportFilesLegalBriefQuarter(t *testing.T) {
	service, _ := newTestTrainingService(t)
	ctx := context.Background()

	result, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "anthony_lee_red_team_legal_brief_Q2_20240510.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	record := result.Records[0]
	require.Equal(t, matching.TrainingTypeLegalBrief, record.TrainingType)
	require.Equal(t, "2024 Q2", record.TrainingName)
	require.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), *record.DueDate)
	require.Equal(t, *record.DueDate, *record.ExpirationDate)
}

func TestImportFilesSkipsDuplicates(t *testing.T) {
	service, _ := newTestTrainingService(t)
	ctx := context.Background()

	first, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "anthony_lee_nda_20240115.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.Imported)

	// Same triple again, different filename spelling.
	second, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "Anthony Lee NDA 20240115.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Equal(t, 0, second.Imported)
	require.Len(t, second.Skipped, 1)
	require.Contains(t, second.Skipped[0], "duplicate")
}

func TestImportFilesInBatchDuplicate(t *testing.T) {
	service, _ := newTestTrainingService(t)
	ctx := context.Background()

	result, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "anthony_lee_nda_20240115.pdf", Content: []byte("pdf")},
		{Filename: "anthony lee nda 20240115 copy.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 1)
}

func TestImportFilesIsolatesBadItems(t *testing.T) {
	service, _ := newTestTrainingService(t)
	ctx := context.Background()

	result, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "mystery_document.pdf", Content: []byte("pdf")},
		{Filename: "nobody_known_nda_20240115.pdf", Content: []byte("pdf")},
		{Filename: "sharaya_meow_nda_20240116.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	require.Contains(t, result.Errors[0], "mystery_document.pdf")
	require.Contains(t, result.Errors[1], "nobody_known_nda_20240115.pdf")
}

func TestImportFilesPersistsRecords(t *testing.T) {
	service, db := newTestTrainingService(t)
	ctx := context.Background()

	_, err := service.ImportFiles(ctx, []UploadedFile{
		{Filename: "anthony_lee_nda_20240115.pdf", Content: []byte("pdf")},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&types.TrainingRecord{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	records, err := service.ListByOperator(ctx, "anthony lee")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Red Team Member Non-Disclosure Agreement", records[0].TrainingType)
}
