package types

import (
	"time"

	"github.com/google/uuid"
)

// TrainingRecord references its operator by display name, not id. That is how
// the record store has always been keyed; renames orphan history. All lookups
// go through TrainingRepo so an id migration only touches that seam.
type TrainingRecord struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OperatorName   string     `gorm:"index;not null;column:operator_name" json:"operator_name"`
	TrainingName   string     `gorm:"column:training_name" json:"training_name"`
	TrainingType   string     `gorm:"index;column:training_type" json:"training_type"`
	DueDate        *time.Time `gorm:"type:date;column:due_date" json:"due_date"`
	ExpirationDate *time.Time `gorm:"type:date;column:expiration_date" json:"expiration_date"`
	DateSubmitted  *time.Time `gorm:"type:date;column:date_submitted" json:"date_submitted"`
	FileURL        string     `gorm:"column:file_url" json:"file_url"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (TrainingRecord) TableName() string {
	return "red_team_training"
}

// ImportResult is built per import batch and returned to the caller. It is
// never persisted.
type ImportResult struct {
	Imported int               `json:"imported"`
	Errors   []string          `json:"errors"`
	Skipped  []string          `json:"skipped"`
	Records  []*TrainingRecord `json:"records"`
}
