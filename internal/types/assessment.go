package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFreeForm       = "free_form"
)

type Assessment struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string               `gorm:"not null;column:title" json:"title"`
	Description string               `gorm:"column:description" json:"description"`
	IsActive    bool                 `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedBy   *uuid.UUID           `gorm:"type:uuid;column:created_by" json:"created_by"`
	Questions   []AssessmentQuestion `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
	CreatedAt   time.Time            `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type AssessmentQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID  uuid.UUID      `gorm:"type:uuid;index;not null;column:assessment_id" json:"assessment_id"`
	QuestionText  string         `gorm:"not null;column:question_text" json:"question_text"`
	QuestionType  string         `gorm:"not null;column:question_type" json:"question_type"`
	Options       datatypes.JSON `gorm:"type:jsonb;column:options" json:"options,omitempty"`
	CorrectAnswer string         `gorm:"column:correct_answer" json:"correct_answer"`
	Points        int            `gorm:"not null;default:1;column:points" json:"points"`
	Order         int            `gorm:"column:question_order" json:"order"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;column:category_id" json:"category_id"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
