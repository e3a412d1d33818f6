package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Operator struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string     `gorm:"not null;column:name" json:"name"`
	OperatorHandle  string     `gorm:"uniqueIndex;not null;column:operator_handle" json:"operator_handle"`
	Email           string     `gorm:"uniqueIndex;column:email" json:"email"`
	TeamRole        string     `gorm:"column:team_role" json:"team_role"`
	OperatorLevel   string     `gorm:"column:operator_level;default:team_member" json:"operator_level"`
	OnboardingDate  *time.Time `gorm:"type:date;column:onboarding_date" json:"onboarding_date"`
	Active          bool       `gorm:"not null;default:true;column:active" json:"active"`
	Password        string     `gorm:"column:password" json:"-"`
	AvatarURL       string     `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Operator) TableName() string {
	return "team_roster"
}

// FirstName returns the leading word of the display name, lowercased.
func (o *Operator) FirstName() string {
	return nameField(o.Name, 0)
}

// LastName returns the trailing word of the display name, lowercased.
func (o *Operator) LastName() string {
	return nameField(o.Name, -1)
}

func nameField(name string, idx int) string {
	fields := splitName(name)
	if len(fields) == 0 {
		return ""
	}
	if idx < 0 {
		idx = len(fields) + idx
	}
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func splitName(name string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(name)))
}
