package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserPreference stores one completed onboarding questionnaire. A user may
// have several; the latest by created_at wins.
type UserPreference struct {
	ID                 string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             string         `gorm:"not null;index" json:"user_id"`
	Sectors            pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"sectors"`
	InvestmentTimeline string         `gorm:"not null" json:"investment_timeline"`
	CheckFrequency     string         `gorm:"not null" json:"check_frequency"`
	RiskTolerance      string         `gorm:"not null" json:"risk_tolerance"`
	PortfolioStrategy  string         `gorm:"not null" json:"portfolio_strategy"`
	CompletedAt        time.Time      `gorm:"not null" json:"completed_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

func (p *UserPreference) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
