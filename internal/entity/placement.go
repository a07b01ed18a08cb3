package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Placement is one user's choice to show an event on a calendar date other
// than its native date. StockTicker scopes it to a per-ticker calendar; nil
// means the global calendar.
type Placement struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"not null" json:"user_id"`
	EventID     string    `gorm:"type:uuid;not null" json:"event_id"`
	Date        string    `gorm:"not null" json:"date"`
	StockTicker *string   `json:"stock_ticker"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Placement) TableName() string {
	return "placements"
}

func (p *Placement) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
