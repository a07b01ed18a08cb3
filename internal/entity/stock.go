package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockType is the instrument class of a Stock.
type StockType string

const (
	StockTypeStock  StockType = "stock"
	StockTypeCrypto StockType = "crypto"
	StockTypeETF    StockType = "etf"
	StockTypeIndex  StockType = "index"
)

type Stock struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Ticker    string    `gorm:"not null;uniqueIndex" json:"ticker"`
	Name      string    `gorm:"not null" json:"name"`
	Type      StockType `gorm:"not null;index" json:"type"`
	Sector    string    `gorm:"not null;index" json:"sector"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Stock) TableName() string {
	return "stocks"
}

func (s *Stock) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
