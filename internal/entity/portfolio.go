package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BrokerName identifies where a portfolio's holdings come from.
type BrokerName string

const (
	BrokerRobinhood    BrokerName = "robinhood"
	BrokerTDAmeritrade BrokerName = "td_ameritrade"
	BrokerETrade       BrokerName = "etrade"
	BrokerManual       BrokerName = "manual"
)

// ConnectionStatus is the state of a broker link.
type ConnectionStatus string

const (
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionError        ConnectionStatus = "error"
)

type Portfolio struct {
	ID               string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string             `gorm:"not null;index" json:"user_id"`
	BrokerName       BrokerName         `gorm:"not null" json:"broker_name"`
	ConnectionStatus ConnectionStatus   `gorm:"not null" json:"connection_status"`
	LastSyncAt       *time.Time         `json:"last_sync_at"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	Holdings         []PortfolioHolding `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"holdings"`
}

func (Portfolio) TableName() string {
	return "user_portfolios"
}

func (p *Portfolio) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PortfolioHolding is one position. Raw keeps the broker payload it was built from.
type PortfolioHolding struct {
	ID           string              `gorm:"type:uuid;primaryKey" json:"id"`
	PortfolioID  string              `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Ticker       string              `gorm:"not null" json:"ticker"`
	Quantity     decimal.Decimal     `gorm:"type:numeric;not null" json:"quantity"`
	CostBasis    decimal.NullDecimal `gorm:"type:numeric" json:"cost_basis"`
	CurrentValue decimal.NullDecimal `gorm:"type:numeric" json:"current_value"`
	Raw          datatypes.JSON      `gorm:"type:jsonb" json:"-"`
	LastUpdated  time.Time           `gorm:"not null" json:"last_updated"`
}

func (PortfolioHolding) TableName() string {
	return "portfolio_holdings"
}

func (h *PortfolioHolding) BeforeCreate(_ *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
