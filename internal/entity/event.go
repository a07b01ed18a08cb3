package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EventCategory classifies what kind of market-moving event an Event is.
type EventCategory string

const (
	CategoryEarnings        EventCategory = "earnings"
	CategoryEconomicData    EventCategory = "economic_data"
	CategoryFedPolicy       EventCategory = "fed_policy"
	CategoryGovPolicy       EventCategory = "gov_policy"
	CategoryRegulatory      EventCategory = "regulatory"
	CategoryCorporateAction EventCategory = "corporate_action"
	CategoryMacroEvent      EventCategory = "macro_event"
)

// EventCategories lists every valid category in display order.
var EventCategories = []EventCategory{
	CategoryEarnings,
	CategoryEconomicData,
	CategoryFedPolicy,
	CategoryGovPolicy,
	CategoryRegulatory,
	CategoryCorporateAction,
	CategoryMacroEvent,
}

// ImpactScope is the breadth of an event's market effect.
type ImpactScope string

const (
	ScopeSingleStock ImpactScope = "single_stock"
	ScopeSector      ImpactScope = "sector"
	ScopeMarket      ImpactScope = "market"
)

// ImpactScopes lists every valid scope.
var ImpactScopes = []ImpactScope{ScopeSingleStock, ScopeSector, ScopeMarket}

// IsValid reports whether c is a known category.
func (c EventCategory) IsValid() bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known scope.
func (s ImpactScope) IsValid() bool {
	for _, v := range ImpactScopes {
		if v == s {
			return true
		}
	}
	return false
}

// Event is a read-only catalog entry. Users never mutate it; they place it on
// their own calendars and vote on it.
type Event struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"not null" json:"description"`
	EventDate       time.Time      `gorm:"not null;index" json:"event_date"`
	EventTime       *string        `json:"event_time,omitempty"`
	Category        EventCategory  `gorm:"not null;index" json:"category"`
	ImpactScope     ImpactScope    `gorm:"column:impact_scope;not null;index" json:"impact_scope"`
	PrimaryTicker   *string        `gorm:"index" json:"primary_ticker,omitempty"`
	AffectedTickers pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"affected_tickers"`
	CertaintyLevel  string         `gorm:"not null;default:confirmed" json:"certainty_level"`
	SourceURL       *string        `json:"source_url,omitempty"`
	IsDefault       bool           `gorm:"not null;default:true" json:"is_default"`
	IsFixedDate     bool           `gorm:"not null;default:false" json:"is_fixed_date"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Event model.
func (Event) TableName() string {
	return "events"
}

// BeforeCreate assigns a UUID when the caller did not.
func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// PrimaryTickerValue returns the primary ticker or "" when absent.
func (e Event) PrimaryTickerValue() string {
	if e.PrimaryTicker == nil {
		return ""
	}
	return *e.PrimaryTicker
}
