package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteValue is a user's opinion on whether an event will move the market.
type VoteValue string

const (
	VoteYes       VoteValue = "yes"
	VoteNo        VoteValue = "no"
	VoteNoComment VoteValue = "no_comment"
)

// IsValid reports whether v is one of the three accepted values.
func (v VoteValue) IsValid() bool {
	switch v {
	case VoteYes, VoteNo, VoteNoComment:
		return true
	}
	return false
}

// Vote is unique per (user_id, event_id); a second vote updates the row.
type Vote struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_votes_user_event" json:"user_id"`
	EventID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_event;index" json:"event_id"`
	Vote      VoteValue `gorm:"not null" json:"vote"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
