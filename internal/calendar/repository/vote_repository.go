package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
)

// VoteCount is one row of a per-event tally.
type VoteCount struct {
	Vote  entity.VoteValue
	Count int
}

// VoteRepository defines the interface for vote data operations.
type VoteRepository interface {
	FindByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.Vote, error)
	FindByUser(ctx context.Context, userID string) ([]entity.Vote, error)
	Create(ctx context.Context, vote *entity.Vote) error
	Update(ctx context.Context, vote *entity.Vote) error
	CountByEvent(ctx context.Context, eventID string) ([]VoteCount, error)
}

// NewVoteRepository creates a new GORM-based vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

type voteRepository struct {
	db *gorm.DB
}

// FindByUserAndEvent retrieves the caller's vote on one event.
func (r *voteRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.Vote, error) {
	if err := checkID(eventID); err != nil {
		return nil, err
	}
	var vote entity.Vote
	if err := r.db.WithContext(ctx).Where("user_id = ? AND event_id = ?", userID, eventID).First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// FindByUser lists every vote the user has cast.
func (r *voteRepository) FindByUser(ctx context.Context, userID string) ([]entity.Vote, error) {
	var votes []entity.Vote
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// Create creates a new vote in the database.
func (r *voteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// Update overwrites the vote value.
func (r *voteRepository) Update(ctx context.Context, vote *entity.Vote) error {
	return r.db.WithContext(ctx).Model(vote).Update("vote", vote.Vote).Error
}

// CountByEvent recounts every vote cast for the event.
func (r *voteRepository) CountByEvent(ctx context.Context, eventID string) ([]VoteCount, error) {
	var counts []VoteCount
	if checkID(eventID) != nil {
		return counts, nil
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Select("vote, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("vote").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
