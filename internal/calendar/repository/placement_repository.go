package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
)

// PlacementFilter narrows a user's placements. A nil StockTicker with
// GlobalOnly set selects the global calendar only.
type PlacementFilter struct {
	StartDate   string
	EndDate     string
	StockTicker *string
	GlobalOnly  bool
}

// PlacementRepository defines the interface for durable placement data operations.
type PlacementRepository interface {
	Create(ctx context.Context, placement *entity.Placement) error
	FindByID(ctx context.Context, userID, id string) (*entity.Placement, error)
	FindByKey(ctx context.Context, userID, eventID, date string, stockTicker *string) (*entity.Placement, error)
	FindByUser(ctx context.Context, userID string, filter PlacementFilter) ([]entity.Placement, error)
	Delete(ctx context.Context, placement *entity.Placement) error
}

// NewPlacementRepository creates a new GORM-based placement repository.
func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

type placementRepository struct {
	db *gorm.DB
}

// Create creates a new placement in the database.
func (r *placementRepository) Create(ctx context.Context, placement *entity.Placement) error {
	return r.db.WithContext(ctx).Create(placement).Error
}

// FindByID retrieves a placement owned by userID.
func (r *placementRepository) FindByID(ctx context.Context, userID, id string) (*entity.Placement, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var placement entity.Placement
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&placement).Error; err != nil {
		return nil, err
	}
	return &placement, nil
}

// FindByKey retrieves a placement by its natural key. A nil ticker matches
// only global placements.
func (r *placementRepository) FindByKey(ctx context.Context, userID, eventID, date string, stockTicker *string) (*entity.Placement, error) {
	if err := checkID(eventID); err != nil {
		return nil, err
	}
	var placement entity.Placement
	q := r.db.WithContext(ctx).Where("user_id = ? AND event_id = ? AND date = ?", userID, eventID, date)
	if stockTicker == nil {
		q = q.Where("stock_ticker IS NULL")
	} else {
		q = q.Where("stock_ticker = ?", *stockTicker)
	}
	if err := q.First(&placement).Error; err != nil {
		return nil, err
	}
	return &placement, nil
}

// FindByUser lists a user's placements ordered by date.
func (r *placementRepository) FindByUser(ctx context.Context, userID string, filter PlacementFilter) ([]entity.Placement, error) {
	var placements []entity.Placement
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.StartDate != "" {
		q = q.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("date <= ?", filter.EndDate)
	}
	switch {
	case filter.GlobalOnly:
		q = q.Where("stock_ticker IS NULL")
	case filter.StockTicker != nil:
		q = q.Where("stock_ticker = ?", *filter.StockTicker)
	}
	if err := q.Order("date ASC, created_at ASC").Find(&placements).Error; err != nil {
		return nil, err
	}
	return placements, nil
}

// Delete removes a placement.
func (r *placementRepository) Delete(ctx context.Context, placement *entity.Placement) error {
	return r.db.WithContext(ctx).Delete(placement).Error
}
