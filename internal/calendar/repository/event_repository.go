package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository defines the interface for catalog event data operations.
type EventRepository interface {
	FindAll(ctx context.Context) ([]entity.Event, error)
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	Upsert(ctx context.Context, events []entity.Event) error
}

// NewEventRepository creates a new GORM-based event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

type eventRepository struct {
	db *gorm.DB
}

// FindAll returns every event in catalog order.
func (r *eventRepository) FindAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := r.db.WithContext(ctx).Order("event_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByID retrieves an event by its ID.
func (r *eventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var event entity.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Upsert inserts seed events, keyed on (title, event_date), updating the
// mutable columns of rows that already exist.
func (r *eventRepository) Upsert(ctx context.Context, events []entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "title"}, {Name: "event_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "category", "impact_scope", "primary_ticker",
			"affected_tickers", "is_fixed_date", "updated_at",
		}),
	}).CreateInBatches(events, 100).Error
}
