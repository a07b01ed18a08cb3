package service

import (
	"context"
	"sync"
	"time"

	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const catalogCacheKey = "events"

// EventQuery selects a subset of the catalog. Dates are yyyy-MM-dd and inclusive.
type EventQuery struct {
	Filters   EventFilters
	Search    string
	StartDate string
	EndDate   string
}

// EventCatalog serves the read-only event catalog from an in-memory snapshot.
type EventCatalog interface {
	Events(ctx context.Context) ([]entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	Query(ctx context.Context, q EventQuery) ([]entity.Event, error)
	Refresh(ctx context.Context) error
}

// NewEventCatalog creates a new catalog backed by the event repository.
func NewEventCatalog(repo repository.EventRepository, loc *time.Location, log *logger.Logger) EventCatalog {
	if loc == nil {
		loc = time.UTC
	}
	return &eventCatalog{
		repo:   repo,
		loc:    loc,
		cache:  cache.New(cache.NoExpiration, 0),
		logger: log,
	}
}

type eventCatalog struct {
	mu     sync.Mutex
	repo   repository.EventRepository
	loc    *time.Location
	cache  *cache.Cache
	logger *logger.Logger
}

// Events returns the snapshot in catalog order, loading it on first use.
func (c *eventCatalog) Events(ctx context.Context) ([]entity.Event, error) {
	if v, ok := c.cache.Get(catalogCacheKey); ok {
		return v.([]entity.Event), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(catalogCacheKey); ok {
		return v.([]entity.Event), nil
	}
	return c.load(ctx)
}

// Refresh reloads the snapshot from the repository.
func (c *eventCatalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.load(ctx)
	return err
}

func (c *eventCatalog) load(ctx context.Context) ([]entity.Event, error) {
	events, err := c.repo.FindAll(ctx)
	if err != nil {
		c.logger.Error("Failed to load event catalog", logger.ErrorField(err))
		return nil, err
	}
	c.cache.Set(catalogCacheKey, events, cache.NoExpiration)
	c.logger.Debug("Event catalog loaded", logger.IntField("events", len(events)))
	return events, nil
}

// Get returns one event, falling back to the repository for events added
// since the last refresh.
func (c *eventCatalog) Get(ctx context.Context, id string) (*entity.Event, error) {
	events, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			e := events[i]
			return &e, nil
		}
	}

	event, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Event not found")
	}
	return event, nil
}

// Query filters the catalog and restricts it to the date range.
func (c *eventCatalog) Query(ctx context.Context, q EventQuery) ([]entity.Event, error) {
	if q.StartDate != "" {
		if _, err := utils.ParseDate(q.StartDate, c.loc); err != nil {
			return nil, newValidationError("startDate", "%s", err.Error())
		}
	}
	if q.EndDate != "" {
		if _, err := utils.ParseDate(q.EndDate, c.loc); err != nil {
			return nil, newValidationError("endDate", "%s", err.Error())
		}
	}

	events, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterEvents(events, q.Filters, q.Search)
	if q.StartDate == "" && q.EndDate == "" {
		return filtered, nil
	}

	out := filtered[:0:0]
	for _, e := range filtered {
		day := utils.DateKey(e.EventDate, c.loc)
		if q.StartDate != "" && day < q.StartDate {
			continue
		}
		if q.EndDate != "" && day > q.EndDate {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
