package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-event-calendar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 0, 0, 0, time.UTC)
}

func catalogEvents() []entity.Event {
	events := testEvents()
	events[0].EventDate = day(2025, time.November, 7)
	events[1].EventDate = day(2025, time.November, 10)
	events[2].EventDate = day(2025, time.November, 10)
	events[3].EventDate = day(2025, time.December, 10)
	return events
}

func TestEventCatalog_LoadsOnceAndRefreshes(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEventRepo{events: catalogEvents()}
	catalog := NewEventCatalog(repo, time.UTC, testLogger)

	events, err := catalog.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 4)

	_, err = catalog.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	repo.events = repo.events[:2]
	require.NoError(t, catalog.Refresh(ctx))
	events, err = catalog.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 2, repo.calls)
}

func TestEventCatalog_LoadError(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("db down")}
	catalog := NewEventCatalog(repo, time.UTC, testLogger)

	_, err := catalog.Events(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestEventCatalog_Get(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEventRepo{events: catalogEvents()}
	catalog := NewEventCatalog(repo, time.UTC, testLogger)

	event, err := catalog.Get(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, "Apple Earnings", event.Title)

	repo.events = append(repo.events, entity.Event{ID: "late", Title: "Seeded after load"})
	event, err = catalog.Get(ctx, "late")
	require.NoError(t, err)
	assert.Equal(t, "Seeded after load", event.Title)

	_, err = catalog.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Event not found")
}

func TestEventCatalog_Query(t *testing.T) {
	ctx := context.Background()
	catalog := NewEventCatalog(&fakeEventRepo{events: catalogEvents()}, time.UTC, testLogger)

	events, err := catalog.Query(ctx, EventQuery{StartDate: "2025-11-08", EndDate: "2025-11-30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e3"}, ids(events))

	events, err = catalog.Query(ctx, EventQuery{Filters: EventFilters{Scope: entity.ScopeMarket}, EndDate: "2025-11-30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids(events))

	_, err = catalog.Query(ctx, EventQuery{StartDate: "11/08/2025"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "startDate", vErr.Field)
}
