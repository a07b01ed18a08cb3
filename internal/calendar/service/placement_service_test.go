package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlacementService() (PlacementService, *fakePlacementRepo) {
	repo := &fakePlacementRepo{}
	catalog := NewEventCatalog(&fakeEventRepo{events: catalogEvents()}, time.UTC, testLogger)
	return NewPlacementService(repo, catalog, time.UTC, testLogger), repo
}

func TestPlacementService_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestPlacementService()

	first, created, err := svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, first.StockTicker)

	second, created, err := svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12", StockTicker: utils.ToPointer("null")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	scoped, created, err := svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12", StockTicker: utils.ToPointer(" aapl ")})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, scoped.StockTicker)
	assert.Equal(t, "AAPL", *scoped.StockTicker)

	assert.Len(t, repo.placements, 2)
}

func TestPlacementService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPlacementService()

	_, _, err := svc.Create(ctx, "", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12"})
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, _, err = svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, _, err = svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "12-11-2025"})
	assert.ErrorAs(t, err, &vErr)

	_, _, err = svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "nope", Date: "2025-11-12"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e4", Date: "2025-11-12"})
	assert.ErrorIs(t, err, ErrFixedDateEvent)
}

func TestPlacementService_CreateSurfacesPersistenceFailure(t *testing.T) {
	svc, repo := newTestPlacementService()
	repo.createErr = errors.New("insert failed")

	_, _, err := svc.Create(context.Background(), "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12"})
	assert.EqualError(t, err, "insert failed")
}

func TestPlacementService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPlacementService()

	for _, req := range []dto.CreatePlacementRequest{
		{EventID: "e1", Date: "2025-11-03"},
		{EventID: "e2", Date: "2025-11-12"},
		{EventID: "e2", Date: "2025-11-12", StockTicker: utils.ToPointer("AAPL")},
		{EventID: "e3", Date: "2025-12-01"},
	} {
		_, _, err := svc.Create(ctx, "user_1", req)
		require.NoError(t, err)
	}
	_, _, err := svc.Create(ctx, "user_2", dto.CreatePlacementRequest{EventID: "e1", Date: "2025-11-03"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "user_1", dto.PlacementListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	global, err := svc.List(ctx, "user_1", dto.PlacementListQuery{StockTicker: "null", StartDate: "2025-11-01", EndDate: "2025-11-30"})
	require.NoError(t, err)
	assert.Len(t, global, 2)

	aapl, err := svc.List(ctx, "user_1", dto.PlacementListQuery{StockTicker: "aapl"})
	require.NoError(t, err)
	require.Len(t, aapl, 1)
	assert.Equal(t, "e2", aapl[0].EventID)

	_, err = svc.List(ctx, "user_1", dto.PlacementListQuery{EndDate: "soon"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestPlacementService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestPlacementService()

	byID, _, err := svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e1", Date: "2025-11-03"})
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, "user_1", dto.CreatePlacementRequest{EventID: "e2", Date: "2025-11-12", StockTicker: utils.ToPointer("AAPL")})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "user_2", dto.DeletePlacementQuery{PlacementID: byID.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := svc.Delete(ctx, "user_1", dto.DeletePlacementQuery{PlacementID: byID.ID})
	require.NoError(t, err)
	assert.Equal(t, byID.ID, removed.ID)

	_, err = svc.Delete(ctx, "user_1", dto.DeletePlacementQuery{EventID: "e2", Date: "2025-11-12"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Placement not found")

	_, err = svc.Delete(ctx, "user_1", dto.DeletePlacementQuery{EventID: "e2", Date: "2025-11-12", StockTicker: "AAPL"})
	require.NoError(t, err)
	assert.Empty(t, repo.placements)

	_, err = svc.Delete(ctx, "user_1", dto.DeletePlacementQuery{EventID: "e2"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must provide placementId or eventId+date", vErr.Message)
}
