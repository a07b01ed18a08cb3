package service

import (
	"testing"

	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/utils"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func testEvents() []entity.Event {
	return []entity.Event{
		{ID: "e1", Title: "CPI Release", Description: "Consumer price index", Category: entity.CategoryEconomicData, ImpactScope: entity.ScopeMarket},
		{ID: "e2", Title: "Apple Earnings", Description: "Quarterly results", Category: entity.CategoryEarnings, ImpactScope: entity.ScopeSingleStock, PrimaryTicker: utils.ToPointer("AAPL"), AffectedTickers: pq.StringArray{"AAPL"}},
		{ID: "e3", Title: "Chip export rules", Description: "New restrictions", Category: entity.CategoryRegulatory, ImpactScope: entity.ScopeSector, AffectedTickers: pq.StringArray{"NVDA", "AMD"}},
		{ID: "e4", Title: "FOMC Meeting", Description: "Rate decision", Category: entity.CategoryFedPolicy, ImpactScope: entity.ScopeMarket, IsFixedDate: true},
	}
}

func ids(events []entity.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestMatchesFilters_MarketScopeBypassesTicker(t *testing.T) {
	event := entity.Event{ID: "m", ImpactScope: entity.ScopeMarket}
	assert.True(t, MatchesFilters(event, EventFilters{Ticker: "AAPL"}))
}

func TestFilterEvents(t *testing.T) {
	events := testEvents()

	tests := []struct {
		name    string
		filters EventFilters
		query   string
		want    []string
	}{
		{name: "no filters", want: []string{"e1", "e2", "e3", "e4"}},
		{name: "category", filters: EventFilters{Category: entity.CategoryEarnings}, want: []string{"e2"}},
		{name: "scope", filters: EventFilters{Scope: entity.ScopeMarket}, want: []string{"e1", "e4"}},
		{name: "ticker substring case-insensitive", filters: EventFilters{Ticker: "nvd"}, want: []string{"e1", "e3", "e4"}},
		{name: "ticker on primary", filters: EventFilters{Ticker: "aapl"}, want: []string{"e1", "e2", "e4"}},
		{name: "search title", query: "fomc", want: []string{"e4"}},
		{name: "search description", query: "PRICE", want: []string{"e1"}},
		{name: "search affected ticker", query: "amd", want: []string{"e3"}},
		{name: "search and filter", filters: EventFilters{Scope: entity.ScopeSingleStock}, query: "earnings", want: []string{"e2"}},
		{name: "no match", query: "bitcoin", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.filters, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterEvents_Idempotent(t *testing.T) {
	f := EventFilters{Ticker: "AAPL"}
	once := FilterEvents(testEvents(), f, "e")
	twice := FilterEvents(once, f, "e")
	assert.Equal(t, once, twice)
}
