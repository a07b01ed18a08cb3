package service

import (
	"strings"

	"stock-event-calendar/internal/entity"
)

// EventFilters is the structured filter applied to the catalog. Empty
// Category or Scope means "all"; empty Ticker disables the ticker filter.
type EventFilters struct {
	Category entity.EventCategory
	Scope    entity.ImpactScope
	Ticker   string
}

// MatchesFilters reports whether e passes the category, scope and ticker
// filters. Market-wide events pass any ticker filter.
func MatchesFilters(e entity.Event, f EventFilters) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Scope != "" && e.ImpactScope != f.Scope {
		return false
	}
	return matchesTicker(e, f.Ticker)
}

func matchesTicker(e entity.Event, ticker string) bool {
	ticker = strings.ToLower(strings.TrimSpace(ticker))
	if ticker == "" || e.ImpactScope == entity.ScopeMarket {
		return true
	}
	if strings.Contains(strings.ToLower(e.PrimaryTickerValue()), ticker) {
		return true
	}
	for _, t := range e.AffectedTickers {
		if strings.Contains(strings.ToLower(t), ticker) {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether query is a case-insensitive substring of the
// title, description, primary ticker or any affected ticker.
func MatchesSearch(e entity.Event, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(e.PrimaryTickerValue()), query) {
		return true
	}
	for _, t := range e.AffectedTickers {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// FilterEvents returns the events passing both the search and the filters,
// preserving input order.
func FilterEvents(events []entity.Event, f EventFilters, query string) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if MatchesSearch(e, query) && MatchesFilters(e, f) {
			out = append(out, e)
		}
	}
	return out
}
