package http

import (
	"strings"

	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/internal/entity"
)

const filterAll = "all"

// parseFilters turns query parameters into catalog filters. "all" and empty
// disable a filter; unknown enum values are rejected.
func parseFilters(category, scope, ticker string) (service.EventFilters, string) {
	var f service.EventFilters

	category = strings.TrimSpace(category)
	if category != "" && category != filterAll {
		c := entity.EventCategory(category)
		if !c.IsValid() {
			return f, "Invalid category"
		}
		f.Category = c
	}

	scope = strings.TrimSpace(scope)
	if scope != "" && scope != filterAll {
		s := entity.ImpactScope(scope)
		if !s.IsValid() {
			return f, "Invalid scope"
		}
		f.Scope = s
	}

	f.Ticker = strings.TrimSpace(ticker)
	return f, ""
}
