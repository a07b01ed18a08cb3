package common

const (
	// DateLayout is the calendar-date format used for placements and query params.
	DateLayout = "2006-01-02"
	// MonthLayout identifies a calendar month in query params.
	MonthLayout = "2006-01"

	KVKeyPlacements     = "event-placements-%s"
	KVKeyPlacementsTick = "event-placements-%s-%s"
	KVKeyRecentSearches = "stock-recent-searches-%s"

	RedisKeyPortfolioSync = "portfolio-sync:"

	ContextKeyUserID = "user_id"
)
