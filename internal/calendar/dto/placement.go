package dto

// CreatePlacementRequest is the body of POST /calendar/placements.
type CreatePlacementRequest struct {
	EventID     string  `json:"eventId"`
	Date        string  `json:"date"`
	StockTicker *string `json:"stockTicker"`
}

// PlacementListQuery is the query string accepted by GET /calendar/placements.
// StockTicker "null" selects the global calendar; empty selects every scope.
type PlacementListQuery struct {
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	StockTicker string `query:"stockTicker"`
}

// DeletePlacementQuery identifies a placement either by ID or by its natural key.
type DeletePlacementQuery struct {
	PlacementID string `query:"placementId"`
	EventID     string `query:"eventId"`
	Date        string `query:"date"`
	StockTicker string `query:"stockTicker"`
}
