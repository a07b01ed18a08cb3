package dto

// EventListQuery is the query string accepted by GET /events.
type EventListQuery struct {
	Category  string `query:"category"`
	Scope     string `query:"scope"`
	Ticker    string `query:"ticker"`
	Search    string `query:"q"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}
