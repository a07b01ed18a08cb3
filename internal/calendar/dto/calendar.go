package dto

import "time"

// MonthQuery is the query string accepted by GET /calendar/month.
type MonthQuery struct {
	Month       string `query:"month"`
	StockTicker string `query:"stockTicker"`
	Category    string `query:"category"`
	Scope       string `query:"scope"`
	Ticker      string `query:"ticker"`
	Search      string `query:"q"`
}

// DayEvent is one event block rendered inside a day cell.
type DayEvent struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	ImpactScope   string  `json:"impact_scope"`
	PrimaryTicker *string `json:"primary_ticker,omitempty"`
	IsFixedDate   bool    `json:"is_fixed_date"`
	IsPlaced      bool    `json:"is_placed"`
	Draggable     bool    `json:"draggable"`
	UserVote      string  `json:"user_vote,omitempty"`
}

// Day is one cell of the month grid.
type Day struct {
	Date      string     `json:"date"`
	InMonth   bool       `json:"in_month"`
	IsToday   bool       `json:"is_today"`
	Events    []DayEvent `json:"events"`
	Remaining int        `json:"remaining"`
}

// MonthView is the full Sunday-first month grid.
type MonthView struct {
	Month       string  `json:"month"`
	StockTicker string  `json:"stock_ticker,omitempty"`
	Weeks       [][]Day `json:"weeks"`
	EventCount  int     `json:"event_count"`
}

// DragStep is one pointer transition in a drag gesture.
type DragStep struct {
	Type string `json:"type"` // enter_day, leave_day, enter_trash, leave_trash
	Date string `json:"date,omitempty"`
}

// DropRequest replays a full drag gesture.
type DropRequest struct {
	EventID     string     `json:"eventId"`
	SourceDate  string     `json:"sourceDate"`
	StockTicker string     `json:"stockTicker"`
	Steps       []DragStep `json:"steps"`
}

// Notice is a transient confirmation message.
type Notice struct {
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DropResult is the outcome of applying a drop.
type DropResult struct {
	Placed  bool    `json:"placed"`
	Removed bool    `json:"removed"`
	Date    string  `json:"date,omitempty"`
	Notice  *Notice `json:"notice,omitempty"`
}
