package dto

// AddRecentSearchRequest is the body of POST /stocks/recent.
type AddRecentSearchRequest struct {
	Ticker string `json:"ticker"`
}
