package dto

import (
	"time"

	"stock-event-calendar/internal/entity"
)

// SaveManualPortfolioRequest is the body of POST /portfolio/manual.
type SaveManualPortfolioRequest struct {
	Tickers []string `json:"tickers"`
}

// SyncPortfolioRequest is the optional body of POST /portfolio/sync.
type SyncPortfolioRequest struct {
	PortfolioID string `json:"portfolioId"`
}

// HoldingsSummary aggregates a user's holdings across portfolios.
type HoldingsSummary struct {
	TotalPortfolios  int      `json:"total_portfolios"`
	TotalHoldings    int      `json:"total_holdings"`
	UniqueTickers    []string `json:"unique_tickers"`
	ConnectedBrokers []string `json:"connected_brokers"`
}

// HoldingsResponse is returned by GET /portfolio/holdings.
type HoldingsResponse struct {
	Portfolios []entity.Portfolio `json:"portfolios"`
	Summary    HoldingsSummary    `json:"summary"`
}

// SyncResult reports the outcome for one portfolio.
type SyncResult struct {
	PortfolioID   string `json:"portfolio_id"`
	BrokerName    string `json:"broker_name"`
	Status        string `json:"status"`
	HoldingsCount int    `json:"holdings_count"`
	Error         string `json:"error,omitempty"`
}

// SyncResponse is returned by POST /portfolio/sync.
type SyncResponse struct {
	Holdings         []entity.PortfolioHolding `json:"holdings"`
	LastSyncAt       time.Time                 `json:"last_sync_at"`
	PortfoliosSynced int                       `json:"portfolios_synced"`
	Results          []SyncResult              `json:"results"`
}

// ManualPortfolioResponse is returned by POST /portfolio/manual.
type ManualPortfolioResponse struct {
	PortfolioID  string                    `json:"portfolio_id"`
	Holdings     []entity.PortfolioHolding `json:"holdings"`
	TickersAdded int                       `json:"tickers_added"`
	Created      bool                      `json:"-"`
}
