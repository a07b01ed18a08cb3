package service

import (
	"context"
	"fmt"

	"stock-event-calendar/internal/entity"

	"github.com/shopspring/decimal"
)

// BrokerPosition is one position reported by a broker.
type BrokerPosition struct {
	Ticker       string          `json:"ticker"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostBasis    decimal.Decimal `json:"cost_basis"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

// BrokerClient fetches the current positions held at a broker.
type BrokerClient interface {
	Positions(ctx context.Context, broker entity.BrokerName) ([]BrokerPosition, error)
}

// NewMockBroker returns a broker client serving a fixed set of positions
// per broker.
func NewMockBroker() BrokerClient {
	return mockBroker{}
}

type mockBroker struct{}

func position(ticker, qty, cost, value string) BrokerPosition {
	return BrokerPosition{
		Ticker:       ticker,
		Quantity:     decimal.RequireFromString(qty),
		CostBasis:    decimal.RequireFromString(cost),
		CurrentValue: decimal.RequireFromString(value),
	}
}

var mockPositions = map[entity.BrokerName][]BrokerPosition{
	entity.BrokerRobinhood: {
		position("AAPL", "10", "150.00", "1750.50"),
		position("TSLA", "5", "220.00", "1100.25"),
		position("NVDA", "8", "450.00", "3600.00"),
		position("MSFT", "15", "280.00", "4200.75"),
		position("GOOGL", "6", "125.00", "750.30"),
	},
	entity.BrokerTDAmeritrade: {
		position("SPY", "20", "420.00", "8400.00"),
		position("VOO", "12", "380.00", "4560.00"),
		position("QQQ", "8", "350.00", "2800.00"),
		position("AMZN", "10", "135.00", "1350.00"),
		position("META", "7", "280.00", "1960.00"),
		position("NFLX", "4", "450.00", "1800.00"),
	},
	entity.BrokerETrade: {
		position("VTI", "25", "220.00", "5500.00"),
		position("BND", "30", "75.00", "2250.00"),
		position("AMD", "15", "95.00", "1425.00"),
		position("INTC", "20", "35.00", "700.00"),
		position("DIS", "12", "90.00", "1080.00"),
	},
}

func (mockBroker) Positions(ctx context.Context, broker entity.BrokerName) ([]BrokerPosition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	positions, ok := mockPositions[broker]
	if !ok {
		return nil, fmt.Errorf("unsupported broker %q", broker)
	}
	out := make([]BrokerPosition, len(positions))
	copy(out, positions)
	return out, nil
}
