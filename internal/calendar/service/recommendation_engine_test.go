package service

import (
	"fmt"
	"testing"

	"stock-event-calendar/internal/calendar/config"
	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directory() []entity.Stock {
	return []entity.Stock{
		{Ticker: "AAPL", Name: "Apple Inc.", Type: entity.StockTypeStock, Sector: "Technology"},
		{Ticker: "NVDA", Name: "NVIDIA Corporation", Type: entity.StockTypeStock, Sector: "Technology"},
		{Ticker: "KO", Name: "Coca-Cola Company", Type: entity.StockTypeStock, Sector: "Consumer Defensive"},
		{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Type: entity.StockTypeStock, Sector: "Financial"},
		{Ticker: "XOM", Name: "Exxon Mobil Corporation", Type: entity.StockTypeStock, Sector: "Energy"},
		{Ticker: "BTC", Name: "Bitcoin", Type: entity.StockTypeCrypto, Sector: "Cryptocurrency"},
	}
}

func findRec(t *testing.T, recs []dto.StockRecommendation, ticker string) dto.StockRecommendation {
	t.Helper()
	for _, r := range recs {
		if r.Ticker == ticker {
			return r
		}
	}
	require.Failf(t, "recommendation missing", "ticker %s", ticker)
	return dto.StockRecommendation{}
}

func TestGenerate_PerfectAggressiveTechMatch(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationRules())
	recs := engine.Generate(dto.Questionnaire{
		Sectors:            []string{"Technology"},
		RiskTolerance:      "5",
		InvestmentTimeline: "1",
		PortfolioStrategy:  "celebrity",
	}, directory())

	require.NotEmpty(t, recs)
	nvda := recs[0]
	assert.Equal(t, "NVDA", nvda.Ticker)
	assert.Equal(t, 100, nvda.Score)
	assert.Equal(t, 100, nvda.ScorePercentage)
	assert.Equal(t, "Excellent Match", nvda.MatchQuality)
	assert.Equal(t, []string{
		"Matches your interest in Technology",
		"High growth potential for aggressive investors",
		"High volatility suitable for short-term trading",
		"Popular among investors and influencers",
	}, nvda.Reasons)
}

func TestGenerate_Bands(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationRules())

	t.Run("conservative long-term diy", func(t *testing.T) {
		recs := engine.Generate(dto.Questionnaire{
			Sectors:            []string{"Technology"},
			RiskTolerance:      "1",
			InvestmentTimeline: "4",
			PortfolioStrategy:  "diy",
		}, directory())

		aapl := findRec(t, recs, "AAPL")
		assert.Equal(t, 40+30+20+5, aapl.Score)
		assert.Len(t, aapl.Reasons, 3)

		jpm := findRec(t, recs, "JPM")
		assert.Equal(t, 30+20, jpm.Score)
	})

	t.Run("aggressive mix", func(t *testing.T) {
		recs := engine.Generate(dto.Questionnaire{
			Sectors:            []string{"Technology"},
			RiskTolerance:      "4",
			InvestmentTimeline: "5",
			PortfolioStrategy:  "mix",
		}, directory())

		nvda := findRec(t, recs, "NVDA")
		assert.Equal(t, 40+30+5+5, nvda.Score)
		assert.Contains(t, nvda.Reasons, "Trending stock")

		btc := findRec(t, recs, "BTC")
		assert.Equal(t, 30+5, btc.Score)
	})

	t.Run("medium timeline gives every stock ten points", func(t *testing.T) {
		recs := engine.Generate(dto.Questionnaire{
			Sectors:            []string{"Healthcare"},
			RiskTolerance:      "3",
			InvestmentTimeline: "3",
			PortfolioStrategy:  "diy",
		}, directory())

		xom := findRec(t, recs, "XOM")
		assert.Equal(t, 10, xom.Score)
		assert.Empty(t, xom.Reasons)
		assert.Equal(t, "Basic Match", xom.MatchQuality)

		ko := findRec(t, recs, "KO")
		assert.Equal(t, 20+10, ko.Score)
		assert.Equal(t, []string{"Stable investment option"}, ko.Reasons)
	})
}

func TestGenerate_AllSectorsAndMapping(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationRules())

	recs := engine.Generate(dto.Questionnaire{
		Sectors:            []string{AllSectorsChoice},
		RiskTolerance:      "3",
		InvestmentTimeline: "5",
		PortfolioStrategy:  "diy",
	}, directory())
	require.Len(t, recs, len(directory()))
	ko := findRec(t, recs, "KO")
	assert.Equal(t, 20+20+20, ko.Score)
	assert.Equal(t, "Matches your broad sector interest", ko.Reasons[0])

	recs = engine.Generate(dto.Questionnaire{
		Sectors:           []string{"Consumer Goods"},
		RiskTolerance:     "9",
		PortfolioStrategy: "diy",
	}, directory())
	require.Len(t, recs, 1)
	assert.Equal(t, "KO", recs[0].Ticker)
	assert.Equal(t, 45, recs[0].Score)
	assert.Equal(t, []string{"Matches your interest in Consumer Goods"}, recs[0].Reasons)
}

func TestGenerate_ConfiguredMappingIsCaseInsensitive(t *testing.T) {
	rules := RulesFromConfig(config.Recommendation{
		SectorMapping: map[string][]string{"consumer goods": {"Consumer Defensive"}},
	})
	engine := NewRecommendationEngine(rules)

	recs := engine.Generate(dto.Questionnaire{Sectors: []string{"Consumer Goods"}}, directory())
	require.Len(t, recs, 1)
	assert.Equal(t, "KO", recs[0].Ticker)
}

func TestGenerate_LimitsAndOrdering(t *testing.T) {
	var stocks []entity.Stock
	for i := 0; i < 20; i++ {
		stocks = append(stocks, entity.Stock{Ticker: fmt.Sprintf("T%02d", i), Sector: "Technology"})
	}
	stocks = append(stocks, entity.Stock{Ticker: "NVDA", Sector: "Technology"})

	engine := NewRecommendationEngine(DefaultRecommendationRules())
	q := dto.Questionnaire{Sectors: []string{"Technology"}, RiskTolerance: "5", InvestmentTimeline: "1", PortfolioStrategy: "celebrity"}
	recs := engine.Generate(q, stocks)

	require.Len(t, recs, 12)
	assert.Equal(t, "NVDA", recs[0].Ticker)
	for i := 1; i < len(recs); i++ {
		assert.Equal(t, fmt.Sprintf("T%02d", i-1), recs[i].Ticker, "equal scores keep directory order")
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
		assert.GreaterOrEqual(t, recs[i].Score, 1)
		assert.LessOrEqual(t, recs[i].Score, MaxRecommendationScore)
	}

	assert.Equal(t, recs, engine.Generate(q, stocks))
}

func TestGenerate_DuplicateTickersScoredOnce(t *testing.T) {
	stocks := append(directory(), entity.Stock{Ticker: "NVDA", Sector: "Technology"})
	engine := NewRecommendationEngine(DefaultRecommendationRules())
	recs := engine.Generate(dto.Questionnaire{Sectors: []string{"Technology"}}, stocks)

	count := 0
	for _, r := range recs {
		if r.Ticker == "NVDA" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMatchQuality(t *testing.T) {
	tests := map[int]string{
		100: "Excellent Match",
		80:  "Excellent Match",
		79:  "Good Match",
		60:  "Good Match",
		59:  "Moderate Match",
		40:  "Moderate Match",
		39:  "Basic Match",
		5:   "Basic Match",
	}
	for score, want := range tests {
		assert.Equal(t, want, MatchQuality(score), "score %d", score)
	}
}
