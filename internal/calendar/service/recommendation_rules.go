package service

import (
	"strings"

	"stock-event-calendar/internal/calendar/config"
)

// AllSectorsChoice is the onboarding sentinel meaning "no sector preference".
const AllSectorsChoice = "All sectors / Not sure yet"

// RecommendationRules holds the categorisation tables the engine scores
// against. Tickers are matched case-sensitively as stored in the directory.
type RecommendationRules struct {
	AllSectorsChoice string
	Conservative     []string
	Moderate         []string
	Aggressive       []string
	DayTrading       []string
	LongTerm         []string
	Trending         []string
	SectorMapping    map[string][]string
	MaxResults       int
	MinResults       int
}

// DefaultRecommendationRules returns the built-in tables.
func DefaultRecommendationRules() RecommendationRules {
	return RecommendationRules{
		AllSectorsChoice: AllSectorsChoice,
		Conservative:     []string{"AAPL", "MSFT", "JNJ", "PG", "KO", "PFE", "V", "MA", "JPM"},
		Moderate:         []string{"GOOGL", "AMZN", "META", "NFLX", "CRM", "ORCL", "ADBE", "BAC"},
		Aggressive:       []string{"TSLA", "NVDA", "AMD", "BTC", "ETH", "HOOD"},
		DayTrading:       []string{"TSLA", "NVDA", "AMD", "BTC", "ETH", "META", "HOOD"},
		LongTerm:         []string{"AAPL", "MSFT", "JNJ", "PG", "KO", "JPM", "V", "MA", "BRK.B"},
		Trending:         []string{"TSLA", "NVDA", "BTC", "ETH", "AAPL", "META", "AMD", "HOOD"},
		SectorMapping: map[string][]string{
			"Technology":             {"Technology"},
			"Financial Services":     {"Financial"},
			"Healthcare":             {"Healthcare"},
			"Energy":                 {"Energy"},
			"Consumer Goods":         {"Consumer Goods", "Consumer Defensive", "Consumer Cyclical"},
			"Automotive":             {"Automotive"},
			"Cryptocurrency":         {"Cryptocurrency"},
			"Industrials":            {"Industrials"},
			"Communication Services": {"Communication Services"},
		},
		MaxResults: 12,
		MinResults: 8,
	}
}

// RulesFromConfig overlays configured tables on the defaults. Empty lists and
// zero limits keep the default.
func RulesFromConfig(cfg config.Recommendation) RecommendationRules {
	rules := DefaultRecommendationRules()
	if cfg.AllSectorsChoice != "" {
		rules.AllSectorsChoice = cfg.AllSectorsChoice
	}
	overlay := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	overlay(&rules.Conservative, cfg.ConservativeStocks)
	overlay(&rules.Moderate, cfg.ModerateStocks)
	overlay(&rules.Aggressive, cfg.AggressiveStocks)
	overlay(&rules.DayTrading, cfg.DayTradingStocks)
	overlay(&rules.LongTerm, cfg.LongTermStocks)
	overlay(&rules.Trending, cfg.TrendingStocks)
	if len(cfg.SectorMapping) > 0 {
		rules.SectorMapping = cfg.SectorMapping
	}
	if cfg.MaxResults > 0 {
		rules.MaxResults = cfg.MaxResults
	}
	if cfg.MinResults > 0 {
		rules.MinResults = cfg.MinResults
	}
	return rules
}

// mappedSectors returns the directory sectors a UI label stands for. Labels
// compare case-insensitively since config loaders may fold map keys.
func (r RecommendationRules) mappedSectors(label string) []string {
	if mapped, ok := r.SectorMapping[label]; ok {
		return mapped
	}
	for k, mapped := range r.SectorMapping {
		if strings.EqualFold(k, label) {
			return mapped
		}
	}
	return []string{label}
}

func toSet(tickers []string) map[string]bool {
	set := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		set[t] = true
	}
	return set
}
