package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/entity"
)

// MaxRecommendationScore is the sum of every category's maximum.
const MaxRecommendationScore = 100

type band int

const (
	bandNone band = iota
	bandLow
	bandMid
	bandHigh
)

// ordinalBand collapses "1".."5" into low (1-2), mid (3) and high (4-5).
// Anything else yields bandNone and the category is skipped.
func ordinalBand(v string) band {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return bandNone
	}
	switch {
	case n >= 1 && n <= 2:
		return bandLow
	case n == 3:
		return bandMid
	case n >= 4 && n <= 5:
		return bandHigh
	}
	return bandNone
}

// RecommendationEngine scores the stock directory against questionnaire answers.
type RecommendationEngine struct {
	rules        RecommendationRules
	conservative map[string]bool
	moderate     map[string]bool
	aggressive   map[string]bool
	dayTrading   map[string]bool
	longTerm     map[string]bool
	trending     map[string]bool
}

// NewRecommendationEngine creates an engine over rules.
func NewRecommendationEngine(rules RecommendationRules) *RecommendationEngine {
	return &RecommendationEngine{
		rules:        rules,
		conservative: toSet(rules.Conservative),
		moderate:     toSet(rules.Moderate),
		aggressive:   toSet(rules.Aggressive),
		dayTrading:   toSet(rules.DayTrading),
		longTerm:     toSet(rules.LongTerm),
		trending:     toSet(rules.Trending),
	}
}

type scored struct {
	rec           dto.StockRecommendation
	sectorMatched bool
}

// Generate returns the ranked recommendations. It is deterministic: equal
// scores keep directory order.
func (e *RecommendationEngine) Generate(q dto.Questionnaire, stocks []entity.Stock) []dto.StockRecommendation {
	allSectors := false
	for _, s := range q.Sectors {
		if s == e.rules.AllSectorsChoice {
			allSectors = true
			break
		}
	}
	risk := ordinalBand(q.RiskTolerance)
	timeline := ordinalBand(q.InvestmentTimeline)

	seen := make(map[string]bool, len(stocks))
	candidates := make([]scored, 0, len(stocks))
	for _, stock := range stocks {
		if seen[stock.Ticker] {
			continue
		}
		seen[stock.Ticker] = true

		c := scored{rec: dto.StockRecommendation{
			Ticker:  stock.Ticker,
			Name:    stock.Name,
			Sector:  stock.Sector,
			Type:    string(stock.Type),
			Reasons: []string{},
		}}
		e.scoreSector(&c, stock, q.Sectors, allSectors)
		e.scoreRisk(&c, stock.Ticker, risk)
		e.scoreTimeline(&c, stock.Ticker, timeline)
		e.scoreStrategy(&c, stock.Ticker, q.PortfolioStrategy)
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rec.Score > candidates[j].rec.Score
	})

	positive := make([]dto.StockRecommendation, 0, len(candidates))
	for _, c := range candidates {
		if c.rec.Score > 0 {
			c.rec.ScorePercentage = ScorePercentage(c.rec.Score)
			c.rec.MatchQuality = MatchQuality(c.rec.Score)
			positive = append(positive, c.rec)
		}
	}

	limit := e.rules.MaxResults
	if limit > len(positive) {
		limit = len(positive)
	}
	top := positive[:limit]
	if len(top) < e.rules.MinResults {
		rest := positive[limit:]
		need := e.rules.MinResults - len(top)
		if need > len(rest) {
			need = len(rest)
		}
		top = append(top, rest[:need]...)
	}
	return top
}

func (e *RecommendationEngine) scoreSector(c *scored, stock entity.Stock, sectors []string, allSectors bool) {
	if allSectors {
		c.rec.Score += 20
		c.rec.Reasons = append(c.rec.Reasons, "Matches your broad sector interest")
		return
	}
	for _, label := range sectors {
		for _, mapped := range e.rules.mappedSectors(label) {
			if strings.Contains(stock.Sector, mapped) {
				c.rec.Score += 40
				c.rec.Reasons = append(c.rec.Reasons, fmt.Sprintf("Matches your interest in %s", label))
				c.sectorMatched = true
				return
			}
		}
	}
}

func (e *RecommendationEngine) scoreRisk(c *scored, ticker string, risk band) {
	switch risk {
	case bandLow:
		if e.conservative[ticker] {
			c.add(30, "Suitable for conservative risk tolerance")
		}
	case bandMid:
		if e.moderate[ticker] {
			c.add(30, "Balanced risk profile")
		} else if e.conservative[ticker] {
			c.add(20, "Stable investment option")
		}
	case bandHigh:
		if e.aggressive[ticker] {
			c.add(30, "High growth potential for aggressive investors")
		} else if e.moderate[ticker] {
			c.add(15, "Growth opportunity")
		}
	}
}

func (e *RecommendationEngine) scoreTimeline(c *scored, ticker string, timeline band) {
	switch timeline {
	case bandLow:
		if e.dayTrading[ticker] {
			c.add(20, "High volatility suitable for short-term trading")
		}
	case bandMid:
		c.rec.Score += 10
	case bandHigh:
		if e.longTerm[ticker] {
			c.add(20, "Strong fundamentals for long-term holding")
		}
	}
}

func (e *RecommendationEngine) scoreStrategy(c *scored, ticker, strategy string) {
	switch strategy {
	case "celebrity":
		if e.trending[ticker] {
			c.add(10, "Popular among investors and influencers")
		}
	case "diy":
		if c.sectorMatched {
			c.rec.Score += 5
		}
	case "mix":
		if e.trending[ticker] {
			c.add(5, "Trending stock")
		}
		if c.sectorMatched {
			c.rec.Score += 5
		}
	}
}

func (c *scored) add(points int, reason string) {
	c.rec.Score += points
	c.rec.Reasons = append(c.rec.Reasons, reason)
}

// ScorePercentage renders score on the 0-100 scale.
func ScorePercentage(score int) int {
	return int(math.Round(float64(score) / MaxRecommendationScore * 100))
}

// MatchQuality buckets a score into a display label.
func MatchQuality(score int) string {
	switch p := ScorePercentage(score); {
	case p >= 80:
		return "Excellent Match"
	case p >= 60:
		return "Good Match"
	case p >= 40:
		return "Moderate Match"
	default:
		return "Basic Match"
	}
}
