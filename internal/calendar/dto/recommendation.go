package dto

// Questionnaire is the onboarding answer set. Timeline and risk are ordinal
// strings "1" through "5".
type Questionnaire struct {
	Sectors            []string `json:"sectors"`
	InvestmentTimeline string   `json:"investmentTimeline"`
	CheckFrequency     string   `json:"checkFrequency"`
	RiskTolerance      string   `json:"riskTolerance"`
	PortfolioStrategy  string   `json:"portfolioStrategy"`
}

// StockRecommendation is one scored stock.
type StockRecommendation struct {
	Ticker          string   `json:"ticker"`
	Name            string   `json:"name"`
	Sector          string   `json:"sector"`
	Type            string   `json:"type"`
	Score           int      `json:"score"`
	ScorePercentage int      `json:"score_percentage"`
	MatchQuality    string   `json:"match_quality"`
	Reasons         []string `json:"reasons"`
}
