package service

import (
	"context"
	"strings"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"

	"github.com/lib/pq"
)

const maxSelectedSectors = 3

var (
	checkFrequencies = map[string]bool{
		"multiple_daily": true,
		"daily":          true,
		"few_weekly":     true,
		"weekly":         true,
		"monthly":        true,
	}
	portfolioStrategies = map[string]bool{
		"celebrity": true,
		"diy":       true,
		"mix":       true,
	}
)

// OnboardingService stores questionnaire answers and turns them into recommendations.
type OnboardingService interface {
	SavePreferences(ctx context.Context, userID string, q dto.Questionnaire) (*entity.UserPreference, error)
	LatestPreferences(ctx context.Context, userID string) (*entity.UserPreference, error)
	Recommend(ctx context.Context, q dto.Questionnaire) ([]dto.StockRecommendation, error)
	RecommendForUser(ctx context.Context, userID string) ([]dto.StockRecommendation, error)
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(
	prefs repository.UserPreferenceRepository,
	stocks repository.StockRepository,
	engine *RecommendationEngine,
	log *logger.Logger,
) OnboardingService {
	return &onboardingService{prefs: prefs, stocks: stocks, engine: engine, logger: log, now: time.Now}
}

type onboardingService struct {
	prefs  repository.UserPreferenceRepository
	stocks repository.StockRepository
	engine *RecommendationEngine
	logger *logger.Logger
	now    func() time.Time
}

// ValidateQuestionnaire checks field presence and enumerated values.
func ValidateQuestionnaire(q dto.Questionnaire, allSectorsChoice string) error {
	if len(q.Sectors) == 0 || q.InvestmentTimeline == "" || q.CheckFrequency == "" ||
		q.RiskTolerance == "" || q.PortfolioStrategy == "" {
		return newValidationError("preferences", "Missing required fields")
	}

	allSectors := false
	for _, s := range q.Sectors {
		if strings.TrimSpace(s) == "" {
			return newValidationError("sectors", "Sectors must not be blank")
		}
		if s == allSectorsChoice {
			allSectors = true
		}
	}
	if !allSectors && len(q.Sectors) > maxSelectedSectors {
		return newValidationError("sectors", "Select at most %d sectors", maxSelectedSectors)
	}
	if ordinalBand(q.InvestmentTimeline) == bandNone {
		return newValidationError("investmentTimeline", "investmentTimeline must be between 1 and 5")
	}
	if ordinalBand(q.RiskTolerance) == bandNone {
		return newValidationError("riskTolerance", "riskTolerance must be between 1 and 5")
	}
	if !checkFrequencies[q.CheckFrequency] {
		return newValidationError("checkFrequency", "Invalid checkFrequency value")
	}
	if !portfolioStrategies[q.PortfolioStrategy] {
		return newValidationError("portfolioStrategy", "Invalid portfolioStrategy value")
	}
	return nil
}

func (s *onboardingService) SavePreferences(ctx context.Context, userID string, q dto.Questionnaire) (*entity.UserPreference, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	if err := ValidateQuestionnaire(q, s.engine.rules.AllSectorsChoice); err != nil {
		return nil, err
	}

	pref := &entity.UserPreference{
		UserID:             userID,
		Sectors:            pq.StringArray(q.Sectors),
		InvestmentTimeline: q.InvestmentTimeline,
		CheckFrequency:     q.CheckFrequency,
		RiskTolerance:      q.RiskTolerance,
		PortfolioStrategy:  q.PortfolioStrategy,
		CompletedAt:        s.now(),
	}
	if err := s.prefs.Create(ctx, pref); err != nil {
		s.logger.Error("Failed to save preferences", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}
	s.logger.Info("Onboarding completed", logger.StringField("user_id", userID))
	return pref, nil
}

func (s *onboardingService) LatestPreferences(ctx context.Context, userID string) (*entity.UserPreference, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	pref, err := s.prefs.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err, "No preferences found. Please complete onboarding first.")
	}
	return pref, nil
}

// Recommend scores the directory against q without storing anything.
func (s *onboardingService) Recommend(ctx context.Context, q dto.Questionnaire) ([]dto.StockRecommendation, error) {
	if err := ValidateQuestionnaire(q, s.engine.rules.AllSectorsChoice); err != nil {
		return nil, err
	}
	stocks, err := s.stocks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Generate(q, stocks), nil
}

// RecommendForUser scores the directory against the user's latest answers.
func (s *onboardingService) RecommendForUser(ctx context.Context, userID string) ([]dto.StockRecommendation, error) {
	pref, err := s.LatestPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.stocks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Generate(QuestionnaireFromPreference(pref), stocks), nil
}

// QuestionnaireFromPreference maps stored answers back to a questionnaire.
func QuestionnaireFromPreference(p *entity.UserPreference) dto.Questionnaire {
	return dto.Questionnaire{
		Sectors:            []string(p.Sectors),
		InvestmentTimeline: p.InvestmentTimeline,
		CheckFrequency:     p.CheckFrequency,
		RiskTolerance:      p.RiskTolerance,
		PortfolioStrategy:  p.PortfolioStrategy,
	}
}
