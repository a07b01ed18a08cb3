package service

import (
	"context"
	"testing"

	"stock-event-calendar/internal/calendar/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestionnaire() dto.Questionnaire {
	return dto.Questionnaire{
		Sectors:            []string{"Technology"},
		InvestmentTimeline: "1",
		CheckFrequency:     "daily",
		RiskTolerance:      "5",
		PortfolioStrategy:  "celebrity",
	}
}

func newTestOnboardingService() (OnboardingService, *fakePreferenceRepo) {
	prefs := &fakePreferenceRepo{}
	stocks := &fakeStockRepo{stocks: directory()}
	return NewOnboardingService(prefs, stocks, NewRecommendationEngine(DefaultRecommendationRules()), testLogger), prefs
}

func TestValidateQuestionnaire(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *dto.Questionnaire)
		field  string
	}{
		{name: "valid", mutate: func(q *dto.Questionnaire) {}},
		{name: "all sectors sentinel", mutate: func(q *dto.Questionnaire) { q.Sectors = []string{AllSectorsChoice} }},
		{name: "no sectors", mutate: func(q *dto.Questionnaire) { q.Sectors = nil }, field: "preferences"},
		{name: "missing strategy", mutate: func(q *dto.Questionnaire) { q.PortfolioStrategy = "" }, field: "preferences"},
		{name: "too many sectors", mutate: func(q *dto.Questionnaire) {
			q.Sectors = []string{"Technology", "Energy", "Healthcare", "Industrials"}
		}, field: "sectors"},
		{name: "timeline out of range", mutate: func(q *dto.Questionnaire) { q.InvestmentTimeline = "6" }, field: "investmentTimeline"},
		{name: "risk not a number", mutate: func(q *dto.Questionnaire) { q.RiskTolerance = "high" }, field: "riskTolerance"},
		{name: "unknown frequency", mutate: func(q *dto.Questionnaire) { q.CheckFrequency = "hourly" }, field: "checkFrequency"},
		{name: "unknown strategy", mutate: func(q *dto.Questionnaire) { q.PortfolioStrategy = "index" }, field: "portfolioStrategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestionnaire()
			tt.mutate(&q)
			err := ValidateQuestionnaire(q, AllSectorsChoice)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestOnboardingService_SaveAndRecommendForUser(t *testing.T) {
	ctx := context.Background()
	svc, prefs := newTestOnboardingService()

	_, err := svc.RecommendForUser(ctx, "user_1")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "No preferences found. Please complete onboarding first.")

	first := validQuestionnaire()
	first.RiskTolerance = "1"
	_, err = svc.SavePreferences(ctx, "user_1", first)
	require.NoError(t, err)

	saved, err := svc.SavePreferences(ctx, "user_1", validQuestionnaire())
	require.NoError(t, err)
	assert.False(t, saved.CompletedAt.IsZero())
	assert.Len(t, prefs.prefs, 2)

	latest, err := svc.LatestPreferences(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "5", latest.RiskTolerance)

	recs, err := svc.RecommendForUser(ctx, "user_1")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, "NVDA", recs[0].Ticker)
	assert.Equal(t, 100, recs[0].Score)
}

func TestOnboardingService_RecommendIsStateless(t *testing.T) {
	svc, prefs := newTestOnboardingService()

	recs, err := svc.Recommend(context.Background(), validQuestionnaire())
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	assert.Empty(t, prefs.prefs)

	_, err = svc.Recommend(context.Background(), dto.Questionnaire{})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestOnboardingService_RequiresUser(t *testing.T) {
	svc, _ := newTestOnboardingService()
	_, err := svc.SavePreferences(context.Background(), "", validQuestionnaire())
	assert.ErrorIs(t, err, ErrMissingIdentity)
}
