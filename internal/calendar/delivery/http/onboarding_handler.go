package http

import (
	"net/http"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OnboardingHandler handles the questionnaire and stock recommendations.
type OnboardingHandler struct {
	onboarding service.OnboardingService
	identity   *Identity
	logger     *logger.Logger
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboarding service.OnboardingService, identity *Identity, logger *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, identity: identity, logger: logger}
}

// RegisterRoutes registers the onboarding routes to the Echo group.
func (h *OnboardingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/preferences", h.SavePreferences)
	g.GET("/preferences", h.GetPreferences, h.identity.RequireUser())
	g.POST("/recommendations", h.Recommend)
	g.GET("/recommendations", h.RecommendForUser, h.identity.RequireUser())
}

// SavePreferences godoc
// @Summary Save questionnaire answers
// @Description Stores the answers; issues an identity cookie when the caller has none
// @Tags onboarding
// @Accept  json
// @Produce  json
// @Param   preferences  body    dto.Questionnaire   true    "Questionnaire answers"
// @Success 201 {object} dto.Response{data=entity.UserPreference}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /onboarding/preferences [post]
func (h *OnboardingHandler) SavePreferences(c echo.Context) error {
	var q dto.Questionnaire
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	userID := UserID(c)
	if userID == "" {
		userID = h.identity.Issue(c)
	}

	pref, err := h.onboarding.SavePreferences(c.Request().Context(), userID, q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save preferences")
	}
	return c.JSON(http.StatusCreated, dto.OK(pref))
}

// GetPreferences godoc
// @Summary Get the latest saved answers
// @Tags onboarding
// @Produce  json
// @Success 200 {object} dto.Response{data=entity.UserPreference}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /onboarding/preferences [get]
func (h *OnboardingHandler) GetPreferences(c echo.Context) error {
	pref, err := h.onboarding.LatestPreferences(c.Request().Context(), UserID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch preferences")
	}
	return c.JSON(http.StatusOK, dto.OK(pref))
}

// Recommend godoc
// @Summary Recommend stocks for answers
// @Tags onboarding
// @Accept  json
// @Produce  json
// @Param   preferences  body    dto.Questionnaire   true    "Questionnaire answers"
// @Success 200 {object} dto.Response{data=[]dto.StockRecommendation}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /onboarding/recommendations [post]
func (h *OnboardingHandler) Recommend(c echo.Context) error {
	var q dto.Questionnaire
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	recs, err := h.onboarding.Recommend(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate recommendations")
	}
	return c.JSON(http.StatusOK, dto.List(recs, len(recs)))
}

// RecommendForUser godoc
// @Summary Recommend stocks from saved answers
// @Tags onboarding
// @Produce  json
// @Success 200 {object} dto.Response{data=[]dto.StockRecommendation}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /onboarding/recommendations [get]
func (h *OnboardingHandler) RecommendForUser(c echo.Context) error {
	recs, err := h.onboarding.RecommendForUser(c.Request().Context(), UserID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate recommendations")
	}
	return c.JSON(http.StatusOK, dto.List(recs, len(recs)))
}
