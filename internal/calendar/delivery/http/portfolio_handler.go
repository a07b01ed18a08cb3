package http

import (
	"errors"
	"io"
	"net/http"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles portfolio holdings, manual portfolios and broker sync.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/holdings", h.GetHoldings)
	g.GET("/manual", h.GetManual)
	g.POST("/manual", h.SaveManual)
	g.POST("/sync", h.Sync)
	g.DELETE("/:id", h.Disconnect)
}

// GetHoldings godoc
// @Summary List portfolios and holdings
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.Response{data=dto.HoldingsResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/holdings [get]
func (h *PortfolioHandler) GetHoldings(c echo.Context) error {
	resp, err := h.portfolioService.Holdings(c.Request().Context(), UserID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch holdings")
	}
	return c.JSON(http.StatusOK, dto.OK(resp))
}

// GetManual godoc
// @Summary Get the manual portfolio
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.Response{data=entity.Portfolio}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/manual [get]
func (h *PortfolioHandler) GetManual(c echo.Context) error {
	portfolio, err := h.portfolioService.Manual(c.Request().Context(), UserID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch manual portfolio")
	}
	return c.JSON(http.StatusOK, dto.OK(portfolio))
}

// SaveManual godoc
// @Summary Create or replace the manual portfolio
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   portfolio  body    dto.SaveManualPortfolioRequest   true    "Tickers to hold"
// @Success 200 {object} dto.Response{data=dto.ManualPortfolioResponse}
// @Success 201 {object} dto.Response{data=dto.ManualPortfolioResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/manual [post]
func (h *PortfolioHandler) SaveManual(c echo.Context) error {
	var req dto.SaveManualPortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	resp, err := h.portfolioService.SaveManual(c.Request().Context(), UserID(c), req.Tickers)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save manual portfolio")
	}

	status, msg := http.StatusOK, "Manual portfolio updated"
	if resp.Created {
		status, msg = http.StatusCreated, "Manual portfolio created"
	}
	out := dto.OK(resp)
	out.Message = msg
	return c.JSON(status, out)
}

// Sync godoc
// @Summary Sync broker portfolios
// @Description Refreshes holdings of connected broker portfolios; limited to one call per user per window
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   sync  body    dto.SyncPortfolioRequest   false    "Optional portfolio to sync"
// @Success 200 {object} dto.Response{data=dto.SyncResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/sync [post]
func (h *PortfolioHandler) Sync(c echo.Context) error {
	var req dto.SyncPortfolioRequest
	if err := c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	resp, err := h.portfolioService.Sync(c.Request().Context(), UserID(c), req.PortfolioID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to sync portfolios")
	}
	return c.JSON(http.StatusOK, dto.OK(resp))
}

// Disconnect godoc
// @Summary Disconnect a portfolio
// @Tags portfolio
// @Produce  json
// @Param   id  path    string true    "Portfolio ID"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) Disconnect(c echo.Context) error {
	if err := h.portfolioService.Disconnect(c.Request().Context(), UserID(c), c.Param("id")); err != nil {
		return respondError(c, h.logger, err, "Failed to disconnect portfolio")
	}
	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Portfolio disconnected"})
}
