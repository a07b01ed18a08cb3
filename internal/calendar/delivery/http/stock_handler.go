package http

import (
	"net/http"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles the stock directory and recent searches.
type StockHandler struct {
	stockService service.StockService
	identity     *Identity
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, identity *Identity, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, identity: identity, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/recent", h.RecentSearches, h.identity.RequireUser())
	g.POST("/recent", h.AddRecentSearch, h.identity.RequireUser())
	g.DELETE("/recent", h.ClearRecentSearches, h.identity.RequireUser())
	g.GET("/:ticker", h.GetStock)
}

// Search godoc
// @Summary Search stocks
// @Description Ranked search on ticker and company name
// @Tags stocks
// @Produce  json
// @Param   q  query   string  true  "Search text"
// @Success 200 {object} dto.Response{data=[]entity.Stock}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/search [get]
func (h *StockHandler) Search(c echo.Context) error {
	if _, ok := c.QueryParams()["q"]; !ok {
		return c.JSON(http.StatusBadRequest, dto.Error(`Query parameter "q" is required`))
	}

	stocks, err := h.stockService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search stocks")
	}
	return c.JSON(http.StatusOK, dto.List(stocks, len(stocks)))
}

// GetStock godoc
// @Summary Get a stock by ticker
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker"
// @Success 200 {object} dto.Response{data=entity.Stock}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{ticker} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	stock, err := h.stockService.Get(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch stock")
	}
	return c.JSON(http.StatusOK, dto.OK(stock))
}

// RecentSearches godoc
// @Summary List recent searches
// @Tags stocks
// @Produce  json
// @Success 200 {object} dto.Response{data=[]string}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/recent [get]
func (h *StockHandler) RecentSearches(c echo.Context) error {
	recent, err := h.stockService.RecentSearches(c.Request().Context(), UserID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch recent searches")
	}
	return c.JSON(http.StatusOK, dto.List(recent, len(recent)))
}

// AddRecentSearch godoc
// @Summary Record a recent search
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   search  body    dto.AddRecentSearchRequest   true    "Searched ticker"
// @Success 200 {object} dto.Response{data=[]string}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/recent [post]
func (h *StockHandler) AddRecentSearch(c echo.Context) error {
	var req dto.AddRecentSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	recent, err := h.stockService.AddRecentSearch(c.Request().Context(), UserID(c), req.Ticker)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save recent search")
	}
	return c.JSON(http.StatusOK, dto.List(recent, len(recent)))
}

// ClearRecentSearches godoc
// @Summary Clear recent searches
// @Tags stocks
// @Success 204 {object} nil
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/recent [delete]
func (h *StockHandler) ClearRecentSearches(c echo.Context) error {
	if err := h.stockService.ClearRecentSearches(c.Request().Context(), UserID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to clear recent searches")
	}
	return c.NoContent(http.StatusNoContent)
}
