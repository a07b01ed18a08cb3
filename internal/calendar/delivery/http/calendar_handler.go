package http

import (
	"net/http"
	"strings"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/utils"

	"github.com/labstack/echo/v4"
)

// CalendarHandler handles the month grid, drag gestures and durable placements.
type CalendarHandler struct {
	board      service.CalendarBoard
	placements service.PlacementService
	loc        *time.Location
	now        func() time.Time
	logger     *logger.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(board service.CalendarBoard, placements service.PlacementService, loc *time.Location, logger *logger.Logger) *CalendarHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarHandler{board: board, placements: placements, loc: loc, now: time.Now, logger: logger}
}

// RegisterRoutes registers the calendar routes to the Echo group.
func (h *CalendarHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/month", h.GetMonth)
	g.POST("/drop", h.Drop)
	g.GET("/placements", h.ListPlacements)
	g.POST("/placements", h.CreatePlacement)
	g.DELETE("/placements", h.DeletePlacement)
}

// GetMonth godoc
// @Summary Render a month grid
// @Description Sunday-first month grid with native and placed events per day
// @Tags calendar
// @Produce  json
// @Param   month        query   string  false  "Month (yyyy-MM), defaults to the current month"
// @Param   stockTicker  query   string  false  "Ticker-scoped calendar"
// @Param   category     query   string  false  "Event category or all"
// @Param   scope        query   string  false  "Impact scope or all"
// @Param   ticker       query   string  false  "Ticker filter"
// @Param   q            query   string  false  "Free-text search"
// @Success 200 {object} dto.Response{data=dto.MonthView}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /calendar/month [get]
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	var q dto.MonthQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	month := utils.StartOfDay(h.now(), h.loc)
	if q.Month != "" {
		m, err := utils.ParseMonth(q.Month, h.loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		}
		month = m
	}

	filters, msg := parseFilters(q.Category, q.Scope, q.Ticker)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, dto.Error(msg))
	}

	scope := service.PlacementScope{UserID: UserID(c), StockTicker: strings.ToUpper(strings.TrimSpace(q.StockTicker))}
	view, err := h.board.MonthView(c.Request().Context(), scope, month, filters, q.Search)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to render calendar")
	}
	return c.JSON(http.StatusOK, dto.OK(view))
}

// Drop godoc
// @Summary Apply a drag gesture
// @Description Replays a drag gesture and places or removes the event on the caller's calendar
// @Tags calendar
// @Accept  json
// @Produce  json
// @Param   gesture  body    dto.DropRequest   true    "Drag gesture"
// @Success 200 {object} dto.Response{data=dto.DropResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /calendar/drop [post]
func (h *CalendarHandler) Drop(c echo.Context) error {
	var req dto.DropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	scope := service.PlacementScope{UserID: UserID(c), StockTicker: strings.ToUpper(strings.TrimSpace(req.StockTicker))}
	result, err := h.board.ApplyDrop(c.Request().Context(), scope, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to apply drop")
	}
	return c.JSON(http.StatusOK, dto.OK(result))
}

// ListPlacements godoc
// @Summary List placements
// @Tags calendar
// @Produce  json
// @Param   startDate    query   string  false  "Inclusive start date (yyyy-MM-dd)"
// @Param   endDate      query   string  false  "Inclusive end date (yyyy-MM-dd)"
// @Param   stockTicker  query   string  false  "Ticker scope; null selects the global calendar"
// @Success 200 {object} dto.Response{data=[]entity.Placement}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /calendar/placements [get]
func (h *CalendarHandler) ListPlacements(c echo.Context) error {
	var q dto.PlacementListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	placements, err := h.placements.List(c.Request().Context(), UserID(c), q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch placements")
	}
	return c.JSON(http.StatusOK, dto.List(placements, len(placements)))
}

// CreatePlacement godoc
// @Summary Place an event on a date
// @Tags calendar
// @Accept  json
// @Produce  json
// @Param   placement  body    dto.CreatePlacementRequest   true    "Placement to create"
// @Success 200 {object} dto.Response{data=entity.Placement} "Placement already exists"
// @Success 201 {object} dto.Response{data=entity.Placement}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /calendar/placements [post]
func (h *CalendarHandler) CreatePlacement(c echo.Context) error {
	var req dto.CreatePlacementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	placement, created, err := h.placements.Create(c.Request().Context(), UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create placement")
	}
	if !created {
		resp := dto.OK(placement)
		resp.Message = "Placement already exists"
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusCreated, dto.OK(placement))
}

// DeletePlacement godoc
// @Summary Remove a placement
// @Description Remove a placement by placementId or by eventId, date and optional stockTicker
// @Tags calendar
// @Produce  json
// @Param   placementId  query   string  false  "Placement ID"
// @Param   eventId      query   string  false  "Event ID"
// @Param   date         query   string  false  "Date (yyyy-MM-dd)"
// @Param   stockTicker  query   string  false  "Ticker scope"
// @Success 200 {object} dto.Response{data=entity.Placement}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /calendar/placements [delete]
func (h *CalendarHandler) DeletePlacement(c echo.Context) error {
	var q dto.DeletePlacementQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	removed, err := h.placements.Delete(c.Request().Context(), UserID(c), q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to delete placement")
	}
	resp := dto.OK(removed)
	resp.Message = "Placement removed"
	return c.JSON(http.StatusOK, resp)
}
