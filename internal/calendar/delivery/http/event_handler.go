package http

import (
	"net/http"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EventHandler handles HTTP requests for the event catalog.
type EventHandler struct {
	catalog service.EventCatalog
	logger  *logger.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(catalog service.EventCatalog, logger *logger.Logger) *EventHandler {
	return &EventHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the event routes to the Echo group.
func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
}

// ListEvents godoc
// @Summary List events
// @Description List catalog events matching category, scope, ticker, free-text search and date range
// @Tags events
// @Produce  json
// @Param   category   query   string  false  "Event category or all"
// @Param   scope      query   string  false  "Impact scope or all"
// @Param   ticker     query   string  false  "Ticker filter; market-wide events always match"
// @Param   q          query   string  false  "Free-text search"
// @Param   startDate  query   string  false  "Inclusive start date (yyyy-MM-dd)"
// @Param   endDate    query   string  false  "Inclusive end date (yyyy-MM-dd)"
// @Success 200 {object} dto.Response{data=[]entity.Event}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	var q dto.EventListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	filters, msg := parseFilters(q.Category, q.Scope, q.Ticker)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, dto.Error(msg))
	}

	events, err := h.catalog.Query(c.Request().Context(), service.EventQuery{
		Filters:   filters,
		Search:    q.Search,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch events")
	}
	return c.JSON(http.StatusOK, dto.List(events, len(events)))
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce  json
// @Param   id  path    string true    "Event ID"
// @Success 200 {object} dto.Response{data=entity.Event}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch event")
	}
	return c.JSON(http.StatusOK, dto.OK(event))
}
