package http

import (
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups every route handler of the calendar API.
type Handlers struct {
	System     *SystemHandler
	Event      *EventHandler
	Calendar   *CalendarHandler
	Vote       *VoteHandler
	Onboarding *OnboardingHandler
	Stock      *StockHandler
	Portfolio  *PortfolioHandler
}

// Register mounts middleware and all API routes under /api/v1.
func Register(e *echo.Echo, identity *Identity, h Handlers, log *logger.Logger) *echo.Group {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(identity.Middleware())

	apiV1 := e.Group("/api/v1")
	h.System.RegisterRoutes(apiV1)
	h.Event.RegisterRoutes(apiV1.Group("/events"))
	h.Calendar.RegisterRoutes(apiV1.Group("/calendar", identity.RequireUser()))
	h.Vote.RegisterRoutes(apiV1.Group("/votes", identity.RequireUser()))
	h.Onboarding.RegisterRoutes(apiV1.Group("/onboarding"))
	h.Stock.RegisterRoutes(apiV1.Group("/stocks"))
	h.Portfolio.RegisterRoutes(apiV1.Group("/portfolio", identity.RequireUser()))
	return apiV1
}
