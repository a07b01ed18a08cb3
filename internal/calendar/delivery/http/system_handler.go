package http

import (
	"net/http"
	"strconv"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SystemHandler serves health, session and scheduled job endpoints.
type SystemHandler struct {
	appName   string
	identity  *Identity
	scheduler service.SchedulerService
	logger    *logger.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(appName string, identity *Identity, scheduler service.SchedulerService, logger *logger.Logger) *SystemHandler {
	return &SystemHandler{appName: appName, identity: identity, scheduler: scheduler, logger: logger}
}

// RegisterRoutes registers the system routes to the Echo group.
func (h *SystemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/session", h.Session)
	g.GET("/jobs", h.ListJobs)
	g.POST("/jobs/:name/run", h.RunJob)
	g.GET("/jobs/:name/executions", h.ListExecutions)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Name: h.appName})
}

// Session godoc
// @Summary Get or issue the caller identity
// @Tags system
// @Produce  json
// @Success 200 {object} dto.Response{data=dto.SessionResponse}
// @Router /session [get]
func (h *SystemHandler) Session(c echo.Context) error {
	userID := UserID(c)
	issued := false
	if userID == "" {
		userID = h.identity.Issue(c)
		issued = true
	}
	return c.JSON(http.StatusOK, dto.OK(dto.SessionResponse{UserID: userID, Issued: issued}))
}

// ListJobs godoc
// @Summary List scheduled jobs
// @Tags jobs
// @Produce  json
// @Success 200 {object} dto.Response{data=[]dto.JobStatus}
// @Router /jobs [get]
func (h *SystemHandler) ListJobs(c echo.Context) error {
	jobs := h.scheduler.Jobs()
	return c.JSON(http.StatusOK, dto.List(jobs, len(jobs)))
}

// RunJob godoc
// @Summary Run a scheduled job now
// @Tags jobs
// @Produce  json
// @Param   name  path    string true    "Job name"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{name}/run [post]
func (h *SystemHandler) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.scheduler.RunNow(c.Request().Context(), name); err != nil {
		return respondError(c, h.logger, err, "Failed to run job")
	}
	h.logger.Info("Job run on demand", logger.StringField("job", name))
	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Job completed"})
}

// ListExecutions godoc
// @Summary List recent runs of a job
// @Tags jobs
// @Produce  json
// @Param   name   path    string true     "Job name"
// @Param   limit  query   int    false    "Maximum runs to return (default 20, max 100)"
// @Success 200 {object} dto.Response{data=[]entity.JobExecution}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{name}/executions [get]
func (h *SystemHandler) ListExecutions(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, dto.Error("Invalid limit"))
		}
		limit = n
	}

	executions, err := h.scheduler.Executions(c.Request().Context(), c.Param("name"), limit)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch job executions")
	}
	return c.JSON(http.StatusOK, dto.List(executions, len(executions)))
}
