package http

import (
	"net/http"
	"strings"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// VoteHandler handles HTTP requests for event votes.
type VoteHandler struct {
	voteService service.VoteService
	logger      *logger.Logger
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteService service.VoteService, logger *logger.Logger) *VoteHandler {
	return &VoteHandler{voteService: voteService, logger: logger}
}

// RegisterRoutes registers the vote routes to the Echo group.
func (h *VoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetVotes)
	g.POST("", h.SubmitVote)
}

// SubmitVote godoc
// @Summary Cast or change a vote
// @Tags votes
// @Accept  json
// @Produce  json
// @Param   vote  body    dto.SubmitVoteRequest   true    "Vote to submit"
// @Success 200 {object} dto.Response{data=dto.SubmitVoteResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /votes [post]
func (h *VoteHandler) SubmitVote(c echo.Context) error {
	var req dto.SubmitVoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Error(msgInvalidPayload))
	}

	resp, err := h.voteService.SubmitVote(c.Request().Context(), UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to submit vote")
	}
	return c.JSON(http.StatusOK, dto.OK(resp))
}

// GetVotes godoc
// @Summary Get votes
// @Description With eventId: the event's aggregate and the caller's vote. Without: every vote the caller cast.
// @Tags votes
// @Produce  json
// @Param   eventId  query   string  false  "Event ID"
// @Success 200 {object} dto.Response{data=dto.EventVotesResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /votes [get]
func (h *VoteHandler) GetVotes(c echo.Context) error {
	ctx := c.Request().Context()
	eventID := strings.TrimSpace(c.QueryParam("eventId"))

	if eventID == "" {
		votes, err := h.voteService.ListUserVotes(ctx, UserID(c))
		if err != nil {
			return respondError(c, h.logger, err, "Failed to fetch votes")
		}
		return c.JSON(http.StatusOK, dto.List(votes, len(votes)))
	}

	resp, err := h.voteService.GetEventVotes(ctx, UserID(c), eventID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch votes")
	}
	return c.JSON(http.StatusOK, dto.OK(resp))
}
