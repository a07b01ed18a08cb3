package http

import (
	"errors"
	"net/http"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgMissingIdentity = "User ID not found"
	msgRateLimited     = "Rate limit exceeded. Please wait before syncing again."
	msgFixedDate       = "Fixed-date events cannot be moved"
	msgInvalidPayload  = "Invalid request payload"
)

// respondError maps service errors onto status codes. Unexpected errors are
// logged and answered with the generic fallback message.
func respondError(c echo.Context, log *logger.Logger, err error, fallback string) error {
	var (
		vErr  *service.ValidationError
		nfErr *service.NotFoundError
	)
	switch {
	case errors.Is(err, service.ErrMissingIdentity):
		return c.JSON(http.StatusUnauthorized, dto.Error(msgMissingIdentity))
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, dto.Error(vErr.Message))
	case errors.As(err, &nfErr):
		return c.JSON(http.StatusNotFound, dto.Error(nfErr.Message))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.Error("Resource not found"))
	case errors.Is(err, service.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, dto.Error(msgRateLimited))
	case errors.Is(err, service.ErrFixedDateEvent):
		return c.JSON(http.StatusBadRequest, dto.Error(msgFixedDate))
	case service.IsDragRejection(err):
		return c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
	}

	log.Error(fallback, logger.ErrorField(err), logger.StringField("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, dto.Error(fallback))
}
