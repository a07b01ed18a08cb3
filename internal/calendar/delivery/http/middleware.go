package http

import (
	"context"
	"net/http"
	"time"

	"stock-event-calendar/internal/calendar/config"
	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/pkg/common"
	"stock-event-calendar/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger logs one line per request and threads the request id into
// the request context.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if id != "" {
				c.SetRequest(req.WithContext(context.WithValue(req.Context(), logger.RequestIDKey, id)))
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info("HTTP request",
				logger.StringField("method", req.Method),
				logger.StringField("path", c.Path()),
				logger.IntField("status", c.Response().Status),
				logger.Field("latency", time.Since(start).String()),
				logger.StringField("request_id", id),
			)
			return nil
		}
	}
}

// Identity reads and issues the anonymous per-browser user cookie.
type Identity struct {
	cookieName string
	maxAge     time.Duration
	secure     bool
}

// NewIdentity creates identity middleware from config.
func NewIdentity(cfg config.Identity) *Identity {
	return &Identity{cookieName: cfg.CookieName, maxAge: cfg.MaxAge, secure: cfg.Secure}
}

// Middleware stores the cookie value, when present, on the echo context.
func (i *Identity) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(i.cookieName); err == nil && cookie.Value != "" {
				c.Set(common.ContextKeyUserID, cookie.Value)
			}
			return next(c)
		}
	}
}

// RequireUser rejects requests without an identity cookie.
func (i *Identity) RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == "" {
				return c.JSON(http.StatusUnauthorized, dto.Error(msgMissingIdentity))
			}
			return next(c)
		}
	}
}

// Issue sets a fresh identity cookie and returns its value.
func (i *Identity) Issue(c echo.Context) string {
	id := "user_" + uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     i.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(i.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(common.ContextKeyUserID, id)
	return id
}

// UserID returns the caller's identity or "".
func UserID(c echo.Context) string {
	id, _ := c.Get(common.ContextKeyUserID).(string)
	return id
}
