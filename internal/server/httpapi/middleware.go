package httpapi

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func (s *HTTPServer) useMiddleware(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	e.Use(attribution)
}

// attribution reads the opaque acting user id from the X-User-ID header.
// The id is only recorded on notes, transfers and activities; nothing is
// authorized against it.
func attribution(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(common.UserIDHeaderName)
		if raw == "" {
			return next(c)
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badRequest("invalid " + common.UserIDHeaderName + " header")
		}
		ctx := context.WithValue(c.Request().Context(), userIDKey, id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// actor returns the acting user id, or nil for anonymous requests.
func actor(c echo.Context) *int64 {
	if id, ok := c.Request().Context().Value(userIDKey).(int64); ok {
		return &id
	}
	return nil
}
