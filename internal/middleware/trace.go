package middleware

import (
	"aiAutomate/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID reuses the request id header or mints one, and puts it on the
// request context for logging.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			ctx := logger.WithTraceID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
