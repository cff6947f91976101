package middleware

import (
	"strconv"
	"time"

	"aiAutomate/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RequestMetrics records latency and count per route template.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler pick the final status
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route, status).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
			return nil
		}
	}
}
