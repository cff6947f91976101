package middleware

import (
	"context"
	"errors"
	"net/http"

	"aiAutomate/business/content"
	"aiAutomate/business/intent"
	"aiAutomate/business/roi"
	"aiAutomate/pkg/logger"
	jsonres "aiAutomate/pkg/response"

	"github.com/labstack/echo/v4"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{roi.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{intent.ErrInvalidSignal, http.StatusBadRequest, "INVALID_SIGNAL"},
	{intent.ErrInvalidSession, http.StatusBadRequest, "INVALID_SESSION"},
	{content.ErrInvalidVariant, http.StatusBadRequest, "INVALID_VARIANT"},
	{content.ErrInvalidFeedback, http.StatusBadRequest, "INVALID_FEEDBACK"},
	{content.ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
	{content.ErrNoVariantsAvailable, http.StatusNotFound, "NO_VARIANTS"},
	{content.ErrVariantNotFound, http.StatusNotFound, "VARIANT_NOT_FOUND"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, "TIMEOUT"},
	{context.Canceled, http.StatusServiceUnavailable, "CANCELED"},
}

// ErrorHandler turns errors returned by handlers into JSON error bodies.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := resolveError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"trace_id", logger.TraceIDFromContext(c.Request().Context()),
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}

func resolveError(err error) (int, jsonres.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, jsonres.Error(codeForStatus(he.Code), msg, nil)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, jsonres.Error(m.code, err.Error(), nil)
		}
	}

	return http.StatusInternalServerError, jsonres.Error("INTERNAL_ERROR", "internal server error", nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}
