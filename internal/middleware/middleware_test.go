//go:build !integration

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aiAutomate/business/content"
	"aiAutomate/business/intent"
	"aiAutomate/business/roi"
	"aiAutomate/pkg/logger"
	jsonres "aiAutomate/pkg/response"
	"aiAutomate/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	}, AuthMiddleware(), AdminOnly())
	return e
}

func doGet(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newProtectedServer()

	adminToken, err := utils.GenerateJWT("admin", RoleAdmin)
	require.NoError(t, err)
	viewerToken, err := utils.GenerateJWT("viewer", "VIEWER")
	require.NoError(t, err)

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"non admin", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, "/admin", tt.auth)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := doGet(e, "/admin", "Bearer "+adminToken)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestResolveError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrap: %w", roi.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{intent.ErrInvalidSignal, http.StatusBadRequest, "INVALID_SIGNAL"},
		{intent.ErrInvalidSession, http.StatusBadRequest, "INVALID_SESSION"},
		{content.ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
		{fmt.Errorf("x: %w", content.ErrNoVariantsAvailable), http.StatusNotFound, "NO_VARIANTS"},
		{content.ErrVariantNotFound, http.StatusNotFound, "VARIANT_NOT_FOUND"},
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, body := resolveError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("dsn=postgres://secret")
	})

	rec := doGet(e, "/fail", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body jsonres.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestTraceID(t *testing.T) {
	e := echo.New()
	e.Use(TraceID())
	e.GET("/trace", func(c echo.Context) error {
		return c.String(http.StatusOK, logger.TraceIDFromContext(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))

	rec = doGet(e, "/trace", "")
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestMetrics_PassesErrorsToHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(RequestMetrics())
	e.GET("/missing", func(c echo.Context) error {
		return content.ErrVariantNotFound
	})

	rec := doGet(e, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
