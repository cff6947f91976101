package rest

import (
	"context"
	"net/http"
	"time"

	"aiAutomate/business/content"
	"aiAutomate/domain"
	"aiAutomate/pkg/logger"
	"aiAutomate/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SessionHandler struct {
		validate       *validator.Validate
		intentService  IntentService
		contentService ContentService
	}

	IntentService interface {
		StartSession(ctx context.Context) (string, error)
		RecordSignals(ctx context.Context, sessionID string, sigs []domain.BehaviorSignal) (int, error)
		DetectIntent(ctx context.Context, sessionID string) (domain.IntentScore, error)
	}

	ContentService interface {
		Serve(ctx context.Context, sessionID string, score domain.IntentScore, locale string) (domain.ServedContent, error)
		RecordImpression(ctx context.Context, fb content.Feedback) (domain.VariantPerformance, error)
		RecordConversion(ctx context.Context, fb content.Feedback) (domain.VariantPerformance, error)
	}

	SignalRequest struct {
		Type      string            `json:"type" validate:"required,oneof=scroll click hover navigation content-view time-on-page form-interaction"`
		Value     float64           `json:"value" validate:"gte=0"`
		Metadata  map[string]string `json:"metadata"`
		Timestamp *time.Time        `json:"timestamp"`
	}

	SignalBatchRequest struct {
		Signals []SignalRequest `json:"signals" validate:"required,min=1,max=50,dive"`
	}

	ContentQuery struct {
		Locale string `query:"locale" validate:"omitempty,oneof=en nl"`
	}
)

func NewSessionHandler(intentService IntentService, contentService ContentService) *SessionHandler {
	return &SessionHandler{
		validate:       validator.New(),
		intentService:  intentService,
		contentService: contentService,
	}
}

func (r SignalRequest) signal() domain.BehaviorSignal {
	sig := domain.BehaviorSignal{
		Type:     domain.SignalType(r.Type),
		Value:    r.Value,
		Metadata: r.Metadata,
	}
	if r.Timestamp != nil {
		sig.Timestamp = *r.Timestamp
	}
	return sig
}

// POST /api/v1/sessions
func (h *SessionHandler) StartSession(c echo.Context) error {
	id, err := h.intentService.StartSession(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(echo.Map{"session_id": id}))
}

// POST /api/v1/sessions/:session_id/signals
// body is a single signal or {"signals": [...]}
func (h *SessionHandler) RecordSignals(c echo.Context) error {
	var body struct {
		SignalRequest
		Signals []SignalRequest `json:"signals"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	batch := SignalBatchRequest{Signals: body.Signals}
	if len(batch.Signals) == 0 {
		batch.Signals = []SignalRequest{body.SignalRequest}
	}
	if err := h.validate.Struct(&batch); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sigs := make([]domain.BehaviorSignal, 0, len(batch.Signals))
	for _, s := range batch.Signals {
		sigs = append(sigs, s.signal())
	}

	sessionID := c.Param("session_id")
	recorded, err := h.intentService.RecordSignals(c.Request().Context(), sessionID, sigs)
	if err != nil {
		if recorded > 0 {
			logger.Warn("Signal batch partially recorded", "session_id", sessionID, "recorded", recorded, "error", err)
		}
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(echo.Map{"recorded": recorded}))
}

// GET /api/v1/sessions/:session_id/intent
func (h *SessionHandler) DetectIntent(c echo.Context) error {
	score, err := h.intentService.DetectIntent(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(score))
}

// GET /api/v1/sessions/:session_id/content?locale=en|nl
func (h *SessionHandler) Content(c echo.Context) error {
	var q ContentQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Locale == "" {
		q.Locale = domain.LocaleEN
	}

	start := time.Now()
	defer func() {
		metrics.ContentServeLatency.Observe(time.Since(start).Seconds())
	}()

	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	score, err := h.intentService.DetectIntent(ctx, sessionID)
	if err != nil {
		return err
	}

	served, err := h.contentService.Serve(ctx, sessionID, score, q.Locale)
	if err != nil {
		logger.Warn("Failed to serve content", "session_id", sessionID, "audience", score.Type, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(served))
}
