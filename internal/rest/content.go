package rest

import (
	"net/http"

	"aiAutomate/business/content"
	"aiAutomate/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ContentHandler struct {
		validate       *validator.Validate
		contentService ContentService
	}

	// FeedbackRequest names the variant either by token or by id + audience.
	FeedbackRequest struct {
		SessionID string         `json:"session_id" validate:"omitempty,uuid"`
		Token     string         `json:"conversion_token" validate:"required_without=VariantID"`
		VariantID string         `json:"variant_id" validate:"required_without=Token"`
		Audience  string         `json:"audience" validate:"omitempty,oneof=startup sme universal"`
		Context   map[string]any `json:"context"`
	}
)

func NewContentHandler(contentService ContentService) *ContentHandler {
	return &ContentHandler{
		validate:       validator.New(),
		contentService: contentService,
	}
}

func (h *ContentHandler) bindFeedback(c echo.Context) (content.Feedback, error) {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return content.Feedback{}, err
	}
	if err := h.validate.Struct(&req); err != nil {
		return content.Feedback{}, err
	}
	return content.Feedback{
		SessionID: req.SessionID,
		VariantID: req.VariantID,
		Audience:  domain.IntentType(req.Audience),
		Token:     req.Token,
		Context:   req.Context,
	}, nil
}

// POST /api/v1/content/impressions
func (h *ContentHandler) Impression(c echo.Context) error {
	fb, err := h.bindFeedback(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	perf, err := h.contentService.RecordImpression(c.Request().Context(), fb)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(perf))
}

// POST /api/v1/content/conversions
func (h *ContentHandler) Conversion(c echo.Context) error {
	fb, err := h.bindFeedback(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	perf, err := h.contentService.RecordConversion(c.Request().Context(), fb)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(perf))
}
