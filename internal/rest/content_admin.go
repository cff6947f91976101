package rest

import (
	"context"
	"net/http"
	"strconv"

	"aiAutomate/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ContentAdminHandler struct {
		validate       *validator.Validate
		contentService ContentAdminService
	}

	ContentAdminService interface {
		Variants(audience domain.IntentType) []domain.ContentVariant
		RegisterVariant(ctx context.Context, v domain.ContentVariant) error
		RecentEvents(ctx context.Context, audience domain.IntentType, variantID string, limit int) ([]domain.ContentEvent, error)
	}
)

var audiences = []domain.IntentType{domain.IntentStartup, domain.IntentSME, domain.IntentUniversal}

func NewContentAdminHandler(svc ContentAdminService) *ContentAdminHandler {
	return &ContentAdminHandler{
		validate:       validator.New(),
		contentService: svc,
	}
}

// GET /api/v1/admin/content/variants?audience=startup
func (h *ContentAdminHandler) ListVariants(c echo.Context) error {
	audience := domain.IntentType(c.QueryParam("audience"))
	if audience != "" && !audience.Valid() {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid audience"})
	}

	selected := audiences
	if audience != "" {
		selected = []domain.IntentType{audience}
	}

	out := make([]domain.ContentVariant, 0)
	for _, a := range selected {
		out = append(out, h.contentService.Variants(a)...)
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}

// PUT /api/v1/admin/content/variants
// body: ContentVariant JSON; replaces the copy of a variant with the same id.
// Counters are owned by the optimizer and cannot be set here.
func (h *ContentAdminHandler) UpsertVariant(c echo.Context) error {
	var body domain.ContentVariant
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid body: " + err.Error()})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	body.Performance = domain.VariantPerformance{}

	if err := h.contentService.RegisterVariant(c.Request().Context(), body); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{
		"status":     "ok",
		"audience":   body.Audience,
		"variant_id": body.ID,
	}))
}

// GET /api/v1/admin/content/variants/:audience/:variant_id/events?limit=50
func (h *ContentAdminHandler) RecentEvents(c echo.Context) error {
	audience := domain.IntentType(c.Param("audience"))
	if !audience.Valid() {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid audience"})
	}

	limit := 50
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 500 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	events, err := h.contentService.RecentEvents(c.Request().Context(), audience, c.Param("variant_id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
