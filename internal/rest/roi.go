package rest

import (
	"bytes"
	"context"
	"net/http"

	"aiAutomate/business/roi"
	"aiAutomate/domain"
	"aiAutomate/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ROIHandler struct {
		validate   *validator.Validate
		roiService ROIService
	}

	ROIService interface {
		Calculate(ctx context.Context, sessionID string, in domain.ROIInputs) (domain.ROICalculation, error)
		History(ctx context.Context, sessionID string) ([]domain.ROICalculationRecord, error)
	}

	ROIRequest struct {
		SessionID            string  `json:"session_id" validate:"omitempty,uuid"`
		HoursPerWeek         float64 `json:"hours_per_week" validate:"gt=0,lte=168"`
		HourlyWage           float64 `json:"hourly_wage" validate:"gt=0"`
		ImplementationCost   float64 `json:"implementation_cost" validate:"gte=0"`
		MonthlyOperatingCost float64 `json:"monthly_operating_cost" validate:"gte=0"`
	}
)

func NewROIHandler(roiService ROIService) *ROIHandler {
	return &ROIHandler{
		validate:   validator.New(),
		roiService: roiService,
	}
}

func (r ROIRequest) inputs() domain.ROIInputs {
	return domain.ROIInputs{
		HoursPerWeek:         r.HoursPerWeek,
		HourlyWage:           r.HourlyWage,
		ImplementationCost:   r.ImplementationCost,
		MonthlyOperatingCost: r.MonthlyOperatingCost,
	}
}

func (h *ROIHandler) bind(c echo.Context) (ROIRequest, error) {
	var request ROIRequest
	if err := c.Bind(&request); err != nil {
		return request, err
	}
	if err := h.validate.Struct(&request); err != nil {
		return request, err
	}
	return request, nil
}

// POST /api/v1/roi/calculate
func (h *ROIHandler) Calculate(c echo.Context) error {
	request, err := h.bind(c)
	if err != nil {
		logger.Debug("Invalid roi request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	calc, err := h.roiService.Calculate(c.Request().Context(), request.SessionID, request.inputs())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(calc))
}

// POST /api/v1/roi/export
// responds with the monthly projections as CSV
func (h *ROIHandler) Export(c echo.Context) error {
	request, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	calc, err := h.roiService.Calculate(c.Request().Context(), request.SessionID, request.inputs())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := roi.WriteProjectionsCSV(&buf, calc); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="roi-projection.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GET /api/v1/admin/roi/sessions/:session_id
func (h *ROIHandler) History(c echo.Context) error {
	records, err := h.roiService.History(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}
