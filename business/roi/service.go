package roi

import (
	"context"
	"fmt"
	"time"

	"aiAutomate/domain"
	"aiAutomate/pkg/logger"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.ROICalculationRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ROICalculationRecord, error)
}

type Service struct {
	repo CalculationRepository
}

func NewService(repo CalculationRepository) *Service {
	return &Service{repo: repo}
}

// Calculate runs the calculator and records a summary of the run. A failed
// save is logged and does not fail the request.
func (s *Service) Calculate(ctx context.Context, sessionID string, in domain.ROIInputs) (domain.ROICalculation, error) {
	if err := ctx.Err(); err != nil {
		return domain.ROICalculation{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	calc, err := Calculate(in)
	CalculationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		CalculationsTotal.WithLabelValues("invalid").Inc()
		logger.Debug("roi_invalid_input", "session_id", sessionID, "error", err)
		return domain.ROICalculation{}, err
	}
	CalculationsTotal.WithLabelValues("ok").Inc()

	if s.repo != nil {
		record := domain.ROICalculationRecord{
			SessionID:            sessionID,
			HoursPerWeek:         in.HoursPerWeek,
			HourlyWage:           in.HourlyWage,
			ImplementationCost:   in.ImplementationCost,
			MonthlyOperatingCost: in.MonthlyOperatingCost,
			AnnualSavings:        calc.AnnualSavings,
			PaybackPeriod:        calc.PaybackPeriod,
			ROIPercentage:        calc.ROIPercentage,
		}
		if err := s.repo.Save(ctx, record); err != nil {
			logger.Warn("failed to save roi calculation", "session_id", sessionID, "error", err)
		}
	}

	logger.Debug("roi_calculated",
		"session_id", sessionID,
		"annual_savings", calc.AnnualSavings,
		"payback_period", calc.PaybackPeriod,
		"roi_percentage", calc.ROIPercentage,
	)

	return calc, nil
}

// History lists the calculations recorded for a session, newest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.ROICalculationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if s.repo == nil {
		return []domain.ROICalculationRecord{}, nil
	}
	records, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list roi calculations: %w", err)
	}
	return records, nil
}
