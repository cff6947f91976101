package roi

import (
	"errors"
	"fmt"
	"math"

	"aiAutomate/domain"
)

var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate checks every field before any division happens.
func Validate(in domain.ROIInputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"hours_per_week", in.HoursPerWeek},
		{"hourly_wage", in.HourlyWage},
		{"implementation_cost", in.ImplementationCost},
		{"monthly_operating_cost", in.MonthlyOperatingCost},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid("%s must be a finite number", f.name)
		}
	}

	if in.HoursPerWeek <= 0 {
		return invalid("hours_per_week must be greater than 0")
	}
	if in.HoursPerWeek > MaxHoursPerWeek {
		return invalid("hours_per_week must not exceed %.0f", MaxHoursPerWeek)
	}
	if in.HourlyWage <= 0 {
		return invalid("hourly_wage must be greater than 0")
	}
	if in.ImplementationCost < 0 {
		return invalid("implementation_cost must not be negative")
	}
	// ROI percentages divide by the implementation cost.
	if in.ImplementationCost == 0 {
		return invalid("implementation_cost must be greater than 0 to compute ROI")
	}
	if in.MonthlyOperatingCost < 0 {
		return invalid("monthly_operating_cost must not be negative")
	}
	for _, f := range fields[1:] {
		if f.value > MaxMoneyAmount {
			return invalid("%s exceeds the maximum of %.0f", f.name, MaxMoneyAmount)
		}
	}

	return nil
}

// Calculate turns calculator inputs into savings, payback and ROI figures
// plus a month-by-month projection. It has no side effects.
func Calculate(in domain.ROIInputs) (domain.ROICalculation, error) {
	if err := Validate(in); err != nil {
		return domain.ROICalculation{}, err
	}

	hoursSavedAnnually := in.HoursPerWeek * WeeksPerYear
	costPerHour := in.HourlyWage * OverheadMultiplier
	annualSavings := hoursSavedAnnually * costPerHour
	monthlySavings := annualSavings / MonthsPerYear

	if monthlySavings <= 0 {
		return domain.ROICalculation{}, invalid("monthly savings must be greater than 0")
	}

	annualOperatingCost := in.MonthlyOperatingCost * MonthsPerYear
	totalFirstYearCost := in.ImplementationCost + annualOperatingCost
	netFirstYearSavings := annualSavings - annualOperatingCost

	return domain.ROICalculation{
		MonthlySavings:      monthlySavings,
		AnnualSavings:       annualSavings,
		PaybackPeriod:       totalFirstYearCost / monthlySavings,
		ROIPercentage:       netFirstYearSavings / in.ImplementationCost * 100,
		HoursSavedAnnually:  hoursSavedAnnually,
		CostPerHour:         costPerHour,
		TotalFirstYearCost:  totalFirstYearCost,
		NetFirstYearSavings: netFirstYearSavings,
		ThreeYearROI:        multiYearROI(in, annualSavings, 3),
		FiveYearROI:         multiYearROI(in, annualSavings, 5),
		MonthlyProjections:  project(in, monthlySavings),
	}, nil
}

// multiYearROI generalises the first-year ROI to a horizon of n years.
func multiYearROI(in domain.ROIInputs, annualSavings float64, years int) float64 {
	n := float64(years)
	netSavings := annualSavings*n - (in.ImplementationCost + in.MonthlyOperatingCost*MonthsPerYear*n)
	return netSavings / in.ImplementationCost * 100
}

func project(in domain.ROIInputs, monthlySavings float64) []domain.MonthlyProjection {
	out := make([]domain.MonthlyProjection, 0, ProjectionMonths)

	cumulativeSavings := 0.0
	cumulativeCosts := in.ImplementationCost
	for month := 1; month <= ProjectionMonths; month++ {
		cumulativeSavings += monthlySavings
		cumulativeCosts += in.MonthlyOperatingCost
		net := cumulativeSavings - cumulativeCosts

		roi := 0.0
		if in.ImplementationCost > 0 {
			roi = net / in.ImplementationCost * 100
		}

		out = append(out, domain.MonthlyProjection{
			Month:             month,
			CumulativeSavings: cumulativeSavings,
			CumulativeCosts:   cumulativeCosts,
			NetSavings:        net,
			ROI:               roi,
		})
	}

	return out
}
