//go:build !integration

package roi

import (
	"errors"
	"math"
	"testing"

	"aiAutomate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleInputs() domain.ROIInputs {
	return domain.ROIInputs{
		HoursPerWeek:         10,
		HourlyWage:           35,
		ImplementationCost:   5000,
		MonthlyOperatingCost: 200,
	}
}

func TestCalculate_Example(t *testing.T) {
	t.Parallel()

	calc, err := Calculate(exampleInputs())
	require.NoError(t, err)

	assert.InDelta(t, 520, calc.HoursSavedAnnually, 1e-9)
	assert.InDelta(t, 45.5, calc.CostPerHour, 1e-9)
	assert.InDelta(t, 23660, calc.AnnualSavings, 1e-6)
	assert.InDelta(t, 1971.6667, calc.MonthlySavings, 1e-3)
	assert.InDelta(t, 7400, calc.TotalFirstYearCost, 1e-9)
	assert.InDelta(t, 3.7532, calc.PaybackPeriod, 1e-3)
	assert.InDelta(t, 21260, calc.NetFirstYearSavings, 1e-6)
	assert.InDelta(t, 425.2, calc.ROIPercentage, 1e-6)
	// (23660*3 - (5000 + 2400*3)) / 5000 * 100
	assert.InDelta(t, 1175.6, calc.ThreeYearROI, 1e-6)
	// (23660*5 - (5000 + 2400*5)) / 5000 * 100
	assert.InDelta(t, 2026.0, calc.FiveYearROI, 1e-6)
}

func TestCalculate_PaybackIsExactRatio(t *testing.T) {
	t.Parallel()

	inputs := []domain.ROIInputs{
		exampleInputs(),
		{HoursPerWeek: 0.5, HourlyWage: 12, ImplementationCost: 100000, MonthlyOperatingCost: 0},
		{HoursPerWeek: 40, HourlyWage: 80, ImplementationCost: 1, MonthlyOperatingCost: 999},
	}

	for _, in := range inputs {
		calc, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, calc.TotalFirstYearCost/calc.MonthlySavings, calc.PaybackPeriod)
		assert.Greater(t, calc.PaybackPeriod, 0.0)
	}
}

func TestCalculate_Projections(t *testing.T) {
	t.Parallel()

	calc, err := Calculate(exampleInputs())
	require.NoError(t, err)

	projections := calc.MonthlyProjections
	require.Len(t, projections, ProjectionMonths)

	first := projections[0]
	assert.Equal(t, 1, first.Month)
	assert.InDelta(t, calc.MonthlySavings, first.CumulativeSavings, 1e-9)
	assert.InDelta(t, 5200, first.CumulativeCosts, 1e-9)
	assert.InDelta(t, first.CumulativeSavings-first.CumulativeCosts, first.NetSavings, 1e-9)

	for i := 1; i < len(projections); i++ {
		prev, cur := projections[i-1], projections[i]
		assert.Equal(t, prev.Month+1, cur.Month)
		assert.GreaterOrEqual(t, cur.CumulativeCosts, prev.CumulativeCosts)
		assert.Greater(t, cur.CumulativeSavings, prev.CumulativeSavings)
		assert.InDelta(t, calc.MonthlySavings, cur.CumulativeSavings-prev.CumulativeSavings, 1e-6)
		assert.InDelta(t, cur.NetSavings/5000*100, cur.ROI, 1e-9)
	}

	last := projections[len(projections)-1]
	assert.Equal(t, 36, last.Month)
	assert.InDelta(t, 5000+200*36, last.CumulativeCosts, 1e-9)
}

func TestCalculate_Idempotent(t *testing.T) {
	t.Parallel()

	a, err := Calculate(exampleInputs())
	require.NoError(t, err)
	b, err := Calculate(exampleInputs())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCalculate_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*domain.ROIInputs)
	}{
		{"zero hours", func(in *domain.ROIInputs) { in.HoursPerWeek = 0 }},
		{"negative hours", func(in *domain.ROIInputs) { in.HoursPerWeek = -1 }},
		{"more hours than a week", func(in *domain.ROIInputs) { in.HoursPerWeek = 200 }},
		{"zero wage", func(in *domain.ROIInputs) { in.HourlyWage = 0 }},
		{"negative implementation cost", func(in *domain.ROIInputs) { in.ImplementationCost = -5 }},
		{"zero implementation cost", func(in *domain.ROIInputs) { in.ImplementationCost = 0 }},
		{"negative operating cost", func(in *domain.ROIInputs) { in.MonthlyOperatingCost = -1 }},
		{"NaN wage", func(in *domain.ROIInputs) { in.HourlyWage = math.NaN() }},
		{"infinite cost", func(in *domain.ROIInputs) { in.MonthlyOperatingCost = math.Inf(1) }},
		{"wage too large", func(in *domain.ROIInputs) { in.HourlyWage = MaxMoneyAmount * 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := exampleInputs()
			tt.mutate(&in)

			calc, err := Calculate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Empty(t, calc.MonthlyProjections)
		})
	}
}

func TestCalculate_ZeroOperatingCostAllowed(t *testing.T) {
	t.Parallel()

	in := exampleInputs()
	in.MonthlyOperatingCost = 0

	calc, err := Calculate(in)
	require.NoError(t, err)
	assert.InDelta(t, 5000/calc.MonthlySavings, calc.PaybackPeriod, 1e-12)
	for i := 1; i < len(calc.MonthlyProjections); i++ {
		assert.Equal(t, calc.MonthlyProjections[0].CumulativeCosts, calc.MonthlyProjections[i].CumulativeCosts)
	}
}
