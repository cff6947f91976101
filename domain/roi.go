package domain

import "time"

type ROIInputs struct {
	HoursPerWeek         float64 `json:"hours_per_week"`
	HourlyWage           float64 `json:"hourly_wage"`
	ImplementationCost   float64 `json:"implementation_cost"`
	MonthlyOperatingCost float64 `json:"monthly_operating_cost"`
}

type MonthlyProjection struct {
	Month             int     `json:"month"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	CumulativeCosts   float64 `json:"cumulative_costs"`
	NetSavings        float64 `json:"net_savings"`
	ROI               float64 `json:"roi"`
}

type ROICalculation struct {
	MonthlySavings      float64             `json:"monthly_savings"`
	AnnualSavings       float64             `json:"annual_savings"`
	PaybackPeriod       float64             `json:"payback_period"` // months
	ROIPercentage       float64             `json:"roi_percentage"`
	HoursSavedAnnually  float64             `json:"hours_saved_annually"`
	CostPerHour         float64             `json:"cost_per_hour"`
	TotalFirstYearCost  float64             `json:"total_first_year_cost"`
	NetFirstYearSavings float64             `json:"net_first_year_savings"`
	ThreeYearROI        float64             `json:"three_year_roi"`
	FiveYearROI         float64             `json:"five_year_roi"`
	MonthlyProjections  []MonthlyProjection `json:"monthly_projections"`
}

// ROICalculationRecord is the persisted summary of one calculator run.
type ROICalculationRecord struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	SessionID            string    `gorm:"column:session_id;index" json:"session_id"`
	HoursPerWeek         float64   `gorm:"column:hours_per_week;not null" json:"hours_per_week"`
	HourlyWage           float64   `gorm:"column:hourly_wage;not null" json:"hourly_wage"`
	ImplementationCost   float64   `gorm:"column:implementation_cost;not null" json:"implementation_cost"`
	MonthlyOperatingCost float64   `gorm:"column:monthly_operating_cost;not null" json:"monthly_operating_cost"`
	AnnualSavings        float64   `gorm:"column:annual_savings" json:"annual_savings"`
	PaybackPeriod        float64   `gorm:"column:payback_period" json:"payback_period"`
	ROIPercentage        float64   `gorm:"column:roi_percentage" json:"roi_percentage"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ROICalculationRecord) TableName() string {
	return "roi_calculations"
}
