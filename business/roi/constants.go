package roi

const (
	// OverheadMultiplier loads the hourly wage with 30% employer overhead
	// (taxes, benefits, workspace). Policy constant, not configurable.
	OverheadMultiplier = 1.3

	WeeksPerYear     = 52
	MonthsPerYear    = 12
	ProjectionMonths = 36

	// Upper bounds keep the arithmetic far away from overflow territory.
	MaxHoursPerWeek = 168.0
	MaxMoneyAmount  = 1_000_000_000.0
)
