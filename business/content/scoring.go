package content

import "math"

// ucbScore = conversionRate + sqrt(2 ln(N) / max(n, 1))
func ucbScore(conversionRate float64, totalImpressions, impressions int64) float64 {
	if totalImpressions < 1 {
		return conversionRate
	}
	n := float64(impressions)
	if n < 1 {
		n = 1
	}
	return conversionRate + math.Sqrt(2*math.Log(float64(totalImpressions))/n)
}

func conversionRate(impressions, conversions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(conversions) / float64(impressions)
}
