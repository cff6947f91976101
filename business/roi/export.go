package roi

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"aiAutomate/domain"

	"github.com/jszwec/csvutil"
)

type projectionRow struct {
	Month             int    `csv:"month"`
	CumulativeSavings string `csv:"cumulative_savings"`
	CumulativeCosts   string `csv:"cumulative_costs"`
	NetSavings        string `csv:"net_savings"`
	ROI               string `csv:"roi_percentage"`
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteProjectionsCSV writes the monthly projection table with a header row.
func WriteProjectionsCSV(w io.Writer, calc domain.ROICalculation) error {
	rows := make([]projectionRow, 0, len(calc.MonthlyProjections))
	for _, p := range calc.MonthlyProjections {
		rows = append(rows, projectionRow{
			Month:             p.Month,
			CumulativeSavings: money(p.CumulativeSavings),
			CumulativeCosts:   money(p.CumulativeCosts),
			NetSavings:        money(p.NetSavings),
			ROI:               money(p.ROI),
		})
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(projectionRow{}); err != nil {
			return fmt.Errorf("encode csv header: %w", err)
		}
	} else if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode projections: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
