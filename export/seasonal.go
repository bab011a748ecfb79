package export

import (
	"time"

	"github.com/aouyang1/funnelcast/funnelset"
)

// MonthlyAverage is one row of the seasonal patterns sheet: the mean of each
// funnel count across every record falling in the named calendar month.
type MonthlyAverage struct {
	Month           string  `json:"month"`
	AvgLeads        float64 `json:"avg_leads"`
	AvgAppointments float64 `json:"avg_appointments"`
	AvgClosings     float64 `json:"avg_closings"`
}

// MonthlyAverages groups records by calendar month name over the full record
// history and averages each funnel count. This is a plain group-average over
// January through December, independent of seasonal decomposition, and always
// returns twelve rows. Months with no records average to 0.
func MonthlyAverages(records []funnelset.Record) []MonthlyAverage {
	sums := make([]funnelset.Record, 12)
	counts := make([]float64, 12)
	for _, r := range records {
		idx := int(r.Month.Month()) - 1
		sums[idx].Leads += r.Leads
		sums[idx].Appointments += r.Appointments
		sums[idx].Closings += r.Closings
		counts[idx] += 1
	}

	out := make([]MonthlyAverage, 12)
	for i := 0; i < 12; i++ {
		out[i] = MonthlyAverage{Month: time.Month(i + 1).String()}
		if counts[i] == 0 {
			continue
		}
		out[i].AvgLeads = sums[i].Leads / counts[i]
		out[i].AvgAppointments = sums[i].Appointments / counts[i]
		out[i].AvgClosings = sums[i].Closings / counts[i]
	}
	return out
}
