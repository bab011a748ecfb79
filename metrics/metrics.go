// Package metrics derives aggregate and rate metrics from a funnel record set.
package metrics

import (
	"errors"
	"math"

	"github.com/aouyang1/funnelcast/funnelset"
)

var ErrEmptyRecordSet = errors.New("no records in set")

// MonthLabelFormat renders month labels as e.g. "Jan 06".
const MonthLabelFormat = "Jan 06"

// Bundle holds every derived metric for a record set. Rates are percentages
// kept at full precision; rounding happens at presentation time.
type Bundle struct {
	TotalLeads        float64 `json:"total_leads"`
	TotalAppointments float64 `json:"total_appointments"`
	TotalClosings     float64 `json:"total_closings"`
	TotalCost         float64 `json:"total_cost"`

	CostPerLead        float64 `json:"cost_per_lead"`
	CostPerAppointment float64 `json:"cost_per_appointment"`
	CostPerClosing     float64 `json:"cost_per_closing"`

	LeadToAppointmentRate  float64 `json:"lead_to_appointment_rate"`
	AppointmentToCloseRate float64 `json:"appointment_to_close_rate"`
	OverallCloseRate       float64 `json:"overall_close_rate"`

	BestMonth  string `json:"best_month"`
	WorstMonth string `json:"worst_month"`
}

// SafeRatio is the single divide guard for the pipeline: it returns num/den,
// or 0 when the denominator is not positive. Ratios over an empty record set
// therefore come out as 0 rather than NaN.
func SafeRatio(num, den float64) float64 {
	if den <= 0.0 {
		return 0.0
	}
	return num / den
}

// Compute derives the full metrics bundle from records. It never fails; on an
// empty set every numeric field is 0 and the month labels are empty. Results
// are computed fresh on every call.
func Compute(records []funnelset.Record) Bundle {
	var b Bundle
	for _, r := range records {
		b.TotalLeads += r.Leads
		b.TotalAppointments += r.Appointments
		b.TotalClosings += r.Closings
		b.TotalCost += r.Cost
	}

	b.CostPerLead = SafeRatio(b.TotalCost, b.TotalLeads)
	b.CostPerAppointment = SafeRatio(b.TotalCost, b.TotalAppointments)
	b.CostPerClosing = SafeRatio(b.TotalCost, b.TotalClosings)

	b.LeadToAppointmentRate = SafeRatio(b.TotalAppointments, b.TotalLeads) * 100.0
	b.AppointmentToCloseRate = SafeRatio(b.TotalClosings, b.TotalAppointments) * 100.0
	b.OverallCloseRate = SafeRatio(b.TotalClosings, b.TotalLeads) * 100.0

	if best, worst, err := BestWorstMonths(records); err == nil {
		b.BestMonth = best
		b.WorstMonth = worst
	}
	return b
}

// BestWorstMonths returns the month labels of the records with the highest
// and lowest closings. Ties keep the first occurrence in input order. Returns
// ErrEmptyRecordSet on zero records; Compute is the zero-safe variant.
func BestWorstMonths(records []funnelset.Record) (string, string, error) {
	if len(records) == 0 {
		return "", "", ErrEmptyRecordSet
	}

	bestIdx, worstIdx := 0, 0
	for i, r := range records {
		if r.Closings > records[bestIdx].Closings {
			bestIdx = i
		}
		if r.Closings < records[worstIdx].Closings {
			worstIdx = i
		}
	}
	best := records[bestIdx].Month.Format(MonthLabelFormat)
	worst := records[worstIdx].Month.Format(MonthLabelFormat)
	return best, worst, nil
}

// GoalProgress reports actual as a percentage of goal, 0 when the goal is not
// positive.
func GoalProgress(goal, actual float64) float64 {
	return SafeRatio(actual, goal) * 100.0
}

// GoalFraction returns the progress bar fill for a goal, capped at 1.
func GoalFraction(goal, actual float64) float64 {
	return math.Min(SafeRatio(actual, goal), 1.0)
}
