package funnelcast

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidForecastPeriods = errors.New("forecast periods must be between 1 and 12")
	ErrNegativeOption         = errors.New("option value must not be negative")
)

const (
	MinForecastPeriods = 1
	MaxForecastPeriods = 12
)

// Options configures a dashboard session: the manual-entry defaults, revenue
// assumption, forecast settings, and monthly goals.
type Options struct {
	// manual-entry record fields representing the current month
	ManualLeads        float64 `json:"manual_leads"`
	ManualAppointments float64 `json:"manual_appointments"`
	ManualClosings     float64 `json:"manual_closings"`
	ManualCost         float64 `json:"manual_cost"`

	AvgRevenuePerClosing float64 `json:"avg_revenue_per_closing"`

	// ForecastPeriods is collected from the user but the engine produces a
	// single-point forecast regardless, matching the reference dashboard.
	ForecastPeriods int `json:"forecast_periods"`

	GoalLeads        float64 `json:"goal_leads"`
	GoalAppointments float64 `json:"goal_appointments"`
	GoalClosings     float64 `json:"goal_closings"`
}

// NewDefaultOptions returns the reference dashboard defaults.
func NewDefaultOptions() *Options {
	return &Options{
		ManualLeads:          100,
		ManualAppointments:   50,
		ManualClosings:       25,
		ManualCost:           5000,
		AvgRevenuePerClosing: 10000,
		ForecastPeriods:      3,
		GoalLeads:            100,
		GoalAppointments:     50,
		GoalClosings:         25,
	}
}

// Validate checks option bounds, returning defaults for a nil receiver.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.ForecastPeriods < MinForecastPeriods || o.ForecastPeriods > MaxForecastPeriods {
		return nil, fmt.Errorf("got %d, %w", o.ForecastPeriods, ErrInvalidForecastPeriods)
	}
	for name, val := range map[string]float64{
		"manual leads":            o.ManualLeads,
		"manual appointments":     o.ManualAppointments,
		"manual closings":         o.ManualClosings,
		"manual cost":             o.ManualCost,
		"avg revenue per closing": o.AvgRevenuePerClosing,
		"goal leads":              o.GoalLeads,
		"goal appointments":       o.GoalAppointments,
		"goal closings":           o.GoalClosings,
	} {
		if val < 0 {
			return nil, fmt.Errorf("%s, %w", name, ErrNegativeOption)
		}
	}
	return o, nil
}
