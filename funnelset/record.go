// Package funnelset stores the monthly sales funnel observations that feed the
// metrics, decomposition, forecast, and export pipeline.
package funnelset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrUnknownMetric = errors.New("unknown funnel metric")
)

// Metric selects one observed column of a Record.
type Metric string

const (
	MetricLeads        Metric = "leads"
	MetricAppointments Metric = "appointments"
	MetricClosings     Metric = "closings"
	MetricCost         Metric = "cost"
)

// Record is one monthly funnel observation. Cost is optional in data sources
// and defaults to 0. Funnel monotonicity (leads >= appointments >= closings)
// is intentionally not validated.
type Record struct {
	Month        time.Time `json:"month"`
	Leads        float64   `json:"leads"`
	Appointments float64   `json:"appointments"`
	Closings     float64   `json:"closings"`
	Cost         float64   `json:"cost"`
}

// Value returns the record column selected by the metric.
func (r Record) Value(metric Metric) (float64, error) {
	switch metric {
	case MetricLeads:
		return r.Leads, nil
	case MetricAppointments:
		return r.Appointments, nil
	case MetricClosings:
		return r.Closings, nil
	case MetricCost:
		return r.Cost, nil
	}
	return 0.0, fmt.Errorf("%q, %w", metric, ErrUnknownMetric)
}

// Series extracts an aligned time/value pair for the given metric preserving
// input order.
func Series(records []Record, metric Metric) ([]time.Time, []float64, error) {
	t := make([]time.Time, 0, len(records))
	y := make([]float64, 0, len(records))
	for i, r := range records {
		val, err := r.Value(metric)
		if err != nil {
			return nil, nil, fmt.Errorf("at record %d, %w", i, err)
		}
		t = append(t, r.Month)
		y = append(y, val)
	}
	return t, y, nil
}

// SortByMonth returns a copy of records ordered by month ascending. The sort
// is stable so duplicate months keep their input order.
func SortByMonth(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(
		out,
		func(i, j int) bool {
			return out[i].Month.Before(out[j].Month)
		},
	)
	return out
}

// DedupeByMonth returns a copy of records keeping the first occurrence of each
// month. Input is expected to be sorted by month.
func DedupeByMonth(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for i, r := range records {
		if i > 0 && r.Month.Equal(out[len(out)-1].Month) {
			continue
		}
		out = append(out, r)
	}
	return out
}
