// Package funnelcast assembles a per-session sales funnel dashboard pipeline:
// record storage, derived metrics, seasonal decomposition, a linear closings
// forecast, and spreadsheet/CSV exports.
package funnelcast

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aouyang1/funnelcast/decompose"
	"github.com/aouyang1/funnelcast/export"
	"github.com/aouyang1/funnelcast/forecast"
	"github.com/aouyang1/funnelcast/funnelset"
	"github.com/aouyang1/funnelcast/metrics"
)

var ErrNoRecords = errors.New("no records in session")

// Session owns the record store and options for one dashboard session. Each
// user interaction runs a full synchronous recomputation pass; nothing is
// cached between calls. A Session must not be shared across goroutines.
type Session struct {
	opt   *Options
	store *funnelset.Store
}

// New creates a session with an empty record store. If no options are
// provided a default is used.
func New(opt *Options) (*Session, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate session options, %w", err)
	}
	return &Session{
		opt:   opt,
		store: funnelset.NewStore(),
	}, nil
}

// LoadCSV replaces the record table wholesale with a parsed CSV upload.
func (s *Session) LoadCSV(r io.Reader) error {
	records, err := funnelset.FromCSV(r)
	if err != nil {
		return fmt.Errorf("unable to load csv upload, %w", err)
	}
	s.store.Replace(records)
	return nil
}

// LoadXLSX replaces the record table wholesale with a parsed spreadsheet
// upload.
func (s *Session) LoadXLSX(r io.Reader) error {
	records, err := funnelset.FromXLSX(r)
	if err != nil {
		return fmt.Errorf("unable to load spreadsheet upload, %w", err)
	}
	s.store.Replace(records)
	return nil
}

// AddManual appends one synthetic record for the given month built from the
// manual-entry option fields.
func (s *Session) AddManual(month time.Time) {
	s.store.Append(funnelset.Record{
		Month:        month,
		Leads:        s.opt.ManualLeads,
		Appointments: s.opt.ManualAppointments,
		Closings:     s.opt.ManualClosings,
		Cost:         s.opt.ManualCost,
	})
}

// Records returns the current ordered record sequence.
func (s *Session) Records() []funnelset.Record {
	return s.store.All()
}

// RecordsBetween returns the records within [start, end] inclusive, ordered
// by month.
func (s *Session) RecordsBetween(start, end time.Time) []funnelset.Record {
	return s.store.FilterByDate(start, end)
}

// Metrics computes the derived metrics bundle over the full record set.
func (s *Session) Metrics() metrics.Bundle {
	return metrics.Compute(s.store.All())
}

// MetricsBetween computes the derived metrics bundle over the date-filtered
// record set.
func (s *Session) MetricsBetween(start, end time.Time) metrics.Bundle {
	return metrics.Compute(s.store.FilterByDate(start, end))
}

// Goals tracks the most recent record's counts against the configured
// monthly goals.
func (s *Session) Goals() (*GoalsSnapshot, error) {
	records := s.store.All()
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	latest := records[len(records)-1]

	return &GoalsSnapshot{
		Leads:        goalProgress(s.opt.GoalLeads, latest.Leads),
		Appointments: goalProgress(s.opt.GoalAppointments, latest.Appointments),
		Closings:     goalProgress(s.opt.GoalClosings, latest.Closings),
	}, nil
}

func goalProgress(goal, actual float64) GoalProgress {
	return GoalProgress{
		Goal:     goal,
		Actual:   actual,
		Percent:  metrics.GoalProgress(goal, actual),
		Fraction: metrics.GoalFraction(goal, actual),
	}
}

// Decompose sorts and dedupes the record set by month and splits the selected
// metric into trend, seasonal, and residual components.
func (s *Session) Decompose(metric funnelset.Metric) (*decompose.Result, error) {
	records := funnelset.DedupeByMonth(funnelset.SortByMonth(s.store.All()))
	t, y, err := funnelset.Series(records, metric)
	if err != nil {
		return nil, fmt.Errorf("unable to extract %s series, %w", metric, err)
	}
	res, err := decompose.Additive(t, y)
	if err != nil {
		return nil, fmt.Errorf("unable to decompose %s series, %w", metric, err)
	}
	return res, nil
}

// Forecast fits the closings model over the full record set and predicts the
// manual-entry query point.
func (s *Session) Forecast() (*forecast.Result, error) {
	return s.ForecastAt(s.opt.ManualLeads, s.opt.ManualAppointments)
}

// ForecastAt fits the closings model over the full record set and predicts a
// caller-supplied query point. Callers should surface a low-confidence
// warning when the result reports one.
func (s *Session) ForecastAt(leads, appointments float64) (*forecast.Result, error) {
	engine := forecast.NewEngine()
	if err := engine.Fit(s.store.All()); err != nil {
		return nil, fmt.Errorf("unable to fit forecast over session records, %w", err)
	}
	res, err := engine.Predict(leads, appointments, s.opt.AvgRevenuePerClosing)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast query point, %w", err)
	}
	return res, nil
}

// Report materializes the full workbook export: historical records, the
// forecast summary for the manual-entry query point, and the seasonal
// patterns over the full record history.
func (s *Session) Report() ([]byte, error) {
	res, err := s.Forecast()
	if err != nil {
		return nil, err
	}

	records := s.store.All()
	summary := export.ForecastSummary(res.ForecastedClosings, res.ForecastedRevenue)
	out, err := export.Report(records, summary, export.MonthlyAverages(records))
	if err != nil {
		return nil, fmt.Errorf("unable to build workbook export, %w", err)
	}
	return out, nil
}

// CSV materializes the raw historical table export.
func (s *Session) CSV() ([]byte, error) {
	out, err := export.CSV(s.store.All())
	if err != nil {
		return nil, fmt.Errorf("unable to build csv export, %w", err)
	}
	return out, nil
}
