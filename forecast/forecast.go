// Package forecast fits a linear model mapping leads and appointments to
// closings and produces single-point predictions with fit diagnostics.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/funnelcast/funnelset"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInsufficientData = errors.New("insufficient records to fit forecast model")
	ErrNotFit           = errors.New("forecast model has not been fit")
)

// MinTrainingRecords gates fitting. The model solves for two coefficients
// plus an intercept, so fewer than three observations leaves the system
// underdetermined.
const MinTrainingRecords = 3

// Result is a single-point forecast with the in-sample diagnostics of the
// model that produced it.
type Result struct {
	ForecastedClosings float64 `json:"forecasted_closings"`
	ForecastedRevenue  float64 `json:"forecasted_revenue"`
	Scores             Scores  `json:"model_error_stats"`
}

// LowConfidence reports whether the underlying fit falls below the
// confidence threshold. The engine still predicts; surfacing a warning is
// the caller's responsibility.
func (r *Result) LowConfidence() bool {
	return r.Scores.LowConfidence()
}

// Engine fits closings against leads and appointments over an entire record
// set. There is no train/test split: diagnostics are computed on the
// training data and are optimistic.
type Engine struct {
	model  *OLSRegression
	scores *Scores
}

// NewEngine returns an unfit forecast engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Fit performs the OLS regression over records and computes in-sample
// diagnostics.
func (e *Engine) Fit(records []funnelset.Record) error {
	if len(records) < MinTrainingRecords {
		return fmt.Errorf("got %d records, need at least %d, %w", len(records), MinTrainingRecords, ErrInsufficientData)
	}

	m := len(records)
	xData := make([]float64, 0, 2*m)
	yData := make([]float64, 0, m)
	for _, r := range records {
		xData = append(xData, r.Leads, r.Appointments)
		yData = append(yData, r.Closings)
	}
	x := mat.NewDense(m, 2, xData)
	y := mat.NewDense(m, 1, yData)

	model := NewOLSRegression()
	if err := model.Fit(x, y); err != nil {
		return fmt.Errorf("unable to fit closings model, %w", err)
	}

	predicted, err := model.Predict(x)
	if err != nil {
		return fmt.Errorf("unable to evaluate fit on training data, %w", err)
	}
	scores, err := NewScores(predicted, yData)
	if err != nil {
		return fmt.Errorf("unable to score fit, %w", err)
	}

	e.model = model
	e.scores = scores
	return nil
}

// Predict evaluates the fit model on a single query point. The predicted
// closings are clamped at zero and revenue scales by the caller-supplied
// average revenue per closing.
func (e *Engine) Predict(leads, appointments, avgRevenuePerClosing float64) (*Result, error) {
	if e.model == nil {
		return nil, ErrNotFit
	}

	x := mat.NewDense(1, 2, []float64{leads, appointments})
	predicted, err := e.model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("unable to predict closings, %w", err)
	}

	closings := math.Max(0.0, predicted[0])
	return &Result{
		ForecastedClosings: closings,
		ForecastedRevenue:  closings * avgRevenuePerClosing,
		Scores:             *e.scores,
	}, nil
}

// Scores returns the diagnostics of the last fit.
func (e *Engine) Scores() (*Scores, error) {
	if e.scores == nil {
		return nil, ErrNotFit
	}
	s := *e.scores
	return &s, nil
}

// Intercept returns the intercept of the fit model.
func (e *Engine) Intercept() (float64, error) {
	if e.model == nil {
		return 0.0, ErrNotFit
	}
	return e.model.Intercept(), nil
}

// Coef returns the leads and appointments coefficients of the fit model.
func (e *Engine) Coef() ([]float64, error) {
	if e.model == nil {
		return nil, ErrNotFit
	}
	return e.model.Coef(), nil
}
