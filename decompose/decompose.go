// Package decompose splits a monthly funnel series into additive trend,
// seasonal, and residual components with a fixed yearly period.
package decompose

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientData   = errors.New("insufficient records for seasonal decomposition")
	ErrSeriesLenMismatch  = errors.New("time and value series have different lengths")
	ErrNonMonotonicSeries = errors.New("series is not sorted by month")
)

const (
	// Period is the fixed seasonal period of one calendar year.
	Period = 12

	// MinRecords gates decomposition. At exactly one period the residual
	// absorbs all non-trend variance; RecommendedRecords or more are needed
	// for a stable seasonal estimate.
	MinRecords = Period

	RecommendedRecords = 2 * Period
)

// Result holds the decomposed series aligned to the input months. Trend and
// Residual are NaN at the edges where the centered moving average is
// undefined.
type Result struct {
	T        []time.Time `json:"time"`
	Observed []float64   `json:"observed"`
	Trend    []float64   `json:"trend"`
	Seasonal []float64   `json:"seasonal"`
	Residual []float64   `json:"residual"`
}

// Additive decomposes y into trend + seasonal + residual. The input must be
// sorted by month with duplicates removed; the decomposer does not dedupe.
func Additive(t []time.Time, y []float64) (*Result, error) {
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time series has length %d, but values has length %d, %w",
			len(t), len(y), ErrSeriesLenMismatch,
		)
	}
	if len(y) < MinRecords {
		return nil, fmt.Errorf("got %d records, need at least %d, %w", len(y), MinRecords, ErrInsufficientData)
	}
	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("at index %d, %w", i, ErrNonMonotonicSeries)
		}
	}

	observed := make([]float64, len(y))
	copy(observed, y)

	trend := centeredMovingAverage(observed)
	seasonal := seasonalComponent(observed, trend)

	residual := make([]float64, len(observed))
	for i := range observed {
		residual[i] = observed[i] - trend[i] - seasonal[i]
	}

	tSeries := make([]time.Time, len(t))
	copy(tSeries, t)
	return &Result{
		T:        tSeries,
		Observed: observed,
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}, nil
}

// centeredMovingAverage computes the period-13 moving average with
// half-weighted endpoints used for an even period. Points within half a
// period of either edge are NaN.
func centeredMovingAverage(y []float64) []float64 {
	half := Period / 2
	trend := make([]float64, len(y))
	for i := range trend {
		if i < half || i >= len(y)-half {
			trend[i] = math.NaN()
			continue
		}
		sum := 0.5*y[i-half] + 0.5*y[i+half]
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += y[j]
		}
		trend[i] = sum / float64(Period)
	}
	return trend
}

// seasonalComponent averages the detrended series per period position and
// demeans the result so the seasonal component sums to zero over a full
// cycle. Positions with no defined detrended point contribute 0.
func seasonalComponent(y, trend []float64) []float64 {
	positionMeans := make([]float64, Period)
	for pos := 0; pos < Period; pos++ {
		var vals []float64
		for i := pos; i < len(y); i += Period {
			if math.IsNaN(trend[i]) {
				continue
			}
			vals = append(vals, y[i]-trend[i])
		}
		if len(vals) == 0 {
			continue
		}
		positionMeans[pos] = stat.Mean(vals, nil)
	}

	offset := stat.Mean(positionMeans, nil)
	seasonal := make([]float64, len(y))
	for i := range seasonal {
		seasonal[i] = positionMeans[i%Period] - offset
	}
	return seasonal
}
