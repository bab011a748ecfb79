package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// LowConfidenceR2 is the fit-quality threshold below which callers should
// surface a low-confidence warning alongside predictions.
const LowConfidenceR2 = 0.5

// Scores holds in-sample fit diagnostics. The model is scored on the same
// data it was fit on, so these are optimistic estimates of predictive
// quality.
type Scores struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// NewScores computes the full diagnostic set from predicted and actual
// values.
func NewScores(predicted, actual []float64) (*Scores, error) {
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	rmse, err := RMSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean square error, %w", err)
	}
	return &Scores{
		MAE:  mae,
		RMSE: rmse,
		R2:   stat.RSquaredFrom(predicted, actual, nil),
	}, nil
}

// LowConfidence reports whether the fit falls below the confidence
// threshold.
func (s *Scores) LowConfidence() bool {
	return s.R2 < LowConfidenceR2
}

// MAE computes the mean absolute error between predicted and actual values.
func MAE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mae := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mae += math.Abs(actual[i] - predicted[i])
	}
	mae /= float64(len(actual))
	return mae, nil
}

// RMSE computes the root mean square error between predicted and actual
// values.
func RMSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
	}
	mse /= float64(len(actual))
	return math.Sqrt(mse), nil
}
