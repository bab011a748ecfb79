package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMAE(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		err       error
		expected  float64
	}{
		"exact":          {[]float64{1, 2, 3}, []float64{1, 2, 3}, nil, 0.0},
		"constant error": {[]float64{2, 3, 4}, []float64{1, 2, 3}, nil, 1.0},
		"mixed signs":    {[]float64{2, 1}, []float64{1, 2}, nil, 1.0},
		"length mismatch": {
			[]float64{1, 2}, []float64{1}, ErrResLenMismatch, 0.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			mae, err := MAE(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected, mae, 1e-10)
		})
	}
}

func TestRMSE(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		err       error
		expected  float64
	}{
		"exact":          {[]float64{1, 2, 3}, []float64{1, 2, 3}, nil, 0.0},
		"constant error": {[]float64{3, 4}, []float64{1, 2}, nil, 2.0},
		"single large error": {
			[]float64{0, 0, 0, 3}, []float64{0, 0, 0, 0}, nil, 1.5,
		},
		"length mismatch": {
			[]float64{1, 2}, []float64{1}, ErrResLenMismatch, 0.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			rmse, err := RMSE(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected, rmse, 1e-10)
		})
	}
}

func TestNewScores(t *testing.T) {
	predicted := []float64{1, 2, 3, 4}
	actual := []float64{1, 2, 3, 4}

	scores, err := NewScores(predicted, actual)
	require.Nil(t, err)

	assert.InDelta(t, 0.0, scores.MAE, 1e-10)
	assert.InDelta(t, 0.0, scores.RMSE, 1e-10)
	assert.InDelta(t, 1.0, scores.R2, 1e-10)
	assert.False(t, scores.LowConfidence())

	_, err = NewScores(predicted, actual[:2])
	assert.ErrorIs(t, err, ErrResLenMismatch)
}

func TestLowConfidence(t *testing.T) {
	s := &Scores{R2: 0.49}
	assert.True(t, s.LowConfidence())

	s.R2 = 0.5
	assert.False(t, s.LowConfidence())
}
