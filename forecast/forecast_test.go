package forecast

import (
	"testing"
	"time"

	"github.com/aouyang1/funnelcast/funnelset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// closings follow 0.1*leads + 0.3*appointments exactly
func exactRecords() []funnelset.Record {
	return []funnelset.Record{
		{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25},
		{Month: month(2024, time.February), Leads: 200, Appointments: 80, Closings: 44},
		{Month: month(2024, time.March), Leads: 150, Appointments: 60, Closings: 33},
		{Month: month(2024, time.April), Leads: 120, Appointments: 40, Closings: 24},
	}
}

func TestEngineFitInsufficientData(t *testing.T) {
	testData := map[string]struct {
		records []funnelset.Record
	}{
		"empty":      {nil},
		"one record": {exactRecords()[:1]},
		"two records": {
			exactRecords()[:2],
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			engine := NewEngine()
			assert.ErrorIs(t, engine.Fit(td.records), ErrInsufficientData)
		})
	}
}

func TestEnginePredictBeforeFit(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Predict(100, 50, 10000)
	assert.ErrorIs(t, err, ErrNotFit)

	_, err = engine.Scores()
	assert.ErrorIs(t, err, ErrNotFit)
}

func TestEngineFitPredict(t *testing.T) {
	tol := 1e-6
	engine := NewEngine()
	require.Nil(t, engine.Fit(exactRecords()))

	res, err := engine.Predict(100, 50, 10000)
	require.Nil(t, err)

	assert.InDelta(t, 25.0, res.ForecastedClosings, tol)
	assert.InDelta(t, 250000.0, res.ForecastedRevenue, tol)

	assert.InDelta(t, 0.0, res.Scores.MAE, tol)
	assert.InDelta(t, 0.0, res.Scores.RMSE, tol)
	assert.InDelta(t, 1.0, res.Scores.R2, tol)
	assert.False(t, res.LowConfidence())

	coef, err := engine.Coef()
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0.3}, coef, tol)

	intercept, err := engine.Intercept()
	require.Nil(t, err)
	assert.InDelta(t, 0.0, intercept, tol)
}

func TestEnginePredictClampsAtZero(t *testing.T) {
	// closings = leads - appointments, so a query dominated by appointments
	// would predict negative closings
	records := []funnelset.Record{
		{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 50},
		{Month: month(2024, time.February), Leads: 200, Appointments: 80, Closings: 120},
		{Month: month(2024, time.March), Leads: 150, Appointments: 60, Closings: 90},
		{Month: month(2024, time.April), Leads: 120, Appointments: 100, Closings: 20},
	}

	engine := NewEngine()
	require.Nil(t, engine.Fit(records))

	res, err := engine.Predict(0, 100, 10000)
	require.Nil(t, err)

	assert.Zero(t, res.ForecastedClosings)
	assert.Zero(t, res.ForecastedRevenue)
}

func TestEnginePredictMonotonicSanity(t *testing.T) {
	engine := NewEngine()
	require.Nil(t, engine.Fit(exactRecords()))

	prev := -1.0
	for scale := 1.0; scale <= 4.0; scale += 1.0 {
		res, err := engine.Predict(100*scale, 50*scale, 10000)
		require.Nil(t, err)
		assert.GreaterOrEqual(t, res.ForecastedClosings, 0.0)
		assert.Greater(t, res.ForecastedClosings, prev)
		prev = res.ForecastedClosings
	}
}
