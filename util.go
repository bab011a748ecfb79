package funnelcast

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/aouyang1/funnelcast/decompose"
	"github.com/aouyang1/funnelcast/funnelset"
	"github.com/aouyang1/funnelcast/metrics"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTrends generates an echart line chart of the leads, appointments, and
// closings series over time.
func LineTrends(records []funnelset.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Historical Trends",
			},
		),
	)

	t := make([]time.Time, 0, len(records))
	leads := make([]opts.LineData, 0, len(records))
	appointments := make([]opts.LineData, 0, len(records))
	closings := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		t = append(t, r.Month)
		leads = append(leads, opts.LineData{Value: r.Leads})
		appointments = append(appointments, opts.LineData{Value: r.Appointments})
		closings = append(closings, opts.LineData{Value: r.Closings})
	}

	line.SetXAxis(t).
		AddSeries("Leads", leads).
		AddSeries("Appointments", appointments).
		AddSeries("Closings", closings)
	return line
}

// BarFunnel generates an echart bar chart of the conversion funnel stage
// totals.
func BarFunnel(b metrics.Bundle) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Conversion Funnel",
			},
		),
	)

	bar.SetXAxis([]string{"Leads", "Appointments", "Closings"}).
		AddSeries("Count", []opts.BarData{
			{Value: b.TotalLeads},
			{Value: b.TotalAppointments},
			{Value: b.TotalClosings},
		})
	return bar
}

// LineDecomposition generates an echart multi-line chart of the observed,
// trend, seasonal, and residual components. NaN points at the trend edges are
// dropped per series.
func LineDecomposition(title string, res *decompose.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	series := []struct {
		name string
		y    []float64
	}{
		{"Observed", res.Observed},
		{"Trend", res.Trend},
		{"Seasonal", res.Seasonal},
		{"Residual", res.Residual},
	}

	line = line.SetXAxis(res.T)
	for _, s := range series {
		lineData := make([]opts.LineData, 0, len(s.y))
		for _, val := range s.y {
			if math.IsNaN(val) {
				lineData = append(lineData, opts.LineData{Value: nil})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: val})
		}
		line = line.AddSeries(s.name, lineData)
	}
	return line
}

// PlotDashboard uses the Apache Echarts library to generate an html file with
// the historical trends, conversion funnel, and the seasonal decomposition of
// the selected metric. The decomposition chart is skipped when the record
// history is too short.
func (s *Session) PlotDashboard(path string, metric funnelset.Metric) error {
	records := s.store.All()

	page := components.NewPage()
	page.AddCharts(
		LineTrends(records),
		BarFunnel(metrics.Compute(records)),
	)

	if res, err := s.Decompose(metric); err == nil {
		page.AddCharts(LineDecomposition("Seasonal Decomposition of "+string(metric), res))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(io.MultiWriter(file))
}
