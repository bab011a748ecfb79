// Package export materializes record sets, forecast summaries, and seasonal
// patterns into downloadable spreadsheet and CSV artifacts. All operations
// are pure transformations over the snapshots passed in.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/aouyang1/funnelcast/funnelset"
	"github.com/xuri/excelize/v2"
)

const (
	SheetHistorical = "historical data"
	SheetForecasts  = "forecasts"
	SheetSeasonal   = "seasonal patterns"

	ReportFilename = "sales_forecast_report.xlsx"
	CSVFilename    = "historical_data.csv"

	ReportMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CSVMIMEType    = "text/csv"

	monthCellLayout = "2006-01-02"
)

// ForecastMetric is one named value on the forecasts sheet.
type ForecastMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Report builds the three-sheet workbook: the raw record table, the forecast
// summary, and the per-calendar-month averages.
func Report(records []funnelset.Record, forecasts []ForecastMetric, patterns []MonthlyAverage) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetHistorical); err != nil {
		return nil, fmt.Errorf("unable to rename default sheet, %w", err)
	}
	if err := writeHistoricalSheet(f, records); err != nil {
		return nil, fmt.Errorf("unable to write %s sheet, %w", SheetHistorical, err)
	}

	if _, err := f.NewSheet(SheetForecasts); err != nil {
		return nil, fmt.Errorf("unable to create %s sheet, %w", SheetForecasts, err)
	}
	if err := writeForecastSheet(f, forecasts); err != nil {
		return nil, fmt.Errorf("unable to write %s sheet, %w", SheetForecasts, err)
	}

	if _, err := f.NewSheet(SheetSeasonal); err != nil {
		return nil, fmt.Errorf("unable to create %s sheet, %w", SheetSeasonal, err)
	}
	if err := writeSeasonalSheet(f, patterns); err != nil {
		return nil, fmt.Errorf("unable to write %s sheet, %w", SheetSeasonal, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize workbook, %w", err)
	}
	return buf.Bytes(), nil
}

func writeHistoricalSheet(f *excelize.File, records []funnelset.Record) error {
	header := []interface{}{"month", "leads", "appointments", "closings", "cost"}
	if err := f.SetSheetRow(SheetHistorical, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Month.Format(monthCellLayout),
			r.Leads,
			r.Appointments,
			r.Closings,
			r.Cost,
		}
		if err := f.SetSheetRow(SheetHistorical, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeForecastSheet(f *excelize.File, forecasts []ForecastMetric) error {
	header := []interface{}{"Metric", "Value"}
	if err := f.SetSheetRow(SheetForecasts, "A1", &header); err != nil {
		return err
	}
	for i, m := range forecasts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{m.Name, m.Value}
		if err := f.SetSheetRow(SheetForecasts, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSeasonalSheet(f *excelize.File, patterns []MonthlyAverage) error {
	header := []interface{}{"month", "avg leads", "avg appointments", "avg closings"}
	if err := f.SetSheetRow(SheetSeasonal, "A1", &header); err != nil {
		return err
	}
	for i, p := range patterns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.Month, p.AvgLeads, p.AvgAppointments, p.AvgClosings}
		if err := f.SetSheetRow(SheetSeasonal, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// CSV serializes the raw record table as UTF-8 comma-separated text with a
// header row. The output round-trips through funnelset.FromCSV.
func CSV(records []funnelset.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"month", "leads", "appointments", "closings", "cost"}); err != nil {
		return nil, fmt.Errorf("unable to write csv header, %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Month.Format(monthCellLayout),
			formatFloat(r.Leads),
			formatFloat(r.Appointments),
			formatFloat(r.Closings),
			formatFloat(r.Cost),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("unable to write csv row, %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("unable to flush csv, %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// ForecastSummary converts forecasted closings and revenue into the ordered
// metric rows of the forecasts sheet.
func ForecastSummary(forecastedClosings, forecastedRevenue float64) []ForecastMetric {
	return []ForecastMetric{
		{Name: "Forecasted Closings", Value: forecastedClosings},
		{Name: "Forecasted Revenue", Value: forecastedRevenue},
	}
}
