package funnelset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrDataLoad        = errors.New("unable to load funnel data")
	ErrMissingColumn   = errors.New("missing required column")
	ErrNoHeaderRow     = errors.New("no header row")
	ErrUnparseableCell = errors.New("unparseable numeric cell")
)

// monthLayouts are tried in order when parsing the month column.
var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"Jan 2006",
	"01/2006",
	time.RFC3339,
}

// FromCSV parses a comma-separated upload into records. The header row must
// contain month, leads, appointments, and closings columns; cost is optional
// and defaults to 0. Rows with an unparseable month are skipped; any other
// malformed cell aborts the load.
func FromCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, err)
	}
	return fromRows(rows)
}

// FromXLSX parses the first sheet of a spreadsheet upload into records using
// the same column rules as FromCSV.
func FromXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, ErrNoHeaderRow)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w, %w", ErrDataLoad, ErrNoHeaderRow)
	}

	headerIdx := make(map[string]int)
	for i, header := range rows[0] {
		headerIdx[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"month", "leads", "appointments", "closings"} {
		if _, exists := headerIdx[col]; !exists {
			return nil, fmt.Errorf("%w, %w: %s", ErrDataLoad, ErrMissingColumn, col)
		}
	}
	costIdx, hasCost := headerIdx["cost"]

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		month, err := parseMonth(cellValue(row, headerIdx["month"]))
		if err != nil {
			// reference behavior drops rows whose month cannot be parsed
			continue
		}

		leads, err := parseCount(cellValue(row, headerIdx["leads"]))
		if err != nil {
			return nil, fmt.Errorf("%w, row %d leads, %w", ErrDataLoad, i+2, err)
		}
		appointments, err := parseCount(cellValue(row, headerIdx["appointments"]))
		if err != nil {
			return nil, fmt.Errorf("%w, row %d appointments, %w", ErrDataLoad, i+2, err)
		}
		closings, err := parseCount(cellValue(row, headerIdx["closings"]))
		if err != nil {
			return nil, fmt.Errorf("%w, row %d closings, %w", ErrDataLoad, i+2, err)
		}

		cost := 0.0
		if hasCost {
			val := cellValue(row, costIdx)
			if val != "" {
				cost, err = parseCount(val)
				if err != nil {
					return nil, fmt.Errorf("%w, row %d cost, %w", ErrDataLoad, i+2, err)
				}
			}
		}

		records = append(records, Record{
			Month:        month,
			Leads:        leads,
			Appointments: appointments,
			Closings:     closings,
			Cost:         cost,
		})
	}
	return records, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseMonth(val string) (time.Time, error) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable month %q", val)
}

func parseCount(val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0.0, fmt.Errorf("%w, %q", ErrUnparseableCell, val)
	}
	return f, nil
}
