package funnelset

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFromCSV(t *testing.T) {
	testData := map[string]struct {
		input    string
		err      error
		expected []Record
	}{
		"valid with cost": {
			input: "month,leads,appointments,closings,cost\n" +
				"2024-01-01,100,50,25,5000\n" +
				"2024-02-01,120,60,30,5500\n",
			expected: []Record{
				{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25, Cost: 5000},
				{Month: month(2024, time.February), Leads: 120, Appointments: 60, Closings: 30, Cost: 5500},
			},
		},
		"cost column absent defaults to zero": {
			input: "month,leads,appointments,closings\n" +
				"2024-01-01,100,50,25\n",
			expected: []Record{
				{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25},
			},
		},
		"unparseable month rows dropped": {
			input: "month,leads,appointments,closings\n" +
				"not-a-month,100,50,25\n" +
				"2024-02-01,120,60,30\n",
			expected: []Record{
				{Month: month(2024, time.February), Leads: 120, Appointments: 60, Closings: 30},
			},
		},
		"uppercase headers": {
			input: "Month,Leads,Appointments,Closings\n" +
				"2024-01-01,100,50,25\n",
			expected: []Record{
				{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25},
			},
		},
		"alternate month layout": {
			input: "month,leads,appointments,closings\n" +
				"Jan 2024,100,50,25\n",
			expected: []Record{
				{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25},
			},
		},
		"non-numeric count aborts": {
			input: "month,leads,appointments,closings\n" +
				"2024-01-01,many,50,25\n",
			err: ErrDataLoad,
		},
		"missing required column": {
			input: "month,leads,closings\n" +
				"2024-01-01,100,25\n",
			err: ErrDataLoad,
		},
		"empty input": {
			input: "",
			err:   ErrDataLoad,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			records, err := FromCSV(strings.NewReader(td.input))
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, records)
		})
	}
}

func TestFromXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"month", "leads", "appointments", "closings", "cost"},
		{"2024-01-01", 100, 50, 25, 5000},
		{"2024-02-01", 120, 60, 30, 5500},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.Nil(t, err)
		require.Nil(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.Nil(t, err)

	records, err := FromXLSX(bytes.NewReader(buf.Bytes()))
	require.Nil(t, err)

	expected := []Record{
		{Month: month(2024, time.January), Leads: 100, Appointments: 50, Closings: 25, Cost: 5000},
		{Month: month(2024, time.February), Leads: 120, Appointments: 60, Closings: 30, Cost: 5500},
	}
	assert.Equal(t, expected, records)
}

func TestFromXLSXNotASpreadsheet(t *testing.T) {
	_, err := FromXLSX(strings.NewReader("month,leads\n2024-01-01,100\n"))
	assert.ErrorIs(t, err, ErrDataLoad)
}
