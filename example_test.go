package funnelcast

import (
	"fmt"
	"strings"
	"time"
)

func Example() {
	sess, err := New(nil)
	if err != nil {
		panic(err)
	}

	upload := "month,leads,appointments,closings,cost\n" +
		"2024-01-01,100,50,25,5000\n" +
		"2024-02-01,120,60,30,5500\n" +
		"2024-03-01,90,40,21,4500\n" +
		"2024-04-01,150,70,36,6000\n"
	if err := sess.LoadCSV(strings.NewReader(upload)); err != nil {
		panic(err)
	}
	sess.AddManual(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	b := sess.Metrics()
	fmt.Printf("total leads: %.0f\n", b.TotalLeads)
	fmt.Printf("overall close rate: %.1f%%\n", b.OverallCloseRate)

	res, err := sess.Forecast()
	if err != nil {
		panic(err)
	}
	fmt.Printf("forecasted closings: %.1f\n", res.ForecastedClosings)
	if res.LowConfidence() {
		fmt.Println("warning: model fit is poor, predictions may be unreliable")
	}
	// Output:
	// total leads: 560
	// overall close rate: 24.5%
	// forecasted closings: 25.0
}
