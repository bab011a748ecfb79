package funnelcast

// GoalProgress reports one funnel count against its monthly goal. Percent is
// uncapped; Fraction is capped at 1 for progress bar rendering.
type GoalProgress struct {
	Goal     float64 `json:"goal"`
	Actual   float64 `json:"actual"`
	Percent  float64 `json:"percent"`
	Fraction float64 `json:"fraction"`
}

// GoalsSnapshot tracks the latest record's counts against the configured
// monthly goals.
type GoalsSnapshot struct {
	Leads        GoalProgress `json:"leads"`
	Appointments GoalProgress `json:"appointments"`
	Closings     GoalProgress `json:"closings"`
}
