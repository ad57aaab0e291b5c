package datecalc

import "time"

type TimeDifference struct {
	Years   int   `json:"years"`
	Months  int   `json:"months"`
	Days    int   `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
}

type Totals struct {
	TotalDays    int64 `json:"totalDays"`
	TotalHours   int64 `json:"totalHours"`
	TotalMinutes int64 `json:"totalMinutes"`
}

// Report is the payload of the calculate-date endpoint.
type Report struct {
	InputDate      string         `json:"inputDate"`
	CurrentDate    string         `json:"currentDate"`
	TimeDifference TimeDifference `json:"timeDifference"`
	Total          Totals         `json:"total"`
}

// NewReport keeps raw untouched. CurrentDate is the UTC calendar day of now,
// which can differ from the local day used for the computation.
func NewReport(raw string, diff Difference, now time.Time) Report {
	return Report{
		InputDate:   raw,
		CurrentDate: now.UTC().Format(time.DateOnly),
		TimeDifference: TimeDifference{
			Years:   diff.Years,
			Months:  diff.Months,
			Days:    diff.Days,
			Hours:   diff.Hours,
			Minutes: diff.Minutes,
		},
		Total: Totals{
			TotalDays:    diff.TotalDays,
			TotalHours:   diff.TotalHours,
			TotalMinutes: diff.TotalMinutes,
		},
	}
}

// Calculate runs Parse, Compute and NewReport for one query value.
func Calculate(raw string, now time.Time) (Report, error) {
	d, err := Parse(raw, now)
	if err != nil {
		return Report{}, err
	}
	diff, err := Compute(d, now)
	if err != nil {
		return Report{}, err
	}
	return NewReport(raw, diff, now), nil
}
