// Package datecalc computes the elapsed calendar time between a day-month-year
// date and the moment a request is evaluated.
package datecalc

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar day without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= daysIn(d.Year, d.Month)
}

// Midnight returns the start of the day in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

type Difference struct {
	Years   int
	Months  int
	Days    int
	Hours   int64
	Minutes int64

	TotalDays    int64
	TotalHours   int64
	TotalMinutes int64
}

// Compute returns the difference between the start of input and now. The
// calendar part is plain field subtraction; when days go negative they borrow
// the length of the month preceding now's month, whatever input's month was.
func Compute(input Date, now time.Time) (Difference, error) {
	if !input.Valid() {
		return Difference{}, ErrInvalidDate
	}

	start := input.Midnight(now.Location())
	elapsedMs := now.UnixMilli() - start.UnixMilli()

	totalMinutes := floorDiv(elapsedMs, 60_000)
	totalHours := floorDiv(totalMinutes, 60)
	totalDays := floorDiv(totalHours, 24)

	years := now.Year() - input.Year
	months := int(now.Month()) - int(input.Month)
	days := now.Day() - input.Day

	if days < 0 {
		months--
		// day 0 of now's month is the last day of the month before it
		days += time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()).Day()
	}
	if months < 0 {
		years--
		months += 12
	}

	return Difference{
		Years:        years,
		Months:       months,
		Days:         days,
		Hours:        floorMod(totalHours, 24),
		Minutes:      floorMod(totalMinutes, 60),
		TotalDays:    totalDays,
		TotalHours:   totalHours,
		TotalMinutes: totalMinutes,
	}, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
