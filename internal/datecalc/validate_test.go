package datecalc_test

import (
	"testing"
	"time"

	"dateTracker/internal/datecalc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		expected datecalc.Date
		err      error
	}{
		{name: "valid date", raw: "05-03-2001", expected: datecalc.Date{Year: 2001, Month: time.March, Day: 5}},
		{name: "leap day", raw: "29-02-2020", expected: datecalc.Date{Year: 2020, Month: time.February, Day: 29}},
		{name: "today is allowed", raw: "10-03-2025", expected: datecalc.Date{Year: 2025, Month: time.March, Day: 10}},
		{name: "missing", raw: "", err: datecalc.ErrMissingParameter},
		{name: "wrong field order", raw: "2020-02-31", err: datecalc.ErrMalformedFormat},
		{name: "single digit fields", raw: "5-3-2001", err: datecalc.ErrMalformedFormat},
		{name: "slashes", raw: "05/03/2001", err: datecalc.ErrMalformedFormat},
		{name: "leading space", raw: " 05-03-2001", err: datecalc.ErrMalformedFormat},
		{name: "trailing newline", raw: "05-03-2001\n", err: datecalc.ErrMalformedFormat},
		{name: "february 31st", raw: "31-02-2020", err: datecalc.ErrInvalidCalendarDate},
		{name: "february 29th of common year", raw: "29-02-2021", err: datecalc.ErrInvalidCalendarDate},
		{name: "april 31st", raw: "31-04-2020", err: datecalc.ErrInvalidCalendarDate},
		{name: "month 13", raw: "01-13-2020", err: datecalc.ErrInvalidCalendarDate},
		{name: "day zero", raw: "00-01-2020", err: datecalc.ErrInvalidCalendarDate},
		{name: "year zero", raw: "01-01-0000", err: datecalc.ErrInvalidCalendarDate},
		{name: "tomorrow", raw: "11-03-2025", err: datecalc.ErrFutureDate},
		{name: "far future", raw: "01-01-3000", err: datecalc.ErrFutureDate},
		{name: "invalid and future reports calendar error first", raw: "31-02-3000", err: datecalc.ErrInvalidCalendarDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := datecalc.Parse(tt.raw, now)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.True(t, datecalc.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParse_FutureRelativeToLocation(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	// 2025-03-10 22:00 in UTC-5 is already the 11th in UTC
	now := time.Date(2025, time.March, 10, 22, 0, 0, 0, zone)

	_, err := datecalc.Parse("11-03-2025", now)
	assert.ErrorIs(t, err, datecalc.ErrFutureDate)

	_, err = datecalc.Parse("10-03-2025", now)
	assert.NoError(t, err)
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, datecalc.IsValidationError(datecalc.ErrInvalidDate))
	assert.False(t, datecalc.IsValidationError(nil))
}
