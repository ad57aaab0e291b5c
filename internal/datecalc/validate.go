package datecalc

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Messages are returned to API clients as is.
var (
	ErrMissingParameter    = errors.New("Date parameter is required")
	ErrMalformedFormat     = errors.New("Date must be in DD-MM-YYYY format (e.g., 05-03-2001)")
	ErrInvalidCalendarDate = errors.New("Invalid date")
	ErrFutureDate          = errors.New("Date cannot be in the future")
)

var datePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Parse checks raw in order: presence, DD-MM-YYYY shape, calendar validity and
// finally that the day does not start after now. Only the first failure is
// reported.
func Parse(raw string, now time.Time) (Date, error) {
	if raw == "" {
		return Date{}, ErrMissingParameter
	}

	parts := datePattern.FindStringSubmatch(raw)
	if parts == nil {
		return Date{}, ErrMalformedFormat
	}

	// the pattern guarantees digits only
	day, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	year, _ := strconv.Atoi(parts[3])

	d := Date{Year: year, Month: time.Month(month), Day: day}
	if !d.Valid() {
		return Date{}, ErrInvalidCalendarDate
	}

	if d.Midnight(now.Location()).After(now) {
		return Date{}, ErrFutureDate
	}

	return d, nil
}

// IsValidationError reports whether err came out of Parse.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrMalformedFormat) ||
		errors.Is(err, ErrInvalidCalendarDate) ||
		errors.Is(err, ErrFutureDate)
}
