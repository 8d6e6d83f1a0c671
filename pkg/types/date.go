package types

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is an ISO calendar date layout used for stored dates
const DateLayout = "2006-01-02"

const displayLayout = "Jan 2, 2006"

// Date is an ISO calendar date string (YYYY-MM-DD). Stored as is,
// parsing happens only for display
type Date string

// Value is an underlying string
func (d Date) Value() string {
	return string(d)
}

// Time parses the date. The result is a midnight in UTC
func (d Date) Time() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, string(d), time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "Invalid date %q", string(d))
	}
	return t, nil
}

// Format renders the date in "Jan 2, 2006" style.
// A date that can not be parsed is rendered unchanged
func (d Date) Format() string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format(displayLayout)
}

// ParseDate validates the raw value and returns a date
func ParseDate(raw string) (Date, error) {
	d := Date(raw)
	if _, err := d.Time(); err != nil {
		return "", err
	}
	return d, nil
}

// DateOf returns a calendar date of a given time in its location
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}
