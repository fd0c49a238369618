// Package types implements special types for Finwall.
package types

import (
	"database/sql"
	"database/sql/driver"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Date is a calendar date with day precision. All recurring schedule and
// budget period arithmetic works on calendar dates, never on durations, so
// that month lengths and leap years are handled by calendar semantics.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time instant occurs, in UTC.
func DateOf(t time.Time) Date {
	year, month, day := t.In(time.UTC).Date()
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both RFC3339 timestamps and plain "2006-01-02" dates are accepted,
// everything but the calendar date is ignored.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	pattern := "2006-01-02T15:04:05Z07:00"
	if len(value) == len("2006-01-02") {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// UnmarshalParam parses a date from a query or path parameter.
//
// Malformed input never fails a request: an unparseable date is left at
// the zero value and reported on the diagnostic log, so the filter it
// would have fed is simply not applied.
func (d *Date) UnmarshalParam(param string) error {
	if param == "" {
		return nil
	}

	t, err := time.Parse("2006-01-02", param)
	if err != nil {
		log.Warn().Str("date", param).Msg("malformed date in query parameter, ignoring")
		return nil
	}

	*d = DateOf(t)
	return nil
}

// Scan reads the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Time returns the time instant at midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// AddDays adds a number of days to the date.
func (d Date) AddDays(days int) Date {
	return Date(time.Time(d).AddDate(0, 0, days))
}

// AddMonths adds a number of calendar months to the date. If the day of
// month does not exist in the target month, it is clamped to the target
// month's last day, e.g. Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap
// year), never Mar 3.
func (d Date) AddMonths(months int) Date {
	t := time.Time(d)
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)

	day := t.Day()
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}

	return NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// Before reports whether the date d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same date.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Contains reports whether the time instant falls on the date.
func (d Date) Contains(t time.Time) bool {
	return DateOf(t).Equal(d)
}
