package temporal

import (
	"fmt"
	"time"
)

// CalendarDate is a day without a clock time.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days later, normalizing month and year overflow.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// AddMonths follows time.AddDate normalization: 31/01 + 1 month is 03/03.
func (d CalendarDate) AddMonths(n int) CalendarDate {
	return DateOf(time.Date(d.Year, d.Month+time.Month(n), d.Day, 12, 0, 0, 0, time.UTC))
}

func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Before reports whether d is an earlier day than o.
func (d CalendarDate) Before(o CalendarDate) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ClockTime is a wall clock time with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// Valid reports whether the clock time is within 00:00-23:59.
func (c ClockTime) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Expression is the resolved date and time of a message. DateRule and TimeRule
// name the rules that fired, or "default" when a fallback was used.
type Expression struct {
	Date        CalendarDate
	Time        ClockTime
	MatchedSpan string
	DateRule    string
	TimeRule    string
}

// At applies Time to Date in loc. Seconds and nanoseconds are always zero and
// the date fields are never changed by the clock time.
func (e Expression) At(loc *time.Location) time.Time {
	return time.Date(e.Date.Year, e.Date.Month, e.Date.Day, e.Time.Hour, e.Time.Minute, 0, 0, loc)
}
