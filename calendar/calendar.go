// Package calendar provides business-day counting against a fixed
// national holiday set, plus the tenor adjustment rule used by the 415
// credit-exposure report.
package calendar

import "time"

// Calendar holds a set of holidays. Once fully populated it is
// read-only and safe for concurrent use.
type Calendar struct {
	holidays map[civilDate]struct{}
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func toCivil(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// New builds a calendar from an explicit holiday list.
func New(holidays ...time.Time) *Calendar {
	c := &Calendar{holidays: make(map[civilDate]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[toCivil(h)] = struct{}{}
	}
	return c
}

// AddHolidays registers additional holidays, such as one-off civic
// days decreed outside the national calendar. Must be called before
// the calendar is shared.
func (c *Calendar) AddHolidays(dates ...time.Time) {
	for _, d := range dates {
		c.holidays[toCivil(d)] = struct{}{}
	}
}

// IsHoliday reports whether d falls on a holiday.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[toCivil(d)]
	return ok
}

// IsBusinessDay reports whether d is neither a Saturday, a Sunday nor a
// holiday.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(d)
}

// BusinessDaysBetween counts the business days from start to end, both
// endpoints inclusive. It returns 0 when either date is the zero value
// or when end is before start.
func (c *Calendar) BusinessDaysBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ApplyTenorRule adjusts a raw business-day count per the 415 rules:
// the settlement day itself does not count, and no tenor is treated as
// shorter than 10 business days for risk purposes.
func ApplyTenorRule(businessDays int) int {
	adjusted := businessDays - 1
	if adjusted < 10 {
		return 10
	}
	return adjusted
}
