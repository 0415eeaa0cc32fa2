package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysBetween(t *testing.T) {
	t.Parallel()

	empty := New()

	tests := []struct {
		name  string
		cal   *Calendar
		start time.Time
		end   time.Time
		want  int
	}{
		{"mon_to_fri", empty, date(2025, 1, 6), date(2025, 1, 10), 5},
		{"single_business_day", empty, date(2025, 1, 8), date(2025, 1, 8), 1},
		{"single_saturday", empty, date(2025, 1, 11), date(2025, 1, 11), 0},
		{"spanning_weekend", empty, date(2025, 1, 10), date(2025, 1, 13), 2},
		{"end_before_start", empty, date(2025, 1, 10), date(2025, 1, 6), 0},
		{"zero_start", empty, time.Time{}, date(2025, 1, 10), 0},
		{"zero_end", empty, date(2025, 1, 6), time.Time{}, 0},
		{
			"holiday_excluded",
			New(date(2025, 1, 8)),
			date(2025, 1, 6), date(2025, 1, 10),
			4,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cal.BusinessDaysBetween(tt.start, tt.end))
		})
	}
}

func TestBusinessDaysBetweenIgnoresClock(t *testing.T) {
	t.Parallel()

	cal := New()
	start := time.Date(2025, 1, 6, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 5, cal.BusinessDaysBetween(start, end))
}

func TestAddHolidays(t *testing.T) {
	t.Parallel()

	cal := New()
	cal.AddHolidays(date(2025, 1, 8), date(2025, 1, 9))
	assert.True(t, cal.IsHoliday(date(2025, 1, 8)))
	assert.Equal(t, 3, cal.BusinessDaysBetween(date(2025, 1, 6), date(2025, 1, 10)))
}

func TestApplyTenorRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{15, 14},
		{5, 10},
		{11, 10},
		{12, 11},
		{0, 10},
		{252, 251},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyTenorRule(tt.in), "ApplyTenorRule(%d)", tt.in)
	}
}

func TestColombiaFixedHolidays(t *testing.T) {
	t.Parallel()

	cal := NewColombia(2025)

	for _, h := range []time.Time{
		date(2025, 1, 1),
		date(2025, 5, 1),
		date(2025, 7, 20),
		date(2025, 8, 7),
		date(2025, 12, 8),
		date(2025, 12, 25),
	} {
		assert.True(t, cal.IsHoliday(h), "expected %s to be a holiday", h.Format(time.DateOnly))
	}
}

func TestColombiaEasterHolidays2025(t *testing.T) {
	t.Parallel()

	// Easter Sunday 2025 falls on April 20.
	assert.Equal(t, date(2025, 4, 20), easterSunday(2025))

	cal := NewColombia(2025)

	assert.True(t, cal.IsHoliday(date(2025, 4, 17)), "Jueves Santo")
	assert.True(t, cal.IsHoliday(date(2025, 4, 18)), "Viernes Santo")
	assert.True(t, cal.IsHoliday(date(2025, 6, 2)), "Ascensión (Monday)")
	assert.True(t, cal.IsHoliday(date(2025, 6, 23)), "Corpus Christi (Monday)")
	assert.True(t, cal.IsHoliday(date(2025, 6, 30)), "Sagrado Corazón (Monday)")
}

func TestColombiaEmilianiShift(t *testing.T) {
	t.Parallel()

	cal := NewColombia(2025)

	// Epiphany 2025 falls on a Monday, so it stays put.
	assert.True(t, cal.IsHoliday(date(2025, 1, 6)))

	// St. Joseph falls on Wednesday March 19, so it moves to Monday
	// March 24.
	assert.False(t, cal.IsHoliday(date(2025, 3, 19)))
	assert.True(t, cal.IsHoliday(date(2025, 3, 24)))

	// Assumption falls on Friday August 15, observed Monday August 18.
	assert.False(t, cal.IsHoliday(date(2025, 8, 15)))
	assert.True(t, cal.IsHoliday(date(2025, 8, 18)))
}

func TestColombiaBusinessDaysFirstWeek2025(t *testing.T) {
	t.Parallel()

	// With the real Colombian calendar, Monday January 6 2025 is
	// Epiphany, so the first full week of January has 4 business days.
	cal := NewColombia(2025)
	assert.Equal(t, 4, cal.BusinessDaysBetween(date(2025, 1, 6), date(2025, 1, 10)))
}

func TestNewColombiaDefaultSpan(t *testing.T) {
	t.Parallel()

	cal := NewColombia()
	y := time.Now().Year()
	assert.True(t, cal.IsHoliday(date(y, 12, 25)))
	assert.True(t, cal.IsHoliday(date(y+4, 12, 25)))
}
