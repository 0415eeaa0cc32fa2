package calendar

import "time"

// NewColombia builds the Colombian national holiday calendar covering
// the given years. With no arguments it covers the five years starting
// at the current one, which is enough for any live forward book.
//
// The set follows Law 51 of 1983 (the Emiliani law): six fixed-date
// holidays, three Easter-relative Mondays, two fixed Easter-relative
// days, and seven holidays that move to the following Monday when they
// do not already fall on one.
func NewColombia(years ...int) *Calendar {
	if len(years) == 0 {
		y := time.Now().Year()
		for i := 0; i < 5; i++ {
			years = append(years, y+i)
		}
	}

	var hs []time.Time
	for _, y := range years {
		hs = append(hs, colombiaHolidays(y)...)
	}
	return New(hs...)
}

func colombiaHolidays(year int) []time.Time {
	d := func(m time.Month, day int) time.Time {
		return time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
	}

	easter := easterSunday(year)

	hs := []time.Time{
		// Fixed, never shifted.
		d(time.January, 1),   // Año Nuevo
		d(time.May, 1),       // Día del Trabajo
		d(time.July, 20),     // Independencia
		d(time.August, 7),    // Batalla de Boyacá
		d(time.December, 8),  // Inmaculada Concepción
		d(time.December, 25), // Navidad

		// Holy Week, fixed relative to Easter.
		easter.AddDate(0, 0, -3), // Jueves Santo
		easter.AddDate(0, 0, -2), // Viernes Santo

		// Easter-relative holidays observed the following Monday.
		easter.AddDate(0, 0, 43), // Ascensión
		easter.AddDate(0, 0, 64), // Corpus Christi
		easter.AddDate(0, 0, 71), // Sagrado Corazón
	}

	// Emiliani holidays: observed the next Monday unless already one.
	for _, h := range []time.Time{
		d(time.January, 6),   // Reyes Magos
		d(time.March, 19),    // San José
		d(time.June, 29),     // San Pedro y San Pablo
		d(time.August, 15),   // Asunción
		d(time.October, 12),  // Día de la Raza
		d(time.November, 1),  // Todos los Santos
		d(time.November, 11), // Independencia de Cartagena
	} {
		hs = append(hs, nextMonday(h))
	}

	return hs
}

func nextMonday(t time.Time) time.Time {
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// easterSunday computes Gregorian Easter using the anonymous computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
