// Package hijri converts Gregorian dates to the civil (tabular) Islamic
// calendar and looks up the named occasions that fall on a Hijri date.
//
// The tabular calendar is arithmetic and can differ from locally sighted
// dates by a day or two; callers correct for that with a day offset.
package hijri

import (
	"fmt"
	"time"
)

// epoch is the Julian day number the tabular algorithm counts from.
const epoch = 1948440

// Ramadan is the month number of Ramadan.
const Ramadan = 9

var monthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Shaban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qadah",
	"Dhu al-Hijjah",
}

// Date is a day in the civil Islamic calendar.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}

// MonthName returns the English transliteration of Hijri month m, or "" if
// m is not in 1-12.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// MonthName returns the transliterated name of the date's month.
func (d Date) MonthName() string { return MonthName(d.Month) }

// String formats the date as "DD MonthName YYYY AH".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}

// IsRamadan reports whether the date falls in Ramadan.
func (d Date) IsRamadan() bool { return d.Month == Ramadan }

// FromGregorian converts the calendar day of t (its year, month and day in
// t's own location) to the tabular Hijri calendar. dayOffset shifts the
// Gregorian day before conversion.
func FromGregorian(t time.Time, dayOffset int) Date {
	t = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
	return FromJulianDayNumber(julianDayNumber(t.Year(), int(t.Month()), t.Day()))
}

// FromJulianDayNumber converts an integer Julian day number using the
// Kuwaiti tabular algorithm.
func FromJulianDayNumber(jdn int) Date {
	l := jdn - epoch + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354

	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29

	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return Date{Day: day, Month: month, Year: year}
}

// julianDayNumber returns the integer Julian day number (the day beginning
// at noon) of a Gregorian date.
func julianDayNumber(y, m, d int) int {
	if m < 3 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return int(365.25*float64(y+4716)) + int(30.6001*float64(m+1)) + d + b - 1524
}
