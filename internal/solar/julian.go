package solar

import (
	"math"
	"time"
)

// J2000 is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// JulianDate converts t, read in UTC, to a continuous Julian date. The
// fractional part carries the time of day.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	frac := (float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600) / 24
	return julian(t.Year(), int(t.Month()), float64(t.Day())+frac)
}

// JulianDay returns the Julian date at 0h UTC of the given calendar day.
func JulianDay(year, month, day int) float64 {
	return julian(year, month, float64(day))
}

// julian applies the Gregorian-calendar Julian day formula. January and
// February count as months 13 and 14 of the previous year.
func julian(y, m int, d float64) float64 {
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		d + b - 1524.5
}

// JulianCentury returns the number of Julian centuries since J2000.0.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / 36525
}
