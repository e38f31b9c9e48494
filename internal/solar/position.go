package solar

import "math"

// Position is the apparent place of the sun needed to time prayers.
type Position struct {
	Declination    float64 // degrees
	EquationOfTime float64 // minutes, apparent minus mean solar time
}

// SunPosition evaluates the low-order solar ephemeris at Julian date jd.
// The polynomials are fitted for roughly 1901-2099; outside that range the
// result drifts but stays finite.
func SunPosition(jd float64) Position {
	t := JulianCentury(jd)

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t // mean longitude
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t  // mean anomaly
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t

	c := (1.914602-0.004817*t)*Sin(m) +
		(0.019993-0.000101*t)*Sin(2*m) +
		0.000289*Sin(3*m)

	lambda := l0 + c
	epsilon := 23.439291 - 0.0130042*t

	decl := Asin(Sin(epsilon) * Sin(lambda))

	y := math.Pow(Tan(epsilon/2), 2)
	eot := 4 * rad2deg * (y*Sin(2*l0) -
		2*e*Sin(m) +
		4*e*y*Sin(m)*Cos(2*l0) -
		0.5*y*y*Sin(4*l0) -
		1.25*e*e*Sin(2*m))

	return Position{Declination: decl, EquationOfTime: eot}
}
