package solar

import "math"

// HourAngle is the outcome of solving for the hour angle at which the sun
// reaches a target altitude.
type HourAngle struct {
	// Degrees is the hour angle, clamped to [0, 180] when the altitude is out of reach.
	Degrees float64
	// Reachable is false when the sun never attains the target altitude on
	// that day at that latitude (polar day/night, deep twilight in summer).
	Reachable bool
}

// Hours returns the hour angle as a time offset from solar noon.
func (h HourAngle) Hours() float64 { return h.Degrees / 15 }

// SolveHourAngle returns the hour angle at which the sun, at declination
// decl, stands at altitude angle for an observer at latitude lat.
func SolveHourAngle(lat, decl, angle float64) HourAngle {
	den := Cos(lat) * Cos(decl)
	if den == 0 || math.Abs(lat) >= 90 {
		// Pole: altitude equals declination all day; no hour angle exists.
		return HourAngle{Degrees: 0, Reachable: false}
	}

	ratio := (Sin(angle) - Sin(lat)*Sin(decl)) / den
	return HourAngle{
		Degrees:   Acos(ratio),
		Reachable: ratio >= -1 && ratio <= 1,
	}
}

// AsrAltitude returns the solar altitude at which an object's shadow is
// factor times its height plus its noon shadow.
func AsrAltitude(lat, decl float64, factor int) float64 {
	return Atan(1 / (float64(factor) + Tan(math.Abs(lat-decl))))
}
