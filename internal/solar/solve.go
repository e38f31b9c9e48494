package solar

// Direction selects which side of solar noon an event falls on.
type Direction int

const (
	BeforeNoon Direction = iota
	AfterNoon
)

// Passes is the fixed number of refinement passes SolveTime runs.
const Passes = 3

// Observer is a place on Earth with a fixed civil UTC offset.
type Observer struct {
	Latitude  float64
	Longitude float64
	UTCOffset float64 // hours
}

// Solution is a local civil time in decimal hours. Hours may fall outside
// [0, 24) and is meaningful only for display when Reachable is true; for
// unreachable targets it holds the clamped boundary estimate.
type Solution struct {
	Hours     float64
	Reachable bool
}

// SolarNoon returns local civil solar noon in decimal hours for the given
// equation of time (minutes).
func (o Observer) SolarNoon(eot float64) float64 {
	return 12 + o.UTCOffset - o.Longitude/15 - eot/60
}

// SolveTime finds the local time at which the sun reaches altitude angle on
// the day starting at Julian date jd. It runs Passes fixed-point passes
// seeded at 12h; declination and equation of time move little within a day
// so no convergence test is made.
func SolveTime(obs Observer, jd, angle float64, dir Direction) Solution {
	t := 12.0
	reachable := true

	for i := 0; i < Passes; i++ {
		pos := SunPosition(jd + t/24)
		noon := obs.SolarNoon(pos.EquationOfTime)
		h := SolveHourAngle(obs.Latitude, pos.Declination, angle)
		if !h.Reachable {
			reachable = false
		}
		if dir == BeforeNoon {
			t = noon - h.Hours()
		} else {
			t = noon + h.Hours()
		}
	}

	return Solution{Hours: t, Reachable: reachable}
}
