package solar

import (
	"math"
	"testing"
	"time"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// ---------------------------------------------------------------------------
// Trig helpers
// ---------------------------------------------------------------------------

func TestTrigHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"sin 30", Sin(30), 0.5},
		{"cos 60", Cos(60), 0.5},
		{"tan 45", Tan(45), 1},
		{"asin 0.5", Asin(0.5), 30},
		{"acos 0.5", Acos(0.5), 60},
		{"atan 1", Atan(1), 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got, tt.want, 1e-9) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAcos_ClampsDomain(t *testing.T) {
	if got := Acos(1.5); got != 0 {
		t.Errorf("Acos(1.5) = %v, want 0", got)
	}
	if got := Acos(-7); !approx(got, 180, 1e-9) {
		t.Errorf("Acos(-7) = %v, want 180", got)
	}
	if math.IsNaN(Asin(2)) {
		t.Error("Asin(2) should be clamped, got NaN")
	}
}

// ---------------------------------------------------------------------------
// Julian dates
// ---------------------------------------------------------------------------

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"2024 new year midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
		{"february uses previous year", time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC), 2460370.25},
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"non-UTC input is read in UTC", time.Date(2000, 1, 1, 18, 30, 0, 0, time.FixedZone("", 6*3600+1800)), 2451545.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDate(tt.in); !approx(got, tt.want, 1e-9) {
				t.Errorf("JulianDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestJulianDay_MatchesMidnight(t *testing.T) {
	got := JulianDay(2024, 6, 21)
	want := JulianDate(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	if got != want {
		t.Errorf("JulianDay = %v, JulianDate at midnight = %v", got, want)
	}
}

func TestJulianCentury(t *testing.T) {
	if got := JulianCentury(J2000); got != 0 {
		t.Errorf("JulianCentury(J2000) = %v, want 0", got)
	}
	if got := JulianCentury(J2000 + 36525); got != 1 {
		t.Errorf("JulianCentury(J2000+36525) = %v, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// Solar position
// ---------------------------------------------------------------------------

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name     string
		jd       float64
		wantDecl float64
		wantEoT  float64
	}{
		{"J2000", J2000, -23.0332, -3.3017},
		{"june solstice 2024", JulianDay(2024, 6, 21), 23.4360, -1.8162},
		{"december solstice 2024", JulianDay(2024, 12, 21), -23.4355, 1.9258},
		{"march equinox 2024", JulianDay(2024, 3, 20), -0.0478, -7.4390},
		{"november eot peak", JulianDay(2024, 11, 13), -18.0326, 15.7615},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SunPosition(tt.jd)
			if !approx(p.Declination, tt.wantDecl, 1e-3) {
				t.Errorf("declination = %.4f, want %.4f", p.Declination, tt.wantDecl)
			}
			if !approx(p.EquationOfTime, tt.wantEoT, 1e-3) {
				t.Errorf("equation of time = %.4f, want %.4f", p.EquationOfTime, tt.wantEoT)
			}
		})
	}
}

func TestSunPosition_BoundedOverYear(t *testing.T) {
	start := JulianDay(2024, 1, 1)
	for d := 0; d < 366; d++ {
		p := SunPosition(start + float64(d))
		if math.Abs(p.Declination) > 23.45 {
			t.Fatalf("day %d: declination %v exceeds obliquity", d, p.Declination)
		}
		if math.Abs(p.EquationOfTime) > 17 {
			t.Fatalf("day %d: equation of time %v out of range", d, p.EquationOfTime)
		}
	}
}

// ---------------------------------------------------------------------------
// Hour angle and Asr altitude
// ---------------------------------------------------------------------------

func TestSolveHourAngle(t *testing.T) {
	tests := []struct {
		name          string
		lat, decl, a  float64
		wantDeg       float64
		wantReachable bool
	}{
		{"equator equinox horizon", 0, 0, 0, 90, true},
		{"equator equinox refraction", 0, 0, -0.833, 90.833, true},
		{"london summer fajr unreachable", 51.5, 23.44, -18, 180, false},
		{"polar night sunrise unreachable", 70, -23.44, -0.833, 0, false},
		{"midnight sun sunset unreachable", 70, 23.44, -0.833, 180, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SolveHourAngle(tt.lat, tt.decl, tt.a)
			if h.Reachable != tt.wantReachable {
				t.Errorf("Reachable = %v, want %v", h.Reachable, tt.wantReachable)
			}
			if !approx(h.Degrees, tt.wantDeg, 1e-3) {
				t.Errorf("Degrees = %v, want %v", h.Degrees, tt.wantDeg)
			}
		})
	}
}

func TestSolveHourAngle_Pole(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		h := SolveHourAngle(lat, 10, -18)
		if h.Reachable {
			t.Errorf("lat %v: expected unreachable", lat)
		}
		if math.IsNaN(h.Degrees) || math.IsInf(h.Degrees, 0) {
			t.Errorf("lat %v: degrees not finite: %v", lat, h.Degrees)
		}
	}
}

func TestHourAngle_Hours(t *testing.T) {
	if got := (HourAngle{Degrees: 90}).Hours(); got != 6 {
		t.Errorf("Hours() = %v, want 6", got)
	}
}

func TestAsrAltitude(t *testing.T) {
	if got := AsrAltitude(20, 20, 1); !approx(got, 45, 1e-9) {
		t.Errorf("factor 1 with sun overhead = %v, want 45", got)
	}
	if got := AsrAltitude(-5, -5, 2); !approx(got, 26.5651, 1e-4) {
		t.Errorf("factor 2 with sun overhead = %v, want 26.5651", got)
	}
	if AsrAltitude(40, 0, 2) >= AsrAltitude(40, 0, 1) {
		t.Error("a longer shadow factor must give a lower altitude")
	}
}

// ---------------------------------------------------------------------------
// SolveTime
// ---------------------------------------------------------------------------

func TestSolveTime_YangonSunriseSunset(t *testing.T) {
	obs := Observer{Latitude: 16.8661, Longitude: 96.1951, UTCOffset: 6.5}
	jd := JulianDay(2024, 1, 1)

	rise := SolveTime(obs, jd, -0.833, BeforeNoon)
	set := SolveTime(obs, jd, -0.833, AfterNoon)

	if !rise.Reachable || !set.Reachable {
		t.Fatalf("sunrise/sunset should be reachable: %+v %+v", rise, set)
	}
	if !approx(rise.Hours, 6.5709, 1e-3) {
		t.Errorf("sunrise = %.4f h, want 6.5709", rise.Hours)
	}
	if !approx(set.Hours, 17.7150, 1e-3) {
		t.Errorf("sunset = %.4f h, want 17.7150", set.Hours)
	}
}

func TestSolveTime_UnreachableIsFlagged(t *testing.T) {
	obs := Observer{Latitude: 51.5074, Longitude: -0.1278, UTCOffset: 1}
	sol := SolveTime(obs, JulianDay(2024, 6, 21), -18, BeforeNoon)
	if sol.Reachable {
		t.Errorf("fajr at -18 in London midsummer should be unreachable, got %+v", sol)
	}
	if math.IsNaN(sol.Hours) {
		t.Error("unreachable solution should still carry a finite estimate")
	}
}

func TestObserver_SolarNoon(t *testing.T) {
	obs := Observer{Longitude: 15, UTCOffset: 1}
	if got := obs.SolarNoon(0); got != 12 {
		t.Errorf("SolarNoon = %v, want 12", got)
	}
	if got := obs.SolarNoon(6); !approx(got, 11.9, 1e-12) {
		t.Errorf("SolarNoon with +6 min EoT = %v, want 11.9", got)
	}
}
