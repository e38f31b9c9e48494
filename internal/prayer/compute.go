package prayer

import (
	"fmt"
	"time"

	"github.com/azanmm/prayer-times/internal/hijri"
	"github.com/azanmm/prayer-times/internal/solar"
)

const (
	// SunriseAngle is the altitude of the sun's upper limb at the horizon,
	// allowing for refraction and the solar radius.
	SunriseAngle = -0.833

	// Fixed Umm al-Qura intervals from Maghrib to Isha, in hours.
	ummAlQuraIsha        = 1.5
	ummAlQuraIshaRamadan = 2.0
)

// Time is one computed prayer time.
type Time struct {
	Name string `json:"name"`
	// Hours is the local time in [0, 24) after offsets.
	Hours float64 `json:"-"`
	// Clock is the 12-hour display string, or "--:--" when unreachable.
	Clock string `json:"clock"`
	// Minutes is the minute of the local day, in [0, 1439].
	Minutes int `json:"minutes"`
	// Unreachable is set when the sun never reaches the twilight angle and
	// no high-latitude rule applies.
	Unreachable bool `json:"unreachable,omitempty"`
}

// UnreachableClock is shown in place of a time that has no solution.
const UnreachableClock = "--:--"

func newTime(name string, h float64, offsetMinutes int) Time {
	h += float64(offsetMinutes) / 60
	return Time{
		Name:    name,
		Hours:   NormalizeHours(h),
		Clock:   FormatHM(h),
		Minutes: MinutesOfDay(h),
	}
}

func unreachableTime(name string) Time {
	return Time{Name: name, Clock: UnreachableClock, Unreachable: true}
}

// Times is a full day's schedule.
type Times struct {
	Date      time.Time    `json:"-"`
	UTCOffset float64      `json:"utc_offset"`
	Method    Method       `json:"method"`
	Fajr      Time         `json:"fajr"`
	Sunrise   Time         `json:"sunrise"`
	Zawal     Time         `json:"zawal"`
	Asr       Time         `json:"asr"`
	Maghrib   Time         `json:"maghrib"`
	Isha      Time         `json:"isha"`
	Hijri     hijri.Date   `json:"hijri"`
	Event     *hijri.Event `json:"event,omitempty"`
}

// All returns the six times in chronological order.
func (t Times) All() []Time {
	return []Time{t.Fajr, t.Sunrise, t.Zawal, t.Asr, t.Maghrib, t.Isha}
}

// Get returns the time with the given name, matched case-insensitively.
func (t Times) Get(name string) (Time, bool) {
	key := lowerName(name)
	for _, pt := range t.All() {
		if lowerName(pt.Name) == key {
			return pt, true
		}
	}
	return Time{}, false
}

// Compute calculates the prayer times for p. It returns an error only when
// p fails validation; unreachable geometry is handled by p.HighLatitudeRule.
func Compute(p Params) (Times, error) {
	if err := p.Validate(); err != nil {
		return Times{}, err
	}

	obs := solar.Observer{Latitude: p.Latitude, Longitude: p.Longitude, UTCOffset: p.UTCOffset}
	jd := solar.JulianDay(p.Date.Year(), int(p.Date.Month()), p.Date.Day())
	angles := p.Angles()
	hd := hijri.FromGregorian(p.Date, p.HijriOffset)

	// Sunrise and sunset keep the clamped estimate even in polar day/night.
	sunrise := solar.SolveTime(obs, jd, SunriseAngle, solar.BeforeNoon).Hours
	sunset := solar.SolveTime(obs, jd, SunriseAngle, solar.AfterNoon).Hours

	night := sunrise + 24 - sunset
	portion := p.HighLatitudeRule.NightPortion(angles.Fajr)

	out := Times{
		Date:      civilDay(p.Date, p.Zone()),
		UTCOffset: p.UTCOffset,
		Method:    p.Method,
		Hijri:     hd,
	}
	if e, ok := hijri.EventFor(hd); ok {
		out.Event = &e
	}

	fajr := solar.SolveTime(obs, jd, angles.Fajr, solar.BeforeNoon)
	out.Fajr = resolve("Fajr", fajr, sunrise-night*portion, p.HighLatitudeRule, p.Offsets.Fajr)

	if p.Method == UmmAlQura {
		interval := ummAlQuraIsha
		if hd.IsRamadan() {
			interval = ummAlQuraIshaRamadan
		}
		out.Isha = newTime("Isha", sunset+interval, p.Offsets.Isha)
	} else {
		isha := solar.SolveTime(obs, jd, angles.Isha, solar.AfterNoon)
		out.Isha = resolve("Isha", isha, sunset+night*portion, p.HighLatitudeRule, p.Offsets.Isha)
	}

	decl := solar.SunPosition(jd).Declination
	asr := solar.SolveTime(obs, jd, solar.AsrAltitude(p.Latitude, decl, p.AsrSchool.Factor()), solar.AfterNoon)

	out.Sunrise = newTime("Sunrise", sunrise, p.Offsets.Sunrise)
	out.Zawal = newTime("Zawal", (sunrise+sunset)/2, p.Offsets.Zawal)
	out.Asr = newTime("Asr", asr.Hours, p.Offsets.Asr)
	out.Maghrib = newTime("Maghrib", sunset, p.Offsets.Maghrib)

	return out, nil
}

// ComputeDays calculates consecutive schedules starting at p.Date.
func ComputeDays(p Params, days int) ([]Times, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}
	out := make([]Times, 0, days)
	start := p.Date
	for i := 0; i < days; i++ {
		p.Date = start.AddDate(0, 0, i)
		t, err := Compute(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// resolve picks the solved time, the high-latitude fallback, or marks the
// time unreachable when the rule offers no fallback.
func resolve(name string, sol solar.Solution, fallback float64, rule HighLatitudeRule, offset int) Time {
	switch {
	case sol.Reachable:
		return newTime(name, sol.Hours, offset)
	case rule == NoAdjustment:
		return unreachableTime(name)
	default:
		return newTime(name, fallback, offset)
	}
}

func civilDay(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
