package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// MaxOffsetMinutes bounds each per-prayer adjustment.
	MaxOffsetMinutes = 120
	// MaxHijriOffset bounds the Hijri day correction.
	MaxHijriOffset = 3
)

// Offsets are signed minute adjustments added to each computed time.
type Offsets struct {
	Fajr    int `json:"fajr"`
	Sunrise int `json:"sunrise"`
	Zawal   int `json:"zawal"`
	Asr     int `json:"asr"`
	Maghrib int `json:"maghrib"`
	Isha    int `json:"isha"`
}

// DefaultOffsets are the safety margins applied when the caller sets none:
// two minutes on Fajr and Isha, four on Maghrib.
func DefaultOffsets() Offsets {
	return Offsets{Fajr: 2, Maghrib: 4, Isha: 2}
}

func (o *Offsets) field(name string) *int {
	switch lowerName(name) {
	case "fajr":
		return &o.Fajr
	case "sunrise":
		return &o.Sunrise
	case "zawal":
		return &o.Zawal
	case "asr":
		return &o.Asr
	case "maghrib":
		return &o.Maghrib
	case "isha":
		return &o.Isha
	}
	return nil
}

// Get returns the offset for a prayer name.
func (o Offsets) Get(name string) (int, bool) {
	f := o.field(name)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Set assigns the offset for a prayer name.
func (o *Offsets) Set(name string, minutes int) error {
	f := o.field(name)
	if f == nil {
		return fmt.Errorf("unknown prayer name %q", name)
	}
	if err := checkOffset(lowerName(name), minutes); err != nil {
		return err
	}
	*f = minutes
	return nil
}

func (o Offsets) validate() error {
	for _, name := range Names {
		v, _ := o.Get(name)
		if err := checkOffset(lowerName(name), v); err != nil {
			return err
		}
	}
	return nil
}

func checkOffset(name string, v int) error {
	if v < -MaxOffsetMinutes || v > MaxOffsetMinutes {
		return fmt.Errorf("%s offset %d out of range (must be within ±%d minutes)", name, v, MaxOffsetMinutes)
	}
	return nil
}

// Params is everything needed to compute one day's times.
type Params struct {
	Latitude  float64 // degrees, -90..90
	Longitude float64 // degrees, -180..180
	UTCOffset float64 // hours east of UTC

	// Date selects the calendar day by its year, month and day; time of day
	// and location are ignored.
	Date time.Time

	Method Method
	// CustomAngles overrides the angles of the Custom method when non-zero.
	CustomAngles     Angles
	AsrSchool        AsrSchool
	HighLatitudeRule HighLatitudeRule
	Offsets          Offsets
	HijriOffset      int
}

// DefaultParams returns parameters for a location and day with the
// defaults: Karachi angles, Hanafi Asr, middle-of-night fallback, the
// default safety offsets and no Hijri correction.
func DefaultParams(lat, lng, utcOffset float64, date time.Time) Params {
	return Params{
		Latitude:         lat,
		Longitude:        lng,
		UTCOffset:        utcOffset,
		Date:             date,
		Method:           Karachi,
		AsrSchool:        Hanafi,
		HighLatitudeRule: MiddleOfNight,
		Offsets:          DefaultOffsets(),
	}
}

// Validate rejects parameters outside the supported domain.
func (p Params) Validate() error {
	for _, v := range []float64{p.Latitude, p.Longitude, p.UTCOffset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("coordinates and UTC offset must be finite numbers")
		}
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range (must be between -90 and 90)", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range (must be between -180 and 180)", p.Longitude)
	}
	if p.UTCOffset < -12 || p.UTCOffset > 14 {
		return fmt.Errorf("utc offset %v out of range (must be between -12 and 14 hours)", p.UTCOffset)
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if !p.Method.Valid() {
		return fmt.Errorf("invalid calculation method %d", int(p.Method))
	}
	if !p.AsrSchool.Valid() {
		return fmt.Errorf("invalid asr school %d (must be 1 or 2)", int(p.AsrSchool))
	}
	if !p.HighLatitudeRule.Valid() {
		return fmt.Errorf("invalid high latitude rule %d", int(p.HighLatitudeRule))
	}
	if p.Method == Custom && p.CustomAngles != (Angles{}) {
		for _, a := range []float64{p.CustomAngles.Fajr, p.CustomAngles.Isha} {
			if a >= 0 || a < -30 {
				return fmt.Errorf("custom angle %v out of range (must be between -30 and 0, exclusive of 0)", a)
			}
		}
	}
	if p.HijriOffset < -MaxHijriOffset || p.HijriOffset > MaxHijriOffset {
		return fmt.Errorf("hijri offset %d out of range (must be within ±%d days)", p.HijriOffset, MaxHijriOffset)
	}
	return p.Offsets.validate()
}

// Angles returns the effective twilight angles for the parameters.
func (p Params) Angles() Angles {
	if p.Method == Custom && p.CustomAngles != (Angles{}) {
		return p.CustomAngles
	}
	return p.Method.Angles()
}

// Zone returns a fixed time zone for the parameters' UTC offset.
func (p Params) Zone() *time.Location {
	return FixedZone(p.UTCOffset)
}

// FixedZone returns a location with the given offset in hours, named like "UTC+6:30".
func FixedZone(offset float64) *time.Location {
	secs := int(math.Round(offset * 3600))
	sign := '+'
	abs := secs
	if secs < 0 {
		sign = '-'
		abs = -secs
	}
	name := fmt.Sprintf("UTC%c%d", sign, abs/3600)
	if m := (abs % 3600) / 60; m != 0 {
		name += fmt.Sprintf(":%02d", m)
	}
	return time.FixedZone(name, secs)
}
