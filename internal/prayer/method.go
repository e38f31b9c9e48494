package prayer

import (
	"fmt"
	"strings"
)

// Method is a calculation convention fixing the Fajr and Isha twilight angles.
type Method int

const (
	MWL Method = iota
	Karachi
	Egypt
	UmmAlQura
	Custom
)

// Methods lists every supported calculation method in display order.
var Methods = []Method{MWL, Karachi, Egypt, UmmAlQura, Custom}

// Angles holds the solar depression angles (negative, degrees) for Fajr and
// Isha. An Isha angle of 0 means Isha is a fixed interval after Maghrib.
type Angles struct {
	Fajr float64 `json:"fajr"`
	Isha float64 `json:"isha"`
}

// Angles returns the method's Fajr and Isha angles.
func (m Method) Angles() Angles {
	switch m {
	case MWL:
		return Angles{Fajr: -18, Isha: -17}
	case Karachi:
		return Angles{Fajr: -18, Isha: -18}
	case Egypt:
		return Angles{Fajr: -19.5, Isha: -17.5}
	case UmmAlQura:
		return Angles{Fajr: -18.5, Isha: 0}
	case Custom:
		return Angles{Fajr: -18, Isha: -18}
	default:
		panic(fmt.Sprintf("prayer: invalid method %d", int(m)))
	}
}

// Valid reports whether m is one of the defined methods.
func (m Method) Valid() bool { return m >= MWL && m <= Custom }

// String returns the short identifier used in config files and flags.
func (m Method) String() string {
	switch m {
	case MWL:
		return "MWL"
	case Karachi:
		return "Karachi"
	case Egypt:
		return "Egypt"
	case UmmAlQura:
		return "UmmAlQura"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Description returns the full name of the authority behind the method.
func (m Method) Description() string {
	switch m {
	case MWL:
		return "Muslim World League"
	case Karachi:
		return "University of Islamic Sciences, Karachi"
	case Egypt:
		return "Egyptian General Authority of Survey"
	case UmmAlQura:
		return "Umm Al-Qura University, Makkah"
	case Custom:
		return "Custom angles"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMethod parses a method name, ignoring case, spaces, dashes and underscores.
func ParseMethod(s string) (Method, error) {
	key := normalizeKey(s)
	for _, m := range Methods {
		if normalizeKey(m.String()) == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown calculation method %q (valid: %s)", s, joinStrings(Methods))
}

// AsrSchool selects the shadow-length factor that starts Asr.
type AsrSchool int

const (
	// Standard (Shafi, Maliki, Hanbali): shadow equals the object's height.
	Standard AsrSchool = 1
	// Hanafi: shadow equals twice the object's height.
	Hanafi AsrSchool = 2
)

// Factor returns the shadow-length multiplier.
func (s AsrSchool) Factor() int { return int(s) }

// Valid reports whether s is Standard or Hanafi.
func (s AsrSchool) Valid() bool { return s == Standard || s == Hanafi }

func (s AsrSchool) String() string {
	switch s {
	case Standard:
		return "Standard"
	case Hanafi:
		return "Hanafi"
	default:
		return fmt.Sprintf("AsrSchool(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s AsrSchool) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid asr school %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AsrSchool) UnmarshalText(b []byte) error {
	v, err := ParseAsrSchool(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseAsrSchool accepts "standard", "shafi", "hanafi" or the factor "1"/"2".
func ParseAsrSchool(s string) (AsrSchool, error) {
	switch normalizeKey(s) {
	case "1", "standard", "shafi":
		return Standard, nil
	case "2", "hanafi":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("unknown asr school %q (valid: standard, hanafi)", s)
}

// HighLatitudeRule picks the night fraction substituted for Fajr or Isha
// when the sun never reaches the method's twilight angle.
type HighLatitudeRule int

const (
	NoAdjustment HighLatitudeRule = iota
	MiddleOfNight
	OneSeventh
	AngleBased
)

// HighLatitudeRules lists every rule in display order.
var HighLatitudeRules = []HighLatitudeRule{NoAdjustment, MiddleOfNight, OneSeventh, AngleBased}

// NightPortion returns the fraction of the night used by the fallback for a
// twilight angle.
func (r HighLatitudeRule) NightPortion(angle float64) float64 {
	switch r {
	case AngleBased:
		if angle < 0 {
			angle = -angle
		}
		return angle / 60
	case OneSeventh:
		return 1.0 / 7
	case MiddleOfNight:
		return 0.5
	default:
		return 0
	}
}

// Valid reports whether r is a defined rule.
func (r HighLatitudeRule) Valid() bool { return r >= NoAdjustment && r <= AngleBased }

func (r HighLatitudeRule) String() string {
	switch r {
	case NoAdjustment:
		return "None"
	case MiddleOfNight:
		return "MiddleOfNight"
	case OneSeventh:
		return "OneSeventh"
	case AngleBased:
		return "AngleBased"
	default:
		return fmt.Sprintf("HighLatitudeRule(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r HighLatitudeRule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid high latitude rule %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *HighLatitudeRule) UnmarshalText(b []byte) error {
	v, err := ParseHighLatitudeRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseHighLatitudeRule parses a rule name such as "middle-of-night".
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	key := normalizeKey(s)
	for _, r := range HighLatitudeRules {
		if normalizeKey(r.String()) == key {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown high latitude rule %q (valid: %s)", s, joinStrings(HighLatitudeRules))
}

func normalizeKey(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func joinStrings[T fmt.Stringer](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
