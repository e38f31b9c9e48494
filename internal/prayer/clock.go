package prayer

import (
	"fmt"
	"math"
	"strings"
)

// MinutesPerDay is the number of minutes in a civil day.
const MinutesPerDay = 24 * 60

// NormalizeHours wraps h into [0, 24). Non-finite input maps to 0.
func NormalizeHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	n := math.Mod(math.Mod(h, 24)+24, 24)
	if n >= 24 {
		n = 0
	}
	return n
}

// MinutesOfDay rounds h to the nearest minute after local midnight, in [0, 1439].
func MinutesOfDay(h float64) int {
	return int(math.Round(NormalizeHours(h)*60)) % MinutesPerDay
}

// FormatHM renders h as a 12-hour clock string such as "5:07 AM". The
// string always names the same minute as MinutesOfDay(h).
func FormatHM(h float64) string {
	return FormatMinutes(MinutesOfDay(h))
}

// FormatMinutes renders a minute-of-day as a 12-hour clock string.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hh, mm := m/60, m%60

	ap := "AM"
	if hh >= 12 {
		ap = "PM"
	}
	h12 := hh % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, mm, ap)
}

// ParseHM decodes a 12-hour clock string produced by FormatHM back to a
// minute-of-day.
func ParseHM(s string) (int, error) {
	var h, m int
	var ap string
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d %s", &h, &m, &ap); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 1 || h > 12 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q: out of range", s)
	}

	h %= 12
	switch strings.ToUpper(ap) {
	case "AM":
	case "PM":
		h += 12
	default:
		return 0, fmt.Errorf("invalid clock %q: expected AM or PM", s)
	}
	return h*60 + m, nil
}
