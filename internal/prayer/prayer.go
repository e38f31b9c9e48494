// Package prayer computes the daily prayer schedule from the solar model and
// provides helpers for presenting it: next/current prayer, countdowns and
// display formats.
package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// Names lists the computed times in chronological order.
var Names = []string{"Fajr", "Sunrise", "Zawal", "Asr", "Maghrib", "Isha"}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Zawal":   "Z",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// CanonicalName returns the spelling used in Names for a case-insensitive
// match, and whether one was found.
func CanonicalName(name string) (string, bool) {
	key := lowerName(name)
	for _, n := range Names {
		if lowerName(n) == key {
			return n, true
		}
	}
	return "", false
}

// ParseNames splits a comma-separated list of prayer names and validates each.
func ParseNames(list string) ([]string, error) {
	var out []string
	for _, raw := range strings.Split(list, ",") {
		n, ok := CanonicalName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name %q (valid: %s)", strings.TrimSpace(raw), strings.Join(Names, ", "))
		}
		out = append(out, n)
	}
	return out, nil
}

func lowerName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Prayers anchors the selected times to instants on the schedule's day.
// Times that wrapped past midnight are moved to the neighbouring day so the
// result stays in chronological order; unreachable times are skipped.
func (t Times) Prayers(selected []string) []Prayer {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[lowerName(s)] = true
	}

	noon := t.Zawal.Minutes
	var prayers []Prayer
	for i, pt := range t.All() {
		if pt.Unreachable || !want[lowerName(pt.Name)] {
			continue
		}

		ts := t.Date.Add(time.Duration(pt.Minutes) * time.Minute)
		switch {
		case i < 2 && pt.Minutes > noon:
			ts = ts.AddDate(0, 0, -1)
		case i > 2 && pt.Minutes < noon:
			ts = ts.AddDate(0, 0, 1)
		}
		prayers = append(prayers, Prayer{Name: pt.Name, Time: ts})
	}
	return prayers
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers have passed, it returns nil (caller should compute tomorrow's).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer whose time has arrived, or nil
// if now is before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
