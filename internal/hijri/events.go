package hijri

// Event is a named occasion in the Hijri year. Range, when non-zero, is the
// number of consecutive days the occasion spans starting at Day.
type Event struct {
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Key   string `json:"key"`
	Range int    `json:"range,omitempty"`
}

// Covers reports whether the event falls on the given Hijri day and month.
func (e Event) Covers(day, month int) bool {
	if month != e.Month {
		return false
	}
	if e.Range > 0 {
		return day >= e.Day && day < e.Day+e.Range
	}
	return day == e.Day
}

// Title returns a display name for the event.
func (e Event) Title() string {
	if t, ok := eventTitles[e.Key]; ok {
		return t
	}
	return e.Key
}

// events is ordered so single-day occasions come before any range that
// overlaps them; LookupEvent returns the first match.
var events = [...]Event{
	{Month: 1, Day: 1, Key: "new_year"},
	{Month: 1, Day: 10, Key: "ashura"},
	{Month: 3, Day: 12, Key: "mawlid"},
	{Month: 7, Day: 27, Key: "isra"},
	{Month: 8, Day: 15, Key: "baraat"},
	{Month: 9, Day: 1, Key: "ramadan_start"},
	{Month: 9, Day: 21, Key: "qadr", Range: 10},
	{Month: 10, Day: 1, Key: "fitr"},
	{Month: 12, Day: 9, Key: "arafah"},
	{Month: 12, Day: 10, Key: "adha"},
	{Month: 12, Day: 8, Key: "hajj", Range: 6},
}

var eventTitles = map[string]string{
	"new_year":      "Islamic New Year",
	"ashura":        "Day of Ashura",
	"mawlid":        "Mawlid an-Nabi",
	"isra":          "Isra and Miraj",
	"baraat":        "Laylat al-Baraat",
	"ramadan_start": "First day of Ramadan",
	"qadr":          "Last ten nights (Laylat al-Qadr)",
	"fitr":          "Eid al-Fitr",
	"arafah":        "Day of Arafah",
	"adha":          "Eid al-Adha",
	"hajj":          "Days of Hajj",
}

// LookupEvent returns the first occasion covering the Hijri day and month.
func LookupEvent(day, month int) (Event, bool) {
	for _, e := range events {
		if e.Covers(day, month) {
			return e, true
		}
	}
	return Event{}, false
}

// Events returns a copy of the event table.
func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events[:])
	return out
}

// EventFor returns the occasion falling on d, if any.
func EventFor(d Date) (Event, bool) {
	return LookupEvent(d.Day, d.Month)
}
