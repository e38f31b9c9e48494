package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/prayer"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	times, err := s.compute(0)
	if err != nil {
		return err
	}

	prayers := times.Prayers(s.selected)
	current := prayer.CurrentPrayer(prayers, s.now)
	next := prayer.NextPrayer(prayers, s.now)
	if !s.today(times) {
		// A schedule for another day has no current or next prayer.
		current, next = nil, nil
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, times, current, next)
	}

	printTodayRich(out, s, times, current, next)
	return nil
}

// printTodayRich renders the colored terminal output for a day's schedule.
func printTodayRich(w io.Writer, s *session, times prayer.Times, current, next *prayer.Prayer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.loc.Name)
	fmt.Fprintf(w, "  %s\n", s.zone.String())
	fmt.Fprintf(w, "  %s\n", times.Date.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", times.Hijri.String())
	if times.Event != nil {
		fmt.Fprintf(w, "  %s\n", display.Yellow(times.Event.Title()))
	}
	fmt.Fprintln(w)

	maxNameLen := 0
	for _, name := range s.selected {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	for _, name := range s.selected {
		t, _ := times.Get(name)
		line := fmt.Sprintf("  %s  %s", padRight(t.Name, maxNameLen), s.timeString(t))

		switch {
		case t.Unreachable:
			fmt.Fprintln(w, display.Red(line))
		case current != nil && t.Name == current.Name:
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && t.Name == next.Name:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now))
			fmt.Fprintln(w, display.Accent(line)+display.Accent(fmt.Sprintf("  <- next in %s", remaining)))
		default:
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location locationJSON      `json:"location"`
	Date     dateJSON          `json:"date"`
	Timings  map[string]string `json:"timings"`
	Minutes  map[string]int    `json:"minutes"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
}

type locationJSON struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug,omitempty"`
	Timezone  float64 `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *session) locationJSON() locationJSON {
	return locationJSON{
		Name:      s.loc.Name,
		Slug:      s.loc.Slug,
		Timezone:  s.loc.Timezone,
		Latitude:  s.loc.Latitude,
		Longitude: s.loc.Longitude,
	}
}

type dateJSON struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
	Event     string `json:"event,omitempty"`
}

func newDateJSON(t prayer.Times) dateJSON {
	d := dateJSON{
		Gregorian: t.Date.Format(dateLayout),
		Hijri:     t.Hijri.String(),
	}
	if t.Event != nil {
		d.Event = t.Event.Title()
	}
	return d
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

// timingsMaps returns the selected times keyed by lowercase name. Unreachable
// times appear as "--:--" and are left out of the minutes map.
func (s *session) timingsMaps(times prayer.Times) (map[string]string, map[string]int) {
	timings := make(map[string]string, len(s.selected))
	minutes := make(map[string]int, len(s.selected))
	for _, name := range s.selected {
		t, _ := times.Get(name)
		key := strings.ToLower(t.Name)
		timings[key] = s.timeString(t)
		if !t.Unreachable {
			minutes[key] = t.Minutes
		}
	}
	return timings, minutes
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *session, times prayer.Times, current, next *prayer.Prayer) error {
	timings, minutes := s.timingsMaps(times)
	out := todayJSON{
		Location: s.locationJSON(),
		Date:     newDateJSON(times),
		Timings:  timings,
		Minutes:  minutes,
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(prayer.TimeLayout(s.clock)),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// dayLabel is the short date used in multi-day tables.
func dayLabel(t time.Time) string { return t.Format("Mon 02 Jan") }
