// Command tmux-prayer-times prints the next prayer as a single line for a
// tmux status bar. It is a standalone, flag-only variant of
// `prayer-times next` that reads no config file.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/azanmm/prayer-times/internal/cache"
	"github.com/azanmm/prayer-times/internal/cities"
	"github.com/azanmm/prayer-times/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

type options struct {
	latitude, longitude, timezone float64
	city                          string
	method, school, rule          string
	fajrAngle, ishaAngle          float64
	format, timeFormat, prayers   string
	cacheDir                      string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, now time.Time) error {
	var opts options
	fs := pflag.NewFlagSet("tmux-prayer-times", pflag.ContinueOnError)
	fs.SetOutput(out)

	// Location flags
	fs.Float64Var(&opts.latitude, "latitude", 0, "Latitude in degrees, north positive")
	fs.Float64Var(&opts.longitude, "longitude", 0, "Longitude in degrees, east positive")
	fs.Float64Var(&opts.timezone, "timezone", 0, "UTC offset in hours (default: the city's, or the longitude's solar offset)")
	fs.StringVar(&opts.city, "city", "", "City preset (alternative to coordinates)")

	// Calculation flags
	fs.StringVar(&opts.method, "method", prayer.Karachi.String(), "Calculation method: MWL, Karachi, Egypt, UmmAlQura, Custom")
	fs.StringVar(&opts.school, "school", prayer.Hanafi.String(), "Asr school: standard or hanafi")
	fs.StringVar(&opts.rule, "high-lat-rule", prayer.MiddleOfNight.String(), "High latitude rule")
	fs.Float64Var(&opts.fajrAngle, "fajr-angle", prayer.Custom.Angles().Fajr, "Fajr sun angle for --method Custom, negative degrees")
	fs.Float64Var(&opts.ishaAngle, "isha-angle", prayer.Custom.Angles().Isha, "Isha sun angle for --method Custom, negative degrees")

	// Display flags
	fs.StringVar(&opts.format, "format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.Modes, ", ")+", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Date, .Remaining, .Hours, .Minutes")
	fs.StringVar(&opts.timeFormat, "time-format", prayer.Clock24h, "Time format: 12h or 24h")
	fs.StringVar(&opts.prayers, "prayers", "", "Comma-separated list of prayers to track (default: all)")

	// Cache flags
	fs.StringVar(&opts.cacheDir, "cache-dir", "", "Cache directory for the last location (default: ~/.cache/prayer-times/)")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(out, "tmux-prayer-times %s\n", version)
		return nil
	}
	if *listMethods {
		printMethods(out)
		return nil
	}

	p, err := params(opts, fs)
	if err != nil {
		return err
	}
	return printNext(out, p, opts, now)
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "Name", "Description")
	fmt.Fprintf(w, "  %-10s %s\n", "────", "───────────")
	for _, m := range prayer.Methods {
		fmt.Fprintf(w, "  %-10s %s\n", m, m.Description())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <name> to select a calculation method.")
}

// params resolves the location and calculation settings from flags. Without
// any location flag, the location last used by prayer-times is read from
// the cache.
func params(opts options, fs *pflag.FlagSet) (prayer.Params, error) {
	var lat, lng, tz float64

	switch {
	case fs.Changed("latitude") || fs.Changed("longitude"):
		if !fs.Changed("latitude") || !fs.Changed("longitude") {
			return prayer.Params{}, fmt.Errorf("both --latitude and --longitude are required")
		}
		lat, lng = opts.latitude, opts.longitude
		tz = solarOffset(lng)
	case opts.city != "":
		c, ok := cities.Lookup(opts.city)
		if !ok {
			return prayer.Params{}, fmt.Errorf("unknown city %q", opts.city)
		}
		lat, lng, tz = c.Latitude, c.Longitude, c.Timezone
	default:
		c, err := cache.New(opts.cacheDir)
		if err != nil {
			return prayer.Params{}, fmt.Errorf("no location specified: %w", err)
		}
		loc := c.LoadLocation()
		if loc == nil {
			return prayer.Params{}, fmt.Errorf("no location specified: use --city or --latitude and --longitude")
		}
		lat, lng, tz = loc.Latitude, loc.Longitude, loc.Timezone
	}
	if fs.Changed("timezone") {
		tz = opts.timezone
	}

	p := prayer.DefaultParams(lat, lng, tz, time.Time{})
	var err error
	if p.Method, err = prayer.ParseMethod(opts.method); err != nil {
		return p, err
	}
	if p.AsrSchool, err = prayer.ParseAsrSchool(opts.school); err != nil {
		return p, err
	}
	if p.HighLatitudeRule, err = prayer.ParseHighLatitudeRule(opts.rule); err != nil {
		return p, err
	}
	if p.Method == prayer.Custom {
		p.CustomAngles = prayer.Angles{Fajr: opts.fajrAngle, Isha: opts.ishaAngle}
	}
	return p, nil
}

// solarOffset rounds the longitude's mean solar offset to the nearest half hour.
func solarOffset(lng float64) float64 {
	return math.Round(lng/15*2) / 2
}

func printNext(w io.Writer, p prayer.Params, opts options, now time.Time) error {
	selected := prayer.Names
	if opts.prayers != "" {
		var err error
		if selected, err = prayer.ParseNames(opts.prayers); err != nil {
			return err
		}
	}
	if opts.timeFormat != prayer.Clock12h && opts.timeFormat != prayer.Clock24h {
		return fmt.Errorf("invalid time format %q: must be 12h or 24h", opts.timeFormat)
	}

	now = now.In(p.Zone())
	p.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Today first, then the following days.
	days, err := prayer.ComputeDays(p, 3)
	if err != nil {
		return err
	}
	for _, t := range days {
		if next := prayer.NextPrayer(t.Prayers(selected), now); next != nil {
			fmt.Fprint(w, prayer.FormatOutput(*next, now, opts.format, prayer.TimeLayout(opts.timeFormat)))
			return nil
		}
	}

	// Nothing reachable: keep the status bar quiet rather than failing.
	fmt.Fprintf(w, "%s %s", selected[len(selected)-1], prayer.UnreachableClock)
	return nil
}
