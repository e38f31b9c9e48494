package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/cache"
	"github.com/azanmm/prayer-times/internal/cities"
	"github.com/azanmm/prayer-times/internal/config"
	"github.com/azanmm/prayer-times/internal/prayer"
)

const dateLayout = "2006-01-02"

// session is everything a schedule command needs, resolved once from
// flags, config and the location cache.
type session struct {
	cfg      *config.Config
	loc      cities.City
	params   prayer.Params // Date is the requested day
	zone     *time.Location
	now      time.Time // in zone
	selected []string
	clock    string // prayer.Clock12h or prayer.Clock24h
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg := effectiveConfig(cmd)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		// Cache init failure is non-fatal; the location just isn't remembered.
		c = nil
		log.Warn().Err(err).Msg("location cache disabled")
	}

	loc, err := resolveLocation(cfg, catalog, c)
	if err != nil {
		return nil, err
	}

	params, err := buildParams(cfg, loc)
	if err != nil {
		return nil, err
	}

	zone := params.Zone()
	now := nowFunc().In(zone)
	params.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "date") {
		d, err := time.Parse(dateLayout, FlagDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", FlagDate)
		}
		params.Date = d
	}

	selected := prayer.Names
	if cfg.Prayers != "" {
		if selected, err = prayer.ParseNames(cfg.Prayers); err != nil {
			return nil, err
		}
	}

	if cfg.TimeFormat != prayer.Clock12h && cfg.TimeFormat != prayer.Clock24h {
		return nil, fmt.Errorf("invalid time format %q: must be \"12h\" or \"24h\"", cfg.TimeFormat)
	}

	log.Debug().
		Str("location", loc.Name).
		Float64("lat", loc.Latitude).
		Float64("lng", loc.Longitude).
		Float64("tz", loc.Timezone).
		Stringer("method", params.Method).
		Msg("session resolved")

	return &session{
		cfg:      cfg,
		loc:      loc,
		params:   params,
		zone:     zone,
		now:      now,
		selected: selected,
		clock:    cfg.TimeFormat,
	}, nil
}

// compute returns the schedule for the session's date shifted by offset days.
func (s *session) compute(offsetDays int) (prayer.Times, error) {
	p := s.params
	p.Date = p.Date.AddDate(0, 0, offsetDays)
	return prayer.Compute(p)
}

// today reports whether t is the current civil day at the location.
func (s *session) today(t prayer.Times) bool {
	return t.Date.Format(dateLayout) == s.now.Format(dateLayout)
}

// timeString renders a computed time in the session's clock format.
// Both formats derive from the same minute value.
func (s *session) timeString(t prayer.Time) string {
	if t.Unreachable {
		return prayer.UnreachableClock
	}
	if s.clock == prayer.Clock12h {
		return t.Clock
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}

func loadCatalog(cfg *config.Config) (*cities.Catalog, error) {
	if cfg.CitiesFile == "" {
		return cities.Default(), nil
	}
	return cities.LoadFile(cfg.CitiesFile)
}

// resolveLocation determines the effective location.
// Priority: coordinates > city preset > last cached location.
// A location that did not come from the cache is saved to it.
func resolveLocation(cfg *config.Config, catalog *cities.Catalog, c *cache.Cache) (cities.City, error) {
	var loc cities.City

	switch {
	case cfg.Latitude != nil || cfg.Longitude != nil:
		if !cfg.HasLocation() {
			return loc, fmt.Errorf("both --latitude and --longitude are required")
		}
		loc = cities.City{
			Name:      fmt.Sprintf("%.4f, %.4f", *cfg.Latitude, *cfg.Longitude),
			Latitude:  *cfg.Latitude,
			Longitude: *cfg.Longitude,
		}
		if cfg.Timezone != nil {
			loc.Timezone = *cfg.Timezone
		} else {
			loc.Timezone = solarOffset(loc.Longitude)
			log.Warn().Float64("timezone", loc.Timezone).Msg("no --timezone given, using the longitude's solar offset")
		}
	case cfg.City != "":
		city, ok := catalog.Lookup(cfg.City)
		if !ok {
			return loc, fmt.Errorf("unknown city %q; run 'prayer-times cities' to list presets", cfg.City)
		}
		loc = city
		if cfg.Timezone != nil {
			loc.Timezone = *cfg.Timezone
		}
	default:
		if c != nil {
			if cached := c.LoadLocation(); cached != nil {
				log.Debug().Time("cached_at", cached.CachedAt).Msg("using last known location")
				return cities.City{
					Name:      cached.Label,
					Latitude:  cached.Latitude,
					Longitude: cached.Longitude,
					Timezone:  cached.Timezone,
				}, nil
			}
		}
		return loc, fmt.Errorf("no location specified: use --city, or --latitude, --longitude and --timezone")
	}

	if c != nil {
		err := c.SaveLocation(cache.Location{
			Label:     loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Timezone:  loc.Timezone,
		})
		if err != nil {
			log.Warn().Err(err).Msg("could not remember location")
		}
	}
	return loc, nil
}

// solarOffset rounds the longitude's mean solar offset to the nearest half hour.
func solarOffset(lng float64) float64 {
	return math.Round(lng/15*2) / 2
}

// buildParams turns the merged config and location into calculation
// parameters. Unlike the config accessors, bad enum values are errors here
// because they may come straight from flags.
func buildParams(cfg *config.Config, loc cities.City) (prayer.Params, error) {
	p := prayer.DefaultParams(loc.Latitude, loc.Longitude, loc.Timezone, time.Time{})

	var err error
	if p.Method, err = prayer.ParseMethod(cfg.Method); err != nil {
		return p, err
	}
	if p.AsrSchool, err = prayer.ParseAsrSchool(cfg.AsrSchool); err != nil {
		return p, err
	}
	if p.HighLatitudeRule, err = prayer.ParseHighLatitudeRule(cfg.HighLatRule); err != nil {
		return p, err
	}
	if p.Method == prayer.Custom {
		p.CustomAngles = cfg.CustomAngles()
	} else if cfg.FajrAngle != nil || cfg.IshaAngle != nil {
		log.Warn().Stringer("method", p.Method).Msg("fajr/isha angles only apply to the Custom method")
	}
	p.HijriOffset = cfg.HijriOffsetOrDefault(0)
	p.Offsets = cfg.OffsetsOrDefault()

	// Validate with a placeholder date so range errors surface before any
	// command-specific work.
	check := p
	check.Date = time.Unix(0, 0)
	if err := check.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
