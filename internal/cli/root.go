package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/azanmm/prayer-times/internal/config"
	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagCity        string
	FlagLatitude    float64
	FlagLongitude   float64
	FlagTimezone    float64
	FlagMethod      string
	FlagAsrSchool   string
	FlagHighLatRule string
	FlagFajrAngle   float64
	FlagIshaAngle   float64
	FlagHijriOffset int
	FlagDate        string
	FlagJSON        bool
	FlagNoColor     bool
	FlagCacheDir    string
	FlagCitiesFile  string
	FlagTimeFormat  string
	FlagLogLevel    string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// nowFunc is the clock; tests pin it.
var nowFunc = time.Now

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prayer-times",
		Short: "Islamic prayer times CLI",
		Long: "Offline Islamic prayer times calculated from the sun's position.\n\n" +
			"Pick a location with --city (see 'prayer-times cities') or with\n" +
			"--latitude, --longitude and --timezone. The last location used is\n" +
			"remembered for later runs.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg

			level := cfg.LogLevel
			if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "log-level") {
				level = FlagLogLevel
			}
			if err := logging.Setup(level); err != nil {
				return err
			}
			if FlagJSON || FlagNoColor {
				display.SetEnabled(false)
			}
			log.Debug().Str("command", cmd.CommandPath()).Msg("config loaded")
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "City preset, by slug or name (see 'cities')")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Longitude in degrees, east positive")
	pf.Float64Var(&FlagTimezone, "timezone", 0, "UTC offset in hours, e.g. 6.5")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method: MWL, Karachi, Egypt, UmmAlQura, Custom")
	pf.StringVar(&FlagAsrSchool, "asr-school", "", "Asr school: standard (1) or hanafi (2)")
	pf.StringVar(&FlagHighLatRule, "high-lat-rule", "", "High latitude rule: none, middle-of-night, one-seventh, angle-based")
	pf.Float64Var(&FlagFajrAngle, "fajr-angle", 0, "Fajr sun angle for --method Custom, negative degrees (default -18)")
	pf.Float64Var(&FlagIshaAngle, "isha-angle", 0, "Isha sun angle for --method Custom, negative degrees (default -18)")
	pf.IntVar(&FlagHijriOffset, "hijri-offset", 0, "Days added to the Gregorian date before Hijri conversion (-3..3)")
	pf.StringVar(&FlagDate, "date", "", "Date to calculate for, YYYY-MM-DD (default: today at the location)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.BoolVar(&FlagNoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/prayer-times/)")
	pf.StringVar(&FlagCitiesFile, "cities-file", "", "Extra TOML city catalogue merged over the built-in presets")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Diagnostic log level: trace, debug, info, warn, error, disabled")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newHijriCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-times %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
// The loaded config is copied, never modified.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()
	set := func(name string) bool { return flagWasSet(flags, root, name) }

	// A location given on the command line replaces the configured one
	// entirely: --city drops stored coordinates and vice versa.
	if set("city") {
		cfg.City = FlagCity
		cfg.Latitude, cfg.Longitude, cfg.Timezone = nil, nil, nil
	}
	if set("latitude") || set("longitude") {
		cfg.City = ""
		cfg.Latitude, cfg.Longitude, cfg.Timezone = nil, nil, nil
		if set("latitude") {
			lat := FlagLatitude
			cfg.Latitude = &lat
		}
		if set("longitude") {
			lng := FlagLongitude
			cfg.Longitude = &lng
		}
	}
	if set("timezone") {
		tz := FlagTimezone
		cfg.Timezone = &tz
	}

	if set("method") {
		cfg.Method = FlagMethod
	} else if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if set("asr-school") {
		cfg.AsrSchool = FlagAsrSchool
	} else if cfg.AsrSchool == "" {
		cfg.AsrSchool = defaults.AsrSchool
	}
	if set("high-lat-rule") {
		cfg.HighLatRule = FlagHighLatRule
	} else if cfg.HighLatRule == "" {
		cfg.HighLatRule = defaults.HighLatRule
	}
	if set("fajr-angle") {
		a := FlagFajrAngle
		cfg.FajrAngle = &a
	}
	if set("isha-angle") {
		a := FlagIshaAngle
		cfg.IshaAngle = &a
	}
	if set("hijri-offset") {
		h := FlagHijriOffset
		cfg.HijriOffset = &h
	} else if cfg.HijriOffset == nil {
		cfg.HijriOffset = defaults.HijriOffset
	}
	if cfg.Offsets == nil {
		cfg.Offsets = defaults.Offsets
	}
	if set("cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if set("cities-file") {
		cfg.CitiesFile = FlagCitiesFile
	}

	// Time format: CLI flag > config > default ("12h").
	if set("time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
