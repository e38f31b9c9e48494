// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/azanmm/prayer-times/internal/logging"
	"github.com/azanmm/prayer-times/internal/prayer"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"

	offsetKeyPrefix = "offsets."
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = append([]string{
	"city",
	"latitude", "longitude", "timezone",
	"method", "asr_school", "high_lat_rule",
	"fajr_angle", "isha_angle",
	"hijri_offset",
}, append(offsetKeys(), []string{
	"time_format",
	"prayers",
	"cache_dir",
	"cities_file",
	"log_level",
}...)...)

func offsetKeys() []string {
	keys := make([]string, len(prayer.Names))
	for i, n := range prayer.Names {
		keys[i] = offsetKeyPrefix + strings.ToLower(n)
	}
	return keys
}

// Config holds all user-configurable settings.
// Nil pointers and empty strings mean "not set" (use defaults).
type Config struct {
	City        string          `json:"city,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"` // pointers so the equator and prime meridian can be stored
	Longitude   *float64        `json:"longitude,omitempty"`
	Timezone    *float64        `json:"timezone,omitempty"` // hours east of UTC
	Method      string          `json:"method,omitempty"`
	AsrSchool   string          `json:"asr_school,omitempty"`
	HighLatRule string          `json:"high_lat_rule,omitempty"`
	FajrAngle   *float64        `json:"fajr_angle,omitempty"` // used by the Custom method only
	IshaAngle   *float64        `json:"isha_angle,omitempty"`
	HijriOffset *int            `json:"hijri_offset,omitempty"`
	Offsets     *prayer.Offsets `json:"offsets,omitempty"`
	TimeFormat  string          `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers     string          `json:"prayers,omitempty"`     // comma-separated list
	CacheDir    string          `json:"cache_dir,omitempty"`
	CitiesFile  string          `json:"cities_file,omitempty"` // extra TOML city catalogue
	LogLevel    string          `json:"log_level,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	hijri := 0
	offsets := prayer.DefaultOffsets()
	return Config{
		Method:      prayer.Karachi.String(),
		AsrSchool:   prayer.Hanafi.String(),
		HighLatRule: prayer.MiddleOfNight.String(),
		HijriOffset: &hijri,
		Offsets:     &offsets,
		TimeFormat:  prayer.Clock12h,
		LogLevel:    logging.DefaultLevel,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
// If the file exists but is invalid JSON, it returns an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// Enum values are stored in their canonical spelling.
func (c *Config) Set(key, value string) error {
	if name, ok := strings.CutPrefix(key, offsetKeyPrefix); ok {
		return c.setOffset(name, value)
	}

	switch key {
	case "city":
		c.City = strings.TrimSpace(value)
	case "latitude":
		v, err := parseRange(key, value, -90, 90)
		if err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseRange(key, value, -180, 180)
		if err != nil {
			return err
		}
		c.Longitude = &v
	case "timezone":
		v, err := parseRange(key, value, -12, 14)
		if err != nil {
			return err
		}
		c.Timezone = &v
	case "method":
		m, err := prayer.ParseMethod(value)
		if err != nil {
			return err
		}
		c.Method = m.String()
	case "asr_school":
		s, err := prayer.ParseAsrSchool(value)
		if err != nil {
			return err
		}
		c.AsrSchool = s.String()
	case "high_lat_rule":
		r, err := prayer.ParseHighLatitudeRule(value)
		if err != nil {
			return err
		}
		c.HighLatRule = r.String()
	case "fajr_angle", "isha_angle":
		v, err := parseAngle(key, value)
		if err != nil {
			return err
		}
		if key == "fajr_angle" {
			c.FajrAngle = &v
		} else {
			c.IshaAngle = &v
		}
	case "hijri_offset":
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid hijri_offset %q: must be an integer", value)
		}
		if v < -prayer.MaxHijriOffset || v > prayer.MaxHijriOffset {
			return fmt.Errorf("invalid hijri_offset %q: must be between -%d and %d", value, prayer.MaxHijriOffset, prayer.MaxHijriOffset)
		}
		c.HijriOffset = &v
	case "time_format":
		if value != prayer.Clock12h && value != prayer.Clock24h {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		if _, err := prayer.ParseNames(value); err != nil {
			return fmt.Errorf("invalid prayers list: %w", err)
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	case "cities_file":
		c.CitiesFile = value
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(strings.TrimSpace(value))
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

func (c *Config) setOffset(name, value string) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid %s%s %q: must be an integer number of minutes", offsetKeyPrefix, name, value)
	}
	offsets := c.OffsetsOrDefault()
	if err := offsets.Set(name, v); err != nil {
		return fmt.Errorf("invalid config key %q: %w", offsetKeyPrefix+name, err)
	}
	c.Offsets = &offsets
	return nil
}

func parseRange(key, value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %q: must be between %v and %v", key, value, lo, hi)
	}
	return v, nil
}

// parseAngle accepts a sun depression angle below the horizon, given as a
// negative number of degrees down to -30.
func parseAngle(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if v >= 0 || v < -30 {
		return 0, fmt.Errorf("invalid %s %q: must be below 0 and at least -30", key, value)
	}
	return v, nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	if name, ok := strings.CutPrefix(key, offsetKeyPrefix); ok {
		if c.Offsets == nil {
			return "", nil
		}
		v, found := c.Offsets.Get(name)
		if !found {
			return "", fmt.Errorf("unknown config key %q", key)
		}
		return strconv.Itoa(v), nil
	}

	switch key {
	case "city":
		return c.City, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "timezone":
		return formatFloat(c.Timezone), nil
	case "method":
		return c.Method, nil
	case "asr_school":
		return c.AsrSchool, nil
	case "high_lat_rule":
		return c.HighLatRule, nil
	case "fajr_angle":
		return formatFloat(c.FajrAngle), nil
	case "isha_angle":
		return formatFloat(c.IshaAngle), nil
	case "hijri_offset":
		if c.HijriOffset == nil {
			return "", nil
		}
		return strconv.Itoa(*c.HijriOffset), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "cities_file":
		return c.CitiesFile, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// HasLocation reports whether both coordinates are stored.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// MethodOrDefault returns the stored method, falling back to the given default
// when unset or unparseable.
func (c *Config) MethodOrDefault(def prayer.Method) prayer.Method {
	if m, err := prayer.ParseMethod(c.Method); c.Method != "" && err == nil {
		return m
	}
	return def
}

// SchoolOrDefault returns the stored Asr school, falling back to the given default.
func (c *Config) SchoolOrDefault(def prayer.AsrSchool) prayer.AsrSchool {
	if s, err := prayer.ParseAsrSchool(c.AsrSchool); c.AsrSchool != "" && err == nil {
		return s
	}
	return def
}

// RuleOrDefault returns the stored high-latitude rule, falling back to the given default.
func (c *Config) RuleOrDefault(def prayer.HighLatitudeRule) prayer.HighLatitudeRule {
	if r, err := prayer.ParseHighLatitudeRule(c.HighLatRule); c.HighLatRule != "" && err == nil {
		return r
	}
	return def
}

// HijriOffsetOrDefault returns the stored Hijri correction, falling back to the given default.
func (c *Config) HijriOffsetOrDefault(def int) int {
	if c.HijriOffset != nil {
		return *c.HijriOffset
	}
	return def
}

// CustomAngles returns the twilight angles for the Custom method: the
// stored angles over the method's defaults.
func (c *Config) CustomAngles() prayer.Angles {
	a := prayer.Custom.Angles()
	if c.FajrAngle != nil {
		a.Fajr = *c.FajrAngle
	}
	if c.IshaAngle != nil {
		a.Isha = *c.IshaAngle
	}
	return a
}

// OffsetsOrDefault returns the stored minute offsets or prayer.DefaultOffsets.
func (c *Config) OffsetsOrDefault() prayer.Offsets {
	if c.Offsets != nil {
		return *c.Offsets
	}
	return prayer.DefaultOffsets()
}
