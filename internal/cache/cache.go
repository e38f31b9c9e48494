// Package cache remembers the last resolved location so later runs without
// location flags can reuse it.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirName          = "prayer-times"
	locationFileName = "location.json"
)

// Cache provides file-based storage under a single directory.
type Cache struct {
	dir string
}

// Location is the last place a schedule was computed for.
type Location struct {
	Label     string    `json:"label,omitempty"` // city name or "lat,lng"
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  float64   `json:"timezone"`
	CachedAt  time.Time `json:"cached_at"`
}

func (l Location) valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180 &&
		l.Timezone >= -12 && l.Timezone <= 14
}

// DefaultDir returns $XDG_CACHE_HOME/prayer-times, falling back to
// ~/.cache/prayer-times.
func DefaultDir() (string, error) {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, dirName), nil
}

// New creates a Cache rooted at the given directory.
// If dir is empty, DefaultDir is used.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the directory backing the cache.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) locationPath() string { return filepath.Join(c.dir, locationFileName) }

// LoadLocation reads the last saved location.
// Returns nil if the file is missing, corrupt or out of range.
func (c *Cache) LoadLocation() *Location {
	data, err := os.ReadFile(c.locationPath())
	if err != nil {
		return nil
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil
	}
	if !loc.valid() {
		return nil
	}

	return &loc
}

// SaveLocation records loc as the last used location, stamping CachedAt
// when it is zero.
func (c *Cache) SaveLocation(loc Location) error {
	if !loc.valid() {
		return fmt.Errorf("refusing to cache out-of-range location (%v, %v)", loc.Latitude, loc.Longitude)
	}
	if loc.CachedAt.IsZero() {
		loc.CachedAt = time.Now()
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location cache: %w", err)
	}

	// Write then rename so a crash never leaves a half-written file.
	tmp := c.locationPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write location cache: %w", err)
	}
	if err := os.Rename(tmp, c.locationPath()); err != nil {
		return fmt.Errorf("failed to write location cache: %w", err)
	}

	return nil
}

// Clear removes the cached location.
func (c *Cache) Clear() error {
	err := os.Remove(c.locationPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete location cache: %w", err)
	}
	return nil
}
