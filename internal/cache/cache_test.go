package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleLocation() Location {
	return Location{
		Label:     "Yangon",
		Latitude:  16.8661,
		Longitude: 96.1951,
		Timezone:  6.5,
	}
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestNew_DefaultDirFromXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	want := filepath.Join(base, "prayer-times")
	if c.Dir() != want {
		t.Errorf("Dir() = %q, want %q", c.Dir(), want)
	}
}

// ---------------------------------------------------------------------------
// SaveLocation / LoadLocation
// ---------------------------------------------------------------------------

func TestLocation_RoundTrip(t *testing.T) {
	c, _ := New(t.TempDir())

	before := time.Now()
	if err := c.SaveLocation(sampleLocation()); err != nil {
		t.Fatalf("SaveLocation error: %v", err)
	}

	got := c.LoadLocation()
	if got == nil {
		t.Fatal("LoadLocation returned nil after save")
	}
	if got.Label != "Yangon" || got.Latitude != 16.8661 || got.Longitude != 96.1951 || got.Timezone != 6.5 {
		t.Errorf("LoadLocation = %+v", got)
	}
	if got.CachedAt.Before(before.Add(-time.Second)) {
		t.Errorf("CachedAt = %v, want stamped at save time", got.CachedAt)
	}
}

func TestLocation_KeepsExplicitTimestamp(t *testing.T) {
	c, _ := New(t.TempDir())

	loc := sampleLocation()
	loc.CachedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := c.SaveLocation(loc); err != nil {
		t.Fatal(err)
	}
	if got := c.LoadLocation(); got == nil || !got.CachedAt.Equal(loc.CachedAt) {
		t.Errorf("CachedAt not preserved: %+v", got)
	}
}

func TestLocation_Overwrite(t *testing.T) {
	c, _ := New(t.TempDir())

	_ = c.SaveLocation(sampleLocation())
	_ = c.SaveLocation(Location{Label: "Equator", Timezone: 0})

	got := c.LoadLocation()
	if got == nil || got.Label != "Equator" || got.Latitude != 0 {
		t.Errorf("expected overwritten location, got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(c.Dir(), "location.json.tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestLocation_CacheMiss(t *testing.T) {
	c, _ := New(t.TempDir())
	if got := c.LoadLocation(); got != nil {
		t.Errorf("expected nil for cache miss, got %+v", got)
	}
}

func TestLocation_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	os.WriteFile(filepath.Join(dir, "location.json"), []byte("{bad json"), 0o644)

	if got := c.LoadLocation(); got != nil {
		t.Error("expected nil for corrupted cache, got entry")
	}
}

func TestLocation_OutOfRangeFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	os.WriteFile(filepath.Join(dir, "location.json"), []byte(`{"latitude":120,"longitude":0,"timezone":0}`), 0o644)

	if got := c.LoadLocation(); got != nil {
		t.Errorf("expected nil for out-of-range entry, got %+v", got)
	}
}

func TestSaveLocation_RejectsInvalid(t *testing.T) {
	c, _ := New(t.TempDir())

	bad := sampleLocation()
	bad.Longitude = 200
	if err := c.SaveLocation(bad); err == nil {
		t.Error("expected error for out-of-range longitude")
	}
	if got := c.LoadLocation(); got != nil {
		t.Error("invalid location should not be written")
	}
}

func TestClear(t *testing.T) {
	c, _ := New(t.TempDir())

	_ = c.SaveLocation(sampleLocation())
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if got := c.LoadLocation(); got != nil {
		t.Error("location still present after Clear")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear on empty cache should not error, got: %v", err)
	}
}
