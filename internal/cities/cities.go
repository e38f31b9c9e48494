// Package cities holds named location presets so users can pick a city
// instead of typing coordinates.
package cities

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed cities.toml
var builtinTOML []byte

// City is a named location with a fixed UTC offset in hours.
type City struct {
	Slug      string  `toml:"slug"      json:"slug"`
	Name      string  `toml:"name"      json:"name"`
	Latitude  float64 `toml:"latitude"  json:"latitude"`
	Longitude float64 `toml:"longitude" json:"longitude"`
	Timezone  float64 `toml:"timezone"  json:"timezone"`
}

type catalogFile struct {
	Cities []City `toml:"city"`
}

// Catalog is an ordered set of cities addressable by slug or name.
type Catalog struct {
	cities []City
}

var builtin = mustParse(builtinTOML)

func mustParse(b []byte) *Catalog {
	c, err := Parse(b)
	if err != nil {
		panic(fmt.Sprintf("cities: builtin catalogue: %v", err))
	}
	return c
}

// Default returns the built-in catalogue.
func Default() *Catalog { return builtin }

// Lookup finds a built-in city, see Catalog.Lookup.
func Lookup(key string) (City, bool) { return builtin.Lookup(key) }

// List returns the built-in cities in declaration order.
func List() []City { return builtin.List() }

// Parse decodes a TOML catalogue made of [[city]] tables.
func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing cities: %w", err)
	}
	c := &Catalog{}
	for _, city := range f.Cities {
		if err := c.add(city); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile reads a user catalogue and layers it over the built-in one.
// A user entry with an existing slug replaces the preset.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cities file: %w", err)
	}
	user, err := Parse(b)
	if err != nil {
		return nil, err
	}
	return builtin.Merge(user), nil
}

// Merge returns a new catalogue containing c's cities overridden and
// extended by other's.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{cities: append([]City(nil), c.cities...)}
	for _, city := range other.cities {
		if i := out.index(city.Slug); i >= 0 {
			out.cities[i] = city
			continue
		}
		out.cities = append(out.cities, city)
	}
	return out
}

// Lookup matches key case-insensitively against slugs first, then names.
func (c *Catalog) Lookup(key string) (City, bool) {
	k := normalize(key)
	if k == "" {
		return City{}, false
	}
	if i := c.index(k); i >= 0 {
		return c.cities[i], true
	}
	for _, city := range c.cities {
		if normalize(city.Name) == k || slugify(city.Name) == k {
			return city, true
		}
	}
	return City{}, false
}

// List returns a copy of the catalogue in declaration order.
func (c *Catalog) List() []City {
	return append([]City(nil), c.cities...)
}

func (c *Catalog) index(slug string) int {
	slug = normalize(slug)
	for i, city := range c.cities {
		if city.Slug == slug {
			return i
		}
	}
	return -1
}

func (c *Catalog) add(city City) error {
	city.Slug = normalize(city.Slug)
	if city.Slug == "" {
		city.Slug = slugify(city.Name)
	}
	switch {
	case city.Slug == "":
		return errors.New("city entry needs a slug or a name")
	case city.Latitude < -90 || city.Latitude > 90:
		return fmt.Errorf("city %q: latitude %v out of range", city.Slug, city.Latitude)
	case city.Longitude < -180 || city.Longitude > 180:
		return fmt.Errorf("city %q: longitude %v out of range", city.Slug, city.Longitude)
	case city.Timezone < -12 || city.Timezone > 14:
		return fmt.Errorf("city %q: timezone %v out of range", city.Slug, city.Timezone)
	case c.index(city.Slug) >= 0:
		return fmt.Errorf("duplicate city slug %q", city.Slug)
	}
	if city.Name == "" {
		city.Name = city.Slug
	}
	c.cities = append(c.cities, city)
	return nil
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func slugify(s string) string {
	return strings.Join(strings.Fields(normalize(s)), "-")
}
