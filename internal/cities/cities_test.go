package cities

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalogue(t *testing.T) {
	list := List()
	if len(list) != 22 {
		t.Fatalf("List() returned %d cities, want 22", len(list))
	}
	if list[0].Slug != "yangon" {
		t.Errorf("first city = %q, want yangon", list[0].Slug)
	}
	for _, c := range list {
		if c.Timezone != 6.5 {
			t.Errorf("%s timezone = %v, want 6.5", c.Slug, c.Timezone)
		}
		if c.Name == "" {
			t.Errorf("%s has no name", c.Slug)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"yangon", "yangon"},
		{"  Mandalay ", "mandalay"},
		{"HPA-AN", "hpa-an"},
		{"Pyin Oo Lwin", "pyin-oo-lwin"},
		{"pyin oo lwin", "pyin-oo-lwin"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, ok := Lookup(tt.key)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.key)
			}
			if c.Slug != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.key, c.Slug, tt.want)
			}
		})
	}

	for _, key := range []string{"", "atlantis"} {
		if _, ok := Lookup(key); ok {
			t.Errorf("Lookup(%q) should not match", key)
		}
	}
}

func TestLookup_Coordinates(t *testing.T) {
	c, _ := Lookup("yangon")
	if c.Latitude != 16.8661 || c.Longitude != 96.1951 {
		t.Errorf("yangon = (%v, %v), want (16.8661, 96.1951)", c.Latitude, c.Longitude)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	list := List()
	list[0].Name = "changed"
	if c, _ := Lookup("yangon"); c.Name != "Yangon" {
		t.Errorf("mutating List() result leaked into catalogue: %q", c.Name)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"bad toml":      "[[city]\nslug = ",
		"no slug":       "[[city]]\nlatitude = 1.5\n",
		"bad latitude":  "[[city]]\nslug = \"x\"\nlatitude = 91.0\n",
		"bad longitude": "[[city]]\nslug = \"x\"\nlongitude = -181.0\n",
		"bad timezone":  "[[city]]\nslug = \"x\"\ntimezone = 15.0\n",
		"duplicate":     "[[city]]\nslug = \"x\"\n\n[[city]]\nslug = \"X\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse_SlugFromName(t *testing.T) {
	c, err := Parse([]byte("[[city]]\nname = \"Kuala Lumpur\"\nlatitude = 3.139\nlongitude = 101.6869\ntimezone = 8.0\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got, ok := c.Lookup("kuala-lumpur")
	if !ok {
		t.Fatal("expected slug derived from name")
	}
	if got.Name != "Kuala Lumpur" || got.Timezone != 8.0 {
		t.Errorf("got %+v", got)
	}
}

func TestLoadFile_MergesOverBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.toml")
	doc := `
[[city]]
slug = "yangon"
name = "Yangon (Downtown)"
latitude = 16.7750
longitude = 96.1580
timezone = 6.5

[[city]]
slug = "makkah"
name = "Makkah"
latitude = 21.4225
longitude = 39.8262
timezone = 3.0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	list := cat.List()
	if len(list) != 23 {
		t.Fatalf("merged catalogue has %d cities, want 23", len(list))
	}
	if list[0].Name != "Yangon (Downtown)" {
		t.Errorf("override kept position 0 but name = %q", list[0].Name)
	}
	if list[22].Slug != "makkah" {
		t.Errorf("new city appended as %q, want makkah", list[22].Slug)
	}
	if c, _ := Lookup("yangon"); c.Name != "Yangon" {
		t.Errorf("builtin catalogue mutated: %q", c.Name)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
