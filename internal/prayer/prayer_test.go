package prayer

import (
	"testing"
	"time"
)

// helper to build a time.Time on a given date in UTC.
func makeTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 2, 28, hour, min, 0, 0, time.UTC)
}

func samplePrayers(t *testing.T) []Prayer {
	t.Helper()
	return []Prayer{
		{Name: "Fajr", Time: makeTime(t, 5, 17)},
		{Name: "Sunrise", Time: makeTime(t, 6, 48)},
		{Name: "Zawal", Time: makeTime(t, 12, 13)},
		{Name: "Asr", Time: makeTime(t, 15, 2)},
		{Name: "Maghrib", Time: makeTime(t, 17, 39)},
		{Name: "Isha", Time: makeTime(t, 19, 10)},
	}
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

func TestParseNames(t *testing.T) {
	got, err := ParseNames("fajr, Maghrib ,ISHA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Fajr", "Maghrib", "Isha"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := ParseNames("Fajr,Tahajjud"); err == nil {
		t.Error("expected error for unknown prayer, got nil")
	}
}

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range Names {
		if _, ok := ShortNames[name]; !ok {
			t.Errorf("ShortNames missing entry for prayer %q", name)
		}
	}
}

// ---------------------------------------------------------------------------
// Times.Prayers
// ---------------------------------------------------------------------------

func TestTimes_Prayers_Selected(t *testing.T) {
	times, err := Compute(yangonParams())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	prayers := times.Prayers([]string{"Fajr", "Maghrib", "Isha"})
	if len(prayers) != 3 {
		t.Fatalf("expected 3 prayers, got %d", len(prayers))
	}
	if prayers[0].Name != "Fajr" || prayers[1].Name != "Maghrib" || prayers[2].Name != "Isha" {
		t.Errorf("unexpected prayer names: %v", prayers)
	}

	fajr := prayers[0].Time
	if fajr.Day() != 1 || fajr.Hour()*60+fajr.Minute() != times.Fajr.Minutes {
		t.Errorf("Fajr instant %v does not match minutes %d", fajr, times.Fajr.Minutes)
	}
	if _, off := fajr.Zone(); off != 23400 {
		t.Errorf("Fajr zone offset = %d, want 23400", off)
	}
}

func TestTimes_Prayers_WrapsPastMidnight(t *testing.T) {
	p := DefaultParams(51.5074, -0.1278, 1, day(2024, time.June, 21))
	p.Method = MWL
	p.Offsets = Offsets{}
	times, err := Compute(p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	prayers := times.Prayers(Names)
	if len(prayers) != len(Names) {
		t.Fatalf("got %d prayers, want %d", len(prayers), len(Names))
	}
	for i := 1; i < len(prayers); i++ {
		if !prayers[i].Time.After(prayers[i-1].Time) {
			t.Errorf("%s (%v) not after %s (%v)", prayers[i].Name, prayers[i].Time, prayers[i-1].Name, prayers[i-1].Time)
		}
	}
	if isha := prayers[len(prayers)-1]; isha.Time.Day() != 22 {
		t.Errorf("Isha after midnight should land on the 22nd, got %v", isha.Time)
	}
}

func TestTimes_Prayers_SkipsUnreachable(t *testing.T) {
	p := DefaultParams(51.5074, -0.1278, 1, day(2024, time.June, 21))
	p.Method = MWL
	p.HighLatitudeRule = NoAdjustment
	times, _ := Compute(p)

	prayers := times.Prayers(Names)
	if len(prayers) != 4 {
		t.Fatalf("got %d prayers, want 4 (fajr and isha unreachable)", len(prayers))
	}
	for _, pr := range prayers {
		if pr.Name == "Fajr" || pr.Name == "Isha" {
			t.Errorf("unreachable %s should be skipped", pr.Name)
		}
	}
}

// ---------------------------------------------------------------------------
// NextPrayer / CurrentPrayer
// ---------------------------------------------------------------------------

func TestNextPrayer(t *testing.T) {
	prayers := samplePrayers(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"middle of day", makeTime(t, 13, 0), "Asr"},
		{"before first prayer", makeTime(t, 3, 0), "Fajr"},
		// Exactly at Zawal, it is not After now, so Asr is next.
		{"exact time", makeTime(t, 12, 13), "Asr"},
		{"after all prayers", makeTime(t, 22, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := NextPrayer(prayers, tt.now)
			if tt.want == "" {
				if next != nil {
					t.Errorf("expected nil, got %s", next.Name)
				}
				return
			}
			if next == nil || next.Name != tt.want {
				t.Errorf("NextPrayer = %v, want %s", next, tt.want)
			}
		})
	}
}

func TestNextPrayer_EmptyList(t *testing.T) {
	if next := NextPrayer([]Prayer{}, makeTime(t, 12, 0)); next != nil {
		t.Errorf("expected nil for empty prayer list, got %v", next)
	}
}

func TestCurrentPrayer(t *testing.T) {
	prayers := samplePrayers(t)

	if cur := CurrentPrayer(prayers, makeTime(t, 3, 0)); cur != nil {
		t.Errorf("before Fajr current = %s, want nil", cur.Name)
	}
	if cur := CurrentPrayer(prayers, makeTime(t, 13, 0)); cur == nil || cur.Name != "Zawal" {
		t.Errorf("at 13:00 current = %v, want Zawal", cur)
	}
	if cur := CurrentPrayer(prayers, makeTime(t, 15, 2)); cur == nil || cur.Name != "Asr" {
		t.Errorf("exactly at Asr current = %v, want Asr", cur)
	}
	if cur := CurrentPrayer(prayers, makeTime(t, 23, 0)); cur == nil || cur.Name != "Isha" {
		t.Errorf("late night current = %v, want Isha", cur)
	}
}

// ---------------------------------------------------------------------------
// TimeRemaining / FormatRemaining
// ---------------------------------------------------------------------------

func TestTimeRemaining(t *testing.T) {
	p := Prayer{Name: "Asr", Time: makeTime(t, 15, 2)}
	d := TimeRemaining(p, makeTime(t, 13, 0))
	if d.Hours() < 2.0 || d.Hours() > 2.1 {
		t.Errorf("expected ~2h, got %v", d)
	}

	past := Prayer{Name: "Fajr", Time: makeTime(t, 5, 0)}
	if d := TimeRemaining(past, makeTime(t, 10, 0)); d >= 0 {
		t.Errorf("expected negative duration, got %v", d)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
		{"only minutes", 45 * time.Minute, "45m"},
		{"exactly one hour", 1 * time.Hour, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -30 * time.Minute, "0m"},
		{"large", 10*time.Hour + 59*time.Minute, "10h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.duration); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
