package hijri

import (
	"testing"
	"time"
)

func gdate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromGregorian(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		offset int
		want   Date
	}{
		{"new year 2024 anchor", gdate(2024, time.January, 1), 0, Date{19, 6, 1445}},
		{"first of ramadan 1445", gdate(2024, time.March, 11), 0, Date{1, 9, 1445}},
		{"last day of shaban 1445", gdate(2024, time.March, 10), 0, Date{29, 8, 1445}},
		{"thirtieth of ramadan 1445", gdate(2024, time.April, 9), 0, Date{30, 9, 1445}},
		{"eid al-fitr 1445", gdate(2024, time.April, 10), 0, Date{1, 10, 1445}},
		{"hijri new year 1445", gdate(2023, time.July, 19), 0, Date{1, 1, 1445}},
		{"end of 1444", gdate(2023, time.July, 18), 0, Date{29, 12, 1444}},
		{"unix epoch", gdate(1970, time.January, 1), 0, Date{22, 10, 1389}},
		{"offset forward into ramadan", gdate(2024, time.March, 10), 1, Date{1, 9, 1445}},
		{"offset backward", gdate(2024, time.April, 10), -1, Date{30, 9, 1445}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromGregorian(tt.date, tt.offset)
			if got != tt.want {
				t.Errorf("FromGregorian(%s, %d) = %+v, want %+v",
					tt.date.Format("2006-01-02"), tt.offset, got, tt.want)
			}
		})
	}
}

func TestFromGregorian_UsesCalendarDayOfLocation(t *testing.T) {
	// 00:30 on 2 Jan in Yangon is still 1 Jan in UTC; the local calendar day wins.
	yangon := time.FixedZone("MMT", 6*3600+1800)
	got := FromGregorian(time.Date(2024, 1, 2, 0, 30, 0, 0, yangon), 0)
	if got != (Date{20, 6, 1445}) {
		t.Errorf("got %+v, want 20 Jumada al-Akhirah 1445", got)
	}
}

func TestFromGregorian_ContinuousSequence(t *testing.T) {
	prev := FromGregorian(gdate(1950, time.January, 1), 0)
	for d := gdate(1950, time.January, 2); d.Year() < 2080; d = d.AddDate(0, 0, 1) {
		cur := FromGregorian(d, 0)

		if cur.Day < 1 || cur.Day > 30 || cur.Month < 1 || cur.Month > 12 {
			t.Fatalf("%s: out-of-range date %+v", d.Format("2006-01-02"), cur)
		}

		next := cur.Day == prev.Day+1 && cur.Month == prev.Month && cur.Year == prev.Year
		newMonth := cur.Day == 1 && cur.Month == prev.Month+1 && cur.Year == prev.Year
		newYear := cur.Day == 1 && cur.Month == 1 && prev.Month == 12 && cur.Year == prev.Year+1
		if !next && !newMonth && !newYear {
			t.Fatalf("%s: %+v does not follow %+v", d.Format("2006-01-02"), cur, prev)
		}
		if (newMonth || newYear) && prev.Day < 29 {
			t.Fatalf("%s: month ended after %d days", d.Format("2006-01-02"), prev.Day)
		}
		prev = cur
	}
}

func TestDate_String(t *testing.T) {
	d := Date{Day: 19, Month: 6, Year: 1445}
	if got := d.String(); got != "19 Jumada al-Akhirah 1445 AH" {
		t.Errorf("String() = %q", got)
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(1) != "Muharram" || MonthName(9) != "Ramadan" || MonthName(12) != "Dhu al-Hijjah" {
		t.Error("unexpected month names")
	}
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Error("out-of-range months should have no name")
	}
}

func TestDate_IsRamadan(t *testing.T) {
	if !(Date{Day: 5, Month: 9, Year: 1445}).IsRamadan() {
		t.Error("month 9 should be Ramadan")
	}
	if (Date{Day: 5, Month: 10, Year: 1445}).IsRamadan() {
		t.Error("month 10 is not Ramadan")
	}
}
