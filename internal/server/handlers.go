package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azanmm/prayer-times/internal/cities"
	"github.com/azanmm/prayer-times/internal/hijri"
	"github.com/azanmm/prayer-times/internal/prayer"
)

const dateLayout = "2006-01-02"

type locationJSON struct {
	Slug      string  `json:"slug,omitempty"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  float64 `json:"timezone"`
}

type dayJSON struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	prayer.Times
	HijriText  string `json:"hijri_text"`
	EventTitle string `json:"event_title,omitempty"`
}

func newDayJSON(t prayer.Times) dayJSON {
	d := dayJSON{
		Date:      t.Date.Format(dateLayout),
		Weekday:   t.Date.Weekday().String(),
		Times:     t,
		HijriText: t.Hijri.String(),
	}
	if t.Event != nil {
		d.EventTitle = t.Event.Title()
	}
	return d
}

type timesJSON struct {
	Location locationJSON `json:"location"`
	dayJSON
}

type calendarJSON struct {
	Location locationJSON `json:"location"`
	Days     []dayJSON    `json:"days"`
}

type hijriJSON struct {
	Gregorian string     `json:"gregorian"`
	Hijri     hijri.Date `json:"hijri"`
	MonthName string     `json:"month_name"`
	Text      string     `json:"text"`
	Event     *eventJSON `json:"event,omitempty"`
}

type eventJSON struct {
	hijri.Event
	Title     string `json:"title"`
	MonthName string `json:"month_name"`
}

func newEventJSON(e hijri.Event) eventJSON {
	return eventJSON{Event: e, Title: e.Title(), MonthName: hijri.MonthName(e.Month)}
}

type methodJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	FajrAngle   float64 `json:"fajr_angle"`
	IshaAngle   float64 `json:"isha_angle"`
	// IshaInterval is set for methods that place Isha a fixed time after Maghrib.
	IshaInterval string `json:"isha_interval,omitempty"`
}

// GET /api/v1/times
func (s *Server) times(c *gin.Context) (any, *Error) {
	p, loc, apiErr := s.params(c)
	if apiErr != nil {
		return nil, apiErr
	}
	t, err := prayer.Compute(p)
	if err != nil {
		return nil, badRequest(err.Error())
	}
	return timesJSON{Location: loc, dayJSON: newDayJSON(t)}, nil
}

// GET /api/v1/calendar
func (s *Server) calendar(c *gin.Context) (any, *Error) {
	p, loc, apiErr := s.params(c)
	if apiErr != nil {
		return nil, apiErr
	}
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxDays {
			return nil, badRequest(fmt.Sprintf("days must be between 1 and %d", MaxDays))
		}
		days = n
	}

	all, err := prayer.ComputeDays(p, days)
	if err != nil {
		return nil, badRequest(err.Error())
	}
	out := calendarJSON{Location: loc, Days: make([]dayJSON, len(all))}
	for i, t := range all {
		out.Days[i] = newDayJSON(t)
	}
	return out, nil
}

// GET /api/v1/hijri
func (s *Server) hijriDate(c *gin.Context) (any, *Error) {
	tz := s.defaults.UTCOffset
	if v := c.Query("tz"); v != "" {
		f, apiErr := parseFloat("tz", v)
		if apiErr != nil {
			return nil, apiErr
		}
		tz = f
	}
	if tz < -12 || tz > 14 {
		return nil, badRequest("tz must be between -12 and 14")
	}
	date, apiErr := s.date(c, tz)
	if apiErr != nil {
		return nil, apiErr
	}
	offset := s.defaults.HijriOffset
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < -prayer.MaxHijriOffset || n > prayer.MaxHijriOffset {
			return nil, badRequest(fmt.Sprintf("offset must be an integer within ±%d", prayer.MaxHijriOffset))
		}
		offset = n
	}

	d := hijri.FromGregorian(date, offset)
	out := hijriJSON{
		Gregorian: date.Format(dateLayout),
		Hijri:     d,
		MonthName: d.MonthName(),
		Text:      d.String(),
	}
	if e, ok := hijri.EventFor(d); ok {
		ev := newEventJSON(e)
		out.Event = &ev
	}
	return out, nil
}

// GET /api/v1/events
func (s *Server) events(c *gin.Context) (any, *Error) {
	all := hijri.Events()
	out := make([]eventJSON, len(all))
	for i, e := range all {
		out[i] = newEventJSON(e)
	}
	return out, nil
}

// GET /api/v1/events/lookup?day=&month=
func (s *Server) lookupEvent(c *gin.Context) (any, *Error) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil || day < 1 || day > 30 {
		return nil, badRequest("day must be an integer between 1 and 30")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return nil, badRequest("month must be an integer between 1 and 12")
	}
	e, ok := hijri.LookupEvent(day, month)
	if !ok {
		return nil, notFound(fmt.Sprintf("no event on %d %s", day, hijri.MonthName(month)))
	}
	return newEventJSON(e), nil
}

// GET /api/v1/cities
func (s *Server) listCities(c *gin.Context) (any, *Error) {
	return s.catalog.List(), nil
}

// GET /api/v1/cities/:slug
func (s *Server) getCity(c *gin.Context) (any, *Error) {
	city, ok := s.catalog.Lookup(c.Param("slug"))
	if !ok {
		return nil, notFound(fmt.Sprintf("unknown city %q", c.Param("slug")))
	}
	return city, nil
}

// GET /api/v1/methods
func (s *Server) methods(c *gin.Context) (any, *Error) {
	out := make([]methodJSON, 0, len(prayer.Methods))
	for _, m := range prayer.Methods {
		a := m.Angles()
		mj := methodJSON{
			Name:        m.String(),
			Description: m.Description(),
			FajrAngle:   a.Fajr,
			IshaAngle:   a.Isha,
		}
		if m == prayer.UmmAlQura {
			mj.IshaInterval = "90m after Maghrib, 120m in Ramadan"
		}
		out = append(out, mj)
	}
	return out, nil
}

// params builds calculation parameters from the query string on top of the
// server defaults. The location comes from ?city= or ?lat=&lng=&tz=.
func (s *Server) params(c *gin.Context) (prayer.Params, locationJSON, *Error) {
	p := s.defaults

	loc, apiErr := s.location(c)
	if apiErr != nil {
		return p, loc, apiErr
	}
	p.Latitude, p.Longitude, p.UTCOffset = loc.Latitude, loc.Longitude, loc.Timezone

	date, apiErr := s.date(c, loc.Timezone)
	if apiErr != nil {
		return p, loc, apiErr
	}
	p.Date = date

	if v := c.Query("method"); v != "" {
		m, err := prayer.ParseMethod(v)
		if err != nil {
			return p, loc, badRequest(err.Error())
		}
		p.Method = m
	}
	if v := c.Query("asr_school"); v != "" {
		school, err := prayer.ParseAsrSchool(v)
		if err != nil {
			return p, loc, badRequest(err.Error())
		}
		p.AsrSchool = school
	}
	if v := c.Query("high_lat_rule"); v != "" {
		r, err := prayer.ParseHighLatitudeRule(v)
		if err != nil {
			return p, loc, badRequest(err.Error())
		}
		p.HighLatitudeRule = r
	}
	if p.Method == prayer.Custom {
		if p.CustomAngles == (prayer.Angles{}) {
			p.CustomAngles = prayer.Custom.Angles()
		}
		for key, dst := range map[string]*float64{"fajr_angle": &p.CustomAngles.Fajr, "isha_angle": &p.CustomAngles.Isha} {
			if v := c.Query(key); v != "" {
				f, apiErr := parseFloat(key, v)
				if apiErr != nil {
					return p, loc, apiErr
				}
				*dst = f
			}
		}
	}
	if v := c.Query("hijri_offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, loc, badRequest("hijri_offset must be an integer")
		}
		p.HijriOffset = n
	}
	for _, name := range prayer.Names {
		key := "offset_" + strings.ToLower(name)
		if v := c.Query(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, loc, badRequest(key + " must be an integer number of minutes")
			}
			if err := p.Offsets.Set(name, n); err != nil {
				return p, loc, badRequest(err.Error())
			}
		}
	}

	if err := p.Validate(); err != nil {
		return p, loc, badRequest(err.Error())
	}
	return p, loc, nil
}

func (s *Server) location(c *gin.Context) (locationJSON, *Error) {
	if slug := c.Query("city"); slug != "" {
		city, ok := s.catalog.Lookup(slug)
		if !ok {
			return locationJSON{}, notFound(fmt.Sprintf("unknown city %q", slug))
		}
		return cityJSON(city), nil
	}

	lat, lng, tz := c.Query("lat"), c.Query("lng"), c.Query("tz")
	if lat == "" || lng == "" || tz == "" {
		return locationJSON{}, badRequest("either city or lat, lng and tz are required")
	}
	var loc locationJSON
	var apiErr *Error
	if loc.Latitude, apiErr = parseFloat("lat", lat); apiErr != nil {
		return loc, apiErr
	}
	if loc.Longitude, apiErr = parseFloat("lng", lng); apiErr != nil {
		return loc, apiErr
	}
	if loc.Timezone, apiErr = parseFloat("tz", tz); apiErr != nil {
		return loc, apiErr
	}
	loc.Name = fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
	return loc, nil
}

func cityJSON(c cities.City) locationJSON {
	return locationJSON{
		Slug:      c.Slug,
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Timezone:  c.Timezone,
	}
}

// date reads ?date=YYYY-MM-DD, defaulting to today at the given UTC offset.
func (s *Server) date(c *gin.Context, tz float64) (time.Time, *Error) {
	v := c.Query("date")
	if v == "" {
		now := s.now().In(prayer.FixedZone(tz))
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, badRequest(fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", v))
	}
	return d, nil
}

func parseFloat(key, v string) (float64, *Error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, badRequest(fmt.Sprintf("%s must be a number", key))
	}
	return f, nil
}
