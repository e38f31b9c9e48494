package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/hijri"
	"github.com/azanmm/prayer-times/internal/prayer"
)

func newHijriCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hijri",
		Short: "Show the Hijri date",
		Long: "Convert today (or --date) to the tabular Islamic calendar.\n\n" +
			"Today is taken at --timezone when given, otherwise in the system zone.\n" +
			"Use --hijri-offset to match a locally sighted calendar.",
		Args: cobra.NoArgs,
		RunE: runHijri,
	}
}

type hijriJSON struct {
	Gregorian string     `json:"gregorian"`
	Hijri     hijri.Date `json:"hijri"`
	MonthName string     `json:"month_name"`
	Text      string     `json:"text"`
	Event     string     `json:"event,omitempty"`
}

func runHijri(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	now := nowFunc()
	if cfg.Timezone != nil {
		now = now.In(prayer.FixedZone(*cfg.Timezone))
	}
	date := now
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "date") {
		d, err := time.Parse(dateLayout, FlagDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", FlagDate)
		}
		date = d
	}

	offset := cfg.HijriOffsetOrDefault(0)
	if offset < -prayer.MaxHijriOffset || offset > prayer.MaxHijriOffset {
		return fmt.Errorf("hijri offset %d out of range (must be within ±%d)", offset, prayer.MaxHijriOffset)
	}

	d := hijri.FromGregorian(date, offset)
	event, hasEvent := hijri.EventFor(d)

	out := cmd.OutOrStdout()
	if FlagJSON {
		v := hijriJSON{
			Gregorian: date.Format(dateLayout),
			Hijri:     d,
			MonthName: d.MonthName(),
			Text:      d.String(),
		}
		if hasEvent {
			v.Event = event.Title()
		}
		return writeJSON(out, v)
	}

	fmt.Fprintf(out, "%s  %s\n", date.Format("Mon 02 Jan 2006"), display.Bold(d.String()))
	if hasEvent {
		fmt.Fprintln(out, display.Yellow(event.Title()))
	}
	return nil
}

func newEventsCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the Islamic occasions",
		Long:  "Print the table of Islamic occasions by Hijri date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := 0
			if month != "" {
				n, err := strconv.Atoi(month)
				if err != nil || n < 1 || n > 12 {
					return fmt.Errorf("invalid --month %q: must be 1-12", month)
				}
				m = n
			}
			return runEvents(cmd, m)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Only show occasions in this Hijri month (1-12)")
	return cmd
}

type eventJSON struct {
	hijri.Event
	Title     string `json:"title"`
	MonthName string `json:"month_name"`
}

func runEvents(cmd *cobra.Command, month int) error {
	var list []hijri.Event
	for _, e := range hijri.Events() {
		if month == 0 || e.Month == month {
			list = append(list, e)
		}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		v := make([]eventJSON, 0, len(list))
		for _, e := range list {
			v = append(v, eventJSON{Event: e, Title: e.Title(), MonthName: hijri.MonthName(e.Month)})
		}
		return writeJSON(out, v)
	}

	if len(list) == 0 {
		fmt.Fprintf(out, "No occasions in %s.\n", hijri.MonthName(month))
		return nil
	}

	tbl := display.NewTable([]string{"Date", "Occasion"})
	for _, e := range list {
		day := strconv.Itoa(e.Day)
		if e.Range > 1 {
			day = fmt.Sprintf("%d-%d", e.Day, e.Day+e.Range-1)
		}
		tbl.AddRow([]string{day + " " + hijri.MonthName(e.Month), e.Title()})
	}
	fmt.Fprint(out, tbl.Render())
	return nil
}
