package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/prayer"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// maxDays caps multi-day output.
const maxDays = 366

// parseDays reads a day count, accepting "week" and "month" as shorthands.
func parseDays(v string) (int, error) {
	switch strings.ToLower(v) {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxDays {
		return 0, fmt.Errorf("invalid number of days: %q (must be 1-%d, 'week' or 'month')", v, maxDays)
	}
	return n, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	all, err := prayer.ComputeDays(s.params, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(out, s, all)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times, %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s (%s)\n", s.loc.Name, s.zone)
	fmt.Fprintln(out)

	headers := append([]string{"Date", "Hijri"}, s.selected...)
	tbl := display.NewTable(headers)

	for i, t := range all {
		row := []string{dayLabel(t.Date), fmt.Sprintf("%d %s", t.Hijri.Day, t.Hijri.MonthName())}
		for _, name := range s.selected {
			pt, _ := t.Get(name)
			row = append(row, s.timeString(pt))
		}
		tbl.AddRow(row)

		if s.today(t) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	printEventNotes(out, all)
	fmt.Fprintln(out)
	return nil
}

// printEventNotes lists the Islamic events that fall within the range.
func printEventNotes(w io.Writer, all []prayer.Times) {
	for _, t := range all {
		if t.Event != nil {
			fmt.Fprintf(w, "  %s  %s\n", dayLabel(t.Date), display.Yellow(t.Event.Title()))
		}
	}
}

// listJSON is the JSON structure for the list command.
type listJSON struct {
	Location locationJSON  `json:"location"`
	Days     []listJSONDay `json:"days"`
}

type listJSONDay struct {
	dateJSON
	Timings map[string]string `json:"timings"`
	Minutes map[string]int    `json:"minutes"`
}

func printListJSON(w io.Writer, s *session, all []prayer.Times) error {
	out := listJSON{Location: s.locationJSON()}
	for _, t := range all {
		timings, minutes := s.timingsMaps(t)
		out.Days = append(out.Days, listJSONDay{
			dateJSON: newDateJSON(t),
			Timings:  timings,
			Minutes:  minutes,
		})
	}
	return writeJSON(w, out)
}
