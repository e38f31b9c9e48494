package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: " + strings.Join(prayer.Names, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	name, ok := prayer.CanonicalName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.Names, ", "))
	}

	days := 1
	if flagQueryDays != "" {
		n, err := parseDays(flagQueryDays)
		if err != nil {
			return fmt.Errorf("invalid --days value: %w", err)
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

	if days == 1 {
		pt, _ := all[0].Get(name)
		if FlagJSON {
			return writeJSON(out, queryJSONSingle{
				Prayer:   strings.ToLower(name),
				Time:     s.timeString(pt),
				dateJSON: newDateJSON(all[0]),
			})
		}
		fmt.Fprintf(out, "%s %s\n", name, s.timeString(pt))
		return nil
	}

	if FlagJSON {
		multi := queryJSONMulti{Location: s.locationJSON(), Prayer: strings.ToLower(name)}
		for _, t := range all {
			pt, _ := t.Get(name)
			multi.Days = append(multi.Days, queryJSONDay{dateJSON: newDateJSON(t), Time: s.timeString(pt)})
		}
		return writeJSON(out, multi)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("%s Times, %d Days", name, days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s (%s)\n", s.loc.Name, s.zone)
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{"Date", name})
	for i, t := range all {
		pt, _ := t.Get(name)
		tbl.AddRow([]string{dayLabel(t.Date), s.timeString(pt)})
		if s.today(t) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	dateJSON
}

type queryJSONMulti struct {
	Location locationJSON   `json:"location"`
	Prayer   string         `json:"prayer"`
	Days     []queryJSONDay `json:"days"`
}

type queryJSONDay struct {
	dateJSON
	Time string `json:"time"`
}
