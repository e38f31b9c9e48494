package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThe output is a single line, suitable for status bars.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	// The countdown is always from now; another day has no next prayer.
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "date") {
		return fmt.Errorf("next does not take --date; use 'list' or 'query' for other days")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > all.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		if s.selected, err = prayer.ParseNames(flagPrayers); err != nil {
			return err
		}
	}

	next, err := s.nextPrayer()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, s.now, flagFormat, prayer.TimeLayout(s.clock)))
	return nil
}

// nextPrayer finds the first selected prayer after now, looking into the
// following days when today's have all passed. Two days ahead is enough
// unless every selected time is unreachable at this latitude.
func (s *session) nextPrayer() (*prayer.Prayer, error) {
	for offset := 0; offset <= 2; offset++ {
		times, err := s.compute(offset)
		if err != nil {
			return nil, err
		}
		if next := prayer.NextPrayer(times.Prayers(s.selected), s.now); next != nil {
			return next, nil
		}
	}
	return nil, fmt.Errorf("could not determine next prayer: the selected times are unreachable at this latitude")
}
