package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/display"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the city presets",
		Long: "Print the built-in city presets usable with --city, plus any from\n" +
			"--cities-file (or the cities_file config key).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(effectiveConfig(cmd))
			if err != nil {
				return err
			}
			list := catalog.List()

			out := cmd.OutOrStdout()
			if FlagJSON {
				return writeJSON(out, list)
			}

			tbl := display.NewTable([]string{"Slug", "Name", "Latitude", "Longitude", "UTC"})
			for _, c := range list {
				tbl.AddRow([]string{
					c.Slug,
					c.Name,
					fmt.Sprintf("%.4f", c.Latitude),
					fmt.Sprintf("%.4f", c.Longitude),
					fmt.Sprintf("%+g", c.Timezone),
				})
			}
			fmt.Fprint(out, tbl.Render())
			return nil
		},
	}
}
