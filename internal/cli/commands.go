package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/cache"
	"github.com/azanmm/prayer-times/internal/config"
	"github.com/azanmm/prayer-times/internal/display"
	"github.com/azanmm/prayer-times/internal/prayer"
)

var flagResetCache bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-times config set city yangon\n  prayer-times config set method UmmAlQura\n  prayer-times config set asr_school standard\n  prayer-times config set offsets.fajr 3\n  prayer-times config set time_format 24h\n  prayer-times config set prayers Fajr,Zawal,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.\nWith --cache, also forget the last used location.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	}
	resetCmd.Flags().BoolVar(&flagResetCache, "cache", false, "Also clear the remembered location")
	cmd.AddCommand(resetCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
		}
		fmt.Fprintf(out, "  %-16s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	// Echo the stored form, which may be canonicalised.
	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file and, with --cache, the cached
// location. The cache directory is resolved before the config holding
// cache_dir is gone.
func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if flagResetCache {
		c, err := cache.New(effectiveConfig(cmd).CacheDir)
		if err != nil {
			return err
		}
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared remembered location in %s.\n", c.Dir())
	}

	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods and their twilight angles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tbl := display.NewTable([]string{"Name", "Fajr", "Isha", "Description"})
			for _, m := range prayer.Methods {
				a := m.Angles()
				isha := fmt.Sprintf("%g°", a.Isha)
				if m == prayer.UmmAlQura {
					isha = "90m"
				}
				tbl.AddRow([]string{m.String(), fmt.Sprintf("%g°", a.Fajr), isha, m.Description()})
			}

			fmt.Fprintln(out, "Supported calculation methods:")
			fmt.Fprintln(out)
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --method <name> to select a calculation method.")
			fmt.Fprintln(out, "UmmAlQura places Isha 90 minutes after Maghrib, 120 in Ramadan.")
			return nil
		},
	}
}
