package cmd

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/cfoot/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Profile]")
	if cfg.Profile.Name != "" {
		fmt.Printf("    Name:      %s\n", cfg.Profile.Name)
	} else {
		fmt.Println("    Name:      not set (asked on each estimate)")
	}
	if cfg.Profile.Country != "" {
		fmt.Printf("    Country:   %s\n", cfg.Profile.Country)
	}
	fmt.Printf("    Household: %d\n", cfg.UserProfile().HouseholdSize)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Database:  %s\n", historyPath())
	fmt.Printf("    Auto-save: %v\n", cfg.History.AutoSave)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level: %s\n", cfg.Logging.Level)
	fmt.Println()

	overrides := []struct {
		name string
		m    map[string]float64
	}{
		{"transport", cfg.Factors.Transport},
		{"electricity", cfg.Factors.Electricity},
		{"food", cfg.Factors.Food},
		{"shopping", cfg.Factors.Shopping},
		{"diet", cfg.Factors.Diets},
	}
	fmt.Println("  [Factors]")
	n := 0
	for _, o := range overrides {
		keys := make([]string, 0, len(o.m))
		for k := range o.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s.%s = %g\n", o.name, k, o.m[k])
			n++
		}
	}
	if n == 0 {
		fmt.Println("    No overrides (defaults in effect)")
	}
	fmt.Println()

	fmt.Println("  Run `cfoot setup` to reconfigure, `cfoot factors` for the full table.")
	return nil
}
