package cmd

import (
	"fmt"

	"github.com/theirongolddev/cfoot/internal/cli"
	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/survey"

	"github.com/spf13/cobra"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Show the emission factors in effect",
	Args:  cobra.NoArgs,
	RunE:  runFactors,
}

func init() {
	rootCmd.AddCommand(factorsCmd)
}

var categoryUnits = map[model.Category]string{
	model.CategoryTransport:   "kg CO₂/km",
	model.CategoryElectricity: "kg CO₂/kWh",
	model.CategoryFood:        "kg CO₂/serving",
	model.CategoryShopping:    "kg CO₂/item",
}

func runFactors(_ *cobra.Command, _ []string) error {
	table, err := appCfg.FactorTable()
	if err != nil {
		return fmt.Errorf("building factor table: %w", err)
	}
	defaults := config.DefaultFactors()

	fmt.Println()
	fmt.Println(cli.RenderTitle("EMISSION FACTORS"))
	fmt.Println()

	for _, c := range model.Categories {
		fmt.Print(cli.RenderTable(factorTable(c, table, defaults)))
		fmt.Println()
	}
	fmt.Print(cli.RenderTable(dietTable(table, defaults)))
	fmt.Println()
	infof("  * overridden in %s\n\n", config.ConfigPath())
	return nil
}

func factorTable(c model.Category, table, defaults config.FactorTable) cli.Table {
	t := cli.Table{
		Title:   fmt.Sprintf("%s (%s)", c.Label(), categoryUnits[c]),
		Headers: []string{"Subtype", "Factor", ""},
	}
	for _, sub := range table.Subtypes(c) {
		v, _ := table.Lookup(c, sub)
		def, known := defaults.Lookup(c, sub)
		t.Rows = append(t.Rows, []string{survey.Label(sub), cli.FormatFactor(v), overrideMark(v, def, known)})
	}
	return t
}

func dietTable(table, defaults config.FactorTable) cli.Table {
	t := cli.Table{
		Title:   "Diet (kg CO₂/day)",
		Headers: []string{"Diet", "Daily", ""},
	}
	for _, class := range table.DietClasses() {
		v, _ := table.DietDaily(class)
		def, known := defaults.DietDaily(class)
		t.Rows = append(t.Rows, []string{survey.Label(class), cli.FormatFactor(v), overrideMark(v, def, known)})
	}
	return t
}

func overrideMark(v, def float64, known bool) string {
	if !known || v != def {
		return "*"
	}
	return ""
}
