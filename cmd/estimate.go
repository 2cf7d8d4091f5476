package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/cfoot/internal/cli"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/greenops"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/survey"
	"github.com/theirongolddev/cfoot/internal/tui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagPlain      bool
	flagSave       bool
	flagNoChart    bool
	flagAskProfile bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Interactive footprint interview (default command)",
	RunE:  runEstimate,
}

func init() {
	addEstimateFlags(estimateCmd)
	rootCmd.AddCommand(estimateCmd)
}

func addEstimateFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagPlain, "plain", false, "Use line prompts instead of forms")
	c.Flags().BoolVar(&flagSave, "save", false, "Save the result to history without asking")
	c.Flags().BoolVar(&flagNoChart, "no-chart", false, "Skip the charts in the report")
	c.Flags().BoolVar(&flagAskProfile, "profile", false, "Ask for name, country and household even if configured")
}

func runEstimate(_ *cobra.Command, _ []string) error {
	table, err := appCfg.FactorTable()
	if err != nil {
		return fmt.Errorf("building factor table: %w", err)
	}

	interactive := isTerminal(os.Stdin)
	var asker survey.Asker
	if flagPlain || !interactive {
		asker = input.NewLinePrompter(os.Stdin, os.Stdout)
	} else {
		asker = tui.NewFormAsker(false)
	}

	profile := appCfg.UserProfile()
	askProfile := flagAskProfile || appCfg.Profile.Name == ""

	infof("\n  Answer a few questions about a typical month.\n\n")
	answers, err := survey.New(asker, table).Run(profile, askProfile)
	if errors.Is(err, tui.ErrAborted) {
		infof("  Cancelled.\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("interview: %w", err)
	}

	sess := estimator.New(table, answers.Profile)
	answers.Apply(sess)
	sum, err := sess.Finalize()
	if err != nil {
		return err
	}

	printReport(sum, time.Now())

	save := flagSave || appCfg.History.AutoSave
	if !save && interactive {
		save, err = asker.Confirm("Save this estimate to history?")
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, input.ErrNoInput) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if save {
		return saveRecord(sess.Snapshot(time.Now()))
	}
	return nil
}

func printReport(sum model.Summary, generated time.Time) {
	eq := equivalencies(sum.AnnualTotal)
	fmt.Print(cli.RenderSummary(sum, cli.ReportOptions{
		Generated:    generated,
		Charts:       !flagNoChart,
		Width:        terminalWidth(),
		Equivalency:  eq,
		ShowWarnings: true,
	}))
	fmt.Println()
}

// equivalencies converts annualKg into everyday equivalents. A failed
// conversion is logged and yields an empty result.
func equivalencies(annualKg float64) greenops.EquivalencyOutput {
	eq, err := greenops.Calculate(annualKg)
	if err != nil {
		log.Warn().Err(err).Float64("annual_kg", annualKg).Msg("skipping equivalencies")
	}
	return eq
}

func saveRecord(rec model.SessionRecord) error {
	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Append(rec); err != nil {
		return fmt.Errorf("saving estimate: %w", err)
	}
	infof("  Saved as %s\n", rec.ID)
	return nil
}
