package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/cfoot/internal/cli"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/history"
	"github.com/theirongolddev/cfoot/internal/input"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagExportFormat string
	flagExportOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and inspect saved estimates",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved estimates, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the report for one saved estimate (id prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all saved estimates as yaml or json",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var historyBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse saved estimates interactively",
	Args:  cobra.NoArgs,
	RunE:  runHistoryBrowse,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&flagHistoryLimit, "limit", "l", 0, "Only the most recent N estimates (0 = all)")
	historyExportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "yaml", "Export format: yaml or json")
	historyExportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Write to file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd, historyBrowseCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadHistory() ([]model.SessionRecord, error) {
	h, err := openHistory()
	if err != nil {
		return nil, err
	}
	defer h.Close()

	recs, err := h.List()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return limitRecords(recs, flagHistoryLimit), nil
}

// limitRecords keeps the last n records; n <= 0 keeps all.
func limitRecords(recs []model.SessionRecord, n int) []model.SessionRecord {
	if n <= 0 || n >= len(recs) {
		return recs
	}
	return recs[len(recs)-n:]
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	recs, err := loadHistory()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("\n  No saved estimates yet.")
		fmt.Println("  Run `cfoot estimate --save` or `cfoot calc --save` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVED ESTIMATES  %d", len(recs))))
	fmt.Println()
	fmt.Print(cli.RenderTable(historyTable(recs)))
	fmt.Println()
	infof("  %s\n\n", historyPath())
	return nil
}

func historyTable(recs []model.SessionRecord) cli.Table {
	t := cli.Table{
		Headers: []string{"ID", "Date", "Name", "Monthly", "Annual", "vs US avg"},
	}
	for _, r := range recs {
		cmp := estimator.Compare(r.AnnualTotal)
		t.Rows = append(t.Rows, []string{
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Profile.Name,
			cli.FormatKg(r.MonthlyTotal),
			cli.FormatTonnes(r.AnnualTotal),
			cli.FormatDeltaKg(cmp.DifferenceKg),
		})
	}
	return t
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	rec, err := h.Get(args[0])
	switch {
	case errors.Is(err, history.ErrNotFound):
		return fmt.Errorf("no saved estimate matches %q", args[0])
	case errors.Is(err, history.ErrAmbiguous):
		return fmt.Errorf("%q matches more than one estimate, use a longer prefix", args[0])
	case err != nil:
		return fmt.Errorf("reading history: %w", err)
	}

	sum, err := estimator.Summarize(rec.Profile, rec.Breakdown)
	if err != nil {
		return err
	}
	fmt.Printf("\n  %s\n", rec.ID)
	printReport(sum, rec.Timestamp.Local())
	return nil
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	format, err := input.ParseChoice(flagExportFormat, input.OptionsFromKeys([]string{"yaml", "json"}))
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}

	recs, err := loadHistory()
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []model.SessionRecord{}
	}

	w := cmd.OutOrStdout()
	if flagExportOutput != "" {
		f, err := os.Create(flagExportOutput)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := encode(w, format, recs); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if flagExportOutput != "" {
		infof("  Exported %d estimates to %s\n", len(recs), flagExportOutput)
	}
	return nil
}

func runHistoryBrowse(_ *cobra.Command, _ []string) error {
	recs, err := loadHistory()
	if err != nil {
		return err
	}
	return tui.RunBrowser(recs)
}
