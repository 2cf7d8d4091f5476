package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/cfoot/internal/greenops"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/tui/components"
)

// ReportOptions controls the optional parts of the summary report.
type ReportOptions struct {
	Generated    time.Time
	Charts       bool
	Width        int // chart width, defaults to 60
	Equivalency  greenops.EquivalencyOutput
	ShowWarnings bool
}

// RenderSummary renders the full footprint report: profile, monthly
// breakdown, totals, benchmark comparison, and optionally charts.
func RenderSummary(sum model.Summary, opts ReportOptions) string {
	s := currentStyles()
	width := opts.Width
	if width <= 0 {
		width = 60
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderTitle("CARBON FOOTPRINT REPORT"))
	b.WriteString("\n")
	if !opts.Generated.IsZero() {
		b.WriteString(s.muted.Render("  Generated " + opts.Generated.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(RenderTable(profileTable(sum.Profile)))
	b.WriteString("\n")
	b.WriteString(RenderTable(BreakdownTable(sum)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", s.muted.Render("Per capita:"),
		s.value.Render(FormatKg(sum.PerCapita)+" CO₂/year")))
	b.WriteString(fmt.Sprintf("  %s %s\n", s.muted.Render("Benchmark: "),
		s.value.Render(fmt.Sprintf("US average %s/year", FormatTonnes(sum.Comparison.BenchmarkKg)))))
	b.WriteString("  " + s.muted.Render("Comparison:") + " " + ComparisonLine(sum.Comparison) + "\n")

	if opts.Equivalency.DisplayText != "" && !opts.Equivalency.IsEmpty {
		b.WriteString("\n  " + s.dim.Render(opts.Equivalency.DisplayText) + "\n")
	}

	if opts.Charts {
		b.WriteString("\n")
		b.WriteString(indent(components.MetricCardRow([]components.Metric{
			{Label: "Monthly", Value: FormatKg(sum.MonthlyTotal), Note: "CO₂"},
			{Label: "Annual", Value: FormatTonnes(sum.AnnualTotal), Note: FormatKg(sum.AnnualTotal)},
			{Label: "Per capita", Value: FormatTonnes(sum.PerCapita), Note: "per year"},
		}, width), "  "))
		b.WriteString("\n")

		entries := sum.ChartData()
		if len(entries) > 0 {
			b.WriteString("\n")
			b.WriteString(indent(components.ContentCard("Proportional breakdown",
				components.ShareBars(entries, sum.MonthlyTotal, width-30), width), "  "))
			b.WriteString("\n")
			b.WriteString(indent(components.ContentCard("Monthly kg CO₂ by category",
				components.BarChart(entries, sum.MonthlyBenchmark, width-4, 12), width), "  "))
			b.WriteString("\n")
		}
		b.WriteString("\n  ")
		b.WriteString(components.BenchmarkGauge("vs benchmark", sum.AnnualTotal, sum.Comparison.BenchmarkKg, width-24))
		b.WriteString("\n")
	}

	if opts.ShowWarnings && (len(sum.Warnings) > 0 || sum.Unrecognized > 0) {
		b.WriteString("\n")
		for _, w := range sum.Warnings {
			b.WriteString(s.warn.Render("  ! "+w) + "\n")
		}
		if sum.Unrecognized > 0 {
			b.WriteString(s.warn.Render(fmt.Sprintf("  ! %d unrecognized entries counted as zero", sum.Unrecognized)) + "\n")
		}
	}

	return b.String()
}

func profileTable(p model.UserProfile) Table {
	name := p.Name
	if name == "" {
		name = "-"
	}
	country := p.Country
	if country == "" {
		country = "-"
	}
	return Table{
		Title: "Profile",
		Rows: [][]string{
			{"User", name},
			{"Country", country},
			{"Household size", fmt.Sprintf("%d", p.HouseholdSize)},
		},
	}
}

// BreakdownTable lists monthly kg CO₂ and share per category plus totals.
func BreakdownTable(sum model.Summary) Table {
	t := Table{
		Title:   "Monthly Breakdown (kg CO₂)",
		Headers: []string{"Category", "Monthly", "Share"},
	}
	for _, c := range model.Categories {
		v := sum.Breakdown.Get(c)
		share := "-"
		if sum.MonthlyTotal > 0 {
			share = FormatPercent(v / sum.MonthlyTotal)
		}
		t.Rows = append(t.Rows, []string{c.Label(), FormatKg(v), share})
	}
	t.Rows = append(t.Rows,
		[]string{"---"},
		[]string{"Total monthly", FormatKg(sum.MonthlyTotal), ""},
		[]string{"Annual total", FormatKg(sum.AnnualTotal), FormatTonnes(sum.AnnualTotal)},
	)
	return t
}

// ComparisonLine renders "Above the US average by 2,000 kg" colored by
// direction.
func ComparisonLine(c model.Comparison) string {
	s := currentStyles()
	diff := FormatNumber(int64(math.Round(math.Abs(c.DifferenceKg)))) + " kg"
	switch c.Direction {
	case model.DirectionAbove:
		return s.bad.Render("Above the US average by " + diff)
	case model.DirectionBelow:
		return s.good.Render("Below the US average by " + diff)
	default:
		return s.value.Render("Equal to the US average")
	}
}

func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
