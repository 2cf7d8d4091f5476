package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/cfoot/internal/greenops"
	"github.com/theirongolddev/cfoot/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleSummary() model.Summary {
	b := model.Breakdown{Transport: 345.6, Electricity: 167.4, Food: 240, Shopping: 0}
	monthly := b.Total()
	annual := monthly * 12
	return model.Summary{
		Profile:      model.UserProfile{Name: "Ada", Country: "UK", HouseholdSize: 2},
		Breakdown:    b,
		MonthlyTotal: monthly,
		AnnualTotal:  annual,
		AnnualTonnes: annual / 1000,
		PerCapita:    annual / 2,
		Comparison: model.Comparison{
			BenchmarkKg:  16000,
			DifferenceKg: annual - 16000,
			Direction:    model.DirectionBelow,
		},
		MonthlyBenchmark: 16000.0 / 12,
		Warnings:         []string{"unknown shopping subtype \"yachts\""},
		Unrecognized:     1,
	}
}

func TestRenderSummary_Text(t *testing.T) {
	out := RenderSummary(sampleSummary(), ReportOptions{
		Generated:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		ShowWarnings: true,
	})

	for _, want := range []string{
		"CARBON FOOTPRINT REPORT",
		"Generated 2026-03-01 09:30",
		"Ada", "UK",
		"Transport", "345.6 kg",
		"Electricity", "167.4 kg",
		"Food", "240.0 kg",
		"Total monthly", "753.0 kg",
		"9,036 kg", "9.0 t",
		"Below the US average by 6,964 kg",
		"yachts",
		"1 unrecognized entries",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "█") {
		t.Error("charts rendered without Charts option")
	}
}

func TestRenderSummary_Charts(t *testing.T) {
	eq, err := greenops.Calculate(sampleSummary().AnnualTotal)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	out := RenderSummary(sampleSummary(), ReportOptions{Charts: true, Width: 70, Equivalency: eq})

	if !strings.Contains(out, "Proportional breakdown") {
		t.Error("missing share chart")
	}
	if !strings.Contains(out, "benchmark") {
		t.Error("missing benchmark reference line")
	}
	if !strings.Contains(out, "vs benchmark") {
		t.Error("missing gauge")
	}
	if !strings.Contains(out, "miles") {
		t.Error("missing equivalency text")
	}
	// Shopping is zero and must never reach the charts.
	chart := out[strings.Index(out, "Proportional breakdown"):]
	if strings.Contains(chart, "Shopping") {
		t.Error("zero category drawn in chart")
	}
}

func TestComparisonLine(t *testing.T) {
	tests := []struct {
		c    model.Comparison
		want string
	}{
		{model.Comparison{DifferenceKg: 2000, Direction: model.DirectionAbove}, "Above the US average by 2,000 kg"},
		{model.Comparison{DifferenceKg: -500.4, Direction: model.DirectionBelow}, "Below the US average by 500 kg"},
		{model.Comparison{Direction: model.DirectionEqual}, "Equal to the US average"},
	}
	for _, tt := range tests {
		if got := ComparisonLine(tt.c); got != tt.want {
			t.Errorf("ComparisonLine(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRenderTable_Separator(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "1"}, {"---"}, {"y", "2"}},
	})
	if got := strings.Count(out, "├"); got != 2 {
		t.Errorf("separator count = %d, want 2 (header + row)\n%s", got, out)
	}
}
