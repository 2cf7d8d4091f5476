package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// BarChart renders one vertical bar per entry, colored by category, with a
// y-axis and value labels. A positive ref draws a dashed reference line
// (e.g. the monthly benchmark). Entries must be positive; callers pass
// model.Summary.ChartData().
func BarChart(entries []model.Entry, ref float64, width, height int) string {
	if len(entries) == 0 {
		return ""
	}
	if height < 3 {
		height = 3
	}

	t := theme.Active

	maxVal := ref
	for _, e := range entries {
		if e.Value > maxVal {
			maxVal = e.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal / tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(entries)
	gap := 2
	chartW := width - yLabelW - 1
	barW := (chartW - gap*(n-1)) / n
	if barW > 12 {
		barW = 12
	}
	if barW < 3 {
		barW = 3
	}
	axisLen := n*barW + (n-1)*gap

	// Row index holding the reference line, 0 when none.
	refRow := 0
	if ref > 0 {
		refRow = int(math.Round(ref / ceiling * float64(chartH)))
		if refRow < 1 {
			refRow = 1
		}
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	refStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		empty := " "
		if row == refRow {
			empty = "┄"
		}

		for i, e := range entries {
			if i > 0 {
				b.WriteString(refStyle.Render(strings.Repeat(empty, gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(e.Category))
			switch {
			case e.Value >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case e.Value > rowBottom:
				frac := (e.Value - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(refStyle.Render(strings.Repeat(empty, barW)))
			}
		}
		if row == refRow {
			b.WriteString(refStyle.Render(" benchmark " + formatChartLabel(ref)))
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	pad := strings.Repeat(" ", yLabelW+1)

	var labels, values []string
	for _, e := range entries {
		labels = append(labels, centerIn(e.Category.Label(), barW))
		values = append(values, centerIn(fmt.Sprintf("%.0f", e.Value), barW))
	}
	sep := strings.Repeat(" ", gap)
	b.WriteString(pad + labelStyle.Render(strings.TrimRight(strings.Join(labels, sep), " ")))
	b.WriteString("\n")
	b.WriteString(pad + valueStyle.Render(strings.TrimRight(strings.Join(values, sep), " ")))

	return b.String()
}

// ShareBars renders each entry's share of total as a labelled horizontal
// bar, the terminal stand-in for a pie chart.
func ShareBars(entries []model.Entry, total float64, barWidth int) string {
	if len(entries) == 0 || total <= 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, e := range entries {
		if w := len(e.Category.Label()); w > labelW {
			labelW = w
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		share := e.Value / total
		filled := int(math.Round(share * float64(barWidth)))
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 0 {
			filled = 0
		}
		barStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(e.Category))
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, e.Category.Label()))+" "+
				barStyle.Render(strings.Repeat("█", filled))+
				emptyStyle.Render(strings.Repeat("░", barWidth-filled))+" "+
				pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100)))
	}
	return strings.Join(lines, "\n")
}

func centerIn(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
