// Package tui provides the interactive terminal front ends for cfoot:
// huh forms for the interview and setup, and a Bubble Tea history browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cfoot/internal/cli"
	"github.com/theirongolddev/cfoot/internal/estimator"
	"github.com/theirongolddev/cfoot/internal/model"
	"github.com/theirongolddev/cfoot/internal/tui/components"
	"github.com/theirongolddev/cfoot/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBrowserWidth = 60
	detailWidth     = 64
)

// Browser is the Bubble Tea model for browsing saved estimates.
type Browser struct {
	records []model.SessionRecord
	table   table.Model

	width      int
	height     int
	showDetail bool
}

// NewBrowser returns a browser over records, newest first.
func NewBrowser(records []model.SessionRecord) Browser {
	recs := make([]model.SessionRecord, len(records))
	for i, r := range records {
		recs[len(records)-1-i] = r
	}

	t := table.New(
		table.WithColumns(browserColumns()),
		table.WithRows(browserRows(recs)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	return Browser{records: recs, table: t}
}

// RunBrowser runs the browser full screen until the user quits.
func RunBrowser(records []model.SessionRecord) error {
	p := tea.NewProgram(NewBrowser(records), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func browserColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Date", Width: 16},
		{Title: "Name", Width: 12},
		{Title: "Monthly", Width: 11},
		{Title: "Annual", Width: 8},
		{Title: "vs avg", Width: 6},
	}
}

func browserRows(recs []model.SessionRecord) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		cmp := estimator.Compare(r.AnnualTotal)
		arrow := "="
		switch cmp.Direction {
		case model.DirectionAbove:
			arrow = "▲"
		case model.DirectionBelow:
			arrow = "▼"
		}
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			truncStr(r.Profile.Name, 12),
			cli.FormatKg(r.MonthlyTotal),
			cli.FormatTonnes(r.AnnualTotal),
			arrow,
		})
	}
	return rows
}

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.Border).
		Bold(true)
	return s
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		// header, status bar and padding
		h := msg.Height - 6
		if h < 3 {
			h = 3
		}
		b.table.SetHeight(h)
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return b, tea.Quit
		case "esc":
			if b.showDetail {
				b.showDetail = false
				return b, nil
			}
			return b, tea.Quit
		case "enter":
			if len(b.records) > 0 {
				b.showDetail = !b.showDetail
			}
			return b, nil
		}
	}

	if b.showDetail {
		return b, nil
	}
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// Selected returns the record under the cursor.
func (b Browser) Selected() (model.SessionRecord, bool) {
	i := b.table.Cursor()
	if i < 0 || i >= len(b.records) {
		return model.SessionRecord{}, false
	}
	return b.records[i], true
}

// View implements tea.Model.
func (b Browser) View() string {
	t := theme.Active
	if b.width > 0 && b.width < minBrowserWidth {
		return lipgloss.NewStyle().Foreground(t.Orange).
			Render(fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d)", b.width, minBrowserWidth))
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("  cfoot history"))
	s.WriteString(mutedStyle.Render(fmt.Sprintf("  %d saved estimates", len(b.records))))
	s.WriteString("\n\n")

	switch {
	case len(b.records) == 0:
		s.WriteString(mutedStyle.Render("  No saved estimates yet. Run `cfoot estimate --save`."))
	case b.showDetail:
		s.WriteString(b.viewDetail())
	default:
		s.WriteString(b.table.View())
	}
	s.WriteString("\n\n")

	hints := "[↑/↓] Move  [Enter] Details  [q] Quit"
	if b.showDetail {
		hints = "[Esc/Enter] Back  [q] Quit"
	}
	info := ""
	if rec, ok := b.Selected(); ok {
		info = rec.ID
	}
	width := b.width
	if width == 0 {
		width = detailWidth + 4
	}
	s.WriteString(components.RenderStatusBar(width, hints, info))
	return s.String()
}

func (b Browser) viewDetail() string {
	rec, ok := b.Selected()
	if !ok {
		return ""
	}
	sum, err := estimator.Summarize(rec.Profile, rec.Breakdown)
	if err != nil {
		return lipgloss.NewStyle().Foreground(theme.Active.Red).Render("  " + err.Error())
	}

	header := fmt.Sprintf("%s  %s, %s  household %d",
		rec.Timestamp.Local().Format("2006-01-02 15:04"),
		orDash(rec.Profile.Name), orDash(rec.Profile.Country), rec.Profile.HouseholdSize)

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Monthly", Value: cli.FormatKg(sum.MonthlyTotal)},
		{Label: "Annual", Value: cli.FormatTonnes(sum.AnnualTotal)},
		{Label: "Per capita", Value: cli.FormatTonnes(sum.PerCapita)},
	}, detailWidth)

	body := components.ShareBars(sum.ChartData(), sum.MonthlyTotal, detailWidth-28)
	if body == "" {
		body = lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("No emissions recorded")
	}

	return indentBlock(strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render(header),
		cards,
		components.ContentCard("Breakdown", body, detailWidth),
		components.BenchmarkGauge("vs benchmark", sum.AnnualTotal, sum.Comparison.BenchmarkKg, detailWidth-24),
		cli.ComparisonLine(sum.Comparison),
	}, "\n"), "  ")
}

func shortID(id string) string {
	return truncStr(id, 10)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
