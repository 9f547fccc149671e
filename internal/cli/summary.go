package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/waybill-match/internal/engine"
	"github.com/Veraticus/waybill-match/internal/model"
)

// RenderSummary renders the end-of-run box printed after a workbook is written.
func RenderSummary(result *engine.Result, output string) string {
	s := result.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Output:"), output)
	fmt.Fprintf(&b, "%s %d sales, %d waybills\n", BoldStyle.Render("Input:"), s.SourceRecords, s.ReferenceRecords)
	fmt.Fprintf(&b, "%s %d\n", BoldStyle.Render("Rows:"), s.Rows)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Matched:"),
		SuccessStyle.Render(fmt.Sprintf("%d (%.1f%%)", s.Matched, 100*s.MatchRate())))
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Unmatched:"), unmatchedStyle(s.Unmatched).Render(fmt.Sprint(s.Unmatched)))

	if len(s.Periods) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Periods") + "\n")
		for _, p := range s.Periods {
			fmt.Fprintf(&b, "  %s  %4d rows  %4d matched\n", p.Period, p.Rows, p.Matched)
		}
		if s.Undated > 0 {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d sales without a readable date were skipped", s.Undated)) + "\n")
		}
	}

	if s.Labels.Total() > 0 {
		b.WriteString("\n" + BoldStyle.Render("Classification") + "\n")
		for _, l := range model.Labels() {
			fmt.Fprintf(&b, "  %-10s %4d\n", l, s.Labels[l])
		}
	}

	b.WriteString("\n" + SubtleStyle.Render("Finished in "+s.Duration.Round(time.Millisecond).String()))

	return RenderBox(ChartIcon+" Reconciliation "+string(result.Mode), b.String())
}

func unmatchedStyle(n int) lipgloss.Style {
	if n == 0 {
		return SuccessStyle
	}
	return WarningStyle
}

// RenderHistory renders archived runs as a table, newest first.
func RenderHistory(runs []model.Run) string {
	if len(runs) == 0 {
		return FormatInfo("No runs archived yet.")
	}

	headers := []string{"ID", "Started", "Mode", "Rows", "Matched", "Threshold", "Output"}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			runScope(r),
			fmt.Sprint(r.Rows),
			fmt.Sprintf("%d (%.0f%%)", r.Matched, rate(r.Matched, r.Rows)),
			fmt.Sprintf("%.2f", r.Threshold),
			r.OutputFile,
		}
	}
	return renderTable(headers, rows)
}

// RenderRunDetail renders one archived run and its unmatched keys.
func RenderRunDetail(run *model.Run, rows []model.RunRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("ID:"), run.ID)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Started:"), run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Sales:"), run.SalesFile)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Waybills:"), run.WaybillsFile)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Output:"), run.OutputFile)
	fmt.Fprintf(&b, "%s %d of %d matched\n", BoldStyle.Render("Rows:"), run.Matched, run.Rows)

	var unmatched []string
	for _, r := range rows {
		if r.Recipient == nil {
			unmatched = append(unmatched, r.Key)
		}
	}
	if len(unmatched) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Unmatched") + "\n")
		for _, k := range unmatched {
			b.WriteString("  " + k + "\n")
		}
	}
	return RenderBox(ChartIcon+" Run "+shortID(run.ID), strings.TrimRight(b.String(), "\n"))
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)) + "\n")
	for _, row := range rows {
		for i, cell := range row {
			cells[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

func runScope(r model.Run) string {
	if r.Sheet != "" {
		return r.Mode + " " + r.Sheet
	}
	if len(r.Periods) > 0 {
		return r.Mode + " " + strings.Join(r.Periods, ",")
	}
	return r.Mode
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
