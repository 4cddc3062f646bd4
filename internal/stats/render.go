package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tuicount/internal/model"
)

// Charts returns the error, time and clean-sheet charts of a metrics result.
func Charts(m model.AggregatedMetrics) []Chart {
	return []Chart{
		{Title: "Average errors", Buckets: m.ErrorChart, Format: "%.1f"},
		{Title: "Average time (s)", Buckets: m.TimeChart, Format: "%.1f"},
		{Title: "Clean sheets", Buckets: m.CleanSheetChart, Format: "%.0f"},
	}
}

// RenderReport prints the summary, the bucket table and the charts.
func RenderReport(w io.Writer, report Report, width int, useColor bool) error {
	if err := RenderSummary(w, report); err != nil {
		return err
	}
	if report.Metrics.TotalSessions == 0 {
		return nil
	}
	if err := RenderBucketTable(w, report.Metrics); err != nil {
		return err
	}
	return RenderCharts(w, report.Metrics, width, useColor)
}

// RenderSummary prints the selection and headline metrics.
func RenderSummary(w io.Writer, report Report) error {
	if _, err := fmt.Fprintf(w, "Difficulty: %s\n", DisplayName(report.DifficultyKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Period: %s\n", report.TimeFrame); err != nil {
		return err
	}
	m := report.Metrics
	if m.TotalSessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", m.TotalSessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg errors: %.2f\n", m.AverageErrors); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg time: %s\n", FormatSeconds(m.AverageTime)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Clean sheets: %d\n", m.CleanSheetCount); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBucketTable prints one row per bucket with all three series.
func RenderBucketTable(w io.Writer, m model.AggregatedMetrics) error {
	headers := []string{"Period", "Avg errors", "Avg time (s)", "Clean sheets"}
	rows := make([][]string, 0, len(m.ErrorChart))
	for i, b := range m.ErrorChart {
		row := []string{b.Label, fmt.Sprintf("%.2f", b.Value), "", ""}
		if i < len(m.TimeChart) {
			row[2] = fmt.Sprintf("%.1f", m.TimeChart[i].Value)
		}
		if i < len(m.CleanSheetChart) {
			row[3] = fmt.Sprintf("%.0f", m.CleanSheetChart[i].Value)
		}
		rows = append(rows, row)
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCharts prints the three bar charts sized to the total width.
func RenderCharts(w io.Writer, m model.AggregatedMetrics, width int, useColor bool) error {
	for i, chart := range Charts(m) {
		if err := PlotBarsWithColor(w, chart, width, i, useColor); err != nil {
			return err
		}
	}
	return nil
}

// FormatSeconds renders seconds as "m:ss".
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
