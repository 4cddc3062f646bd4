// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/tuicount/internal/model"
)

type ansiColor struct {
	name string
	code string
}

const (
	minPlotWidth        = 10
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	fullBlock           = '█'
	emptyNote           = "No sessions in this period."
)

// partialBlocks[i] covers (i+1)/8 of a cell.
var partialBlocks = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

// Chart is a titled bucket series with a value format such as "%.1f".
type Chart struct {
	Title   string
	Buckets []model.ChartBucket
	Format  string
}

// PlotBars renders a horizontal bar chart. A width of 0 uses the terminal width.
func PlotBars(w io.Writer, chart Chart, width int) error {
	return plotBars(w, chart, width, -1, false)
}

// PlotBarsWithColor renders a bar chart with optional forced color output
// using the palette entry colorIdx.
func PlotBarsWithColor(w io.Writer, chart Chart, width, colorIdx int, forceColor bool) error {
	return plotBars(w, chart, width, colorIdx, forceColor)
}

func plotBars(w io.Writer, chart Chart, width, colorIdx int, forceColor bool) error {
	if chart.Title != "" {
		if _, err := fmt.Fprintln(w, chart.Title); err != nil {
			return err
		}
	}
	if len(chart.Buckets) == 0 {
		if _, err := fmt.Fprintln(w, emptyNote); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}
	format := chart.Format
	if format == "" {
		format = "%.1f"
	}

	labelWidth := 0
	valueWidth := 0
	maxVal := 0.0
	values := make([]string, len(chart.Buckets))
	for i, b := range chart.Buckets {
		if lw := displayWidth(b.Label); lw > labelWidth {
			labelWidth = lw
		}
		values[i] = fmt.Sprintf(format, b.Value)
		if vw := displayWidth(values[i]); vw > valueWidth {
			valueWidth = vw
		}
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := BarWidthFor(width, labelWidth, valueWidth)
	useColor := shouldUseColor(w, forceColor) && colorIdx >= 0

	for i, b := range chart.Buckets {
		bar := barString(b.Value, maxVal, barWidth)
		padded := bar + strings.Repeat(" ", barWidth-displayWidth(bar))
		if useColor && bar != "" {
			padded = colorPalette[colorIdx%len(colorPalette)].code + bar + colorReset + strings.Repeat(" ", barWidth-displayWidth(bar))
		}
		line := padCell(b.Label, labelWidth, false) + axisSeparator + padded + " " + padCell(values[i], valueWidth, true)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// BarWidthFor computes the bar area that fits next to labels and values
// within the total available width.
func BarWidthFor(totalWidth, labelWidth, valueWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	barWidth := totalWidth - labelWidth - displayWidth(axisSeparator) - 1 - valueWidth
	if barWidth < minPlotWidth {
		barWidth = minPlotWidth
	}
	return barWidth
}

func barString(value, maxVal float64, width int) string {
	if value <= 0 || maxVal <= 0 || width <= 0 {
		return ""
	}
	cells := value / maxVal * float64(width)
	full := int(cells)
	if full > width {
		full = width
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(string(fullBlock), full))
	if full < width {
		if eighths := int(math.Round((cells - float64(full)) * 8)); eighths > 0 {
			b.WriteRune(partialBlocks[eighths-1])
		}
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
