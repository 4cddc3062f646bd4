// Package export writes the session history to an Excel workbook.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/stats"
)

// Sheet names.
const (
	SessionsSheet  = "Sessions"
	DashboardSheet = "Dashboard"
)

const cellTimeLayout = "2006-01-02 15:04:05"

var sessionHeaders = []any{
	"Completed", "Difficulty", "Range", "Operations", "Per page",
	"Problems", "Errors", "Duration (s)", "Clean sheet", "UID",
}

type styles struct {
	header int
	clean  int
	title  int
}

// Build creates a workbook with every session and the dashboard of difficultyKey.
func Build(sessions []model.PracticeSession, difficultyKey string, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		closeQuietly(f)
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SessionsSheet); err != nil {
		closeQuietly(f)
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSessions(f, st, sessions); err != nil {
		closeQuietly(f)
		return nil, err
	}
	if _, err := f.NewSheet(DashboardSheet); err != nil {
		closeQuietly(f)
		return nil, fmt.Errorf("create sheet %s: %w", DashboardSheet, err)
	}
	if err := writeDashboard(f, st, sessions, difficultyKey, now); err != nil {
		closeQuietly(f)
		return nil, err
	}
	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, sessions []model.PracticeSession, difficultyKey string, now time.Time) error {
	f, err := Build(sessions, difficultyKey, now)
	if err != nil {
		return err
	}
	defer closeQuietly(f)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	clean, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return styles{}, fmt.Errorf("clean sheet style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	if err != nil {
		return styles{}, fmt.Errorf("title style: %w", err)
	}
	return styles{header: header, clean: clean, title: title}, nil
}

func writeSessions(f *excelize.File, st styles, sessions []model.PracticeSession) error {
	if err := setRow(f, SessionsSheet, 1, sessionHeaders, st.header); err != nil {
		return err
	}
	for i, s := range sessions {
		row := i + 2
		values := []any{
			s.CompletedAt.Format(cellTimeLayout),
			s.DifficultyKey,
			s.CountingRange,
			strings.Join(s.Operations, " "),
			s.ExamplesPerPage,
			s.TotalProblems,
			s.ErrorCount,
			s.DurationSeconds,
			s.IsCleanSheet,
			s.UID,
		}
		style := 0
		if s.IsCleanSheet {
			style = st.clean
		}
		if err := setRow(f, SessionsSheet, row, values, style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SessionsSheet, "A", "A", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SessionsSheet, "J", "J", 38); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeDashboard(f *excelize.File, st styles, sessions []model.PracticeSession, difficultyKey string, now time.Time) error {
	row := 1
	title := []any{"Difficulty", stats.DisplayName(difficultyKey)}
	if err := setRow(f, DashboardSheet, row, title, st.title); err != nil {
		return err
	}
	row += 2
	for _, frame := range model.AllTimeFrames() {
		metrics := stats.AggregateAt(sessions, difficultyKey, frame, now)
		if err := setRow(f, DashboardSheet, row, []any{strings.ToUpper(string(frame))}, st.title); err != nil {
			return err
		}
		row++
		summary := [][]any{
			{"Sessions", metrics.TotalSessions},
			{"Average errors", metrics.AverageErrors},
			{"Average time (s)", metrics.AverageTime},
			{"Clean sheets", metrics.CleanSheetCount},
		}
		for _, values := range summary {
			if err := setRow(f, DashboardSheet, row, values, 0); err != nil {
				return err
			}
			row++
		}
		if metrics.TotalSessions > 0 {
			headers := []any{"Period", "Average errors", "Average time (s)", "Clean sheets"}
			if err := setRow(f, DashboardSheet, row, headers, st.header); err != nil {
				return err
			}
			row++
			for i, b := range metrics.ErrorChart {
				values := []any{b.Label, b.Value, metrics.TimeChart[i].Value, metrics.CleanSheetChart[i].Value}
				if err := setRow(f, DashboardSheet, row, values, 0); err != nil {
					return err
				}
				row++
			}
		}
		row++
	}
	if err := f.SetColWidth(DashboardSheet, "A", "D", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

// setRow writes values from column A of row and styles the written range.
func setRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	if style == 0 || len(values) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, start, end, style); err != nil {
		return fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
	return nil
}

func closeQuietly(f *excelize.File) {
	if err := f.Close(); err != nil {
		// Best-effort close; the workbook was already written or abandoned.
		_ = err
	}
}
