package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/tuicount/internal/model"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func testSessions() []model.PracticeSession {
	return []model.PracticeSession{
		{UID: "a", CompletedAt: testNow.Add(-time.Hour), DurationSeconds: 40, ErrorCount: 0, TotalProblems: 5, IsCleanSheet: true, DifficultyKey: "20_+_5", CountingRange: 20, Operations: []string{"+"}, ExamplesPerPage: 5},
		{UID: "b", CompletedAt: testNow.Add(-30 * time.Minute), DurationSeconds: 55.5, ErrorCount: 2, TotalProblems: 5, DifficultyKey: "20_+_5", CountingRange: 20, Operations: []string{"+"}, ExamplesPerPage: 5},
		{UID: "c", CompletedAt: testNow.AddDate(0, -2, 0), DurationSeconds: 90, ErrorCount: 1, TotalProblems: 10, DifficultyKey: "100_+-_10", CountingRange: 100, Operations: []string{"+", "-"}, ExamplesPerPage: 10},
	}
}

func TestBuildSessionsSheet(t *testing.T) {
	f, err := Build(testSessions(), "20_+_5", testNow)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer closeQuietly(f)

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SessionsSheet || sheets[1] != DashboardSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(SessionsSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Completed" || rows[0][9] != "UID" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "2024-03-15 13:30:00" || rows[1][1] != "20_+_5" || rows[3][3] != "+ -" {
		t.Fatalf("unexpected rows %v", rows)
	}

	cleanStyle, err := f.GetCellStyle(SessionsSheet, "A2")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	plainStyle, err := f.GetCellStyle(SessionsSheet, "A3")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	if cleanStyle == 0 || plainStyle != 0 {
		t.Fatalf("expected only clean sheets highlighted, got %d and %d", cleanStyle, plainStyle)
	}
}

func TestBuildDashboardSheet(t *testing.T) {
	f, err := Build(testSessions(), "20_+_5", testNow)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer closeQuietly(f)

	rows, err := f.GetRows(DashboardSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if rows[0][0] != "Difficulty" || rows[0][1] != "To 20, +, 5/page" {
		t.Fatalf("unexpected title row %v", rows[0])
	}
	frames := map[string]bool{}
	for i, row := range rows {
		if len(row) == 1 && (row[0] == "DAY" || row[0] == "WEEK" || row[0] == "MONTH" || row[0] == "YEAR") {
			frames[row[0]] = true
			if got := rows[i+1]; got[0] != "Sessions" || got[1] != "2" {
				t.Fatalf("unexpected %s sessions row %v", row[0], got)
			}
		}
	}
	if len(frames) != 4 {
		t.Fatalf("expected a block per time frame, got %v", frames)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := WriteFile(path, testSessions(), "100_+-_10", testNow); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer closeQuietly(f)
	value, err := f.GetCellValue(DashboardSheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if value != "To 100, + -, 10/page" {
		t.Fatalf("unexpected dashboard title %q", value)
	}
}

func TestBuildEmptyHistory(t *testing.T) {
	f, err := Build(nil, "20_+_5", testNow)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer closeQuietly(f)
	rows, err := f.GetRows(SessionsSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
