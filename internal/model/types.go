// Package model defines shared data structures.
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Operation is an arithmetic operation identified by its symbol.
type Operation string

// Supported operations.
const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
)

// AllOperations returns every supported operation in display order.
func AllOperations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// Symbol returns the operation symbol.
func (o Operation) Symbol() string {
	return string(o)
}

// Valid reports whether o is a supported operation.
func (o Operation) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// ParseOperations parses a symbol string such as "+-*" into operations.
// Whitespace and commas are ignored; duplicates are collapsed.
func ParseOperations(raw string) ([]Operation, error) {
	seen := map[Operation]struct{}{}
	var ops []Operation
	for _, r := range raw {
		if r == ',' || r == ' ' || r == '\t' {
			continue
		}
		op := Operation(string(r))
		if !op.Valid() {
			return nil, fmt.Errorf("unknown operation %q (use + - * /)", string(r))
		}
		if _, ok := seen[op]; ok {
			continue
		}
		seen[op] = struct{}{}
		ops = append(ops, op)
	}
	return ops, nil
}

// SortedSymbols returns the distinct symbols of ops in lexical order.
func SortedSymbols(ops []Operation) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		if _, ok := seen[op.Symbol()]; ok {
			continue
		}
		seen[op.Symbol()] = struct{}{}
		out = append(out, op.Symbol())
	}
	sort.Strings(out)
	return out
}

// Problem is a single generated exercise.
type Problem struct {
	Operand1      int
	Operand2      int
	Operation     Operation
	CorrectAnswer int
}

// String renders the problem as shown to the child, e.g. "3 + 4 =".
func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d =", p.Operand1, p.Operation.Symbol(), p.Operand2)
}

// Settings defines practice settings.
type Settings struct {
	CountingRange   int
	Operations      []Operation
	ExamplesPerPage int
	DeadlineSeconds int
	Theme           string
	Lang            string
}

// Setting bounds and choices.
const (
	MinExamplesPerPage = 1
	MaxExamplesPerPage = 10
	MaxDeadlineSeconds = 300
	DeadlineStep       = 10
)

// Themes lists the selectable theme names.
var Themes = []string{"dinosaur", "unicorn", "penguin"}

// Languages lists the supported interface languages.
var Languages = []string{"en", "cs", "he"}

// CountingRanges lists the ranges offered by the settings screen.
var CountingRanges = []int{10, 20, 100, 1000}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CountingRange:   20,
		Operations:      []Operation{OpAdd},
		ExamplesPerPage: 5,
		DeadlineSeconds: 60,
		Theme:           "dinosaur",
		Lang:            "en",
	}
}

// Validate reports the first invalid field of s.
func (s Settings) Validate() error {
	if s.CountingRange <= 0 {
		return fmt.Errorf("range must be > 0")
	}
	if len(s.Operations) == 0 {
		return fmt.Errorf("at least one operation is required")
	}
	for _, op := range s.Operations {
		if !op.Valid() {
			return fmt.Errorf("unknown operation %q (use + - * /)", op.Symbol())
		}
	}
	if s.ExamplesPerPage < MinExamplesPerPage || s.ExamplesPerPage > MaxExamplesPerPage {
		return fmt.Errorf("per-page must be between %d and %d", MinExamplesPerPage, MaxExamplesPerPage)
	}
	if s.DeadlineSeconds < 0 || s.DeadlineSeconds > MaxDeadlineSeconds {
		return fmt.Errorf("deadline must be between 0 and %d seconds", MaxDeadlineSeconds)
	}
	if !contains(Themes, s.Theme) {
		return fmt.Errorf("unknown theme %q (use %s)", s.Theme, strings.Join(Themes, ", "))
	}
	if !contains(Languages, s.Lang) {
		return fmt.Errorf("unknown language %q (use %s)", s.Lang, strings.Join(Languages, ", "))
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// DifficultyKey identifies the range, operation set and page size, e.g. "20_+_5".
func (s Settings) DifficultyKey() string {
	return DifficultyKey(s.CountingRange, s.Operations, s.ExamplesPerPage)
}

// ToggleOperation enables or disables op. The last enabled operation is never removed.
func (s *Settings) ToggleOperation(op Operation) {
	for i, existing := range s.Operations {
		if existing != op {
			continue
		}
		if len(s.Operations) > 1 {
			s.Operations = append(s.Operations[:i:i], s.Operations[i+1:]...)
		}
		return
	}
	s.Operations = append(s.Operations, op)
}

// DifficultyKey derives the key shared by sessions of comparable difficulty.
func DifficultyKey(countingRange int, ops []Operation, perPage int) string {
	return fmt.Sprintf("%d_%s_%d", countingRange, strings.Join(SortedSymbols(ops), ""), perPage)
}

// SplitDifficultyKey splits a key such as "100_+-_10" into its range,
// operation symbols and page size. ok is false for malformed keys.
func SplitDifficultyKey(key string) (countingRange string, symbols []string, perPage string, ok bool) {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	if len(parts) < 3 {
		return "", nil, "", false
	}
	for _, r := range parts[1] {
		symbols = append(symbols, string(r))
	}
	return parts[0], symbols, parts[2], true
}

// PracticeSession captures a completed practice page.
type PracticeSession struct {
	ID              int64
	UID             string
	CompletedAt     time.Time
	DurationSeconds float64
	ErrorCount      int
	TotalProblems   int
	IsCleanSheet    bool
	DifficultyKey   string
	CountingRange   int
	Operations      []string
	ExamplesPerPage int
}

// NewPracticeSession builds a session record from an attempt and a settings snapshot.
func NewPracticeSession(completedAt time.Time, duration time.Duration, errors, total int, settings Settings) PracticeSession {
	if errors < 0 {
		errors = 0
	}
	seconds := duration.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	return PracticeSession{
		CompletedAt:     completedAt,
		DurationSeconds: seconds,
		ErrorCount:      errors,
		TotalProblems:   total,
		IsCleanSheet:    errors == 0,
		DifficultyKey:   settings.DifficultyKey(),
		CountingRange:   settings.CountingRange,
		Operations:      SortedSymbols(settings.Operations),
		ExamplesPerPage: settings.ExamplesPerPage,
	}
}

// TimeFrame selects the history window and the chart bucket scheme.
type TimeFrame string

// Supported time frames.
const (
	FrameDay   TimeFrame = "day"
	FrameWeek  TimeFrame = "week"
	FrameMonth TimeFrame = "month"
	FrameYear  TimeFrame = "year"
)

// AllTimeFrames returns the time frames in tab order.
func AllTimeFrames() []TimeFrame {
	return []TimeFrame{FrameDay, FrameWeek, FrameMonth, FrameYear}
}

// ParseTimeFrame parses a time frame name, case-insensitively.
func ParseTimeFrame(raw string) (TimeFrame, error) {
	frame := TimeFrame(strings.ToLower(strings.TrimSpace(raw)))
	switch frame {
	case FrameDay, FrameWeek, FrameMonth, FrameYear:
		return frame, nil
	default:
		return "", fmt.Errorf("unknown time frame %q (use day, week, month or year)", raw)
	}
}

// ChartBucket is one labeled point of a chart series.
type ChartBucket struct {
	Label string
	Value float64
}

// AggregatedMetrics summarizes sessions for the dashboard.
type AggregatedMetrics struct {
	AverageErrors   float64
	AverageTime     float64
	CleanSheetCount int
	TotalSessions   int
	ErrorChart      []ChartBucket
	TimeChart       []ChartBucket
	CleanSheetChart []ChartBucket
}

// StatsConfig defines the dashboard selection.
type StatsConfig struct {
	DifficultyKey string
	CurrentKey    string
	TimeFrame     TimeFrame
}
