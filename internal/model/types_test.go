package model

import (
	"testing"
	"time"
)

func TestDifficultyKey(t *testing.T) {
	cases := []struct {
		settings Settings
		want     string
	}{
		{Settings{CountingRange: 20, Operations: []Operation{OpAdd}, ExamplesPerPage: 5}, "20_+_5"},
		{Settings{CountingRange: 100, Operations: []Operation{OpSubtract, OpAdd}, ExamplesPerPage: 10}, "100_+-_10"},
		{Settings{CountingRange: 10, Operations: []Operation{OpDivide, OpMultiply, OpAdd, OpAdd}, ExamplesPerPage: 3}, "10_*+/_3"},
	}
	for _, tc := range cases {
		if got := tc.settings.DifficultyKey(); got != tc.want {
			t.Fatalf("DifficultyKey() = %q, want %q", got, tc.want)
		}
	}
}

func TestDifficultyKeyIgnoresOperationOrder(t *testing.T) {
	a := DifficultyKey(20, []Operation{OpAdd, OpSubtract}, 5)
	b := DifficultyKey(20, []Operation{OpSubtract, OpAdd}, 5)
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a == DifficultyKey(20, []Operation{OpAdd}, 5) {
		t.Fatalf("expected different operation sets to differ")
	}
}

func TestToggleOperationKeepsLast(t *testing.T) {
	s := Settings{Operations: []Operation{OpAdd}}
	s.ToggleOperation(OpAdd)
	if len(s.Operations) != 1 {
		t.Fatalf("expected last operation to stay, got %v", s.Operations)
	}
	s.ToggleOperation(OpDivide)
	if len(s.Operations) != 2 {
		t.Fatalf("expected divide to be added, got %v", s.Operations)
	}
	s.ToggleOperation(OpAdd)
	if len(s.Operations) != 1 || s.Operations[0] != OpDivide {
		t.Fatalf("expected only divide, got %v", s.Operations)
	}
}

func TestParseOperations(t *testing.T) {
	ops, err := ParseOperations("+, -+ *")
	if err != nil {
		t.Fatalf("ParseOperations failed: %v", err)
	}
	if len(ops) != 3 || ops[0] != OpAdd || ops[1] != OpSubtract || ops[2] != OpMultiply {
		t.Fatalf("unexpected operations: %v", ops)
	}
	if _, err := ParseOperations("+x"); err == nil {
		t.Fatalf("expected error for unknown symbol")
	}
}

func TestNewPracticeSessionCleanSheet(t *testing.T) {
	settings := Settings{CountingRange: 20, Operations: []Operation{OpAdd}, ExamplesPerPage: 5}
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	clean := NewPracticeSession(now, 42*time.Second, 0, 5, settings)
	if !clean.IsCleanSheet || clean.DifficultyKey != "20_+_5" || clean.DurationSeconds != 42 {
		t.Fatalf("unexpected session: %+v", clean)
	}
	dirty := NewPracticeSession(now, time.Second, 2, 5, settings)
	if dirty.IsCleanSheet {
		t.Fatalf("expected session with errors not to be a clean sheet")
	}
}

func TestParseTimeFrame(t *testing.T) {
	frame, err := ParseTimeFrame(" Week ")
	if err != nil || frame != FrameWeek {
		t.Fatalf("expected week, got %q (%v)", frame, err)
	}
	if _, err := ParseTimeFrame("decade"); err == nil {
		t.Fatalf("expected error for unknown frame")
	}
}

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	if err := settings.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if key := settings.DifficultyKey(); key != "20_+_5" {
		t.Fatalf("unexpected default key %q", key)
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"range", func(s *Settings) { s.CountingRange = 0 }},
		{"no ops", func(s *Settings) { s.Operations = nil }},
		{"bad op", func(s *Settings) { s.Operations = []Operation{"%"} }},
		{"per page low", func(s *Settings) { s.ExamplesPerPage = 0 }},
		{"per page high", func(s *Settings) { s.ExamplesPerPage = 11 }},
		{"deadline", func(s *Settings) { s.DeadlineSeconds = 301 }},
		{"negative deadline", func(s *Settings) { s.DeadlineSeconds = -1 }},
		{"theme", func(s *Settings) { s.Theme = "dragon" }},
		{"lang", func(s *Settings) { s.Lang = "de" }},
	}
	for _, tc := range cases {
		settings := DefaultSettings()
		tc.mutate(&settings)
		if err := settings.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
