package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuicount/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuicount.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testSession(key string, completedAt time.Time, errors int) model.PracticeSession {
	return model.PracticeSession{
		CompletedAt:     completedAt,
		DurationSeconds: 12.5,
		ErrorCount:      errors,
		TotalProblems:   5,
		IsCleanSheet:    errors == 0,
		DifficultyKey:   key,
		CountingRange:   20,
		Operations:      []string{"+", "-"},
		ExamplesPerPage: 5,
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	// Inserted out of order; listing sorts by completion time.
	if _, err := st.InsertSession(ctx, testSession("20_+-_5", base.Add(time.Hour), 2)); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if _, err := st.InsertSession(ctx, testSession("20_+-_5", base.Add(500*time.Millisecond), 0)); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if _, err := st.InsertSession(ctx, testSession("10_+_3", base, 1)); err != nil {
		t.Fatalf("insert session: %v", err)
	}

	all, err := st.ListSessions(ctx, SessionFilter{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CompletedAt.Before(all[i-1].CompletedAt) {
			t.Fatalf("sessions not ordered: %v before %v", all[i].CompletedAt, all[i-1].CompletedAt)
		}
	}
	first := all[0]
	if !first.CompletedAt.Equal(base) || first.DifficultyKey != "10_+_3" {
		t.Fatalf("unexpected first session: %+v", first)
	}
	if first.UID == "" {
		t.Fatalf("expected generated uid")
	}
	if len(first.Operations) != 2 || first.Operations[0] != "+" || first.Operations[1] != "-" {
		t.Fatalf("unexpected operations: %v", first.Operations)
	}
	if first.DurationSeconds != 12.5 || first.TotalProblems != 5 || first.ExamplesPerPage != 5 {
		t.Fatalf("unexpected fields: %+v", first)
	}
	if !all[1].IsCleanSheet || all[2].IsCleanSheet {
		t.Fatalf("unexpected clean-sheet flags: %v %v", all[1].IsCleanSheet, all[2].IsCleanSheet)
	}

	since := base.Add(time.Second)
	filtered, err := st.ListSessions(ctx, SessionFilter{DifficultyKey: "20_+-_5", Since: &since})
	if err != nil {
		t.Fatalf("list filtered sessions: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ErrorCount != 2 {
		t.Fatalf("unexpected filtered sessions: %+v", filtered)
	}
}

func TestInsertDerivesCleanSheet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	session := testSession("20_+_5", time.Now(), 3)
	session.IsCleanSheet = true
	if _, err := st.InsertSession(ctx, session); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	sessions, err := st.ListSessions(ctx, SessionFilter{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if sessions[0].IsCleanSheet {
		t.Fatalf("expected clean sheet to follow error count")
	}
}

func TestListDifficultyKeysAndDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	for _, key := range []string{"20_+_5", "100_+-_10", "20_+_5"} {
		if _, err := st.InsertSession(ctx, testSession(key, now, 0)); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
	keys, err := st.ListDifficultyKeys(ctx)
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "100_+-_10" || keys[1] != "20_+_5" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	removed, err := st.DeleteSessions(ctx, "20_+_5")
	if err != nil {
		t.Fatalf("delete sessions: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed sessions, got %d", removed)
	}
	removed, err = st.DeleteSessions(ctx, "")
	if err != nil {
		t.Fatalf("delete all sessions: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
}
