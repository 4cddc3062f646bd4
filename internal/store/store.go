// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuicount/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SessionFilter narrows ListSessions. Zero values disable a filter.
type SessionFilter struct {
	DifficultyKey string
	Since         *time.Time
}

// Store wraps SQLite access for practice sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uid TEXT NOT NULL UNIQUE,
			completed_at TEXT NOT NULL,
			duration_seconds REAL NOT NULL,
			error_count INTEGER NOT NULL,
			total_problems INTEGER NOT NULL,
			is_clean_sheet INTEGER NOT NULL,
			difficulty_key TEXT NOT NULL,
			counting_range INTEGER NOT NULL,
			operations TEXT NOT NULL,
			examples_per_page INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_difficulty_key ON sessions(difficulty_key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and returns its row id.
// The clean-sheet flag is always derived from the error count.
func (s *Store) InsertSession(ctx context.Context, session model.PracticeSession) (int64, error) {
	uid := session.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (uid, completed_at, duration_seconds, error_count, total_problems, is_clean_sheet, difficulty_key, counting_range, operations, examples_per_page)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid,
		formatTime(session.CompletedAt),
		session.DurationSeconds,
		session.ErrorCount,
		session.TotalProblems,
		session.ErrorCount == 0,
		session.DifficultyKey,
		session.CountingRange,
		strings.Join(session.Operations, ","),
		session.ExamplesPerPage,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns sessions ordered by completion time.
func (s *Store) ListSessions(ctx context.Context, filter SessionFilter) ([]model.PracticeSession, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.DifficultyKey != "" {
		clauses = append(clauses, "difficulty_key = ?")
		args = append(args, filter.DifficultyKey)
	}
	if filter.Since != nil {
		clauses = append(clauses, "completed_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	query := fmt.Sprintf(`SELECT id, uid, completed_at, duration_seconds, error_count, total_problems, is_clean_sheet, difficulty_key, counting_range, operations, examples_per_page
		FROM sessions
		WHERE %s
		ORDER BY completed_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.PracticeSession
	for rows.Next() {
		var session model.PracticeSession
		var completedAt, operations string
		if err := rows.Scan(
			&session.ID,
			&session.UID,
			&completedAt,
			&session.DurationSeconds,
			&session.ErrorCount,
			&session.TotalProblems,
			&session.IsCleanSheet,
			&session.DifficultyKey,
			&session.CountingRange,
			&operations,
			&session.ExamplesPerPage,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, completedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid completed_at %q: %w", completedAt, err)
		}
		session.CompletedAt = parsed.Local()
		session.Operations = splitOperations(operations)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListDifficultyKeys returns the distinct difficulty keys in sorted order.
func (s *Store) ListDifficultyKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT difficulty_key FROM sessions ORDER BY difficulty_key ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteSessions removes sessions for a difficulty key, or all sessions when
// the key is empty, and returns the number of removed rows.
func (s *Store) DeleteSessions(ctx context.Context, difficultyKey string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE (? = '' OR difficulty_key = ?)`, difficultyKey, difficultyKey)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func splitOperations(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
