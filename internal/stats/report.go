// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/store"
)

// Report contains precomputed data for dashboard rendering.
type Report struct {
	Sessions      []model.PracticeSession
	Keys          []string
	DifficultyKey string
	TimeFrame     model.TimeFrame
	Metrics       model.AggregatedMetrics
}

// BuildReport loads the session history and aggregates the selected key and frame.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	sessions, err := st.ListSessions(ctx, store.SessionFilter{})
	if err != nil {
		return Report{}, err
	}
	return NewReport(sessions, cfg, now), nil
}

// NewReport aggregates an in-memory session snapshot.
func NewReport(sessions []model.PracticeSession, cfg model.StatsConfig, now time.Time) Report {
	frame := cfg.TimeFrame
	if frame == "" {
		frame = model.FrameWeek
	}
	keys := AvailableDifficultyKeys(sessions)
	key := SelectDifficultyKey(keys, cfg.DifficultyKey, cfg.CurrentKey)
	return Report{
		Sessions:      sessions,
		Keys:          keys,
		DifficultyKey: key,
		TimeFrame:     frame,
		Metrics:       AggregateAt(sessions, key, frame, now),
	}
}

// SelectDifficultyKey picks the requested key if recorded, then the key of the
// current settings, then the first recorded key. With no history the current
// key is returned so the dashboard can still name it.
func SelectDifficultyKey(keys []string, requested, current string) string {
	for _, candidate := range []string{requested, current} {
		if candidate == "" {
			continue
		}
		for _, key := range keys {
			if key == candidate {
				return candidate
			}
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return current
}

// NextKey returns the key after current in keys, cycling by delta.
func NextKey(keys []string, current string, delta int) string {
	if len(keys) == 0 {
		return current
	}
	idx := 0
	for i, key := range keys {
		if key == current {
			idx = i
			break
		}
	}
	idx = (idx + delta) % len(keys)
	if idx < 0 {
		idx += len(keys)
	}
	return keys[idx]
}
