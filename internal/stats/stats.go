// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/tuicount/internal/model"
)

type bucketRange struct {
	label string
	match func(time.Time) bool
}

type valueFunc func([]model.PracticeSession) float64

// Aggregate computes dashboard metrics relative to the current time.
func Aggregate(sessions []model.PracticeSession, difficultyKey string, frame model.TimeFrame) model.AggregatedMetrics {
	return AggregateAt(sessions, difficultyKey, frame, time.Now())
}

// AggregateAt filters sessions by key and time frame, averages them and buckets
// them for charting. Calendar math uses the location of now.
func AggregateAt(sessions []model.PracticeSession, difficultyKey string, frame model.TimeFrame, now time.Time) model.AggregatedMetrics {
	start := WindowStart(frame, now)
	filtered := make([]model.PracticeSession, 0, len(sessions))
	for _, s := range sessions {
		if s.DifficultyKey != difficultyKey {
			continue
		}
		if s.CompletedAt.Before(start) {
			continue
		}
		filtered = append(filtered, s)
	}
	if len(filtered) == 0 {
		return model.AggregatedMetrics{}
	}

	buckets := bucketRanges(frame, now)
	return model.AggregatedMetrics{
		AverageErrors:   meanErrors(filtered),
		AverageTime:     meanDuration(filtered),
		CleanSheetCount: countCleanSheets(filtered),
		TotalSessions:   len(filtered),
		ErrorChart:      bucketize(filtered, buckets, meanErrors),
		TimeChart:       bucketize(filtered, buckets, meanDuration),
		CleanSheetChart: bucketize(filtered, buckets, func(s []model.PracticeSession) float64 {
			return float64(countCleanSheets(s))
		}),
	}
}

// WindowStart returns the earliest completion time included for a time frame.
// Day and year are calendar aligned while week and month are rolling offsets.
func WindowStart(frame model.TimeFrame, now time.Time) time.Time {
	switch frame {
	case model.FrameDay:
		return startOfDay(now)
	case model.FrameWeek:
		return now.AddDate(0, 0, -7)
	case model.FrameMonth:
		return addMonths(now, -1)
	case model.FrameYear:
		return startOfYear(now)
	default:
		return startOfDay(now)
	}
}

func bucketize(sessions []model.PracticeSession, buckets []bucketRange, value valueFunc) []model.ChartBucket {
	out := make([]model.ChartBucket, 0, len(buckets))
	for _, b := range buckets {
		var in []model.PracticeSession
		for _, s := range sessions {
			if b.match(s.CompletedAt) {
				in = append(in, s)
			}
		}
		out = append(out, model.ChartBucket{Label: b.label, Value: value(in)})
	}
	return out
}

func bucketRanges(frame model.TimeFrame, now time.Time) []bucketRange {
	loc := now.Location()
	switch frame {
	case model.FrameWeek:
		out := make([]bucketRange, 0, 7)
		for i := 0; i < 7; i++ {
			day := now.AddDate(0, 0, -(6 - i))
			start := startOfDay(day)
			out = append(out, spanBucket(shortDayName(day), start, start.AddDate(0, 0, 1)))
		}
		return out
	case model.FrameMonth:
		out := make([]bucketRange, 0, 4)
		for i := 0; i < 4; i++ {
			start := now.AddDate(0, 0, -(4-i)*7)
			end := now.AddDate(0, 0, -(3-i)*7)
			if i == 3 {
				end = startOfDay(now).AddDate(0, 0, 1)
			}
			out = append(out, spanBucket(fmt.Sprintf("W%d", i+1), start, end))
		}
		return out
	case model.FrameYear:
		out := make([]bucketRange, 0, 12)
		current := startOfMonth(now)
		for i := 0; i < 12; i++ {
			start := current.AddDate(0, -(11 - i), 0)
			out = append(out, spanBucket(shortMonthName(start), start, start.AddDate(0, 1, 0)))
		}
		return out
	default:
		out := make([]bucketRange, 0, 6)
		for i := 0; i < 6; i++ {
			from, to := i*4, i*4+4
			out = append(out, bucketRange{
				label: fmt.Sprintf("%d-%d", from, to),
				match: func(t time.Time) bool {
					hour := t.In(loc).Hour()
					return hour >= from && hour < to
				},
			})
		}
		return out
	}
}

// spanBucket matches times in [start, end).
func spanBucket(label string, start, end time.Time) bucketRange {
	return bucketRange{
		label: label,
		match: func(t time.Time) bool {
			return !t.Before(start) && t.Before(end)
		},
	}
}

func meanErrors(sessions []model.PracticeSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.ErrorCount
	}
	return float64(total) / float64(len(sessions))
}

func meanDuration(sessions []model.PracticeSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += s.DurationSeconds
	}
	return total / float64(len(sessions))
}

func countCleanSheets(sessions []model.PracticeSession) int {
	count := 0
	for _, s := range sessions {
		if s.IsCleanSheet {
			count++
		}
	}
	return count
}

// AvailableDifficultyKeys returns the distinct difficulty keys in sorted order.
func AvailableDifficultyKeys(sessions []model.PracticeSession) []string {
	seen := map[string]struct{}{}
	keys := make([]string, 0)
	for _, s := range sessions {
		if _, ok := seen[s.DifficultyKey]; ok {
			continue
		}
		seen[s.DifficultyKey] = struct{}{}
		keys = append(keys, s.DifficultyKey)
	}
	sort.Strings(keys)
	return keys
}

// DisplayName renders a difficulty key such as "100_+-_10" as
// "To 100, + -, 10/page". Malformed keys are returned unchanged.
func DisplayName(difficultyKey string) string {
	countingRange, symbols, perPage, ok := model.SplitDifficultyKey(difficultyKey)
	if !ok {
		return difficultyKey
	}
	return fmt.Sprintf("To %s, %s, %s/page", countingRange, strings.Join(symbols, " "), perPage)
}
