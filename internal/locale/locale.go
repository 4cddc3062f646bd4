// Package locale translates interface strings.
package locale

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tuicount/internal/model"
)

// Catalog resolves English source strings for one language.
type Catalog struct {
	lang    string
	entries map[string]string
}

// New returns the catalog for lang.
func New(lang string) (Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "en" {
		return Catalog{lang: lang}, nil
	}
	entries, ok := translations[lang]
	if !ok {
		return Catalog{}, fmt.Errorf("unsupported language %q", lang)
	}
	return Catalog{lang: lang, entries: entries}, nil
}

// Lang returns the language code.
func (c Catalog) Lang() string {
	if c.lang == "" {
		return "en"
	}
	return c.lang
}

// RightToLeft reports whether the language is written right to left.
func (c Catalog) RightToLeft() bool {
	return c.lang == "he"
}

// T translates key, falling back to the key itself.
func (c Catalog) T(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}

// Difficulty renders a difficulty key as "To 20, + -, 5 per page".
// Malformed keys are returned unchanged.
func (c Catalog) Difficulty(key string) string {
	countingRange, symbols, perPage, ok := model.SplitDifficultyKey(key)
	if !ok {
		return key
	}
	return fmt.Sprintf("%s %s, %s, %s %s", c.T("To"), countingRange, strings.Join(symbols, " "), perPage, c.T("per page"))
}

// Frame returns the tab title of a time frame.
func (c Catalog) Frame(frame model.TimeFrame) string {
	switch frame {
	case model.FrameDay:
		return c.T("Day")
	case model.FrameWeek:
		return c.T("Week")
	case model.FrameMonth:
		return c.T("Month")
	case model.FrameYear:
		return c.T("Year")
	default:
		return string(frame)
	}
}
