package locale

import (
	"testing"

	"github.com/verte-zerg/tuicount/internal/model"
)

func TestEveryConfigurableLanguageLoads(t *testing.T) {
	for _, lang := range model.Languages {
		c, err := New(lang)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", lang, err)
		}
		if c.Lang() != lang {
			t.Fatalf("expected lang %q, got %q", lang, c.Lang())
		}
	}
	if _, err := New("de"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestTranslationsShareKeys(t *testing.T) {
	cs := translations["cs"]
	he := translations["he"]
	for key := range cs {
		if _, ok := he[key]; !ok {
			t.Fatalf("key %q missing from he", key)
		}
	}
	for key := range he {
		if _, ok := cs[key]; !ok {
			t.Fatalf("key %q missing from cs", key)
		}
	}
}

func TestTFallsBackToKey(t *testing.T) {
	c, err := New("cs")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := c.T("Time's up!"); got != "Čas vypršel!" {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := c.T("no such key"); got != "no such key" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := (Catalog{}).T("Start!"); got != "Start!" {
		t.Fatalf("expected zero catalog to fall back, got %q", got)
	}
}

func TestDifficulty(t *testing.T) {
	en, _ := New("en")
	if got := en.Difficulty("100_+-_10"); got != "To 100, + -, 10 per page" {
		t.Fatalf("unexpected english label %q", got)
	}
	cs, _ := New("cs")
	if got := cs.Difficulty("20_+_5"); got != "Do 20, +, 5 na stránku" {
		t.Fatalf("unexpected czech label %q", got)
	}
	if got := cs.Difficulty("bogus"); got != "bogus" {
		t.Fatalf("expected malformed key unchanged, got %q", got)
	}
}

func TestFrameAndDirection(t *testing.T) {
	he, _ := New("he")
	if !he.RightToLeft() {
		t.Fatalf("expected hebrew to be right to left")
	}
	if got := he.Frame(model.FrameWeek); got != "שבוע" {
		t.Fatalf("unexpected frame title %q", got)
	}
	en, _ := New("en")
	if en.RightToLeft() || en.Frame(model.FrameYear) != "Year" {
		t.Fatalf("unexpected english catalog behavior")
	}
}
