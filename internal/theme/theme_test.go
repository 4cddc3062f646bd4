package theme

import (
	"testing"

	"github.com/verte-zerg/tuicount/internal/model"
)

func TestEveryConfigurableThemeExists(t *testing.T) {
	for _, name := range model.Themes {
		th, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}
		if th.Name != name || th.Mascot == "" || th.Celebrate == "" {
			t.Fatalf("incomplete theme %+v", th)
		}
		if len(th.ChartColors()) != 3 {
			t.Fatalf("expected three chart colors for %q", name)
		}
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	th, err := Get(" Penguin ")
	if err != nil || th.Mascot != "🐧" {
		t.Fatalf("unexpected theme %+v err %v", th, err)
	}
}

func TestMustGetFallsBack(t *testing.T) {
	if _, err := Get("dragon"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if th := MustGet("dragon"); th.Name != "dinosaur" {
		t.Fatalf("expected dinosaur fallback, got %q", th.Name)
	}
}
