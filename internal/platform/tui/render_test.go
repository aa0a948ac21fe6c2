package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/autotheft/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorHUD)
	s.DrawTextColored(2, 0, "cd", core.ColorAlert)
	s.SetColored(0, 1, '@', core.ColorPlayer)

	out := RenderScreen(s)

	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got)
	}
	for _, want := range []string{"ab", "cd", "@"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDim; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
