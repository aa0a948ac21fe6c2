package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/autotheft/internal/config"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/storage"
)

func TestDifficultyModelSelect(t *testing.T) {
	m := NewDifficultyModel(80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(DifficultyModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(DifficultyModel)

	if cmd == nil {
		t.Error("selecting should quit the menu program")
	}
	if m.Selected() != config.DifficultyHard {
		t.Errorf("Selected() = %q, expected hard", m.Selected())
	}
}

func TestDifficultyModelBounds(t *testing.T) {
	m := NewDifficultyModel(80, 24)
	for i := 0; i < 10; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(DifficultyModel)
	}
	if m.Selected() != "" {
		t.Error("nothing is selected while choosing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(DifficultyModel).Selected(); got != config.DifficultyEasy {
		t.Errorf("Selected() = %q, expected easy", got)
	}
}

func TestDifficultyModelBack(t *testing.T) {
	m := NewDifficultyModel(80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(DifficultyModel).WantsBack() {
		t.Error("esc should go back")
	}
}

func TestMenuModelNavigation(t *testing.T) {
	m := MenuModel{
		items: []MenuItem{
			{GameID: "autotheft", Title: "Auto Theft", Timed: true},
			{GameID: "autotheft_free", Title: "Auto Theft (Free Roam)"},
		},
		keyMapper: NewKeyMapper(),
		config:    core.DefaultConfig(),
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().GameID != "autotheft_free" {
		t.Fatalf("Selected() = %+v", m.Selected())
	}

	tab, _ := MenuModel{keyMapper: NewKeyMapper()}.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !tab.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuViewShowsRecord(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.SaveScore("autotheft", 420); err != nil {
		t.Fatal(err)
	}

	m := MenuModel{
		items: []MenuItem{
			{GameID: "autotheft", Title: "Auto Theft", Timed: true},
			{GameID: "autotheft_free", Title: "Auto Theft (Free Roam)"},
		},
		width:     80,
		store:     store,
		keyMapper: NewKeyMapper(),
	}

	view := m.View()
	if !strings.Contains(view, "Best 420") {
		t.Errorf("timed mode should show its record:\n%s", view)
	}
	if !strings.Contains(view, m.items[0].Blurb()) {
		t.Error("view should describe the highlighted mode")
	}

	m.cursor = 1
	if strings.Contains(m.View(), "Best 420") {
		t.Error("free roam has no record")
	}
}
