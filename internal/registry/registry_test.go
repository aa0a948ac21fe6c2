package registry

import (
	"testing"

	"github.com/vovakirdan/autotheft/internal/core"
)

type stubGame struct {
	id    string
	score int
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.score = 0 }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{Score: g.score} }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.score++
	return core.StepResult{State: g.State()}
}

func TestRegisterCreateList(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") || Exists("stub_missing") {
		t.Error("Exists() reports the wrong registrations")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("Create returned %q", g.ID())
	}

	other, _ := Create("stub_a")
	g.Step(core.NewInputFrame())
	if other.State().Score != 0 {
		t.Error("Create should return independent instances")
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub_a" || info.ID == "stub_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "stub_a" {
		t.Errorf("List() order = %v, expected sorted ids", ids)
	}
}

type unscoredGame struct{ stubGame }

func (g *unscoredGame) Scored() bool { return false }

func TestLookupScored(t *testing.T) {
	Register("stub_scored", func() Game { return &stubGame{id: "stub_scored"} })
	Register("stub_unscored", func() Game { return &unscoredGame{stubGame{id: "stub_unscored"}} })

	tests := []struct {
		id     string
		found  bool
		scored bool
	}{
		{"stub_scored", true, true},
		{"stub_unscored", true, false},
		{"stub_nowhere", false, false},
	}

	for _, tc := range tests {
		info, ok := Lookup(tc.id)
		if ok != tc.found || info.Scored != tc.scored {
			t.Errorf("Lookup(%q) = %+v, %v; expected scored=%v, found=%v", tc.id, info, ok, tc.scored, tc.found)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same id twice should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
