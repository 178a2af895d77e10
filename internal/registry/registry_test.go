package registry

import (
	"testing"

	"github.com/vovakirdan/jumprope/internal/core"
)

type stubGame struct {
	settings Settings
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub Game" }
func (g *stubGame) Reset(core.RuntimeConfig, core.Host) error { return nil }
func (g *stubGame) HandleInput(core.InputFrame) {}
func (g *stubGame) Render(*core.DrawList) {}
func (g *stubGame) Surface() (float64, float64) { return 10, 10 }
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func(s Settings) Game { return &stubGame{settings: s} })

	if !Exists("stub") {
		t.Fatal("stub should be registered")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub" {
			found = true
			if info.Title != "Stub Game" {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub Game")
			}
		}
	}
	if !found {
		t.Error("List() should include stub")
	}

	g, err := Create("stub", Settings{Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(*stubGame).settings.Difficulty != "hard" {
		t.Error("Create() should pass settings to the factory")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("missing", Settings{}); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(Settings) Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup", func(Settings) Game { return &stubGame{} })
}
