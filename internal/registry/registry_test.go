package registry

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                        { return g.id }
func (g *stubGame) Title() string                     { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)          {}
func (g *stubGame) Step() core.StepResult             { return core.StepResult{} }
func (g *stubGame) Apply(core.Action) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)               {}
func (g *stubGame) State() core.GameState             { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	var gotEnv Env
	Register("zz_stub", func(env Env) Game {
		gotEnv = env
		return &stubGame{id: "zz_stub"}
	})

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub", Env{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, expected zz_stub", g.ID())
	}
	if gotEnv.Logger == nil {
		t.Error("Create should fill in a logger")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = true
			if info.Title != "Stub zz_stub" {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub zz_stub")
			}
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game", Env{}); err == nil {
		t.Error("Create of an unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func(Env) Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func(Env) Game { return &stubGame{id: "zz_dup"} })
}

func TestSeed(t *testing.T) {
	if Seed(42) != 42 {
		t.Error("non-zero seed should be kept")
	}
	if Seed(0) == 0 {
		t.Error("zero seed should be replaced")
	}
}
