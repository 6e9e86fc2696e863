package registry

import (
	"testing"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string                                { return g.id }
func (g *stubGame) Title() string                             { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)                  {}
func (g *stubGame) Step(core.MultiInputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                       {}
func (g *stubGame) State() core.GameState                     { return core.GameState{} }

func stub(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test-b", stub("zz-test-b", "B"))
	Register("zz-test-a", stub("zz-test-a", "A"))

	if !Exists("zz-test-a") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz-test-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "B" {
		t.Errorf("Title() = %q, expected B", g.Title())
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz-test-a" || info.ID == "zz-test-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "zz-test-a" {
		t.Errorf("List() should be sorted by id, got %v", ids)
	}

	if _, err := Create("zz-missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-test-dup", stub("zz-test-dup", "Dup"))
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-test-dup", stub("zz-test-dup", "Dup"))
}

func TestReplaceOverrides(t *testing.T) {
	Register("zz-test-rep", stub("zz-test-rep", "Old"))
	Replace("zz-test-rep", stub("zz-test-rep", "New"))

	for _, info := range List() {
		if info.ID == "zz-test-rep" && info.Title != "New" {
			t.Errorf("title after Replace = %q", info.Title)
		}
	}
}
