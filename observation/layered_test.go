package observation

import (
	"testing"

	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// buildTestWorld lays out a 2x3 grid: one agent, one gem, one exit, and a
// colour-0 source facing north whose beam lights the exit cell at (0, 2).
//
//	row0: S0 .  X
//	row1: .  G  L0N
func buildTestWorld(t *testing.T) *world.World {
	t.Helper()
	g := tile.NewGrid(2, 3)
	g.Set(tile.Position{Row: 0, Col: 2}, tile.Exit)
	g.Set(tile.Position{Row: 1, Col: 1}, tile.Gem)
	g.AddSource(tile.NewLaserSource(tile.Position{Row: 1, Col: 2}, 0, tile.North, 0))
	cfg := world.Config{Grid: g, Starts: []world.StartSet{
		world.NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
	}}
	w := world.New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestLayeredShapeFor(t *testing.T) {
	l := Layered{}
	shape := l.ShapeFor(2, 4, 5)
	// channels = 2*(nAgents+pad) + 4 = 2*2+4 = 8
	want := []int{8, 4, 5}
	for i, d := range want {
		if shape[i] != d {
			t.Errorf("ShapeFor()[%d] = %d, want %d", i, shape[i], d)
		}
	}
}

func TestLayeredObserveMarksAgentWallGemExit(t *testing.T) {
	w := buildTestWorld(t)
	l := Layered{}
	out := l.Observe(w)
	layout := layoutFor(1, 0)

	tn := out.Agent[0]
	if tn.At(layout.agentStart+0, 0, 0) != 1 {
		t.Error("expected agent channel lit at its start position")
	}
	if tn.At(layout.wall, 1, 2) != 1 {
		t.Error("expected the source's own cell marked on the wall channel")
	}
	if tn.At(layout.gem, 1, 1) != 1 {
		t.Error("expected an uncollected gem to light the gem channel")
	}
	if tn.At(layout.exit, 0, 2) != 1 {
		t.Error("expected the exit cell to light the exit channel")
	}
	if tn.At(layout.laserStart+0, 1, 2) != -1 {
		t.Error("expected the source cell itself marked -1 on its laser channel")
	}
	if tn.At(layout.laserStart+0, 0, 2) != 1 {
		t.Error("expected the beam to light (0, 2) on the laser channel")
	}
}

func TestLayeredGemChannelClearsOnceCollected(t *testing.T) {
	w := buildTestWorld(t)
	// Walk the agent onto the gem: (0,0) -> (1,0) -> (1,1).
	if _, err := w.Step([]tile.Action{tile.ActionSouth}); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatal(err)
	}
	l := Layered{}
	out := l.Observe(w)
	layout := layoutFor(1, 0)
	if out.Agent[0].At(layout.gem, 1, 1) != 0 {
		t.Error("expected the gem channel to clear once the gem is collected")
	}
}

func TestLayeredPaddedWidensAgentAndLaserGroups(t *testing.T) {
	plain := Layered{Pad: 0}.ShapeFor(1, 2, 3)
	padded := Layered{Pad: 2}.ShapeFor(1, 2, 3)
	if padded[0] <= plain[0] {
		t.Fatalf("padded channel count %d should exceed plain %d", padded[0], plain[0])
	}
}

func TestLayeredBroadcastsSameTensorAcrossAgents(t *testing.T) {
	g := tile.NewGrid(1, 2)
	cfg := world.Config{Grid: g, Starts: []world.StartSet{
		world.NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
		world.NewStartSet([]tile.Position{{Row: 0, Col: 1}}, nil),
	}}
	w := world.New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	out := Layered{}.Observe(w)
	if out.Agent[0] != out.Agent[1] {
		t.Error("Layered.Observe should broadcast the same tensor pointer to every agent")
	}
}
