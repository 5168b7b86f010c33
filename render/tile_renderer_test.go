package render

import (
	"testing"

	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

func TestTileRendererProducesAgentColouredPixel(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Wall)
	cfg := world.Config{Grid: g, Starts: []world.StartSet{
		world.NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
	}}
	w := world.New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}

	frame := TileRenderer{}.Render(w)
	if frame.Height != 1 || frame.Width != 2 {
		t.Fatalf("frame dims = (%d, %d), want (1, 2)", frame.Height, frame.Width)
	}

	r, g2, b := frame.At(0, 0)
	want := agentPalette[0]
	if r != want[0] || g2 != want[1] || b != want[2] {
		t.Errorf("agent pixel = (%d, %d, %d), want %v", r, g2, b, want)
	}

	r, g2, b = frame.At(0, 1)
	wantWall := [3]byte{60, 60, 60}
	if r != wantWall[0] || g2 != wantWall[1] || b != wantWall[2] {
		t.Errorf("wall pixel = (%d, %d, %d), want %v", r, g2, b, wantWall)
	}
}

func TestTileRendererDoesNotDrawDeadAgents(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Void)
	cfg := world.Config{Grid: g, Starts: []world.StartSet{
		world.NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
	}}
	w := world.New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatal(err)
	}

	frame := TileRenderer{}.Render(w)
	r, g2, b := frame.At(0, 1)
	wantVoid := [3]byte{10, 10, 10}
	if r != wantVoid[0] || g2 != wantVoid[1] || b != wantVoid[2] {
		t.Errorf("dead agent's void cell = (%d, %d, %d), want base void colour %v", r, g2, b, wantVoid)
	}
}
