package beam

import (
	"testing"

	"github.com/samuelfneumann/lle/tile"
)

// buildGrid lays out a simple 1xcols corridor with a laser source at column 0
// facing East (colour 0), for exercising ray termination and blocking.
func buildGrid(t *testing.T, cols int, colour int) *tile.Grid {
	t.Helper()
	g := tile.NewGrid(1, cols)
	src := tile.NewLaserSource(tile.Position{Row: 0, Col: 0}, 0, tile.East, colour)
	g.AddSource(src)
	return g
}

func TestRecomputeLightsEveryCellUntilWall(t *testing.T) {
	g := buildGrid(t, 5, 0)
	g.Set(tile.Position{Row: 0, Col: 3}, tile.Wall)

	field := Recompute(g, nil)
	for col := 1; col <= 2; col++ {
		pos := tile.Position{Row: 0, Col: col}
		if !field.IsLit(pos, 0) {
			t.Errorf("cell %v not lit by colour 0", pos)
		}
	}
	if field.IsLit(tile.Position{Row: 0, Col: 3}, 0) {
		t.Error("wall cell should not be lit")
	}
	if field.IsLit(tile.Position{Row: 0, Col: 4}, 0) {
		t.Error("cell beyond the wall should not be lit")
	}
}

func TestRecomputeStopsAtGridBoundary(t *testing.T) {
	g := buildGrid(t, 3, 0)
	field := Recompute(g, nil)
	if !field.IsLit(tile.Position{Row: 0, Col: 2}, 0) {
		t.Error("last in-bounds cell should be lit")
	}
}

func TestSameColourAgentBlocksBeam(t *testing.T) {
	g := buildGrid(t, 5, 0)
	agents := []AgentState{
		{ID: 0, Pos: tile.Position{Row: 0, Col: 2}, Alive: true},
	}
	field := Recompute(g, agents)
	if !field.IsLit(tile.Position{Row: 0, Col: 2}, 0) {
		t.Error("blocking agent's own cell should still be lit")
	}
	if field.IsLit(tile.Position{Row: 0, Col: 3}, 0) {
		t.Error("beam should not reach past a same-colour blocking agent")
	}
}

func TestDifferentColourAgentDoesNotBlock(t *testing.T) {
	g := buildGrid(t, 5, 0)
	agents := []AgentState{
		{ID: 1, Pos: tile.Position{Row: 0, Col: 2}, Alive: true},
	}
	field := Recompute(g, agents)
	if !field.LethalColourAt(tile.Position{Row: 0, Col: 2}, 1) {
		t.Error("differing-colour agent's cell should be lethal to it")
	}
	if !field.IsLit(tile.Position{Row: 0, Col: 3}, 0) {
		t.Error("beam should continue past a differing-colour agent")
	}
}

func TestDisabledSourceProducesNoOverlay(t *testing.T) {
	g := buildGrid(t, 5, 0)
	src, _ := g.SourceAt(tile.Position{Row: 0, Col: 0})
	src.Enabled = false
	field := Recompute(g, nil)
	if len(field.Positions()) != 0 {
		t.Error("disabled source should produce no beam overlays")
	}
}

func TestLethalColourAtIgnoresMatchingColour(t *testing.T) {
	g := buildGrid(t, 5, 0)
	field := Recompute(g, nil)
	pos := tile.Position{Row: 0, Col: 2}
	if field.LethalColourAt(pos, 0) {
		t.Error("a beam of the agent's own colour must not be lethal")
	}
	if !field.LethalColourAt(pos, 1) {
		t.Error("a beam of a differing colour must be lethal")
	}
}

func TestAnotherSourceStopsTheBeam(t *testing.T) {
	g := buildGrid(t, 5, 0)
	g.AddSource(tile.NewLaserSource(tile.Position{Row: 0, Col: 3}, 1, tile.North, 0))
	field := Recompute(g, nil)
	if field.IsLit(tile.Position{Row: 0, Col: 4}, 0) {
		t.Error("beam should stop at another source's cell, not pass through it")
	}
}
