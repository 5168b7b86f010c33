package observation

import (
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// PartialGenerator observes a k×k window centred on each agent, k in
// {3, 5, 7} (spec.md §4.4). Channels: per-agent presence (n_agents),
// wall, per-agent laser (n_agents), gem, exit. Cells outside the grid
// (window spilling past an edge) are left zero in every channel. Source
// cells are marked -1 in their colour's laser channel; beam cells +1,
// matching Layered's laser-channel convention.
type PartialGenerator struct {
	K int
}

func partialLayout(nAgents int) (wall, laserStart, gem, exit, channels int) {
	wall = nAgents
	laserStart = nAgents + 1
	gem = 2*nAgents + 1
	exit = 2*nAgents + 2
	channels = 2*nAgents + 3
	return
}

// Shape returns nil; use ShapeFor for the concrete per-world shape.
func (g PartialGenerator) Shape() []int { return nil }

// ShapeFor returns the concrete (channels, k, k) shape for a world with
// the given agent count.
func (g PartialGenerator) ShapeFor(nAgents int) []int {
	_, _, _, _, channels := partialLayout(nAgents)
	return []int{channels, g.K, g.K}
}

// Observe builds one k×k window tensor per agent, centred on that
// agent's own position.
func (g PartialGenerator) Observe(w *world.World) *PerAgent {
	n := w.NAgents()
	wall, laserStart, gem, exit, channels := partialLayout(n)
	half := g.K / 2

	grid := w.Grid()
	beams := w.Beams()
	collected := w.GemsCollected()
	gemIndex := make(map[tile.Position]int, len(w.GemPositions()))
	for i, pos := range w.GemPositions() {
		gemIndex[pos] = i
	}
	agents := w.Agents()

	out := make([]*Tensor, n)
	for _, centre := range agents {
		t := NewTensor(channels, g.K, g.K)
		for dr := -half; dr <= half; dr++ {
			for dc := -half; dc <= half; dc++ {
				pos := tile.Position{Row: centre.Pos.Row + dr, Col: centre.Pos.Col + dc}
				wr, wc := dr+half, dc+half
				if !grid.InBounds(pos) {
					continue
				}
				switch grid.At(pos) {
				case tile.Wall, tile.Source:
					t.Set(1, wall, wr, wc)
				case tile.Gem:
					if idx, ok := gemIndex[pos]; !ok || !collected[idx] {
						t.Set(1, gem, wr, wc)
					}
				case tile.Exit:
					t.Set(1, exit, wr, wc)
				}
				for _, a := range agents {
					if a.Alive && a.Pos == pos {
						t.Set(1, a.ID, wr, wc)
					}
				}
				if src, ok := grid.SourceAt(pos); ok {
					t.Set(-1, laserStart+src.Colour, wr, wc)
				}
				for _, ov := range beams.At(pos) {
					t.Set(1, laserStart+ov.Colour, wr, wc)
				}
			}
		}
		out[centre.ID] = t
	}
	return &PerAgent{Shape: []int{channels, g.K, g.K}, Agent: out}
}
