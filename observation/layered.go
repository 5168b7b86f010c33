package observation

import (
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// Layered observes (H, W) channels: n_agents agent-location channels, one
// wall channel (walls and sources), n_agents laser channels (-1 at a
// source of colour c, +1 at on-beam cells of colour c), one void channel,
// one gem channel (uncollected gems), and one exit channel (spec.md
// §4.4). LayeredPadded(k) widens the agent and laser groups to
// n_agents+k phantom channels, grounded on the teacher's gridworld
// feature generator padding agent channels for curriculum transfer
// between maps of differing agent counts.
type Layered struct {
	Pad int // number of phantom agent/laser channels appended; 0 for plain Layered.
}

// channelLayout describes where each named group starts in the channel
// axis, so Flattened and AgentZeroPerspective can share the indexing
// logic without recomputing it.
type channelLayout struct {
	nAgents    int
	agentStart int
	wall       int
	laserStart int
	void       int
	gem        int
	exit       int
	channels   int
}

func layoutFor(nAgents, pad int) channelLayout {
	n := nAgents + pad
	return channelLayout{
		nAgents:    nAgents,
		agentStart: 0,
		wall:       n,
		laserStart: n + 1,
		void:       2*n + 1,
		gem:        2*n + 2,
		exit:       2*n + 3,
		channels:   2*n + 4,
	}
}

// Shape returns (channels, H, W); H and W are world-dependent, so callers
// needing a concrete shape should use ShapeFor.
func (g Layered) Shape() []int { return nil }

// ShapeFor returns the concrete (channels, rows, cols) shape for a world
// with the given agent count and dimensions.
func (g Layered) ShapeFor(nAgents, rows, cols int) []int {
	l := layoutFor(nAgents, g.Pad)
	return []int{l.channels, rows, cols}
}

// Observe builds the layered tensor for every agent (broadcast: all
// agents share the same global-view tensor).
func (g Layered) Observe(w *world.World) *PerAgent {
	rows, cols := w.Dims()
	n := w.NAgents()
	l := layoutFor(n, g.Pad)
	shape := []int{l.channels, rows, cols}
	t := NewTensor(shape...)

	grid := w.Grid()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := tile.Position{Row: r, Col: c}
			switch grid.At(pos) {
			case tile.Wall, tile.Source:
				t.Set(1, l.wall, r, c)
			case tile.Void:
				t.Set(1, l.void, r, c)
			case tile.Gem:
				t.Set(1, l.gem, r, c)
			case tile.Exit:
				t.Set(1, l.exit, r, c)
			}
		}
	}
	// Gems may have been collected; only uncollected gems light the gem
	// channel (spec.md §4.4).
	collected := w.GemsCollected()
	for i, pos := range w.GemPositions() {
		if collected[i] {
			t.Set(0, l.gem, pos.Row, pos.Col)
		}
	}

	for _, a := range w.Agents() {
		if a.Alive {
			t.Set(1, l.agentStart+a.ID, a.Pos.Row, a.Pos.Col)
		}
	}

	for _, src := range grid.SourcesIter() {
		t.Set(-1, l.laserStart+src.Colour, src.Pos.Row, src.Pos.Col)
	}
	beams := w.Beams()
	for _, pos := range beams.Positions() {
		for _, ov := range beams.At(pos) {
			t.Set(1, l.laserStart+ov.Colour, pos.Row, pos.Col)
		}
	}

	out := make([]*Tensor, n)
	for i := range out {
		out[i] = t
	}
	return &PerAgent{Shape: shape, Agent: out}
}
