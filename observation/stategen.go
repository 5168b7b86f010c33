package observation

import (
	"math"

	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// StateGenerator observes the concatenation of agent positions (2
// scalars each), a gems-collected bitmap, and an agents-alive bitmap —
// the same layout as world.State.AsArray (spec.md §4.4). NormalizedState
// additionally divides positions by (H, W).
type StateGenerator struct {
	Normalize bool
}

// NormalizedState is StateGenerator with position normalisation enabled.
func NormalizedState() StateGenerator { return StateGenerator{Normalize: true} }

// Shape returns nil; use ShapeFor for the concrete per-world length.
func (g StateGenerator) Shape() []int { return nil }

// ShapeFor returns the concrete (length) shape for a world with the given
// agent and gem counts.
func (g StateGenerator) ShapeFor(nAgents, nGems int) []int {
	return []int{nAgents*2 + nGems + nAgents}
}

// Observe builds the state vector, identical for every agent.
func (g StateGenerator) Observe(w *world.World) *PerAgent {
	rows, cols := w.Dims()
	state := w.GetState()
	vec := state.AsArray()
	n := vec.Len()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = vec.AtVec(i)
	}
	if g.Normalize {
		nAgents := len(state.AgentsPositions)
		for i := 0; i < nAgents; i++ {
			data[2*i] /= float64(rows)
			data[2*i+1] /= float64(cols)
		}
	}
	t := &Tensor{Shape: []int{n}, Data: data}
	out := make([]*Tensor, w.NAgents())
	for i := range out {
		out[i] = t
	}
	return &PerAgent{Shape: t.Shape, Agent: out}
}

// ToWorldState is StateGenerator's partial inverse (spec.md §4.4,
// §8 "StateGenerator.to_world_state(StateGenerator.observe()[0]) ==
// world.get_state()"): it reconstructs a world.State from one agent's
// observation vector, undoing normalisation first if applicable.
func (g StateGenerator) ToWorldState(vec []float64, nAgents, nGems, rows, cols int) world.State {
	data := append([]float64(nil), vec...)
	if g.Normalize {
		for i := 0; i < nAgents; i++ {
			data[2*i] *= float64(rows)
			data[2*i+1] *= float64(cols)
		}
	}
	positions := make([]tile.Position, nAgents)
	for i := 0; i < nAgents; i++ {
		positions[i] = tile.Position{
			Row: int(math.Round(data[2*i])),
			Col: int(math.Round(data[2*i+1])),
		}
	}
	offset := nAgents * 2
	gems := make([]bool, nGems)
	for i := 0; i < nGems; i++ {
		gems[i] = data[offset+i] != 0
	}
	offset += nGems
	alive := make([]bool, nAgents)
	for i := 0; i < nAgents; i++ {
		alive[i] = data[offset+i] != 0
	}
	return world.State{AgentsPositions: positions, GemsCollected: gems, AgentsAlive: alive}
}
