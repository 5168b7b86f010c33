package observation

import "github.com/samuelfneumann/lle/world"

// AgentZeroPerspective wraps Layered: for each agent i>0 it swaps
// channel 0 (agent-0's location) with channel i (agent i's location),
// and laser channel 0 with laser channel i, so that every agent's
// observation places "itself" at channel 0 (spec.md §4.4). Unlike plain
// Layered, the returned tensors are per-agent (not a shared broadcast),
// since the swap is agent-specific.
type AgentZeroPerspective struct {
	Layered Layered
}

// Shape returns nil; use ShapeFor for the concrete per-world shape.
func (g AgentZeroPerspective) Shape() []int { return nil }

// ShapeFor delegates to the wrapped Layered generator.
func (g AgentZeroPerspective) ShapeFor(nAgents, rows, cols int) []int {
	return g.Layered.ShapeFor(nAgents, rows, cols)
}

// Observe computes the shared Layered tensor once, then produces one
// swapped copy per agent.
func (g AgentZeroPerspective) Observe(w *world.World) *PerAgent {
	base := g.Layered.Observe(w)
	n := w.NAgents()
	l := layoutFor(n, g.Layered.Pad)

	out := make([]*Tensor, n)
	shared := base.Agent[0]
	for i := 0; i < n; i++ {
		if i == 0 {
			out[0] = shared
			continue
		}
		t := &Tensor{Shape: append([]int(nil), shared.Shape...), Data: append([]float64(nil), shared.Data...)}
		swapChannel(t, l.agentStart+0, l.agentStart+i)
		swapChannel(t, l.laserStart+0, l.laserStart+i)
		out[i] = t
	}
	return &PerAgent{Shape: base.Shape, Agent: out}
}

// swapChannel exchanges two channel planes of a (channels, H, W) tensor.
func swapChannel(t *Tensor, a, b int) {
	rows, cols := t.Shape[1], t.Shape[2]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			va := t.At(a, r, c)
			vb := t.At(b, r, c)
			t.Set(vb, a, r, c)
			t.Set(va, b, r, c)
		}
	}
}
