package observation

import "github.com/samuelfneumann/lle/world"

// Flattened is Layered reshaped to a 1D vector per agent (spec.md §4.4).
type Flattened struct {
	Layered Layered
}

// Shape returns nil; use ShapeFor for the concrete per-world length.
func (g Flattened) Shape() []int { return nil }

// ShapeFor returns the concrete (length) shape for a world with the given
// agent count and dimensions.
func (g Flattened) ShapeFor(nAgents, rows, cols int) []int {
	shape := g.Layered.ShapeFor(nAgents, rows, cols)
	n := 1
	for _, d := range shape {
		n *= d
	}
	return []int{n}
}

// Observe flattens each agent's Layered tensor to 1D.
func (g Flattened) Observe(w *world.World) *PerAgent {
	layered := g.Layered.Observe(w)
	length := len(layered.Shape)
	n := 1
	for _, d := range layered.Shape[:length] {
		n *= d
	}
	out := make([]*Tensor, len(layered.Agent))
	seen := make(map[*Tensor]*Tensor)
	for i, t := range layered.Agent {
		flat, ok := seen[t]
		if !ok {
			flat = &Tensor{Shape: []int{n}, Data: append([]float64(nil), t.Data...)}
			seen[t] = flat
		}
		out[i] = flat
	}
	return &PerAgent{Shape: []int{n}, Agent: out}
}
