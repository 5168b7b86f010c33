// Package extras implements the per-agent auxiliary-vector generators of
// spec.md §4.6: NoExtras, LaserSubgoal, and MultiGenerator.
package extras

import "github.com/samuelfneumann/lle/world"

// Generator produces a fixed-length auxiliary vector per agent.
type Generator interface {
	// Len returns the fixed per-agent vector length.
	Len() int
	// Reset clears any sticky per-episode state.
	Reset()
	// Observe returns one vector of length Len() per agent.
	Observe(w *world.World) [][]float64
}

// NoExtras produces an empty vector per agent.
type NoExtras struct{}

func (NoExtras) Len() int   { return 0 }
func (NoExtras) Reset()     {}
func (NoExtras) Observe(w *world.World) [][]float64 {
	out := make([][]float64, w.NAgents())
	for i := range out {
		out[i] = []float64{}
	}
	return out
}

// MultiGenerator concatenates its children's per-agent vectors in order.
type MultiGenerator struct {
	Children []Generator
}

func (m MultiGenerator) Len() int {
	n := 0
	for _, c := range m.Children {
		n += c.Len()
	}
	return n
}

func (m MultiGenerator) Reset() {
	for _, c := range m.Children {
		c.Reset()
	}
}

func (m MultiGenerator) Observe(w *world.World) [][]float64 {
	out := make([][]float64, w.NAgents())
	for i := range out {
		out[i] = make([]float64, 0, m.Len())
	}
	for _, c := range m.Children {
		child := c.Observe(w)
		for i := range out {
			out[i] = append(out[i], child[i]...)
		}
	}
	return out
}
