// Package observation implements the world's feature-tensor generators:
// Layered, LayeredPadded, Flattened, RGBImage, StateGenerator,
// NormalizedState, PartialGenerator, and AgentZeroPerspective, per
// spec.md §4.4. Every generator observes a *world.World snapshot without
// mutating it.
package observation

import (
	"fmt"

	"github.com/samuelfneumann/lle/world"
)

// Tensor is a dense row-major N-dimensional array of float64, the common
// currency every generator in this package returns. gonum has no native
// N-D array type (mat.Matrix is 2D only), and nothing downstream trains a
// network against these features, so a minimal shape+data struct carries
// no unjustified complexity (see DESIGN.md).
type Tensor struct {
	Shape []int
	Data  []float64
}

// NewTensor allocates a zeroed Tensor of the given shape.
func NewTensor(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{Shape: append([]int(nil), shape...), Data: make([]float64, n)}
}

// strides returns the row-major strides for t's shape.
func (t *Tensor) strides() []int {
	strides := make([]int, len(t.Shape))
	acc := 1
	for i := len(t.Shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= t.Shape[i]
	}
	return strides
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != len(t.Shape) {
		panic(fmt.Sprintf("observation: index %v does not match shape %v", idx, t.Shape))
	}
	strides := t.strides()
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.Shape[i] {
			panic(fmt.Sprintf("observation: index %v out of bounds for shape %v", idx, t.Shape))
		}
		off += x * strides[i]
	}
	return off
}

// At returns the element at idx.
func (t *Tensor) At(idx ...int) float64 {
	return t.Data[t.offset(idx)]
}

// Set assigns the element at idx.
func (t *Tensor) Set(v float64, idx ...int) {
	t.Data[t.offset(idx)] = v
}

// PerAgent is the (n_agents, *shape) tensor every generator's Observe
// returns: one Tensor view per agent, all backed by the same Data when
// the feature is broadcast rather than agent-specific.
type PerAgent struct {
	Shape []int
	Agent []*Tensor
}

// Generator is implemented by every observation variant.
type Generator interface {
	// Shape returns the per-agent feature shape (excluding the leading
	// agent axis).
	Shape() []int
	// Observe returns one tensor per agent for the world's current state.
	Observe(w *world.World) *PerAgent
}
