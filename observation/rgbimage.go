package observation

import (
	"github.com/samuelfneumann/lle/render"
	"github.com/samuelfneumann/lle/world"
)

// targetHeight, targetWidth are the fixed RGBImage output dimensions
// (spec.md §4.4: "resized to fixed 120x160").
const (
	targetHeight = 120
	targetWidth  = 160
)

// RGBImage renders the world through a render.Renderer, resizes to a
// fixed 120x160, and transposes to channel-first (3, 160, 120),
// broadcasting the same tensor to every agent (spec.md §4.4).
type RGBImage struct {
	Renderer render.Renderer
}

// Shape returns the fixed channel-first, transposed (3, targetWidth,
// targetHeight) shape that Observe produces.
func (g RGBImage) Shape() []int { return []int{3, targetWidth, targetHeight} }

// Observe renders, resizes, and transposes the frame.
func (g RGBImage) Observe(w *world.World) *PerAgent {
	frame := g.Renderer.Render(w)
	resized := resizeNearest(frame, targetHeight, targetWidth)

	t := NewTensor(3, targetWidth, targetHeight)
	for row := 0; row < targetHeight; row++ {
		for col := 0; col < targetWidth; col++ {
			r, gr, b := resized.At(row, col)
			t.Set(float64(r), 0, col, row)
			t.Set(float64(gr), 1, col, row)
			t.Set(float64(b), 2, col, row)
		}
	}

	out := make([]*Tensor, w.NAgents())
	for i := range out {
		out[i] = t
	}
	return &PerAgent{Shape: t.Shape, Agent: out}
}

// resizeNearest resizes src to (height, width) using nearest-neighbour
// sampling, the simplest resampling that needs no external imaging
// library (see DESIGN.md's rgbimage.go note).
func resizeNearest(src *render.Frame, height, width int) *render.Frame {
	out := &render.Frame{Height: height, Width: width, Pix: make([]byte, height*width*3)}
	for row := 0; row < height; row++ {
		srcRow := row * src.Height / height
		for col := 0; col < width; col++ {
			srcCol := col * src.Width / width
			r, g, b := src.At(srcRow, srcCol)
			i := (row*width + col) * 3
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, b
		}
	}
	return out
}
