// Package render defines the rendering boundary used by the RGBImage
// observation generator and any human-facing display. Implementations are
// opaque to the rest of the module: anything producing an H×W×3 image
// from a world snapshot satisfies Renderer (spec.md §4.7/§9 design
// notes). The one concrete renderer in this package is TileRenderer, a
// one-pixel-per-cell flat-colour renderer; callers may supply their own
// (a terminal renderer, an image/png-backed renderer, etc.).
package render

import "github.com/samuelfneumann/lle/world"

// Frame is a dense H×W×3 RGB image, row-major, channel-last.
type Frame struct {
	Height, Width int
	Pix           []byte // len == Height*Width*3
}

// At returns the RGB triple at (row, col).
func (f *Frame) At(row, col int) (r, g, b byte) {
	i := (row*f.Width + col) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Renderer produces a Frame from a world snapshot. Renderers must not
// mutate the world.
type Renderer interface {
	Render(w *world.World) *Frame
}
