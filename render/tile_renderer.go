package render

import (
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// agentPalette cycles flat, visually distinct colours per agent colour id.
var agentPalette = [][3]byte{
	{220, 40, 40}, {40, 120, 220}, {40, 200, 80}, {230, 180, 30},
	{180, 60, 200}, {40, 200, 200}, {240, 130, 40}, {130, 130, 130},
}

// TileRenderer draws one pixel per grid cell: a flat colour per static
// tile kind, laser sources in their colour, and agents overdrawn in
// their own colour. It exists so the module has at least one concrete
// Renderer to exercise RGBImage without depending on an image/graphics
// library no component other than this stub would use (see DESIGN.md).
type TileRenderer struct{}

func (TileRenderer) Render(w *world.World) *Frame {
	rows, cols := w.Dims()
	frame := &Frame{Height: rows, Width: cols, Pix: make([]byte, rows*cols*3)}
	grid := w.Grid()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := tile.Position{Row: r, Col: c}
			frame.setPixel(r, c, kindColour(grid.At(pos)))
		}
	}
	for _, src := range grid.SourcesIter() {
		frame.setPixel(src.Pos.Row, src.Pos.Col, agentPalette[src.Colour%len(agentPalette)])
	}
	for _, a := range w.Agents() {
		if a.Alive {
			frame.setPixel(a.Pos.Row, a.Pos.Col, agentPalette[a.ID%len(agentPalette)])
		}
	}
	return frame
}

func (f *Frame) setPixel(row, col int, rgb [3]byte) {
	i := (row*f.Width + col) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = rgb[0], rgb[1], rgb[2]
}

func kindColour(k tile.Kind) [3]byte {
	switch k {
	case tile.Wall:
		return [3]byte{60, 60, 60}
	case tile.Void:
		return [3]byte{10, 10, 10}
	case tile.Gem:
		return [3]byte{250, 220, 40}
	case tile.Exit:
		return [3]byte{240, 240, 240}
	case tile.Source:
		return [3]byte{0, 0, 0}
	default:
		return [3]byte{255, 255, 255}
	}
}
