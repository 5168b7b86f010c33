// Package beam computes laser beam geometry for a world: the set of cells
// each enabled laser source lights up before hitting an obstruction.
package beam

import "github.com/samuelfneumann/lle/tile"

// Overlay is a single beam ray crossing a cell, carrying the id and colour
// of the source that produced it. A cell may carry more than one Overlay
// when beams from different sources cross.
type Overlay struct {
	SourceID int
	Colour   int
}

// AgentState is the minimal per-agent information the beam engine needs to
// resolve blocking: an agent whose colour equals the beam's colour stops
// the beam (and is unharmed); an agent of a different colour does not stop
// it (and dies, a fact the caller resolves after Recompute returns).
type AgentState struct {
	ID    int
	Pos   tile.Position
	Alive bool
}

// Field is the recomputed set of beam overlays across the whole grid.
type Field struct {
	cells map[tile.Position][]Overlay
}

// At returns every beam overlay covering pos.
func (f *Field) At(pos tile.Position) []Overlay {
	return f.cells[pos]
}

// IsLit reports whether any beam of the given colour covers pos.
func (f *Field) IsLit(pos tile.Position, colour int) bool {
	for _, ov := range f.cells[pos] {
		if ov.Colour == colour {
			return true
		}
	}
	return false
}

// LethalColourAt reports whether any beam covering pos has a colour that
// differs from agentColour, i.e. whether an agent of agentColour standing
// there would be killed. Used by World to resolve deaths after each
// transition.
func (f *Field) LethalColourAt(pos tile.Position, agentColour int) bool {
	for _, ov := range f.cells[pos] {
		if ov.Colour != agentColour {
			return true
		}
	}
	return false
}

// Positions returns every cell carrying at least one overlay, in a stable
// (row-major) order.
func (f *Field) Positions() []tile.Position {
	out := make([]tile.Position, 0, len(f.cells))
	for pos := range f.cells {
		out = append(out, pos)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []tile.Position) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && less(ps[j], ps[j-1]); j-- {
			ps[j-1], ps[j] = ps[j], ps[j-1]
		}
	}
}

func less(a, b tile.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Recompute walks every enabled laser source's ray from scratch, stopping at
// the grid boundary, a wall, another source (enabled or disabled), or a
// live agent whose colour matches the source's colour. Every walkable cell
// encountered along the way (including a blocking same-colour agent's cell)
// is marked with an overlay; cells beyond a same-colour block are not.
//
// Complexity is O(sources * max(rows, cols)), matching spec.md §4.2.
func Recompute(g *tile.Grid, agents []AgentState) *Field {
	field := &Field{cells: make(map[tile.Position][]Overlay)}

	occupied := make(map[tile.Position]int, len(agents))
	for _, a := range agents {
		if a.Alive {
			occupied[a.Pos] = a.ID
		}
	}

	for _, src := range g.SourcesIter() {
		if !src.Enabled {
			continue
		}
		traceRay(g, src, occupied, field)
	}
	return field
}

// traceRay walks a single source's beam, marking field.cells as it goes.
func traceRay(g *tile.Grid, src *tile.LaserSource, occupied map[tile.Position]int, field *Field) {
	delta := src.Direction.Delta()
	pos := src.Pos.Add(delta)
	for g.InBounds(pos) {
		switch g.At(pos) {
		case tile.Wall, tile.Source:
			return
		}
		field.cells[pos] = append(field.cells[pos], Overlay{SourceID: src.ID, Colour: src.Colour})
		if agentID, ok := occupied[pos]; ok && agentID == src.Colour {
			return
		}
		pos = pos.Add(delta)
	}
}
