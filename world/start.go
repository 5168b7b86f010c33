package world

import "github.com/samuelfneumann/lle/tile"

// Rectangle is an inclusive (row, col) bounding box, as used by the
// structured map format's rectangle start-position syntax (spec.md §6.2).
type Rectangle struct {
	RowMin, RowMax int
	ColMin, ColMax int
}

// Positions enumerates every cell in the rectangle, row-major.
func (r Rectangle) Positions() []tile.Position {
	var out []tile.Position
	for row := r.RowMin; row <= r.RowMax; row++ {
		for col := r.ColMin; col <= r.ColMax; col++ {
			out = append(out, tile.Position{Row: row, Col: col})
		}
	}
	return out
}

// StartSet is the value type backing one agent's set of possible starting
// positions: a deduplicated, deterministically-ordered union of declared
// points and rectangles (spec.md §9 design notes). At Reset, the world
// samples uniformly from this union.
type StartSet struct {
	positions []tile.Position
}

// NewStartSet builds a StartSet from explicit points and rectangles,
// deduplicating while preserving first-seen order.
func NewStartSet(points []tile.Position, rects []Rectangle) StartSet {
	seen := make(map[tile.Position]bool)
	var out []tile.Position
	add := func(p tile.Position) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range points {
		add(p)
	}
	for _, r := range rects {
		for _, p := range r.Positions() {
			add(p)
		}
	}
	return StartSet{positions: out}
}

// Positions returns the flattened union of declared points, in
// deterministic order.
func (s StartSet) Positions() []tile.Position {
	return s.positions
}

// Len returns the number of distinct declared start positions.
func (s StartSet) Len() int {
	return len(s.positions)
}
