package tile

// Grid is the static 2D topology of a world: which cells are floor, wall,
// exit, gem, void, or laser source. It never changes after construction;
// mutable per-step state (gem collection, beam overlays, agent occupancy)
// lives in the owning World.
//
// Storage is a dense row-major []Kind plus a sparse source map, allocated
// once at construction and never resized (spec.md §5 resource policy).
type Grid struct {
	rows, cols int
	cells      []Kind
	sources    map[Position]*LaserSource
	sourceByID map[int]*LaserSource
}

// NewGrid allocates an all-Floor grid of the given dimensions.
func NewGrid(rows, cols int) *Grid {
	cells := make([]Kind, rows*cols)
	return &Grid{
		rows:       rows,
		cols:       cols,
		cells:      cells,
		sources:    make(map[Position]*LaserSource),
		sourceByID: make(map[int]*LaserSource),
	}
}

// Dims returns the grid's row and column counts.
func (g *Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

func (g *Grid) index(pos Position) int {
	return pos.Row*g.cols + pos.Col
}

// InBounds reports whether pos lies within [0, rows) x [0, cols).
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// At returns the static kind of the cell at pos. Callers must check
// InBounds first; At panics on an out-of-range position, matching the
// spec's index-error contract for out-of-bounds lookups.
func (g *Grid) At(pos Position) Kind {
	if !g.InBounds(pos) {
		panic(&IndexError{Message: "tile.Grid.At: position " + pos.String() + " out of bounds"})
	}
	return g.cells[g.index(pos)]
}

// Set assigns the static kind of the cell at pos. Used only by the parser
// while building the grid.
func (g *Grid) Set(pos Position, k Kind) {
	g.cells[g.index(pos)] = k
}

// IsWalkable reports whether pos is in bounds and its static kind is
// walkable (walls and sources are not).
func (g *Grid) IsWalkable(pos Position) bool {
	return g.InBounds(pos) && g.At(pos).Walkable()
}

// AddSource registers a laser source at its own position, marking that cell
// as a Source tile.
func (g *Grid) AddSource(s *LaserSource) {
	g.Set(s.Pos, Source)
	g.sources[s.Pos] = s
	g.sourceByID[s.ID] = s
}

// SourceAt returns the laser source occupying pos, if any.
func (g *Grid) SourceAt(pos Position) (*LaserSource, bool) {
	s, ok := g.sources[pos]
	return s, ok
}

// SourceByID returns the laser source with the given id, if any.
func (g *Grid) SourceByID(id int) (*LaserSource, bool) {
	s, ok := g.sourceByID[id]
	return s, ok
}

// positionsOf collects every position holding the given static kind.
func (g *Grid) positionsOf(k Kind) []Position {
	var out []Position
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			pos := Position{Row: r, Col: c}
			if g.cells[g.index(pos)] == k {
				out = append(out, pos)
			}
		}
	}
	return out
}

// WallPositions returns every wall cell.
func (g *Grid) WallPositions() []Position { return g.positionsOf(Wall) }

// ExitPositions returns every exit cell.
func (g *Grid) ExitPositions() []Position { return g.positionsOf(Exit) }

// VoidPositions returns every void cell.
func (g *Grid) VoidPositions() []Position { return g.positionsOf(Void) }

// GemPositions returns every gem cell (regardless of collected state, which
// the owning World tracks separately).
func (g *Grid) GemPositions() []Position { return g.positionsOf(Gem) }

// SourcesIter returns every laser source in id order.
func (g *Grid) SourcesIter() []*LaserSource {
	out := make([]*LaserSource, 0, len(g.sources))
	for _, s := range g.sources {
		out = append(out, s)
	}
	// Stable, deterministic ordering by id: map iteration order is not.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].ID > out[j].ID; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
