package world

import "github.com/samuelfneumann/lle/tile"

// Gem is a collectible at a fixed position together with a collected flag.
// World does not store Gem values: it keeps gem positions and collected
// flags in its own slices (see World.GemPositions and World.GemsCollected),
// and nothing in this module updates a Gem's Collected field.
type Gem struct {
	Pos       tile.Position
	Collected bool
}
