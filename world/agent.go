package world

import "github.com/samuelfneumann/lle/tile"

// Agent is a live participant in the world. Its colour, for laser-blocking
// purposes, is always its own id (spec.md §9 glossary: "Colour: integer tag
// shared by laser sources and agents").
type Agent struct {
	ID      int
	Pos     tile.Position
	Alive   bool
	Arrived bool
}

// Colour returns the agent's colour, which is always its id.
func (a *Agent) Colour() int { return a.ID }
