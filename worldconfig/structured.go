package worldconfig

import (
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// Document is the structured YAML map format of spec.md §6.2: an optional
// width/height, a required-or-inferable world_string giving the base tile
// layout (plus any inline laser tokens, since lasers have no separate
// list), and optional exits/gems/agents lists whose positions can be
// given as single points or inclusive rectangles.
type Document struct {
	Width       int            `yaml:"width"`
	Height      int            `yaml:"height"`
	WorldString string         `yaml:"world_string"`
	Exits       []PositionSpec `yaml:"exits"`
	Gems        []PositionSpec `yaml:"gems"`
	Agents      []AgentSpec    `yaml:"agents"`
}

// AgentSpec declares one agent's candidate start positions. When the
// document's Agents list is non-empty it is authoritative: any inline
// S<n> tokens in WorldString are ignored, resolving spec.md's silence on
// how the two start-position mechanisms interact in favour of the
// explicit list (see DESIGN.md).
type AgentSpec struct {
	StartPositions []PositionSpec `yaml:"start_positions"`
}

// PositionSpec is a point when I and J are both set, otherwise a
// rectangle; any of the four bounds left nil defaults to the grid edge
// on that side (spec.md §6.2: "missing bounds default to 0 and max").
type PositionSpec struct {
	I *int `yaml:"i"`
	J *int `yaml:"j"`

	IMin *int `yaml:"i_min"`
	IMax *int `yaml:"i_max"`
	JMin *int `yaml:"j_min"`
	JMax *int `yaml:"j_max"`
}

// resolve expands a PositionSpec into concrete grid positions, given the
// grid's dimensions for defaulting open rectangle bounds.
func (p PositionSpec) resolve(rows, cols int) []tile.Position {
	if p.I != nil && p.J != nil {
		return []tile.Position{{Row: *p.I, Col: *p.J}}
	}
	r := world.Rectangle{
		RowMin: deref(p.IMin, 0),
		RowMax: deref(p.IMax, rows-1),
		ColMin: deref(p.JMin, 0),
		ColMax: deref(p.JMax, cols-1),
	}
	return r.Positions()
}

func deref(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// ParseYAML parses raw structured-YAML bytes into a world.Config.
func ParseYAML(data []byte) (world.Config, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return world.Config{}, world.NewParsingError("invalid yaml: %v", err)
	}
	return ParseDocument(doc)
}

// ParseDocument turns an already-decoded Document into a world.Config.
func ParseDocument(doc Document) (world.Config, error) {
	var pg parsedGrid
	var err error

	switch {
	case doc.WorldString != "":
		pg, err = tokenizeGrid(doc.WorldString)
		if err != nil {
			return world.Config{}, err
		}
		gridRows, gridCols := pg.grid.Dims()
		if doc.Width > 0 && doc.Width != gridCols {
			return world.Config{}, world.NewParsingError("declared width %d does not match world_string width %d", doc.Width, gridCols)
		}
		if doc.Height > 0 && doc.Height != gridRows {
			return world.Config{}, world.NewParsingError("declared height %d does not match world_string height %d", doc.Height, gridRows)
		}
	case doc.Width > 0 && doc.Height > 0:
		pg = parsedGrid{grid: tile.NewGrid(doc.Height, doc.Width), agentStarts: make(map[int][]tile.Position)}
	default:
		return world.Config{}, world.NewParsingError("document needs either world_string or both width and height")
	}

	rows, cols := pg.grid.Dims()

	for _, spec := range doc.Exits {
		for _, pos := range spec.resolve(rows, cols) {
			pg.grid.Set(pos, tile.Exit)
		}
	}
	for _, spec := range doc.Gems {
		for _, pos := range spec.resolve(rows, cols) {
			pg.grid.Set(pos, tile.Gem)
		}
	}

	minAgents := 0
	if len(doc.Agents) > 0 {
		pg.agentStarts = make(map[int][]tile.Position, len(doc.Agents))
		for i, agent := range doc.Agents {
			for _, spec := range agent.StartPositions {
				pg.agentStarts[i] = append(pg.agentStarts[i], spec.resolve(rows, cols)...)
			}
		}
		minAgents = len(doc.Agents)
	}

	return finishConfig(pg, minAgents)
}
