// Package worldconfig turns map specifications (plain-string, structured
// YAML, or named level presets) into a world.Config ready for world.New,
// per spec.md §6.1-§6.3.
package worldconfig

import (
	"strconv"
	"strings"

	"github.com/samuelfneumann/lle/beam"
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// parsedGrid is the intermediate result of tokenizing a plain-string map,
// before agent/exit counts are validated against declared start positions.
type parsedGrid struct {
	grid        *tile.Grid
	agentStarts map[int][]tile.Position
}

// ParsePlainString parses the plain-string map format (spec.md §6.1):
// whitespace-separated tokens per row, newline-separated rows.
func ParsePlainString(s string) (world.Config, error) {
	pg, err := tokenizeGrid(s)
	if err != nil {
		return world.Config{}, err
	}
	return finishConfig(pg, 0)
}

// tokenizeGrid parses the raw token grid into a Grid plus the inline S<n>
// start annotations, without yet validating agent/exit counts.
func tokenizeGrid(s string) (parsedGrid, error) {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	if len(rows) == 0 {
		return parsedGrid{}, world.NewParsingError("empty map")
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return parsedGrid{}, world.NewParsingError("row %d has %d tokens, expected %d", i, len(row), cols)
		}
	}

	grid := tile.NewGrid(len(rows), cols)
	agentStarts := make(map[int][]tile.Position)
	sourceID := 0

	for r, row := range rows {
		for c, tok := range row {
			pos := tile.Position{Row: r, Col: c}
			switch {
			case tok == ".":
				grid.Set(pos, tile.Floor)
			case tok == "@":
				grid.Set(pos, tile.Wall)
			case tok == "X":
				grid.Set(pos, tile.Exit)
			case tok == "G":
				grid.Set(pos, tile.Gem)
			case tok == "V":
				grid.Set(pos, tile.Void)
			case strings.HasPrefix(tok, "S"):
				n, err := strconv.Atoi(tok[1:])
				if err != nil || n < 0 {
					return parsedGrid{}, world.NewParsingError("invalid start token %q at row %d col %d", tok, r, c)
				}
				grid.Set(pos, tile.Floor)
				agentStarts[n] = append(agentStarts[n], pos)
			case strings.HasPrefix(tok, "L"):
				src, err := parseLaserToken(tok, pos, sourceID)
				if err != nil {
					return parsedGrid{}, err
				}
				grid.AddSource(src)
				sourceID++
			default:
				return parsedGrid{}, world.NewParsingError("unrecognized token %q at row %d col %d", tok, r, c)
			}
		}
	}
	return parsedGrid{grid: grid, agentStarts: agentStarts}, nil
}

// parseLaserToken parses an `L<c><d>` token: colour c (one or more digits),
// direction d in {N, S, E, W}.
func parseLaserToken(tok string, pos tile.Position, id int) (*tile.LaserSource, error) {
	body := tok[1:]
	if len(body) < 2 {
		return nil, world.NewParsingError("invalid laser token %q at %s", tok, pos)
	}
	dirLetter := body[len(body)-1]
	direction, ok := tile.DirectionFromLetter(dirLetter)
	if !ok {
		return nil, world.NewParsingError("invalid laser direction in token %q at %s", tok, pos)
	}
	colour, err := strconv.Atoi(body[:len(body)-1])
	if err != nil || colour < 0 {
		return nil, world.NewParsingError("invalid laser colour in token %q at %s", tok, pos)
	}
	return tile.NewLaserSource(pos, id, direction, colour), nil
}

// finishConfig validates agent/exit counts against the tokenized grid and
// rejects maps where a declared start lies on an always-on lethal beam.
// minAgents, when positive, forces at least that many agents even if no
// S<n> token reaches that index (used by the structured parser, where
// agent count may instead come from an explicit `agents` list).
func finishConfig(pg parsedGrid, minAgents int) (world.Config, error) {
	nAgents := minAgents
	for n := range pg.agentStarts {
		if n+1 > nAgents {
			nAgents = n + 1
		}
	}
	if nAgents == 0 {
		return world.Config{}, world.NewParsingError("map declares no agents")
	}
	starts := make([]world.StartSet, nAgents)
	for i := 0; i < nAgents; i++ {
		positions := pg.agentStarts[i]
		if len(positions) == 0 {
			return world.Config{}, world.NewParsingError("agent %d has no declared start position", i)
		}
		starts[i] = world.NewStartSet(positions, nil)
	}

	exits := pg.grid.ExitPositions()
	if len(exits) < nAgents {
		return world.Config{}, world.NewParsingError("map has %d exits, fewer than %d agents", len(exits), nAgents)
	}

	if err := rejectLethalStarts(pg.grid, starts); err != nil {
		return world.Config{}, err
	}

	return world.Config{Grid: pg.grid, Starts: starts}, nil
}

// rejectLethalStarts checks every declared start position against the
// beam field computed with no agents present (the grid's own lasers,
// unobstructed by anyone) — spec.md §3 invariant 6 and §6.1.
func rejectLethalStarts(grid *tile.Grid, starts []world.StartSet) error {
	field := beam.Recompute(grid, nil)
	for agentID, start := range starts {
		for _, pos := range start.Positions() {
			if field.LethalColourAt(pos, agentID) {
				return world.NewParsingError("agent %d start position %s lies on an always-on lethal beam", agentID, pos)
			}
		}
	}
	return nil
}
