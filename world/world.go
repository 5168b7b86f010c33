// Package world implements the Laser Learning Environment's world state
// machine: joint-action transitions, beam recomputation, and reversible
// state get/set, as specified in spec.md §4.3.
package world

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/lle/beam"
	"github.com/samuelfneumann/lle/tile"
)

// Config describes everything needed to build a World: its static grid and
// each agent's declared set of possible start positions, in agent-id order.
type Config struct {
	Grid   *tile.Grid
	Starts []StartSet
	Seed   uint64
}

// World owns the Grid, Agents, Gems, and laser Sources exclusively.
// Observation and reward components hold only a non-owning reference for
// the duration of a step (spec.md §3 Ownership).
//
// A World instance is not safe for concurrent mutation (spec.md §5).
type World struct {
	grid   *tile.Grid
	agents []*Agent
	starts []StartSet

	gemPositions []tile.Position
	gemCollected []bool
	beams        *beam.Field
	src          rand.Source
	terminal     bool
}

// New constructs a World from cfg. The grid and start sets are assumed
// already validated by the caller (the worldconfig package does so at
// parse time); New itself only wires up derived state.
func New(cfg Config) *World {
	w := &World{
		grid:         cfg.Grid,
		starts:       cfg.Starts,
		gemPositions: cfg.Grid.GemPositions(),
		src:          rand.NewSource(cfg.Seed),
	}
	w.agents = make([]*Agent, len(cfg.Starts))
	for i := range w.agents {
		w.agents[i] = &Agent{ID: i}
	}
	w.gemCollected = make([]bool, len(w.gemPositions))
	_, _ = w.Reset()
	return w
}

// Dims returns the world's row and column counts.
func (w *World) Dims() (rows, cols int) { return w.grid.Dims() }

// NAgents returns the number of agents.
func (w *World) NAgents() int { return len(w.agents) }

// NGems returns the number of gems.
func (w *World) NGems() int { return len(w.gemPositions) }

// Grid returns the world's static topology. Callers must not mutate it.
func (w *World) Grid() *tile.Grid { return w.grid }

// Beams returns the current beam field. Callers must not mutate it.
func (w *World) Beams() *beam.Field { return w.beams }

// Agents returns the current agents. Callers must not mutate the slice or
// its elements; use GetState/SetState to change world state.
func (w *World) Agents() []*Agent { return w.agents }

// GemPositions returns the fixed positions of every gem, in index order.
func (w *World) GemPositions() []tile.Position { return w.gemPositions }

// GemsCollected returns which gems are currently collected, in the same
// order as GemPositions.
func (w *World) GemsCollected() []bool {
	out := make([]bool, len(w.gemCollected))
	copy(out, w.gemCollected)
	return out
}

// Seed reseeds the world's RNG. Affects only random start selection; the
// reproducibility contract is seed(s); reset(); step(a); step(b); ...
// produces an identical event/reward trace across runs given identical
// inputs (spec.md §5).
func (w *World) Seed(seed uint64) {
	w.src = rand.NewSource(seed)
}

func (w *World) uniformIndex(n int) int {
	if n == 1 {
		return 0
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	cat := distuv.NewCategorical(weights, w.src)
	return int(cat.Rand())
}

// Reset restores the initial state: agents placed at a (possibly randomly
// sampled) start position, alive and not arrived; gems uncollected; beams
// recomputed.
func (w *World) Reset() (State, error) {
	taken := make(map[tile.Position]bool, len(w.agents))
	for i, start := range w.starts {
		candidates := availableCandidates(start.Positions(), taken)
		if len(candidates) == 0 {
			return State{}, NewInvalidWorldStateError(
				"reset: agent %d has no available start position (all declared positions occupied)", i)
		}
		pos := candidates[w.uniformIndex(len(candidates))]
		w.agents[i].Pos = pos
		w.agents[i].Alive = true
		w.agents[i].Arrived = false
		taken[pos] = true
	}
	for i := range w.gemCollected {
		w.gemCollected[i] = false
	}
	w.recomputeBeams()
	w.terminal = false
	return w.GetState(), nil
}

func availableCandidates(positions []tile.Position, taken map[tile.Position]bool) []tile.Position {
	out := make([]tile.Position, 0, len(positions))
	for _, p := range positions {
		if !taken[p] {
			out = append(out, p)
		}
	}
	return out
}

// recomputeBeams recomputes the beam field from scratch (spec.md §4.2: O(sources * max(H,W))).
func (w *World) recomputeBeams() {
	agentStates := make([]beam.AgentState, len(w.agents))
	for i, a := range w.agents {
		agentStates[i] = beam.AgentState{ID: a.ID, Pos: a.Pos, Alive: a.Alive}
	}
	w.beams = beam.Recompute(w.grid, agentStates)
}

// blockingAgentAt reports whether pos is currently occupied by a live,
// non-arrived agent other than excludeAgent (invariant 1: only such agents
// can vertex-conflict or block moves).
func (w *World) blockingAgentAt(pos tile.Position, excludeAgent int) bool {
	for _, a := range w.agents {
		if a.ID == excludeAgent {
			continue
		}
		if a.Alive && !a.Arrived && a.Pos == pos {
			return true
		}
	}
	return false
}

// AvailableActions returns, for each agent, the set of actions locally
// available to it (spec.md §4.3): the target cell must be walkable and in
// bounds, and taking the action alone must not place the agent on another
// already-not-arrived live agent's current position. Vertex/swap conflicts
// between two simultaneous non-STAY actions are detected at Step time, not
// here.
func (w *World) AvailableActions() [][]tile.Action {
	out := make([][]tile.Action, len(w.agents))
	for i, a := range w.agents {
		if a.Arrived || !a.Alive {
			out[i] = []tile.Action{tile.ActionStay}
			continue
		}
		var actions []tile.Action
		for _, action := range tile.Actions {
			target := a.Pos.Add(action.Delta())
			if action == tile.ActionStay {
				actions = append(actions, action)
				continue
			}
			if !w.grid.InBounds(target) || !w.grid.IsWalkable(target) {
				continue
			}
			if w.blockingAgentAt(target, a.ID) {
				continue
			}
			actions = append(actions, action)
		}
		out[i] = actions
	}
	return out
}

// isAvailableAlone reports whether action is locally legal for agent i,
// ignoring joint-action conflicts (used by Step to validate each action in
// isolation before resolving conflicts). Arrived and dead agents ignore
// whatever action they are given (spec.md §4.3 step 1), so any action is
// harmlessly "available" for them.
func (w *World) isAvailableAlone(i int, action tile.Action) bool {
	a := w.agents[i]
	if a.Arrived || !a.Alive {
		return true
	}
	if action == tile.ActionStay {
		return true
	}
	target := a.Pos.Add(action.Delta())
	if !w.grid.InBounds(target) || !w.grid.IsWalkable(target) {
		return false
	}
	return !w.blockingAgentAt(target, a.ID)
}

// Terminal reports whether the world has reached a terminal condition: at
// least one agent died, or all agents arrived (spec.md §4.3). The World
// itself continues to accept SetState after terminal.
func (w *World) Terminal() bool {
	return w.terminal
}

// Step atomically applies a joint action (spec.md §4.3 resolution order):
//  1. compute proposed destinations,
//  2. reject edge (swap) conflicts,
//  3. reject vertex conflicts,
//  4. move all agents simultaneously,
//  5. resolve gem/exit/void tile effects in ascending agent id,
//  6. recompute beams and resolve laser deaths in ascending agent id,
//  7. return the event list.
//
// Step fails without mutating the world if any action is locally
// unavailable, the joint action conflicts, or the world is already
// terminal.
func (w *World) Step(actions []tile.Action) ([]Event, error) {
	if w.terminal {
		return nil, ErrAlreadyTerminal
	}
	if len(actions) != len(w.agents) {
		return nil, NewInvalidActionError("step: expected %d actions, got %d", len(w.agents), len(actions))
	}

	for i, action := range actions {
		if !w.isAvailableAlone(i, action) {
			return nil, NewInvalidActionError("step: action %s is not available for agent %d", action, i)
		}
	}

	destinations := make([]tile.Position, len(w.agents))
	for i, a := range w.agents {
		if a.Arrived {
			destinations[i] = a.Pos
			continue
		}
		destinations[i] = a.Pos.Add(actions[i].Delta())
	}

	effectiveStay := make([]bool, len(w.agents))
	for i, a := range w.agents {
		effectiveStay[i] = a.Arrived || actions[i] == tile.ActionStay
	}

	if err := w.checkEdgeConflicts(effectiveStay, destinations); err != nil {
		return nil, err
	}
	if err := w.checkVertexConflicts(effectiveStay, destinations); err != nil {
		return nil, err
	}

	for i, a := range w.agents {
		if !a.Arrived {
			a.Pos = destinations[i]
		}
	}

	var events []Event
	for _, a := range w.agents {
		if !a.Alive || a.Arrived {
			continue
		}
		switch w.grid.At(a.Pos) {
		case tile.Gem:
			if idx := w.gemIndexAt(a.Pos); idx >= 0 && !w.gemCollected[idx] {
				w.gemCollected[idx] = true
				events = append(events, Event{Type: GemCollected, GemPos: a.Pos})
			}
		case tile.Exit:
			a.Arrived = true
			events = append(events, Event{Type: AgentExit, AgentID: a.ID})
		case tile.Void:
			a.Alive = false
			events = append(events, Event{Type: AgentDied, AgentID: a.ID})
		}
	}

	w.recomputeBeams()
	for _, a := range w.agents {
		if !a.Alive || a.Arrived {
			continue
		}
		if w.beams.LethalColourAt(a.Pos, a.Colour()) {
			a.Alive = false
			events = append(events, Event{Type: AgentDied, AgentID: a.ID})
		}
	}
	// Beams may have changed further (a dying agent stops blocking a beam
	// that then reaches another cell); recompute once more so GetState and
	// observations reflect the final, consistent beam field.
	w.recomputeBeams()

	allArrived := true
	anyDied := false
	for _, a := range w.agents {
		if !a.Arrived {
			allArrived = false
		}
		if !a.Alive {
			anyDied = true
		}
	}
	w.terminal = anyDied || allArrived

	return events, nil
}

func (w *World) gemIndexAt(pos tile.Position) int {
	for i, p := range w.gemPositions {
		if p == pos {
			return i
		}
	}
	return -1
}

func (w *World) checkEdgeConflicts(effectiveStay []bool, destinations []tile.Position) error {
	for i := range w.agents {
		if effectiveStay[i] {
			continue
		}
		for j := i + 1; j < len(w.agents); j++ {
			if effectiveStay[j] {
				continue
			}
			if destinations[i] == w.agents[j].Pos && destinations[j] == w.agents[i].Pos {
				return NewInvalidActionError("step: agents %d and %d attempted to swap positions", i, j)
			}
		}
	}
	return nil
}

func (w *World) checkVertexConflicts(effectiveStay []bool, destinations []tile.Position) error {
	for i := range w.agents {
		for j := i + 1; j < len(w.agents); j++ {
			if destinations[i] != destinations[j] {
				continue
			}
			if effectiveStay[i] && effectiveStay[j] {
				continue
			}
			return NewInvalidActionError("step: agents %d and %d would occupy the same cell %s", i, j, destinations[i])
		}
	}
	return nil
}

// GetState returns a structural snapshot of the current dynamic state.
func (w *World) GetState() State {
	positions := make([]tile.Position, len(w.agents))
	alive := make([]bool, len(w.agents))
	for i, a := range w.agents {
		positions[i] = a.Pos
		alive[i] = a.Alive
	}
	return State{
		AgentsPositions: positions,
		GemsCollected:   w.GemsCollected(),
		AgentsAlive:     alive,
	}
}

// SetState validates and installs state, recomputing beams and emitting
// every event implied by the new state (AGENT_EXIT for agents now on exits).
// A state that would place a live agent on an always-on lethal beam of a
// differing colour is rejected with InvalidWorldStateError rather than
// accepted and immediately killing the agent (spec.md §9 open question,
// resolved in favour of rejection).
func (w *World) SetState(s State) ([]Event, error) {
	if len(s.AgentsPositions) != len(w.agents) {
		return nil, NewInvalidWorldStateError("set_state: expected %d agent positions, got %d", len(w.agents), len(s.AgentsPositions))
	}
	if len(s.AgentsAlive) != len(w.agents) {
		return nil, NewInvalidWorldStateError("set_state: expected %d agent alive flags, got %d", len(w.agents), len(s.AgentsAlive))
	}
	if len(s.GemsCollected) != len(w.gemPositions) {
		return nil, NewInvalidWorldStateError("set_state: expected %d gem flags, got %d", len(w.gemPositions), len(s.GemsCollected))
	}

	occupied := make(map[tile.Position]int)
	for i, pos := range s.AgentsPositions {
		if !w.grid.InBounds(pos) {
			return nil, NewInvalidWorldStateError("set_state: agent %d position %s out of bounds", i, pos)
		}
		if !w.grid.IsWalkable(pos) {
			return nil, NewInvalidWorldStateError("set_state: agent %d position %s is not walkable", i, pos)
		}
		arrived := w.grid.At(pos) == tile.Exit
		if s.AgentsAlive[i] && !arrived {
			if other, ok := occupied[pos]; ok {
				return nil, NewInvalidWorldStateError("set_state: agents %d and %d would occupy the same cell %s", other, i, pos)
			}
			occupied[pos] = i
		}
	}

	// Recompute beams against the candidate positions before committing, so
	// a forced-lethal state can be rejected without mutating the world.
	candidateAgents := make([]beam.AgentState, len(w.agents))
	for i, pos := range s.AgentsPositions {
		candidateAgents[i] = beam.AgentState{ID: i, Pos: pos, Alive: s.AgentsAlive[i]}
	}
	candidateBeams := beam.Recompute(w.grid, candidateAgents)
	for i, pos := range s.AgentsPositions {
		if !s.AgentsAlive[i] {
			continue
		}
		if candidateBeams.LethalColourAt(pos, i) {
			return nil, NewInvalidWorldStateError("set_state: agent %d would be placed on a lethal beam at %s", i, pos)
		}
	}

	var events []Event
	for i, pos := range s.AgentsPositions {
		a := w.agents[i]
		a.Pos = pos
		a.Alive = s.AgentsAlive[i]
		a.Arrived = a.Alive && w.grid.At(pos) == tile.Exit
		if a.Arrived {
			events = append(events, Event{Type: AgentExit, AgentID: a.ID})
		}
	}
	for i, collected := range s.GemsCollected {
		w.gemCollected[i] = collected
	}

	w.beams = candidateBeams

	allArrived := true
	anyDied := false
	for _, a := range w.agents {
		if !a.Arrived {
			allArrived = false
		}
		if !a.Alive {
			anyDied = true
		}
	}
	w.terminal = anyDied || allArrived

	return events, nil
}
