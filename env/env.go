// Package env composes a world.World with a reward strategy, optional
// potential-based shaping, and observation/extras generators into a
// single RL-ready step function, per spec.md §4.7 and §6.4.
package env

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/lle/extras"
	"github.com/samuelfneumann/lle/observation"
	"github.com/samuelfneumann/lle/reward"
	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

// Environment is the adapter: it owns a World plus the strategies that
// turn its raw events into an RL-ready (observation, state, reward,
// done, info) tuple. Construct one with NewBuilder.
type Environment struct {
	name string

	world *world.World
	obs   observation.Generator
	state observation.StateGenerator
	rw    reward.Strategy
	ex    extras.Generator

	deathStrategy   DeathStrategy
	walkableLasers  bool
	randomizeLasers bool

	rngSrc rand.Source
}

// Name returns the adapter's identifier tag.
func (e *Environment) Name() string { return e.name }

// Dims returns the world's row and column counts (original core.py's
// width/height convenience accessors, carried per DESIGN.md).
func (e *Environment) Dims() (rows, cols int) { return e.world.Dims() }

// Width returns the world's column count.
func (e *Environment) Width() int { _, cols := e.world.Dims(); return cols }

// Height returns the world's row count.
func (e *Environment) Height() int { rows, _ := e.world.Dims(); return rows }

// World returns the underlying world, for callers that need direct
// read-only access (e.g. a renderer). Callers must not mutate it.
func (e *Environment) World() *world.World { return e.world }

// AvailableActions returns each agent's locally available actions,
// filtering out moves into a foreign-colour beam cell when
// walkable_lasers is false (spec.md §4.7).
func (e *Environment) AvailableActions() [][]tile.Action {
	raw := e.world.AvailableActions()
	if e.walkableLasers {
		return raw
	}
	beams := e.world.Beams()
	agents := e.world.Agents()
	out := make([][]tile.Action, len(raw))
	for i, actions := range raw {
		agent := agents[i]
		filtered := make([]tile.Action, 0, len(actions))
		for _, a := range actions {
			if a != tile.ActionStay {
				dest := agent.Pos.Add(a.Delta())
				if beams.LethalColourAt(dest, agent.Colour()) {
					continue
				}
			}
			filtered = append(filtered, a)
		}
		out[i] = filtered
	}
	return out
}

// Step forwards actions to the world, applies the death strategy,
// computes reward and the done flag, and materialises observation,
// state, and info (spec.md §4.7).
func (e *Environment) Step(actions []tile.Action) (*observation.PerAgent, world.State, []float64, bool, map[string]any, error) {
	preStep := e.world.GetState()
	events, err := e.world.Step(actions)
	if err != nil {
		return nil, world.State{}, nil, false, nil, err
	}
	if e.deathStrategy == DeathStay {
		if err := e.freezeDeadAgents(preStep, events); err != nil {
			return nil, world.State{}, nil, false, nil, err
		}
	}

	r := e.rw.Compute(events)
	obs := e.obs.Observe(e.world)
	st := e.world.GetState()
	done := e.world.Terminal()
	info := e.info()
	return obs, st, r, done, info, nil
}

// freezeDeadAgents implements the "stay" death strategy: any agent that
// died this step is placed back at its pre-step position, leaving every
// other field of the post-step state untouched.
func (e *Environment) freezeDeadAgents(preStep world.State, events []world.Event) error {
	died := false
	state := e.world.GetState()
	for _, ev := range events {
		if ev.Type == world.AgentDied {
			state.AgentsPositions[ev.AgentID] = preStep.AgentsPositions[ev.AgentID]
			died = true
		}
	}
	if !died {
		return nil
	}
	_, err := e.world.SetState(state)
	return err
}

// info builds the step info map (spec.md §4.7: gems_collected, exit_rate;
// original core.py's same two fields, per DESIGN.md).
func (e *Environment) info() map[string]any {
	nArrived := 0
	for _, a := range e.world.Agents() {
		if a.Arrived {
			nArrived++
		}
	}
	return map[string]any{
		"gems_collected": e.world.GemsCollected(),
		"exit_rate":      float64(nArrived) / float64(e.world.NAgents()),
	}
}

// Reset restores the world's initial state, optionally randomizing laser
// colours first, and resets the reward strategy and extras generator
// (spec.md §4.7).
func (e *Environment) Reset() (*observation.PerAgent, world.State, error) {
	if e.randomizeLasers {
		e.randomizeLaserColours()
	}
	state, err := e.world.Reset()
	if err != nil {
		return nil, world.State{}, err
	}
	e.rw.Reset()
	e.ex.Reset()
	obs := e.obs.Observe(e.world)
	return obs, state, nil
}

func (e *Environment) randomizeLaserColours() {
	n := e.world.NAgents()
	r := rand.New(e.rngSrc)
	for _, src := range e.world.Grid().SourcesIter() {
		src.Colour = r.Intn(n)
	}
}

// SetState validates and installs s, recomputing the reward strategy's
// running counters from the resulting events (spec.md §4.7).
func (e *Environment) SetState(s world.State) ([]world.Event, error) {
	events, err := e.world.SetState(s)
	if err != nil {
		return nil, err
	}
	e.rw.Reset()
	e.rw.Compute(events)
	return events, nil
}

// SetStateVector decodes vec using the adapter's configured state
// generator and installs the resulting world.State (spec.md §4.7: "or a
// feature-vector from the chosen state generator").
func (e *Environment) SetStateVector(vec []float64) ([]world.Event, error) {
	rows, cols := e.world.Dims()
	s := e.state.ToWorldState(vec, e.world.NAgents(), e.world.NGems(), rows, cols)
	return e.world.SetState(s)
}

// Seed reseeds the adapter's own RNG (used for randomize_lasers) and
// forwards to the world's RNG (spec.md §4.7).
func (e *Environment) Seed(seed uint64) {
	e.rngSrc = rand.NewSource(seed)
	e.world.Seed(seed)
}
