package env

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/lle/extras"
	"github.com/samuelfneumann/lle/observation"
	"github.com/samuelfneumann/lle/render"
	"github.com/samuelfneumann/lle/reward"
	"github.com/samuelfneumann/lle/world"
)

// ObsKind selects a recognised observation/state generator by name
// (spec.md §6.4 obs_type/state_type).
type ObsKind string

const (
	ObsLayered         ObsKind = "layered"
	ObsLayeredPadded   ObsKind = "layered_padded"
	ObsFlattened       ObsKind = "flattened"
	ObsRGBImage        ObsKind = "rgb_image"
	ObsState           ObsKind = "state"
	ObsNormalizedState ObsKind = "normalized_state"
	ObsPartial3        ObsKind = "partial3"
	ObsPartial5        ObsKind = "partial5"
	ObsPartial7        ObsKind = "partial7"
	ObsAgentZero       ObsKind = "agent_zero"
)

// Builder assembles an Environment from a world.Config plus chained
// configuration options (spec.md §6.4). Zero value is not usable; start
// from NewBuilder.
type Builder struct {
	cfg  world.Config
	name string

	obsKind  ObsKind
	obsPad   int
	renderer render.Renderer

	stateKind ObsKind

	deathStrategy  DeathStrategy
	deathRejected  string // set when death_strategy names an unimplemented option
	walkableLasers bool

	objectiveSingle bool
	objectiveMulti  bool

	pbrsSet    bool
	pbrsGamma  float64
	pbrsV      float64
	pbrsLasers []int
	pbrsExtras bool
	randomize  bool

	useLaserSubgoal     bool
	pbrsLasersForExtras []int

	extraGens []extras.Generator
}

// NewBuilder starts a Builder from an already-parsed world configuration.
func NewBuilder(cfg world.Config) *Builder {
	return &Builder{
		cfg:            cfg,
		obsKind:        ObsLayered,
		stateKind:      ObsState,
		deathStrategy:  DeathEnd,
		walkableLasers: false,
	}
}

// ObsType selects the observation generator (spec.md §6.4 obs_type).
func (b *Builder) ObsType(kind ObsKind) *Builder {
	b.obsKind = kind
	return b
}

// Pad sets the phantom-channel count for ObsLayeredPadded.
func (b *Builder) Pad(k int) *Builder {
	b.obsPad = k
	return b
}

// Renderer sets the render.Renderer used by ObsRGBImage, defaulting to
// render.TileRenderer{} when unset.
func (b *Builder) Renderer(r render.Renderer) *Builder {
	b.renderer = r
	return b
}

// StateType selects the generator used for the adapter's secondary
// "state" output (spec.md §6.4 state_type): ObsState or
// ObsNormalizedState.
func (b *Builder) StateType(kind ObsKind) *Builder {
	b.stateKind = kind
	return b
}

// DeathStrategyOption sets the terminal-death policy by name: "end",
// "stay" (supplemented, see DESIGN.md), or "respawn" (reserved, rejected
// at Build).
func (b *Builder) DeathStrategyOption(name string) *Builder {
	switch name {
	case "end":
		b.deathStrategy = DeathEnd
	case "stay":
		b.deathStrategy = DeathStay
	default:
		b.deathRejected = name
	}
	return b
}

// WalkableLasers toggles whether AvailableActions permits stepping into a
// foreign-colour beam cell (spec.md §6.4).
func (b *Builder) WalkableLasers(v bool) *Builder {
	b.walkableLasers = v
	return b
}

// Name tags the built Environment with an identifier.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// SingleObjective selects the single-objective reward strategy
// (mutually exclusive with MultiObjective).
func (b *Builder) SingleObjective() *Builder {
	b.objectiveSingle = true
	return b
}

// MultiObjective selects the multi-objective reward strategy (mutually
// exclusive with SingleObjective).
func (b *Builder) MultiObjective() *Builder {
	b.objectiveMulti = true
	return b
}

// PBRS wraps the selected reward strategy in potential-based shaping.
// lasers, when nil, tracks every laser source in the grid
// (lasers_to_reward=all). withExtras additionally wires a LaserSubgoal
// extras generator tracking the same laser set.
func (b *Builder) PBRS(gamma, v float64, lasers []int, withExtras bool) *Builder {
	b.pbrsSet = true
	b.pbrsGamma = gamma
	b.pbrsV = v
	b.pbrsLasers = lasers
	b.pbrsExtras = withExtras
	return b
}

// RandomizeLasers enables per-reset uniform-random source colours.
func (b *Builder) RandomizeLasers() *Builder {
	b.randomize = true
	return b
}

// AddExtras appends a custom extras.Generator (spec.md §6.4
// add_extras(generator)).
func (b *Builder) AddExtras(g extras.Generator) *Builder {
	b.extraGens = append(b.extraGens, g)
	return b
}

// AddLaserSubgoal appends the built-in LaserSubgoal extras generator
// (spec.md §6.4 add_extras("laser_subgoal")). lasers, when nil, tracks
// every laser source in the grid.
func (b *Builder) AddLaserSubgoal(lasers []int) *Builder {
	b.pbrsLasersForExtras = lasers
	b.useLaserSubgoal = true
	return b
}

// Build validates the accumulated options and constructs the Environment.
func (b *Builder) Build() (*Environment, error) {
	if b.deathRejected != "" {
		return nil, newBuildError("death_strategy %q is not implemented (respawn is reserved)", b.deathRejected)
	}
	if b.objectiveSingle && b.objectiveMulti {
		return nil, newBuildError("single_objective and multi_objective are mutually exclusive")
	}

	w := world.New(b.cfg)
	allSources := func() []int {
		srcs := w.Grid().SourcesIter()
		ids := make([]int, len(srcs))
		for i, s := range srcs {
			ids[i] = s.ID
		}
		return ids
	}

	var strat reward.Strategy
	if b.objectiveMulti {
		strat = reward.NewMultiObjective(w.NAgents())
	} else {
		strat = reward.NewSingleObjective(w.NAgents())
	}
	if b.pbrsSet {
		lasers := b.pbrsLasers
		if lasers == nil {
			lasers = allSources()
		}
		strat = reward.NewPotentialShapedLLE(strat, w, b.pbrsGamma, b.pbrsV, lasers)
	}

	var extraGens []extras.Generator
	extraGens = append(extraGens, b.extraGens...)
	if b.pbrsSet && b.pbrsExtras {
		lasers := b.pbrsLasers
		if lasers == nil {
			lasers = allSources()
		}
		extraGens = append(extraGens, extras.NewLaserSubgoal(lasers))
	}
	if b.useLaserSubgoal {
		lasers := b.pbrsLasersForExtras
		if lasers == nil {
			lasers = allSources()
		}
		extraGens = append(extraGens, extras.NewLaserSubgoal(lasers))
	}
	var ex extras.Generator
	switch len(extraGens) {
	case 0:
		ex = extras.NoExtras{}
	case 1:
		ex = extraGens[0]
	default:
		ex = extras.MultiGenerator{Children: extraGens}
	}

	obsGen, err := b.buildObsGenerator(w)
	if err != nil {
		return nil, err
	}

	stateGen := observation.StateGenerator{Normalize: b.stateKind == ObsNormalizedState}

	env := &Environment{
		name:            b.name,
		world:           w,
		obs:             obsGen,
		state:           stateGen,
		rw:              strat,
		ex:              ex,
		deathStrategy:   b.deathStrategy,
		walkableLasers:  b.walkableLasers,
		randomizeLasers: b.randomize,
		rngSrc:          rand.NewSource(b.cfg.Seed),
	}
	return env, nil
}

func (b *Builder) buildObsGenerator(w *world.World) (observation.Generator, error) {
	switch b.obsKind {
	case ObsLayered:
		return observation.Layered{}, nil
	case ObsLayeredPadded:
		return observation.Layered{Pad: b.obsPad}, nil
	case ObsFlattened:
		return observation.Flattened{}, nil
	case ObsRGBImage:
		r := b.renderer
		if r == nil {
			r = render.TileRenderer{}
		}
		return observation.RGBImage{Renderer: r}, nil
	case ObsState:
		return observation.StateGenerator{}, nil
	case ObsNormalizedState:
		return observation.NormalizedState(), nil
	case ObsPartial3:
		return observation.PartialGenerator{K: 3}, nil
	case ObsPartial5:
		return observation.PartialGenerator{K: 5}, nil
	case ObsPartial7:
		return observation.PartialGenerator{K: 7}, nil
	case ObsAgentZero:
		return observation.AgentZeroPerspective{}, nil
	default:
		return nil, newBuildError("obs_type %q is not recognised", b.obsKind)
	}
}
