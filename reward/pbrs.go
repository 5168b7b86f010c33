package reward

import "github.com/samuelfneumann/lle/world"

// pair identifies one (agent, tracked laser source) target.
type pair struct {
	agentID  int
	sourceID int
}

// PotentialShapedLLE wraps a Strategy with potential-based reward shaping
// (spec.md §4.5). The potential Φ(s) = v × (total target cells − number
// of (agent, laser-target-cell) pairs reached so far), where a pair is
// "reached" the first time the agent stands on a beam cell of that
// source (sticky, like LaserSubgoal). Each step adds the shaping term
// γ·Φ(s_{t-1}) − Φ(s_t): to the scalar reward for a single-objective
// wrapped strategy, or as an extra trailing dimension for a
// multi-objective one.
type PotentialShapedLLE struct {
	wrapped Strategy
	w       *world.World
	gamma   float64
	v       float64
	sources []int
	multi   bool

	totalTargets int
	reached      map[pair]bool
	prevPhi      float64
}

// NewPotentialShapedLLE builds a PBRS wrapper around wrapped, observing
// w, with discount gamma, potential scale v, and the set of laser source
// ids to track (lasers_to_reward).
func NewPotentialShapedLLE(wrapped Strategy, w *world.World, gamma, v float64, sources []int) *PotentialShapedLLE {
	_, isMulti := wrapped.(*MultiObjective)
	p := &PotentialShapedLLE{
		wrapped:      wrapped,
		w:            w,
		gamma:        gamma,
		v:            v,
		sources:      append([]int(nil), sources...),
		multi:        isMulti,
		totalTargets: w.NAgents() * len(sources),
	}
	p.Reset()
	return p
}

// Reset reinitialises the wrapped strategy, the sticky reached set, and
// Φ to its value with nothing yet reached.
func (p *PotentialShapedLLE) Reset() {
	p.wrapped.Reset()
	p.reached = make(map[pair]bool)
	p.prevPhi = p.phi()
}

// phi computes the current potential from the reached set.
func (p *PotentialShapedLLE) phi() float64 {
	return p.v * float64(p.totalTargets-len(p.reached))
}

// Compute updates the sticky reached set from the world's current
// (post-step) beam field and agent positions, computes the shaping term,
// and folds it into the wrapped strategy's reward vector.
func (p *PotentialShapedLLE) Compute(events []world.Event) []float64 {
	base := p.wrapped.Compute(events)

	beams := p.w.Beams()
	for _, a := range p.w.Agents() {
		if !a.Alive {
			continue
		}
		for _, ov := range beams.At(a.Pos) {
			if !p.tracks(ov.SourceID) {
				continue
			}
			p.reached[pair{agentID: a.ID, sourceID: ov.SourceID}] = true
		}
	}

	newPhi := p.phi()
	shaping := p.gamma*p.prevPhi - newPhi
	p.prevPhi = newPhi

	if p.multi {
		return append(base, shaping)
	}
	base[0] += shaping
	return base
}

func (p *PotentialShapedLLE) tracks(sourceID int) bool {
	for _, id := range p.sources {
		if id == sourceID {
			return true
		}
	}
	return false
}
