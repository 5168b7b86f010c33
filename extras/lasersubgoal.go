package extras

import "github.com/samuelfneumann/lle/world"

// pair identifies one (agent, tracked laser source) target, mirroring
// reward.PotentialShapedLLE's sticky-reached bookkeeping.
type pair struct {
	agentID  int
	sourceID int
}

// LaserSubgoal produces one boolean (as 0.0/1.0) per tracked laser source
// per agent: 1 once the agent has ever stood on a beam cell of that
// source since the last Reset, sticky thereafter (spec.md §4.6).
type LaserSubgoal struct {
	sources []int
	reached map[pair]bool
}

// NewLaserSubgoal builds a LaserSubgoal tracking the given laser source
// ids, in the order their flags appear in the output vector.
func NewLaserSubgoal(sources []int) *LaserSubgoal {
	g := &LaserSubgoal{sources: append([]int(nil), sources...)}
	g.Reset()
	return g
}

func (g *LaserSubgoal) Len() int { return len(g.sources) }

func (g *LaserSubgoal) Reset() {
	g.reached = make(map[pair]bool)
}

func (g *LaserSubgoal) Observe(w *world.World) [][]float64 {
	beams := w.Beams()
	for _, a := range w.Agents() {
		if !a.Alive {
			continue
		}
		for _, ov := range beams.At(a.Pos) {
			if g.tracks(ov.SourceID) {
				g.reached[pair{agentID: a.ID, sourceID: ov.SourceID}] = true
			}
		}
	}

	out := make([][]float64, w.NAgents())
	for _, a := range w.Agents() {
		vec := make([]float64, len(g.sources))
		for i, sourceID := range g.sources {
			if g.reached[pair{agentID: a.ID, sourceID: sourceID}] {
				vec[i] = 1
			}
		}
		out[a.ID] = vec
	}
	return out
}

func (g *LaserSubgoal) tracks(sourceID int) bool {
	for _, id := range g.sources {
		if id == sourceID {
			return true
		}
	}
	return false
}
