package reward

import "github.com/samuelfneumann/lle/world"

// Reward vector indices for MultiObjective (spec.md §4.5).
const (
	IndexGem = iota
	IndexExit
	IndexDeath
	IndexDone
	multiLen
)

// MultiObjective accumulates a length-4 vector indexed {gem, exit, death,
// done}. Death dominates: if any agent died this step, every non-death
// component is zeroed. The done component is added only if every agent
// has arrived (cumulatively) and nobody died this step.
type MultiObjective struct {
	nAgents  int
	nArrived int
}

// NewMultiObjective constructs a MultiObjective strategy for a world with
// nAgents agents.
func NewMultiObjective(nAgents int) *MultiObjective {
	return &MultiObjective{nAgents: nAgents}
}

// Reset zeroes the running arrival counter.
func (m *MultiObjective) Reset() {
	m.nArrived = 0
}

// Compute returns the length-4 reward vector for events.
func (m *MultiObjective) Compute(events []world.Event) []float64 {
	out := make([]float64, multiLen)
	diedThisStep := false
	for _, e := range events {
		switch e.Type {
		case world.GemCollected:
			out[IndexGem] += RewardGem
		case world.AgentExit:
			out[IndexExit] += RewardExit
			m.nArrived++
		case world.AgentDied:
			out[IndexDeath] += RewardDeath
			diedThisStep = true
		}
	}
	if diedThisStep {
		death := out[IndexDeath]
		out = make([]float64, multiLen)
		out[IndexDeath] = death
		return out
	}
	if m.nArrived == m.nAgents {
		out[IndexDone] = RewardDone
	}
	return out
}
