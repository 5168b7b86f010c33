package reward

import "github.com/samuelfneumann/lle/world"

// SingleObjective sums REWARD_GEM/REWARD_EXIT/REWARD_DEATH over a step's
// events into a length-1 vector, adding REWARD_DONE once when every agent
// has arrived. Death dominates: if any agent died this step, the result
// is the death sum alone, with no gem/exit/done bonus (spec.md §4.5).
type SingleObjective struct {
	nAgents  int
	nArrived int
	nDeaths  int
}

// NewSingleObjective constructs a SingleObjective strategy for a world
// with nAgents agents.
func NewSingleObjective(nAgents int) *SingleObjective {
	return &SingleObjective{nAgents: nAgents}
}

// Reset zeroes the running arrival/death counters.
func (s *SingleObjective) Reset() {
	s.nArrived = 0
	s.nDeaths = 0
}

// Compute returns the length-1 reward vector for events.
func (s *SingleObjective) Compute(events []world.Event) []float64 {
	var gemSum, exitSum, deathSum float64
	diedThisStep := false
	for _, e := range events {
		switch e.Type {
		case world.GemCollected:
			gemSum += RewardGem
		case world.AgentExit:
			exitSum += RewardExit
			s.nArrived++
		case world.AgentDied:
			deathSum += RewardDeath
			s.nDeaths++
			diedThisStep = true
		}
	}
	if diedThisStep {
		return []float64{deathSum}
	}
	total := gemSum + exitSum
	if s.nArrived == s.nAgents {
		total += RewardDone
	}
	return []float64{total}
}
