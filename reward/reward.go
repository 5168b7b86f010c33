// Package reward implements the reward strategies of spec.md §4.5:
// SingleObjective, MultiObjective, and the PotentialShapedLLE wrapper
// providing potential-based reward shaping (PBRS).
package reward

import "github.com/samuelfneumann/lle/world"

// Scalar reward constants (spec.md §4.5).
const (
	RewardGem   = 1.0
	RewardExit  = 1.0
	RewardDone  = 1.0
	RewardDeath = -1.0
)

// Strategy computes a reward vector from a step's events. Implementations
// maintain their own running counters (e.g. n_arrived, n_deaths),
// reinitialised by Reset.
type Strategy interface {
	Reset()
	Compute(events []world.Event) []float64
}
