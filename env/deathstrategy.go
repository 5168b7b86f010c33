package env

// DeathStrategy selects what happens to a dead agent's position on
// subsequent steps (spec.md §6.4, supplemented per DESIGN.md).
type DeathStrategy int

const (
	// DeathEnd leaves a dead agent exactly where the laser killed it; the
	// episode is terminal the instant any agent dies (spec.md §4.3/§6.4).
	DeathEnd DeathStrategy = iota
	// DeathStay freezes a dead agent back at its pre-step position, as if
	// the fatal move never happened, matching the original implementation's
	// DeathStrategy.STAY (see DESIGN.md).
	DeathStay
)

func (d DeathStrategy) String() string {
	switch d {
	case DeathEnd:
		return "end"
	case DeathStay:
		return "stay"
	default:
		return "invalid"
	}
}
