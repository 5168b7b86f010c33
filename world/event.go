package world

import "github.com/samuelfneumann/lle/tile"

// EventType discriminates the kinds of facts a Step can emit.
type EventType int

const (
	AgentExit EventType = iota
	AgentDied
	GemCollected
)

func (t EventType) String() string {
	switch t {
	case AgentExit:
		return "AGENT_EXIT"
	case AgentDied:
		return "AGENT_DIED"
	case GemCollected:
		return "GEM_COLLECTED"
	default:
		return "INVALID"
	}
}

// Event is a discrete fact produced by a world transition. AgentID is
// meaningful for AgentExit and AgentDied; GemPos is meaningful for
// GemCollected.
type Event struct {
	Type    EventType
	AgentID int
	GemPos  tile.Position
}
