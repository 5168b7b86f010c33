package world

import (
	"testing"

	"github.com/samuelfneumann/lle/tile"
)

func singleAgentConfig(g *tile.Grid, start tile.Position) Config {
	return Config{Grid: g, Starts: []StartSet{NewStartSet([]tile.Position{start}, nil)}}
}

func TestResetPlacesAgentAndRecomputesBeams(t *testing.T) {
	g := tile.NewGrid(1, 3)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	state, err := w.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if state.AgentsPositions[0] != (tile.Position{Row: 0, Col: 0}) {
		t.Fatalf("agent placed at %v, want (0,0)", state.AgentsPositions[0])
	}
	if !state.AgentsAlive[0] {
		t.Fatal("agent should be alive after reset")
	}
	if w.Beams() == nil {
		t.Fatal("beams should be computed after reset")
	}
}

func TestStepMovesAgentEast(t *testing.T) {
	g := tile.NewGrid(1, 3)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := w.Agents()[0].Pos; got != (tile.Position{Row: 0, Col: 1}) {
		t.Fatalf("agent position = %v, want (0,1)", got)
	}
}

func TestStepRejectsMoveIntoWall(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Wall)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err == nil {
		t.Fatal("expected error stepping into a wall")
	}
}

func TestStepRejectsVertexConflict(t *testing.T) {
	g := tile.NewGrid(1, 3)
	cfg := Config{Grid: g, Starts: []StartSet{
		NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
		NewStartSet([]tile.Position{{Row: 0, Col: 2}}, nil),
	}}
	w := New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	_, err := w.Step([]tile.Action{tile.ActionEast, tile.ActionWest})
	if err == nil {
		t.Fatal("expected vertex conflict error")
	}
}

func TestStepRejectsEdgeConflict(t *testing.T) {
	g := tile.NewGrid(1, 2)
	cfg := Config{Grid: g, Starts: []StartSet{
		NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
		NewStartSet([]tile.Position{{Row: 0, Col: 1}}, nil),
	}}
	w := New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	_, err := w.Step([]tile.Action{tile.ActionEast, tile.ActionWest})
	if err == nil {
		t.Fatal("expected edge (swap) conflict error")
	}
}

func TestStepCollectsGem(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Gem)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	events, err := w.Step([]tile.Action{tile.ActionEast})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range events {
		if e.Type == GemCollected {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a GemCollected event")
	}
	if !w.GemsCollected()[0] {
		t.Fatal("gem should be marked collected")
	}
}

func TestStepExitArrivesAndTerminates(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Exit)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	events, err := w.Step([]tile.Action{tile.ActionEast})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != AgentExit {
		t.Fatalf("events = %v, want one AgentExit", events)
	}
	if !w.Terminal() {
		t.Fatal("world should be terminal once every agent has arrived")
	}
}

func TestStepVoidKillsAgent(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Void)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	events, err := w.Step([]tile.Action{tile.ActionEast})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != AgentDied {
		t.Fatalf("events = %v, want one AgentDied", events)
	}
	if !w.Terminal() {
		t.Fatal("world should be terminal once an agent has died")
	}
}

func TestStepLaserKillsAgentInPlace(t *testing.T) {
	g := tile.NewGrid(1, 4)
	g.AddSource(tile.NewLaserSource(tile.Position{Row: 0, Col: 3}, 0, tile.West, 1))
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	events, err := w.Step([]tile.Action{tile.ActionStay})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != AgentDied {
		t.Fatalf("events = %v, want one AgentDied (colour 0 agent standing in colour 1 beam)", events)
	}
}

func TestStepAfterTerminalFails(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Exit)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionStay}); err != ErrAlreadyTerminal {
		t.Fatalf("err = %v, want ErrAlreadyTerminal", err)
	}
}

func TestGetStateSetStateRoundTrip(t *testing.T) {
	g := tile.NewGrid(1, 3)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatal(err)
	}
	state := w.GetState()

	w2 := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w2.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w2.SetState(state); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if !w2.GetState().Equal(state) {
		t.Fatal("GetState after SetState does not match the installed state")
	}
}

func TestSetStateRejectsLethalPlacement(t *testing.T) {
	g := tile.NewGrid(1, 4)
	g.AddSource(tile.NewLaserSource(tile.Position{Row: 0, Col: 3}, 0, tile.West, 1))
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	bad := State{
		AgentsPositions: []tile.Position{{Row: 0, Col: 1}},
		GemsCollected:   []bool{},
		AgentsAlive:     []bool{true},
	}
	if _, err := w.SetState(bad); err == nil {
		t.Fatal("expected SetState to reject a position on a lethal foreign beam")
	}
}

func TestSetStateRejectsWrongLengths(t *testing.T) {
	g := tile.NewGrid(1, 2)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	_, err := w.SetState(State{AgentsPositions: []tile.Position{{0, 0}, {0, 1}}})
	if err == nil {
		t.Fatal("expected SetState to reject mismatched agent count")
	}
}

func TestAvailableActionsExcludesOutOfBounds(t *testing.T) {
	g := tile.NewGrid(1, 1)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	actions := w.AvailableActions()[0]
	if len(actions) != 1 || actions[0] != tile.ActionStay {
		t.Fatalf("actions = %v, want only STAY in a 1x1 grid", actions)
	}
}

func TestArrivedAgentIgnoresFurtherActions(t *testing.T) {
	g := tile.NewGrid(1, 2)
	g.Set(tile.Position{Row: 0, Col: 1}, tile.Exit)
	w := New(singleAgentConfig(g, tile.Position{Row: 0, Col: 0}))
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Step([]tile.Action{tile.ActionEast}); err != nil {
		t.Fatal(err)
	}
	// World is terminal after arrival; a second, 1x3 world with two agents
	// stays non-terminal after agent 0 arrives, which lets us confirm that
	// once Arrived, a submitted non-STAY action is harmless rather than
	// erroring.
	g2 := tile.NewGrid(1, 3)
	g2.Set(tile.Position{Row: 0, Col: 1}, tile.Exit)
	cfg := Config{Grid: g2, Starts: []StartSet{
		NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
		NewStartSet([]tile.Position{{Row: 0, Col: 2}}, nil),
	}}
	w2 := New(cfg)
	if _, err := w2.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := w2.Step([]tile.Action{tile.ActionEast, tile.ActionStay}); err != nil {
		t.Fatal(err)
	}
	// Agent 0 has arrived; submitting a non-STAY action for it must not
	// error even though it is ignored. Agent 1 stays put so the arrived
	// agent's parked cell cannot collide with anything.
	if _, err := w2.Step([]tile.Action{tile.ActionWest, tile.ActionStay}); err != nil {
		t.Fatalf("arrived agent's non-STAY action should be harmless: %v", err)
	}
	if w2.Agents()[0].Pos != (tile.Position{Row: 0, Col: 1}) {
		t.Fatal("arrived agent must not move regardless of its submitted action")
	}
}
