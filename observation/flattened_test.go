package observation

import (
	"testing"

	"github.com/samuelfneumann/lle/tile"
	"github.com/samuelfneumann/lle/world"
)

func TestFlattenedShapeForIsProductOfLayeredShape(t *testing.T) {
	l := Layered{}
	layeredShape := l.ShapeFor(1, 2, 3)
	want := layeredShape[0] * layeredShape[1] * layeredShape[2]

	f := Flattened{Layered: l}
	got := f.ShapeFor(1, 2, 3)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("ShapeFor() = %v, want [%d]", got, want)
	}
}

func TestFlattenedObserveMatchesLayeredData(t *testing.T) {
	w := buildTestWorld(t)
	l := Layered{}
	layered := l.Observe(w)

	f := Flattened{Layered: l}
	flat := f.Observe(w)

	if len(flat.Agent[0].Data) != len(layered.Agent[0].Data) {
		t.Fatalf("flattened length = %d, want %d", len(flat.Agent[0].Data), len(layered.Agent[0].Data))
	}
	for i, v := range layered.Agent[0].Data {
		if flat.Agent[0].Data[i] != v {
			t.Fatalf("Data[%d] = %v, want %v", i, flat.Agent[0].Data[i], v)
		}
	}
}

func TestFlattenedObserveDedupesSharedBroadcastTensor(t *testing.T) {
	g := tile.NewGrid(1, 2)
	cfg := world.Config{Grid: g, Starts: []world.StartSet{
		world.NewStartSet([]tile.Position{{Row: 0, Col: 0}}, nil),
		world.NewStartSet([]tile.Position{{Row: 0, Col: 1}}, nil),
	}}
	w := world.New(cfg)
	if _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	f := Flattened{Layered: Layered{}}
	out := f.Observe(w)
	if len(out.Agent) != 2 {
		t.Fatalf("len(Agent) = %d, want 2", len(out.Agent))
	}
	if out.Agent[0] != out.Agent[1] {
		t.Error("Flattened.Observe should flatten the shared Layered tensor once and reuse it for every agent")
	}
}
