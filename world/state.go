package world

import (
	"encoding/binary"
	"hash/maphash"
	"math"

	"github.com/samuelfneumann/lle/tile"
	"gonum.org/v1/gonum/mat"
)

// State is a structural value capturing everything needed to reproduce a
// world's dynamic state: agent positions, which gems are collected, and
// which agents are alive. Two States with equal fields are interchangeable
// for World.SetState regardless of how they were produced.
type State struct {
	AgentsPositions []tile.Position
	GemsCollected   []bool
	AgentsAlive     []bool
}

// Equal reports structural equality.
func (s State) Equal(o State) bool {
	if len(s.AgentsPositions) != len(o.AgentsPositions) ||
		len(s.GemsCollected) != len(o.GemsCollected) ||
		len(s.AgentsAlive) != len(o.AgentsAlive) {
		return false
	}
	for i := range s.AgentsPositions {
		if s.AgentsPositions[i] != o.AgentsPositions[i] {
			return false
		}
	}
	for i := range s.GemsCollected {
		if s.GemsCollected[i] != o.GemsCollected[i] {
			return false
		}
	}
	for i := range s.AgentsAlive {
		if s.AgentsAlive[i] != o.AgentsAlive[i] {
			return false
		}
	}
	return true
}

// AsArray flattens the state to [positions..., gems..., alive...], with
// positions interleaved (row, col) per agent in agent-id order. This is the
// canonical persisted format referenced by spec.md §6.5.
func (s State) AsArray() *mat.VecDense {
	n := len(s.AgentsPositions)*2 + len(s.GemsCollected) + len(s.AgentsAlive)
	data := make([]float64, 0, n)
	for _, p := range s.AgentsPositions {
		data = append(data, float64(p.Row), float64(p.Col))
	}
	for _, collected := range s.GemsCollected {
		data = append(data, boolToFloat(collected))
	}
	for _, alive := range s.AgentsAlive {
		data = append(data, boolToFloat(alive))
	}
	return mat.NewVecDense(len(data), data)
}

// StateFromArray is AsArray's inverse, given the agent and gem counts.
func StateFromArray(v mat.Vector, nAgents, nGems int) State {
	positions := make([]tile.Position, nAgents)
	for i := 0; i < nAgents; i++ {
		positions[i] = tile.Position{
			Row: int(math.Round(v.AtVec(2 * i))),
			Col: int(math.Round(v.AtVec(2*i + 1))),
		}
	}
	offset := nAgents * 2
	gems := make([]bool, nGems)
	for i := 0; i < nGems; i++ {
		gems[i] = v.AtVec(offset+i) != 0
	}
	offset += nGems
	alive := make([]bool, nAgents)
	for i := 0; i < nAgents; i++ {
		alive[i] = v.AtVec(offset+i) != 0
	}
	return State{AgentsPositions: positions, GemsCollected: gems, AgentsAlive: alive}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// hashSeed is chosen once per process, so Hash values are stable within a
// process; they differ between processes and must not be persisted.
var hashSeed = maphash.MakeSeed()

// Hash returns a structural hash of the state, suitable for use as a map
// key or for deduplicating visited states.
func (s State) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	var buf [8]byte
	writeInt := func(x int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(x)))
		h.Write(buf[:])
	}
	writeBool := func(b bool) {
		if b {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	}
	for _, p := range s.AgentsPositions {
		writeInt(p.Row)
		writeInt(p.Col)
	}
	for _, c := range s.GemsCollected {
		writeBool(c)
	}
	for _, a := range s.AgentsAlive {
		writeBool(a)
	}
	return h.Sum64()
}
