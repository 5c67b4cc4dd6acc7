package harness

import (
	"fmt"
	"math/rand/v2"
)

// Range is the half-open interval [Lo, Hi).
type Range struct {
	Lo, Hi int64
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Lo, r.Hi)
}

func (r Range) pick(rng *rand.Rand) int64 {
	if r.Hi <= r.Lo {
		return r.Lo
	}
	return r.Lo + rng.Int64N(r.Hi-r.Lo)
}

func (r Range) reg(rng *rand.Rand) uint32 {
	return uint32(r.pick(rng)) & 31
}

// Params is the per-unit fuzz configuration.
type Params struct {
	Iterations  int
	Seed        uint64
	ResetCycles int

	Regs   Range // source register indices
	Rd     Range // destination register indices
	Imm    Range // signed 12-bit immediates
	Offset Range // branch offsets in words
	Data   Range // register and memory data
}

const defaultSeed = 0x1a32

var unitIterations = map[string]int{
	UnitALU:      3000,
	UnitBranch:   10000,
	UnitControl:  500,
	UnitLSU:      2000,
	UnitImmGen:   2000,
	UnitMemory:   1000,
	UnitRegister: 2000,
	UnitRegFile:  2000,
	UnitSystem:   500,
}

// Defaults returns the standard settings for a unit. Unknown units get the
// common ranges and 100 iterations.
func Defaults(unit string) Params {
	p := Params{
		Iterations:  100,
		Seed:        defaultSeed,
		ResetCycles: 10,
		Regs:        Range{0, 32},
		Rd:          Range{1, 32},
		Imm:         Range{-2048, 2048},
		Offset:      Range{-32, 32},
		Data:        Range{0, 1 << 32},
	}
	if n, ok := unitIterations[unit]; ok {
		p.Iterations = n
	}
	switch unit {
	case UnitALU:
		p.Imm = Range{0, 4096}
	case UnitImmGen:
		p.Offset = Range{-512, 512}
	case UnitMemory:
		// A handful of base registers keeps stores and loads colliding.
		p.Regs = Range{0, 8}
		p.Rd = Range{1, 8}
		p.Imm = Range{0, 4096}
	case UnitRegFile:
		p.Rd = Range{0, 32}
	}
	return p
}

func (p Params) rng() *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
}
