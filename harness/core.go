// Package harness drives the golden model and a reference core in lockstep
// and stops at the first cycle where their architectural state differs.
package harness

import "github.com/felipedavid/lx32check/simulator"

// Core is the step/inspect contract shared by the golden model and any
// reference implementation. Calls are blocking and must not overlap.
type Core interface {
	Step(reset bool, instr, memRData uint32) simulator.MemInterface
	PC() uint32
	Reg(index uint8) uint32
}

// Factory creates a fresh core in its power-on state.
type Factory func() (Core, error)

// Golden returns a Factory over the software model.
func Golden() Factory {
	return func() (Core, error) {
		return simulator.NewSystem(), nil
	}
}
