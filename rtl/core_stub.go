//go:build !verilator || !cgo

package rtl

import "github.com/felipedavid/lx32check/simulator"

// Core is unavailable in this build.
type Core struct{}

func New() (*Core, error) {
	return nil, ErrUnavailable
}

func (c *Core) Step(reset bool, instr, memRData uint32) simulator.MemInterface {
	panic(ErrUnavailable)
}

func (c *Core) PC() uint32 { panic(ErrUnavailable) }

func (c *Core) Reg(index uint8) uint32 { panic(ErrUnavailable) }
