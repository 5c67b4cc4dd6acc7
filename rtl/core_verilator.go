//go:build verilator && cgo

package rtl

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo LDFLAGS: -L${SRCDIR}/../.sim/lx32_lib -llx32_bridge -lstdc++
#include "lx32_bridge.h"
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/felipedavid/lx32check/simulator"
)

// Core is a handle on one RTL instance. The handle is never freed; the
// bridge has no destroy call and instances live for the whole process.
type Core struct {
	handle unsafe.Pointer
}

func New() (*Core, error) {
	h := C.create_core()
	if h == nil {
		return nil, errors.New("rtl: create_core returned nil")
	}
	return &Core{handle: h}, nil
}

// Step applies the inputs and pulses the clock once.
func (c *Core) Step(reset bool, instr, memRData uint32) simulator.MemInterface {
	var rst C.uint8_t
	if reset {
		rst = 1
	}
	C.tick_core(c.handle, rst, C.uint32_t(instr), C.uint32_t(memRData))
	return simulator.MemInterface{
		Addr:  uint32(C.get_mem_addr(c.handle)),
		WData: uint32(C.get_mem_wdata(c.handle)),
		WE:    C.get_mem_we(c.handle) != 0,
	}
}

func (c *Core) PC() uint32 {
	return uint32(C.get_pc(c.handle))
}

func (c *Core) Reg(index uint8) uint32 {
	if index == 0 || index >= 32 {
		return 0
	}
	return uint32(C.get_reg(c.handle, C.uint8_t(index)))
}
