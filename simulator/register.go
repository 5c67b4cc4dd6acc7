package simulator

import "fmt"

// Register is a clocked register of up to 32 bits with active-high reset and
// a clock enable.
type Register struct {
	width uint32
	mask  uint32
	out   uint32
}

func NewRegister(width uint32) *Register {
	if width == 0 || width > 32 {
		panic(fmt.Sprintf("simulator: register width %d out of range", width))
	}
	mask := ^uint32(0)
	if width < 32 {
		mask = (1 << width) - 1
	}
	return &Register{width: width, mask: mask}
}

// Tick applies one clock edge. Reset wins over enable; with neither asserted
// the register holds.
func (r *Register) Tick(reset, enable bool, in uint32) {
	switch {
	case reset:
		r.out = 0
	case enable:
		r.out = in & r.mask
	}
}

func (r *Register) Value() uint32 { return r.out }

func (r *Register) Width() uint32 { return r.width }
