package simulator

import "fmt"

// MemInterface is what the core drives towards data memory each cycle.
type MemInterface struct {
	Addr  uint32
	WData uint32
	WE    bool
}

func (mi MemInterface) String() string {
	return fmt.Sprintf("addr=0x%08x wdata=0x%08x we=%t", mi.Addr, mi.WData, mi.WE)
}

// LSU wires the execute results to the memory interface. The ALU result is
// the address and rs2 is the store data.
func LSU(aluResult, rs2 uint32, memWrite bool) MemInterface {
	return MemInterface{Addr: aluResult, WData: rs2, WE: memWrite}
}
