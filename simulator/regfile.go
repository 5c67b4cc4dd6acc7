package simulator

import "github.com/felipedavid/lx32check/isa"

// RegisterFile holds x0..x31. x0 reads as zero no matter what was written.
type RegisterFile struct {
	regs [isa.RegCount]uint32
}

func (rf *RegisterFile) read(index uint8) uint32 {
	if index == 0 || int(index) >= len(rf.regs) {
		return 0
	}
	return rf.regs[index]
}

// ReadRs1 is the first asynchronous read port.
func (rf *RegisterFile) ReadRs1(index uint8) uint32 {
	return rf.read(index)
}

// ReadRs2 is the second asynchronous read port.
func (rf *RegisterFile) ReadRs2(index uint8) uint32 {
	return rf.read(index)
}

// Tick is the clock edge of the write port.
func (rf *RegisterFile) Tick(reset bool, rd uint8, data uint32, we bool) {
	if reset {
		rf.regs = [isa.RegCount]uint32{}
		return
	}
	if we && rd != 0 && int(rd) < len(rf.regs) {
		rf.regs[rd] = data
	}
}

func (rf *RegisterFile) Snapshot() [isa.RegCount]uint32 {
	snap := rf.regs
	snap[0] = 0
	return snap
}
