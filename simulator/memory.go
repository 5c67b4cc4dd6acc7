package simulator

import "fmt"

// DefaultWords is 4 KiB of 32-bit words.
const DefaultWords = 1024

// Memory is a word-addressed store shared by an instruction port and a data
// port. Byte addresses are masked to the capacity and the low two bits are
// dropped; misaligned addresses are not reported.
type Memory struct {
	ram  []uint32
	mask uint32
}

// NewMemory allocates words 32-bit words. words must be a power of two.
func NewMemory(words int) *Memory {
	if words <= 0 || words&(words-1) != 0 {
		panic(fmt.Sprintf("simulator: memory size %d is not a power of two", words))
	}
	return &Memory{
		ram:  make([]uint32, words),
		mask: uint32(words*4 - 1),
	}
}

func (m *Memory) index(addr uint32) uint32 {
	return (addr & m.mask) >> 2
}

// Load copies program into memory starting at word 0. Words past the end of
// memory are dropped.
func (m *Memory) Load(program []uint32) {
	copy(m.ram, program)
}

func (m *Memory) ReadInstr(addr uint32) uint32 {
	return m.ram[m.index(addr)]
}

func (m *Memory) ReadData(addr uint32) uint32 {
	return m.ram[m.index(addr)]
}

// Write is the clock edge of the data port.
func (m *Memory) Write(addr, data uint32, we bool) {
	if we {
		m.ram[m.index(addr)] = data
	}
}

func (m *Memory) Words() int { return len(m.ram) }
