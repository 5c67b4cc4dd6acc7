package simulator

// Machine is a System wired to its own Memory: instructions come from the
// instruction port at PC and loads see the data port in the same cycle.
type Machine struct {
	*System
	Mem *Memory
}

func NewMachine(mem *Memory) *Machine {
	return &Machine{System: NewSystem(), Mem: mem}
}

func (m *Machine) Load(program []uint32) {
	m.Mem.Load(program)
}

// Reset drives a single reset cycle. Memory keeps its contents.
func (m *Machine) Reset() {
	m.System.Step(true, 0, 0)
}

// Cycle runs one clock. The data address does not depend on the read data,
// so the datapath is evaluated once to find it before the real step.
func (m *Machine) Cycle() MemInterface {
	instr := m.Mem.ReadInstr(m.PC())
	addr := m.Eval(instr, 0).Mem.Addr
	mi := m.System.Step(false, instr, m.Mem.ReadData(addr))
	m.Mem.Write(mi.Addr, mi.WData, mi.WE)
	return mi
}

func (m *Machine) Run(cycles int) {
	for i := 0; i < cycles; i++ {
		m.Cycle()
	}
}
