// Package simulator is the cycle-level golden model of the LX32 single-cycle
// RV32I core: every combinational block as a pure function, plus the three
// pieces of sequential state (PC, register file, memory).
package simulator

import "github.com/felipedavid/lx32check/isa"

// Datapath is every combinational signal of one cycle, computed from the
// current state and the cycle inputs.
type Datapath struct {
	Instr  uint32
	Fields isa.Fields
	Ctrl   Control
	Imm    uint32

	Rs1Val uint32
	Rs2Val uint32
	AluB   uint32

	AluResult   uint32
	BranchTaken bool
	WriteBack   uint32

	NextPC uint32
	Mem    MemInterface
}

// System is the core without memory. Memory read data comes in with each
// step and the memory interface goes out, so the caller owns memory.
type System struct {
	pc   *Register
	regs RegisterFile
}

func NewSystem() *System {
	return &System{pc: NewRegister(32)}
}

// Eval computes one cycle without touching state.
func (s *System) Eval(instr, memRData uint32) Datapath {
	f := isa.Decode(instr)
	d := Datapath{
		Instr:  instr,
		Fields: f,
		Ctrl:   Resolve(f.Opcode, f.Funct3, f.Funct7b),
		Imm:    isa.Immediate(instr),
		Rs1Val: s.regs.ReadRs1(f.Rs1),
		Rs2Val: s.regs.ReadRs2(f.Rs2),
	}

	d.AluB = d.Rs2Val
	if d.Ctrl.AluSrcImm {
		d.AluB = d.Imm
	}
	d.AluResult = ALU(d.Rs1Val, d.AluB, d.Ctrl.AluOp)

	// Branches compare the register operands, never the muxed ALU input.
	d.BranchTaken = Branch(d.Rs1Val, d.Rs2Val, d.Ctrl.Branch, BranchOp(f.Funct3))

	d.WriteBack = d.AluResult
	if d.Ctrl.ResultSrc == ResultMem {
		d.WriteBack = memRData
	}

	pc := s.pc.Value()
	d.NextPC = pc + 4
	if d.BranchTaken {
		d.NextPC = pc + d.Imm
	}

	d.Mem = LSU(d.AluResult, d.Rs2Val, d.Ctrl.MemWrite)
	return d
}

// Step applies one clock edge. With reset asserted PC and registers clear and
// the memory interface is idle.
func (s *System) Step(reset bool, instr, memRData uint32) MemInterface {
	if reset {
		s.pc.Tick(true, false, 0)
		s.regs.Tick(true, 0, 0, false)
		return MemInterface{}
	}

	d := s.Eval(instr, memRData)
	s.commit(d)
	return d.Mem
}

func (s *System) commit(d Datapath) {
	s.regs.Tick(false, d.Fields.Rd, d.WriteBack, d.Ctrl.RegWrite)
	s.pc.Tick(false, true, d.NextPC)
}

func (s *System) PC() uint32 { return s.pc.Value() }

// Reg reads a register for inspection. Index 0 and indices past x31 read 0.
func (s *System) Reg(index uint8) uint32 { return s.regs.ReadRs1(index) }

func (s *System) Registers() [isa.RegCount]uint32 { return s.regs.Snapshot() }
