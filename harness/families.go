package harness

import (
	"github.com/felipedavid/lx32check/isa"
)

const (
	UnitALU      = "alu"
	UnitBranch   = "branch"
	UnitControl  = "control"
	UnitLSU      = "lsu"
	UnitImmGen   = "immgen"
	UnitMemory   = "memory"
	UnitRegister = "register"
	UnitRegFile  = "regfile"
	UnitSystem   = "system"
)

var allRegs = func() []uint8 {
	regs := make([]uint8, isa.RegCount)
	for i := range regs {
		regs[i] = uint8(i)
	}
	return regs
}()

var branchFunct3 = []uint8{isa.Beq, isa.Bne, isa.Blt, isa.Bge, isa.Bltu, isa.Bgeu}

// Opcodes the control resolver treats as inert, plus a couple of reserved ones.
var inertOpcodes = []isa.Opcode{isa.OpLui, isa.OpAuipc, isa.OpJal, isa.OpJalr, 0b0001111, 0b1110011, 0}

// Families returns every unit in run order.
func Families() []Family {
	return []Family{
		ALU(), Branch(), Control(), LSU(), ImmGen(), Memory(), RegisterUnit(), RegFile(), System(),
	}
}

// Lookup finds a family by unit name.
func Lookup(name string) (Family, bool) {
	for _, f := range Families() {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

func w(regs ...uint32) []uint8 {
	out := make([]uint8, len(regs))
	for i, r := range regs {
		out[i] = uint8(r)
	}
	return out
}

// seed writes a random 12-bit value into a random destination so later
// instructions see non-zero operands.
func seed(g *Gen) Stimulus {
	rd := g.Params.Rd.reg(g.Rand)
	imm := int32(g.Rand.IntN(4096) - 2048)
	return Stimulus{Instr: isa.EncodeI(isa.OpOpImm, rd, 0, 0, imm), Watch: w(rd)}
}

// ALU covers OP-IMM and OP, including SUB, SRA and SRAI.
func ALU() Family {
	return Family{
		Name:    UnitALU,
		Opcodes: []isa.Opcode{isa.OpOpImm, isa.OpOp},
		Compare: all(checkPC, checkRegs),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			rd, rs1 := p.Rd.reg(rng), p.Regs.reg(rng)
			funct3 := uint32(rng.IntN(8))

			if rng.IntN(2) == 0 {
				imm := int32(p.Imm.pick(rng))
				if funct3 == 0b001 || funct3 == 0b101 {
					imm &= 0x1F
					if funct3 == 0b101 && rng.IntN(2) == 0 {
						imm |= int32(isa.Funct7Alt << 5)
					}
				}
				return Stimulus{Instr: isa.EncodeI(isa.OpOpImm, rd, funct3, rs1, imm), Watch: w(rd, rs1)}
			}

			rs2 := p.Regs.reg(rng)
			var funct7 uint32
			if (funct3 == 0b000 || funct3 == 0b101) && rng.IntN(2) == 0 {
				funct7 = isa.Funct7Alt
			}
			return Stimulus{Instr: isa.EncodeR(isa.OpOp, rd, funct3, rs1, rs2, funct7), Watch: w(rd, rs1, rs2)}
		},
	}
}

// Branch covers the six conditions with word-aligned offsets. A quarter of
// the cycles load registers so comparisons see varied operands.
func Branch() Family {
	return Family{
		Name:    UnitBranch,
		Opcodes: []isa.Opcode{isa.OpBranch, isa.OpOpImm},
		Compare: all(checkPC, checkRegs),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			if rng.IntN(4) == 0 {
				return seed(g)
			}
			rs1, rs2 := p.Regs.reg(rng), p.Regs.reg(rng)
			funct3 := uint32(branchFunct3[rng.IntN(len(branchFunct3))])
			offset := int32(p.Offset.pick(rng)) * 4
			return Stimulus{Instr: isa.EncodeB(funct3, rs1, rs2, offset), Watch: w(rs1, rs2)}
		},
	}
}

// Control mixes R, I, S and B words with opcodes the resolver must treat as
// inert.
func Control() Family {
	return Family{
		Name:    UnitControl,
		Compare: all(checkPC, checkRegs, checkMem),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			rd, rs1, rs2 := p.Rd.reg(rng), p.Regs.reg(rng), p.Regs.reg(rng)
			funct3 := uint32(rng.IntN(8))
			var instr uint32

			switch rng.IntN(5) {
			case 0:
				var funct7 uint32
				if rng.IntN(2) == 0 {
					funct7 = isa.Funct7Alt
				}
				instr = isa.EncodeR(isa.OpOp, rd, funct3, rs1, rs2, funct7)
			case 1:
				instr = isa.EncodeI(isa.OpOpImm, rd, funct3, rs1, int32(p.Imm.pick(rng)))
			case 2:
				instr = isa.EncodeS(uint32(isa.Word), rs1, rs2, int32(p.Imm.pick(rng)))
			case 3:
				instr = isa.EncodeB(uint32(branchFunct3[rng.IntN(len(branchFunct3))]), rs1, rs2, int32(p.Offset.pick(rng))*4)
			default:
				op := inertOpcodes[rng.IntN(len(inertOpcodes))]
				instr = rng.Uint32()&^0x7F | uint32(op)
			}

			f := isa.Decode(instr)
			return Stimulus{Instr: instr, Watch: []uint8{f.Rd, f.Rs1, f.Rs2}}
		},
	}
}

// LSU covers LW and SW with random load data and compares the memory
// interface.
func LSU() Family {
	return Family{
		Name:    UnitLSU,
		Opcodes: []isa.Opcode{isa.OpLoad, isa.OpStore, isa.OpOpImm},
		Compare: all(checkPC, checkRegs, checkMem),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			if rng.IntN(4) == 0 {
				return seed(g)
			}
			rd, rs1, rs2 := p.Rd.reg(rng), p.Regs.reg(rng), p.Regs.reg(rng)
			imm := int32(p.Imm.pick(rng))
			rdata := rng.Uint32()
			if rng.IntN(2) == 0 {
				return Stimulus{
					Instr:    isa.EncodeI(isa.OpLoad, rd, uint32(isa.Word), rs1, imm),
					MemRData: rdata,
					Watch:    w(rd, rs1),
				}
			}
			return Stimulus{
				Instr:    isa.EncodeS(uint32(isa.Word), rs1, rs2, imm),
				MemRData: rdata,
				Watch:    w(rs1, rs2),
			}
		},
	}
}

// ImmGen checks each immediate format through an instruction whose result
// depends only on it: ADDI from x0, SW to x0-relative addresses, and BEQ
// x0, x0 which is always taken.
func ImmGen() Family {
	return Family{
		Name:    UnitImmGen,
		Opcodes: []isa.Opcode{isa.OpOpImm, isa.OpStore, isa.OpBranch},
		Compare: all(checkPC, checkRegs, checkMem),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			rd, rs2 := p.Rd.reg(rng), p.Regs.reg(rng)
			imm := int32(p.Imm.pick(rng))

			switch rng.IntN(3) {
			case 0:
				return Stimulus{Instr: isa.EncodeI(isa.OpOpImm, rd, 0, 0, imm), Watch: w(rd)}
			case 1:
				return Stimulus{Instr: isa.EncodeS(uint32(isa.Word), 0, rs2, imm), Watch: w(rs2)}
			}
			offset := int32(p.Offset.pick(rng)) * 4
			return Stimulus{Instr: isa.EncodeB(uint32(isa.Beq), 0, 0, offset), Watch: w(rd)}
		},
	}
}

// Memory stores and loads through a data memory owned by each side. Load
// data comes from the golden memory so both cores see the same input; the
// read-back comparison catches stores that land differently.
func Memory() Family {
	return Family{
		Name:    UnitMemory,
		Opcodes: []isa.Opcode{isa.OpLoad, isa.OpStore, isa.OpOpImm},
		Compare: all(checkPC, checkRegs, checkMem, checkReadBack),
		Next: func(g *Gen) Stimulus {
			p, rng, b := g.Params, g.Rand, g.Bench
			if rng.IntN(3) == 0 {
				return seed(g)
			}
			rd, rs1, rs2 := p.Rd.reg(rng), p.Regs.reg(rng), p.Regs.reg(rng)
			imm := int32(p.Imm.pick(rng))
			if rng.IntN(2) == 0 {
				return Stimulus{Instr: isa.EncodeS(uint32(isa.Word), rs1, rs2, imm), Watch: w(rs1, rs2)}
			}
			instr := isa.EncodeI(isa.OpLoad, rd, uint32(isa.Word), rs1, imm)
			addr := b.Golden.Reg(uint8(rs1)) + isa.IImmediate(instr)
			return Stimulus{Instr: instr, MemRData: b.GoldenMem.ReadData(addr), Watch: w(rd, rs1)}
		},
	}
}

// RegisterUnit checks the generic clocked register against its behavioural
// definition: reset clears, enable loads, otherwise hold.
func RegisterUnit() Family {
	return Family{
		Name:    UnitRegister,
		Compare: checkRegs,
		Next: func(g *Gen) Stimulus {
			op := g.Rand.IntN(3)
			return Stimulus{Reset: op == 0, Enable: op == 1, Data: uint32(g.Params.Data.pick(g.Rand))}
		},
		Exec: func(b *Bench, st Stimulus) (gold, ref Snapshot) {
			b.Latch.Tick(st.Reset, st.Enable, st.Data)
			switch {
			case st.Reset:
				b.expect = 0
			case st.Enable:
				b.expect = st.Data
			}
			gold.Regs = []RegValue{{Value: b.Latch.Value()}}
			ref.Regs = []RegValue{{Value: b.expect}}
			return gold, ref
		},
	}
}

// RegFile writes every destination, x0 included, and compares the whole
// register file after each cycle.
func RegFile() Family {
	return Family{
		Name:    UnitRegFile,
		Opcodes: []isa.Opcode{isa.OpOpImm},
		Compare: all(checkPC, checkRegs),
		Next: func(g *Gen) Stimulus {
			p, rng := g.Params, g.Rand
			if g.Iteration == 0 {
				return Stimulus{Reset: true, Watch: allRegs}
			}
			rd, rs1 := p.Rd.reg(rng), p.Regs.reg(rng)
			instr := isa.EncodeI(isa.OpOpImm, rd, 0, rs1, int32(p.Imm.pick(rng)))
			return Stimulus{Instr: instr, Watch: allRegs}
		},
	}
}

// System throws arbitrary words and load data at the whole core, with a
// reset on the first cycle and every so often after.
func System() Family {
	return Family{
		Name:    UnitSystem,
		Compare: all(checkPC, checkRegs, checkMem),
		Next: func(g *Gen) Stimulus {
			rng := g.Rand
			reset := g.Iteration == 0 || rng.IntN(64) == 0
			return Stimulus{Reset: reset, Instr: rng.Uint32(), MemRData: rng.Uint32(), Watch: allRegs}
		},
	}
}
