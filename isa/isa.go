// Package isa holds the RV32I instruction-word layout: field extraction,
// immediate reconstruction and the encoders used to build stimulus.
package isa

// Opcode is the low 7 bits of an instruction word.
type Opcode uint8

const (
	OpLoad   Opcode = 0b0000011 // LB, LH, LW, LBU, LHU
	OpOpImm  Opcode = 0b0010011 // ADDI, SLTI, SLTIU, XORI, ORI, ANDI, SLLI, SRLI, SRAI
	OpAuipc  Opcode = 0b0010111
	OpStore  Opcode = 0b0100011 // SB, SH, SW
	OpOp     Opcode = 0b0110011 // ADD, SUB, SLL, SLT, SLTU, XOR, SRL, SRA, OR, AND
	OpLui    Opcode = 0b0110111
	OpBranch Opcode = 0b1100011 // BEQ, BNE, BLT, BGE, BLTU, BGEU
	OpJalr   Opcode = 0b1100111
	OpJal    Opcode = 0b1101111
)

var opcodeNames = map[Opcode]string{
	OpLoad:   "LOAD",
	OpOpImm:  "OP-IMM",
	OpAuipc:  "AUIPC",
	OpStore:  "STORE",
	OpOp:     "OP",
	OpLui:    "LUI",
	OpBranch: "BRANCH",
	OpJalr:   "JALR",
	OpJal:    "JAL",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "INVALID"
}

// Branch conditions live in funct3.
const (
	Beq  uint8 = 0b000
	Bne  uint8 = 0b001
	Blt  uint8 = 0b100
	Bge  uint8 = 0b101
	Bltu uint8 = 0b110
	Bgeu uint8 = 0b111
)

// Word is the funct3 of LW and SW.
const Word uint8 = 0b010

const (
	// Funct7Alt is the funct7 value selecting SUB and SRA/SRAI.
	Funct7Alt uint32 = 0b0100000

	RegCount = 32
)

// Fields are the decoded register and function fields of an instruction.
// Nothing is validated; reserved encodings come through unchanged.
type Fields struct {
	Opcode  Opcode
	Funct3  uint8
	Funct7b bool // instr[30]
	Rs1     uint8
	Rs2     uint8
	Rd      uint8
}

func bits(data, start, length uint32) uint32 {
	return (data >> start) & ((1 << length) - 1)
}

func signExtend(x, width uint32) uint32 {
	return uint32(int32(x<<(32-width)) >> (32 - width))
}

func Decode(instr uint32) Fields {
	return Fields{
		Opcode:  Opcode(bits(instr, 0, 7)),
		Rd:      uint8(bits(instr, 7, 5)),
		Funct3:  uint8(bits(instr, 12, 3)),
		Rs1:     uint8(bits(instr, 15, 5)),
		Rs2:     uint8(bits(instr, 20, 5)),
		Funct7b: bits(instr, 30, 1) == 1,
	}
}

// OpcodeOf is a shortcut for Decode(instr).Opcode.
func OpcodeOf(instr uint32) Opcode {
	return Opcode(bits(instr, 0, 7))
}
