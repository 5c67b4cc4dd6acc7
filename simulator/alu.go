package simulator

import "fmt"

type AluOp uint8

const (
	AluAdd AluOp = iota
	AluSub
	AluSll
	AluSrl
	AluSra
	AluSlt
	AluSltu
	AluXor
	AluOr
	AluAnd
)

var aluOpNames = []string{
	AluAdd:  "ADD",
	AluSub:  "SUB",
	AluSll:  "SLL",
	AluSrl:  "SRL",
	AluSra:  "SRA",
	AluSlt:  "SLT",
	AluSltu: "SLTU",
	AluXor:  "XOR",
	AluOr:   "OR",
	AluAnd:  "AND",
}

func (op AluOp) String() string {
	if int(op) < len(aluOpNames) {
		return aluOpNames[op]
	}
	return fmt.Sprintf("AluOp(%d)", uint8(op))
}

const shiftMask uint32 = (1 << 5) - 1

// ALU is the combinational arithmetic/logic unit. Add and sub wrap, shifts
// only look at b[4:0], comparisons produce 0 or 1.
func ALU(a, b uint32, op AluOp) uint32 {
	shamt := b & shiftMask

	switch op {
	case AluAdd:
		return a + b
	case AluSub:
		return a - b
	case AluSll:
		return a << shamt
	case AluSrl:
		return a >> shamt
	case AluSra:
		return uint32(int32(a) >> shamt)
	case AluSlt:
		return b2u(int32(a) < int32(b))
	case AluSltu:
		return b2u(a < b)
	case AluXor:
		return a ^ b
	case AluOr:
		return a | b
	case AluAnd:
		return a & b
	}
	return 0
}

func b2u(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
