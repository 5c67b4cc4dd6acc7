package simulator

import "github.com/felipedavid/lx32check/isa"

type ResultSrc uint8

const (
	ResultALU ResultSrc = iota
	ResultMem
)

// Control is the per-cycle control bundle. The zero value is inert: no
// register write, no memory write, no branch.
type Control struct {
	AluOp     AluOp
	AluSrcImm bool
	Branch    bool
	MemWrite  bool
	RegWrite  bool
	ResultSrc ResultSrc
}

var funct3ToAluOp = []AluOp{
	0b000: AluAdd,
	0b001: AluSll,
	0b010: AluSlt,
	0b011: AluSltu,
	0b100: AluXor,
	0b101: AluSrl,
	0b110: AluOr,
	0b111: AluAnd,
}

// Resolve maps the opcode and function fields to a control bundle. Opcodes
// the datapath has no path for (LUI, AUIPC, JAL, JALR and anything reserved)
// resolve to the inert bundle.
func Resolve(op isa.Opcode, funct3 uint8, funct7b bool) Control {
	switch op {
	case isa.OpOp:
		ctrl := Control{AluOp: funct3ToAluOp[funct3&7], RegWrite: true}
		if funct7b {
			switch ctrl.AluOp {
			case AluAdd:
				ctrl.AluOp = AluSub
			case AluSrl:
				ctrl.AluOp = AluSra
			}
		}
		return ctrl
	case isa.OpOpImm:
		// There is no SUBI, so only the shift-right pair looks at funct7.
		ctrl := Control{AluOp: funct3ToAluOp[funct3&7], AluSrcImm: true, RegWrite: true}
		if funct7b && ctrl.AluOp == AluSrl {
			ctrl.AluOp = AluSra
		}
		return ctrl
	case isa.OpLoad:
		return Control{AluOp: AluAdd, AluSrcImm: true, RegWrite: true, ResultSrc: ResultMem}
	case isa.OpStore:
		return Control{AluOp: AluAdd, AluSrcImm: true, MemWrite: true}
	case isa.OpBranch:
		return Control{AluOp: AluSub, Branch: true}
	}
	return Control{}
}
