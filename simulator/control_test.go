package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felipedavid/lx32check/isa"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		desc    string
		op      isa.Opcode
		funct3  uint8
		funct7b bool
		want    Control
	}{
		{desc: "add", op: isa.OpOp, want: Control{AluOp: AluAdd, RegWrite: true}},
		{desc: "sub", op: isa.OpOp, funct7b: true, want: Control{AluOp: AluSub, RegWrite: true}},
		{desc: "srl", op: isa.OpOp, funct3: 5, want: Control{AluOp: AluSrl, RegWrite: true}},
		{desc: "sra", op: isa.OpOp, funct3: 5, funct7b: true, want: Control{AluOp: AluSra, RegWrite: true}},
		{desc: "and ignores funct7", op: isa.OpOp, funct3: 7, funct7b: true, want: Control{AluOp: AluAnd, RegWrite: true}},
		{desc: "sltu", op: isa.OpOp, funct3: 3, want: Control{AluOp: AluSltu, RegWrite: true}},
		{desc: "addi", op: isa.OpOpImm, want: Control{AluOp: AluAdd, AluSrcImm: true, RegWrite: true}},
		{desc: "addi with negative imm stays add", op: isa.OpOpImm, funct7b: true, want: Control{AluOp: AluAdd, AluSrcImm: true, RegWrite: true}},
		{desc: "srai", op: isa.OpOpImm, funct3: 5, funct7b: true, want: Control{AluOp: AluSra, AluSrcImm: true, RegWrite: true}},
		{desc: "slli", op: isa.OpOpImm, funct3: 1, want: Control{AluOp: AluSll, AluSrcImm: true, RegWrite: true}},
		{desc: "lw", op: isa.OpLoad, funct3: 2, want: Control{AluOp: AluAdd, AluSrcImm: true, RegWrite: true, ResultSrc: ResultMem}},
		{desc: "sw", op: isa.OpStore, funct3: 2, want: Control{AluOp: AluAdd, AluSrcImm: true, MemWrite: true}},
		{desc: "beq", op: isa.OpBranch, want: Control{AluOp: AluSub, Branch: true}},
		{desc: "bgeu", op: isa.OpBranch, funct3: 7, want: Control{AluOp: AluSub, Branch: true}},
		{desc: "lui is inert", op: isa.OpLui},
		{desc: "jal is inert", op: isa.OpJal},
		{desc: "jalr is inert", op: isa.OpJalr},
		{desc: "auipc is inert", op: isa.OpAuipc},
		{desc: "zero opcode is inert", op: 0},
		{desc: "reserved opcode is inert", op: 0x7F, funct3: 7, funct7b: true},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.op, tt.funct3, tt.funct7b))
		})
	}
}

func TestResolveWriteEnables(t *testing.T) {
	for op := isa.Opcode(0); op < 0x80; op++ {
		for funct3 := uint8(0); funct3 < 8; funct3++ {
			ctrl := Resolve(op, funct3, funct3%2 == 1)
			require.False(t, ctrl.MemWrite && ctrl.RegWrite, "opcode %s writes both", op)
			require.Equal(t, op == isa.OpBranch, ctrl.Branch)
			require.Equal(t, op == isa.OpStore, ctrl.MemWrite)
			if ctrl.ResultSrc == ResultMem {
				require.Equal(t, isa.OpLoad, op)
			}
		}
	}
}
