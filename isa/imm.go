package isa

func IImmediate(instr uint32) uint32 {
	return uint32(int32(instr) >> 20)
}

func SImmediate(instr uint32) uint32 {
	imm0_4 := bits(instr, 7, 5)
	imm5_11 := bits(instr, 25, 7) << 5
	return signExtend(imm5_11|imm0_4, 12)
}

// BImmediate reassembles imm[12|10:5] and imm[4:1|11]. Bit 0 is always zero.
func BImmediate(instr uint32) uint32 {
	imm1_4 := bits(instr, 8, 4) << 1
	imm5_10 := bits(instr, 25, 6) << 5
	imm11 := bits(instr, 7, 1) << 11
	imm12 := bits(instr, 31, 1) << 12
	return signExtend(imm1_4|imm5_10|imm11|imm12, 13)
}

func UImmediate(instr uint32) uint32 {
	return instr &^ (1<<12 - 1)
}

// JImmediate reassembles imm[20|10:1|11|19:12]. Bit 0 is always zero.
func JImmediate(instr uint32) uint32 {
	imm1_10 := bits(instr, 21, 10) << 1
	imm11 := bits(instr, 20, 1) << 11
	imm12_19 := bits(instr, 12, 8) << 12
	imm20 := bits(instr, 31, 1) << 20
	return signExtend(imm1_10|imm11|imm12_19|imm20, 21)
}

// Immediate picks the format from the opcode. OP and anything unrecognised
// produce 0.
func Immediate(instr uint32) uint32 {
	switch OpcodeOf(instr) {
	case OpOpImm, OpLoad, OpJalr:
		return IImmediate(instr)
	case OpStore:
		return SImmediate(instr)
	case OpBranch:
		return BImmediate(instr)
	case OpLui, OpAuipc:
		return UImmediate(instr)
	case OpJal:
		return JImmediate(instr)
	}
	return 0
}
