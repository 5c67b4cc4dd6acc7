package isa

// Encoders take register indices and function fields as uint32 and mask every
// field to its width, so out-of-range arguments cannot leak into other fields.

const (
	regMask    uint32 = (1 << 5) - 1
	funct3Mask uint32 = (1 << 3) - 1
	funct7Mask uint32 = (1 << 7) - 1
	opcodeMask uint32 = (1 << 7) - 1
)

func EncodeR(op Opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return (funct7&funct7Mask)<<25 |
		(rs2&regMask)<<20 |
		(rs1&regMask)<<15 |
		(funct3&funct3Mask)<<12 |
		(rd&regMask)<<7 |
		uint32(op)&opcodeMask
}

// EncodeI keeps the low 12 bits of imm. Shift-immediates put the shift amount
// in imm[4:0] and funct7 in imm[11:5].
func EncodeI(op Opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 |
		(rs1&regMask)<<15 |
		(funct3&funct3Mask)<<12 |
		(rd&regMask)<<7 |
		uint32(op)&opcodeMask
}

func EncodeS(funct3, rs1, rs2 uint32, imm int32) uint32 {
	imm12 := uint32(imm) & 0xFFF
	return bits(imm12, 5, 7)<<25 |
		(rs2&regMask)<<20 |
		(rs1&regMask)<<15 |
		(funct3&funct3Mask)<<12 |
		bits(imm12, 0, 5)<<7 |
		uint32(OpStore)
}

// EncodeB takes a signed byte offset. Bit 0 of the offset is dropped.
func EncodeB(funct3, rs1, rs2 uint32, offset int32) uint32 {
	off := uint32(offset)
	return bits(off, 12, 1)<<31 |
		bits(off, 5, 6)<<25 |
		(rs2&regMask)<<20 |
		(rs1&regMask)<<15 |
		(funct3&funct3Mask)<<12 |
		bits(off, 1, 4)<<8 |
		bits(off, 11, 1)<<7 |
		uint32(OpBranch)
}

// EncodeU places imm[31:12]; the low 12 bits of imm are ignored.
func EncodeU(op Opcode, rd uint32, imm uint32) uint32 {
	return UImmediate(imm) | (rd&regMask)<<7 | uint32(op)&opcodeMask
}

// EncodeJ takes a signed byte offset. Bit 0 of the offset is dropped.
func EncodeJ(rd uint32, offset int32) uint32 {
	off := uint32(offset)
	return bits(off, 20, 1)<<31 |
		bits(off, 1, 10)<<21 |
		bits(off, 11, 1)<<20 |
		bits(off, 12, 8)<<12 |
		(rd&regMask)<<7 |
		uint32(OpJal)
}
