package simulator

import "github.com/felipedavid/lx32check/isa"

// BranchOp is the branch funct3.
type BranchOp uint8

const (
	BranchEq  = BranchOp(isa.Beq)
	BranchNe  = BranchOp(isa.Bne)
	BranchLt  = BranchOp(isa.Blt)
	BranchGe  = BranchOp(isa.Bge)
	BranchLtu = BranchOp(isa.Bltu)
	BranchGeu = BranchOp(isa.Bgeu)
)

func (op BranchOp) String() string {
	switch op {
	case BranchNe:
		return "NE"
	case BranchLt:
		return "LT"
	case BranchGe:
		return "GE"
	case BranchLtu:
		return "LTU"
	case BranchGeu:
		return "GEU"
	}
	return "EQ"
}

// Branch compares the two raw register operands and gates the result with
// enable. Codes 2 and 3 are unassigned and compare for equality.
func Branch(a, b uint32, enable bool, op BranchOp) bool {
	var taken bool
	switch op {
	case BranchNe:
		taken = a != b
	case BranchLt:
		taken = int32(a) < int32(b)
	case BranchGe:
		taken = int32(a) >= int32(b)
	case BranchLtu:
		taken = a < b
	case BranchGeu:
		taken = a >= b
	default:
		taken = a == b
	}
	return enable && taken
}
