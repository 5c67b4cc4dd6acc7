// Package vectors writes and checks ALU/branch test-vector files, one case
// per line:
//
//	<a hex8> <b hex8> <op hex> <is_branch hex> <branch_op hex> <result hex8> <taken hex>
//
// Operation and branch codes use the tester numbering in aluOps and
// branchOps, not the simulator's internal encodings.
package vectors

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/felipedavid/lx32check/simulator"
)

var aluOps = []simulator.AluOp{
	0: simulator.AluAdd,
	1: simulator.AluSub,
	2: simulator.AluSll,
	3: simulator.AluSlt,
	4: simulator.AluSltu,
	5: simulator.AluXor,
	6: simulator.AluSrl,
	7: simulator.AluSra,
	8: simulator.AluOr,
	9: simulator.AluAnd,
}

var branchOps = []simulator.BranchOp{
	0: simulator.BranchEq,
	1: simulator.BranchNe,
	2: simulator.BranchLt,
	3: simulator.BranchGe,
	4: simulator.BranchLtu,
	5: simulator.BranchGeu,
}

type Case struct {
	A, B     uint32
	Op       uint8
	IsBranch bool
	BranchOp uint8
	Result   uint32
	Taken    bool
}

// Expected computes Result and Taken from the inputs of c.
func Expected(c Case) (result uint32, taken bool, err error) {
	if int(c.Op) >= len(aluOps) {
		return 0, false, fmt.Errorf("alu op %d out of range", c.Op)
	}
	if int(c.BranchOp) >= len(branchOps) {
		return 0, false, fmt.Errorf("branch op %d out of range", c.BranchOp)
	}
	result = simulator.ALU(c.A, c.B, aluOps[c.Op])
	taken = simulator.Branch(c.A, c.B, c.IsBranch, branchOps[c.BranchOp])
	return result, taken, nil
}

// Generate builds n cases with operands in [0, maxOperand).
func Generate(rng *rand.Rand, n int, maxOperand uint32) []Case {
	if maxOperand == 0 {
		maxOperand = 1
	}
	cases := make([]Case, n)
	for i := range cases {
		c := Case{
			A:        rng.Uint32N(maxOperand),
			B:        rng.Uint32N(maxOperand),
			Op:       uint8(rng.IntN(len(aluOps))),
			IsBranch: rng.IntN(2) == 1,
			BranchOp: uint8(rng.IntN(len(branchOps))),
		}
		// Inputs are in range by construction.
		c.Result, c.Taken, _ = Expected(c)
		cases[i] = c
	}
	return cases
}

func b2x(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

func Write(w io.Writer, cases []Case) error {
	bw := bufio.NewWriter(w)
	for _, c := range cases {
		_, err := fmt.Fprintf(bw, "%08x %08x %x %x %x %08x %x\n",
			c.A, c.B, c.Op, b2x(c.IsBranch), c.BranchOp, c.Result, b2x(c.Taken))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a vector file. Blank lines are skipped.
func Read(r io.Reader) ([]Case, error) {
	var cases []Case
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if text == "" {
			continue
		}
		var c Case
		var isBranch, taken uint8
		_, err := fmt.Sscanf(text, "%x %x %x %x %x %x %x",
			&c.A, &c.B, &c.Op, &isBranch, &c.BranchOp, &c.Result, &taken)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBranch > 1 || taken > 1 {
			return nil, fmt.Errorf("line %d: flags must be 0 or 1", line)
		}
		c.IsBranch, c.Taken = isBranch == 1, taken == 1
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// Check reads a vector file and verifies every line against the golden ALU
// and branch unit. It stops at the first bad line.
func Check(r io.Reader) (int, error) {
	cases, err := Read(r)
	if err != nil {
		return 0, err
	}
	for i, c := range cases {
		result, taken, err := Expected(c)
		if err != nil {
			return i, fmt.Errorf("case %d: %w", i+1, err)
		}
		if result != c.Result || taken != c.Taken {
			return i, fmt.Errorf("case %d: %08x %s %08x: want result %08x taken %t, file has %08x %t",
				i+1, c.A, aluOps[c.Op], c.B, result, taken, c.Result, c.Taken)
		}
	}
	return len(cases), nil
}
