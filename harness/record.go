package harness

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/felipedavid/lx32check/simulator"
)

// Stimulus is one cycle of input, identical for both sides.
type Stimulus struct {
	Reset    bool
	Instr    uint32
	MemRData uint32

	// Enable and Data drive the standalone register unit.
	Enable bool
	Data   uint32

	// Watch lists the registers captured after the step.
	Watch []uint8
}

type RegValue struct {
	Index uint8
	Value uint32
}

func (rv RegValue) String() string {
	return fmt.Sprintf("x%d=0x%08x", rv.Index, rv.Value)
}

// Snapshot is the observable state of one side after a step.
type Snapshot struct {
	PC       uint32
	Regs     []RegValue
	Mem      simulator.MemInterface
	ReadBack uint32 // data memory at Mem.Addr after the write
}

// Record pairs both snapshots for one cycle.
type Record struct {
	Unit      string
	Iteration int
	Stimulus  Stimulus
	PrePC     uint32
	Golden    Snapshot
	Reference Snapshot
}

// A Check is an equality predicate over part of a Record. It returns nil or
// a *MismatchError without Record filled in.
type Check func(rec *Record) *MismatchError

func checkPC(rec *Record) *MismatchError {
	if rec.Golden.PC != rec.Reference.PC {
		return mismatch(ErrStateMismatch, "pc golden 0x%08x reference 0x%08x", rec.Golden.PC, rec.Reference.PC)
	}
	return nil
}

func checkRegs(rec *Record) *MismatchError {
	if slices.Equal(rec.Golden.Regs, rec.Reference.Regs) {
		return nil
	}
	for i, g := range rec.Golden.Regs {
		if i >= len(rec.Reference.Regs) {
			break
		}
		if r := rec.Reference.Regs[i]; g != r {
			return mismatch(ErrStateMismatch, "x%d golden 0x%08x reference 0x%08x", g.Index, g.Value, r.Value)
		}
	}
	return mismatch(ErrStateMismatch, "captured %d golden registers, %d reference", len(rec.Golden.Regs), len(rec.Reference.Regs))
}

func checkMem(rec *Record) *MismatchError {
	if rec.Golden.Mem != rec.Reference.Mem {
		return mismatch(ErrMemoryMismatch, "interface golden {%s} reference {%s}", rec.Golden.Mem, rec.Reference.Mem)
	}
	return nil
}

func checkReadBack(rec *Record) *MismatchError {
	if rec.Golden.ReadBack != rec.Reference.ReadBack {
		return mismatch(ErrMemoryMismatch, "read back at 0x%08x golden 0x%08x reference 0x%08x",
			rec.Golden.Mem.Addr, rec.Golden.ReadBack, rec.Reference.ReadBack)
	}
	return nil
}

// all runs checks in order and reports the first failure.
func all(checks ...Check) Check {
	return func(rec *Record) *MismatchError {
		for _, c := range checks {
			if err := c(rec); err != nil {
				return err
			}
		}
		return nil
	}
}
