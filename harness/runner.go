package harness

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/felipedavid/lx32check/isa"
	"github.com/felipedavid/lx32check/simulator"
)

// Bench is the state a run owns: both cores, a data memory per side, and the
// standalone register exercised by the register unit.
type Bench struct {
	Golden       Core
	Reference    Core
	GoldenMem    *simulator.Memory
	ReferenceMem *simulator.Memory

	Latch  *simulator.Register
	expect uint32
}

// Gen is handed to a family's generator every iteration.
type Gen struct {
	Rand      *rand.Rand
	Params    Params
	Bench     *Bench
	Iteration int
}

// Family describes how to fuzz one unit. Next synthesizes stimulus, Compare
// decides equality. Exec replaces the default lockstep step when the unit is
// not reachable through the core contract.
type Family struct {
	Name    string
	Opcodes []isa.Opcode
	Next    func(g *Gen) Stimulus
	Compare Check
	Exec    func(b *Bench, st Stimulus) (gold, ref Snapshot)
}

func (f *Family) validate(st Stimulus) *MismatchError {
	if st.Reset || len(f.Opcodes) == 0 {
		return nil
	}
	if op := isa.OpcodeOf(st.Instr); !slices.Contains(f.Opcodes, op) {
		return mismatch(ErrEncodingMisuse, "generator produced %s, family accepts %v", op, f.Opcodes)
	}
	return nil
}

// Runner runs families against a golden and a reference core.
type Runner struct {
	Golden    Factory
	Reference Factory
	Log       logrus.FieldLogger
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func (r *Runner) newBench(p Params) (*Bench, error) {
	gold, err := r.Golden()
	if err != nil {
		return nil, fmt.Errorf("creating golden core: %w", err)
	}
	ref, err := r.Reference()
	if err != nil {
		return nil, fmt.Errorf("creating reference core: %w", err)
	}
	b := &Bench{
		Golden:       gold,
		Reference:    ref,
		GoldenMem:    simulator.NewMemory(simulator.DefaultWords),
		ReferenceMem: simulator.NewMemory(simulator.DefaultWords),
		Latch:        simulator.NewRegister(32),
	}
	for i := 0; i < p.ResetCycles; i++ {
		b.Golden.Step(true, 0, 0)
		b.Reference.Step(true, 0, 0)
	}
	return b, nil
}

// Run fuzzes one family and returns a *MismatchError at the first
// divergence. It never continues past a failure.
func (r *Runner) Run(f Family, p Params) error {
	log := r.logger().WithField("unit", f.Name)
	log.WithFields(logrus.Fields{
		"iterations": p.Iterations,
		"seed":       p.Seed,
		"regs":       p.Regs.String(),
		"imm":        p.Imm.String(),
		"offset":     p.Offset.String(),
	}).Info("starting fuzzer")

	b, err := r.newBench(p)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}

	exec := f.Exec
	if exec == nil {
		exec = lockstep
	}

	g := &Gen{Rand: p.rng(), Params: p, Bench: b}
	for i := 0; i < p.Iterations; i++ {
		g.Iteration = i
		st := f.Next(g)
		rec := Record{Unit: f.Name, Iteration: i, Stimulus: st, PrePC: b.Golden.PC()}

		merr := f.validate(st)
		if merr == nil {
			rec.Golden, rec.Reference = exec(b, st)
			if f.Exec == nil {
				merr = b.checkZero()
			}
		}
		if merr == nil && f.Compare != nil {
			merr = f.Compare(&rec)
		}
		if merr != nil {
			merr.Record = rec
			return merr
		}

		log.WithFields(logrus.Fields{
			"iteration": i,
			"instr":     fmt.Sprintf("0x%08x", st.Instr),
			"pc":        fmt.Sprintf("0x%08x", rec.Golden.PC),
		}).Debug("match")
	}

	log.Info("fuzzer passed")
	return nil
}

// lockstep steps the golden core, then the reference core, with the same
// inputs, and applies each side's store to its own memory.
func lockstep(b *Bench, st Stimulus) (gold, ref Snapshot) {
	gm := b.Golden.Step(st.Reset, st.Instr, st.MemRData)
	rm := b.Reference.Step(st.Reset, st.Instr, st.MemRData)

	b.GoldenMem.Write(gm.Addr, gm.WData, gm.WE)
	b.ReferenceMem.Write(rm.Addr, rm.WData, rm.WE)

	return capture(b.Golden, b.GoldenMem, gm, st.Watch), capture(b.Reference, b.ReferenceMem, rm, st.Watch)
}

func capture(c Core, mem *simulator.Memory, mi simulator.MemInterface, watch []uint8) Snapshot {
	s := Snapshot{
		PC:       c.PC(),
		Mem:      mi,
		ReadBack: mem.ReadData(mi.Addr),
		Regs:     make([]RegValue, 0, len(watch)),
	}
	for _, idx := range watch {
		s.Regs = append(s.Regs, RegValue{Index: idx, Value: c.Reg(idx)})
	}
	return s
}

func (b *Bench) checkZero() *MismatchError {
	if v := b.Golden.Reg(0); v != 0 {
		return mismatch(ErrInvariantViolation, "golden x0 reads 0x%08x", v)
	}
	if v := b.Reference.Reg(0); v != 0 {
		return mismatch(ErrInvariantViolation, "reference x0 reads 0x%08x", v)
	}
	return nil
}
