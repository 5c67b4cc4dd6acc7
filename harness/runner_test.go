package harness_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/felipedavid/lx32check/harness"
	"github.com/felipedavid/lx32check/isa"
	"github.com/felipedavid/lx32check/simulator"
)

// Reference cores with one deliberate defect each.

type leakyZero struct{ *simulator.System }

func (c leakyZero) Reg(index uint8) uint32 {
	if index == 0 {
		return 1
	}
	return c.System.Reg(index)
}

type flippedStore struct{ *simulator.System }

func (c flippedStore) Step(reset bool, instr, memRData uint32) simulator.MemInterface {
	mi := c.System.Step(reset, instr, memRData)
	if mi.WE {
		mi.WData ^= 1
	}
	return mi
}

type stuckX5 struct{ *simulator.System }

func (c stuckX5) Reg(index uint8) uint32 {
	if index == 5 {
		return 0xFFFFFFFF
	}
	return c.System.Reg(index)
}

// muxedBranch compares rs1 against the branch immediate instead of rs2.
type muxedBranch struct{ *simulator.System }

func (c muxedBranch) Step(reset bool, instr, memRData uint32) simulator.MemInterface {
	if !reset && isa.OpcodeOf(instr) == isa.OpBranch {
		f := isa.Decode(instr)
		imm := isa.BImmediate(instr)
		if simulator.Branch(c.System.Reg(f.Rs1), imm, true, simulator.BranchOp(f.Funct3)) !=
			simulator.Branch(c.System.Reg(f.Rs1), c.System.Reg(f.Rs2), true, simulator.BranchOp(f.Funct3)) {
			// Flip the outcome by swapping in the opposite condition.
			instr ^= 1 << 12
		}
	}
	return c.System.Step(reset, instr, memRData)
}

func wrap(mk func(*simulator.System) harness.Core) harness.Factory {
	return func() (harness.Core, error) {
		return mk(simulator.NewSystem()), nil
	}
}

func quick(unit string, iterations int) harness.Params {
	p := harness.Defaults(unit)
	p.Iterations = iterations
	return p
}

var _ = Describe("Runner", func() {
	var (
		log    *logrus.Logger
		hook   *test.Hook
		runner *harness.Runner
	)

	BeforeEach(func() {
		log, hook = test.NewNullLogger()
		log.SetLevel(logrus.DebugLevel)
		runner = &harness.Runner{
			Golden:    harness.Golden(),
			Reference: harness.Golden(),
			Log:       log,
		}
	})

	Describe("golden against golden", func() {
		for _, f := range harness.Families() {
			f := f
			It("should pass the "+f.Name+" unit", func() {
				Expect(runner.Run(f, quick(f.Name, 300))).To(Succeed())

				last := hook.LastEntry()
				Expect(last).NotTo(BeNil())
				Expect(last.Message).To(Equal("fuzzer passed"))
				Expect(last.Data).To(HaveKeyWithValue("unit", f.Name))
			})
		}

		It("should pass every unit with the standard settings", func() {
			log.SetLevel(logrus.InfoLevel)
			for _, f := range harness.Families() {
				Expect(runner.Run(f, harness.Defaults(f.Name))).To(Succeed(), f.Name)
			}
		})
	})

	Describe("fault detection", func() {
		It("should flag a non-zero x0 as an invariant violation", func() {
			runner.Reference = wrap(func(s *simulator.System) harness.Core { return leakyZero{s} })

			f, _ := harness.Lookup(harness.UnitALU)
			err := runner.Run(f, quick(harness.UnitALU, 50))

			Expect(errors.Is(err, harness.ErrInvariantViolation)).To(BeTrue())
			var merr *harness.MismatchError
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(merr.Record.Iteration).To(Equal(0))
		})

		It("should flag corrupted store data as a memory mismatch", func() {
			runner.Reference = wrap(func(s *simulator.System) harness.Core { return flippedStore{s} })

			f, _ := harness.Lookup(harness.UnitLSU)
			err := runner.Run(f, quick(harness.UnitLSU, 500))

			Expect(errors.Is(err, harness.ErrMemoryMismatch)).To(BeTrue())
			var merr *harness.MismatchError
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(isa.OpcodeOf(merr.Record.Stimulus.Instr)).To(Equal(isa.OpStore))
			Expect(merr.Record.Golden.Mem.WData ^ merr.Record.Reference.Mem.WData).To(Equal(uint32(1)))
		})

		It("should flag a diverging register as a state mismatch on the first compare", func() {
			runner.Reference = wrap(func(s *simulator.System) harness.Core { return stuckX5{s} })

			f, _ := harness.Lookup(harness.UnitRegFile)
			err := runner.Run(f, quick(harness.UnitRegFile, 100))

			Expect(errors.Is(err, harness.ErrStateMismatch)).To(BeTrue())
			var merr *harness.MismatchError
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(merr.Record.Iteration).To(Equal(0))
			Expect(merr.Detail).To(ContainSubstring("x5"))
		})

		It("should catch a branch unit that compares against the immediate", func() {
			runner.Reference = wrap(func(s *simulator.System) harness.Core { return muxedBranch{s} })

			f, _ := harness.Lookup(harness.UnitBranch)
			err := runner.Run(f, quick(harness.UnitBranch, 2000))

			Expect(errors.Is(err, harness.ErrStateMismatch)).To(BeTrue())
			var merr *harness.MismatchError
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(isa.OpcodeOf(merr.Record.Stimulus.Instr)).To(Equal(isa.OpBranch))
		})

		It("should reject a generator that leaves its family", func() {
			f := harness.Family{
				Name:    "bogus",
				Opcodes: []isa.Opcode{isa.OpBranch},
				Next: func(*harness.Gen) harness.Stimulus {
					return harness.Stimulus{Instr: 0x00100093}
				},
			}
			err := runner.Run(f, quick("bogus", 10))
			Expect(errors.Is(err, harness.ErrEncodingMisuse)).To(BeTrue())
		})

		It("should surface a reference core that cannot be created", func() {
			boom := errors.New("no bridge")
			runner.Reference = func() (harness.Core, error) { return nil, boom }

			f, _ := harness.Lookup(harness.UnitSystem)
			err := runner.Run(f, quick(harness.UnitSystem, 10))
			Expect(err).To(MatchError(boom))

			var merr *harness.MismatchError
			Expect(errors.As(err, &merr)).To(BeFalse())
		})
	})

	Describe("replay", func() {
		record := func(seed uint64) []uint32 {
			var words []uint32
			base, _ := harness.Lookup(harness.UnitControl)
			f := base
			f.Next = func(g *harness.Gen) harness.Stimulus {
				st := base.Next(g)
				words = append(words, st.Instr)
				return st
			}
			p := quick(harness.UnitControl, 64)
			p.Seed = seed
			Expect(runner.Run(f, p)).To(Succeed())
			return words
		}

		It("should produce the same stimulus for the same seed", func() {
			Expect(record(7)).To(Equal(record(7)))
		})

		It("should produce different stimulus for different seeds", func() {
			Expect(record(7)).NotTo(Equal(record(8)))
		})
	})

	Describe("Report", func() {
		It("should log the diagnostic for a mismatch", func() {
			runner.Reference = wrap(func(s *simulator.System) harness.Core { return stuckX5{s} })
			f, _ := harness.Lookup(harness.UnitRegFile)
			err := runner.Run(f, quick(harness.UnitRegFile, 10))
			hook.Reset()

			harness.Report(log, err)

			entries := hook.AllEntries()
			Expect(entries).NotTo(BeEmpty())
			Expect(entries[0].Level).To(Equal(logrus.ErrorLevel))
			Expect(entries[0].Data).To(HaveKeyWithValue("kind", "state mismatch"))
			Expect(entries[0].Data).To(HaveKeyWithValue("iteration", 0))

			var flagged int
			for _, e := range entries {
				if e.Message == "MISMATCH" {
					flagged++
					Expect(e.Data).To(HaveKeyWithValue("reg", "x5"))
				}
			}
			Expect(flagged).To(Equal(1))
		})

		It("should log plain errors as they are", func() {
			harness.Report(log, errors.New("bridge exploded"))
			Expect(hook.LastEntry().Message).To(Equal("run aborted"))
		})
	})
})

var _ = Describe("Defaults", func() {
	It("should carry the standard iteration counts", func() {
		Expect(harness.Defaults(harness.UnitBranch).Iterations).To(Equal(10000))
		Expect(harness.Defaults(harness.UnitSystem).Iterations).To(Equal(500))
		Expect(harness.Defaults("unknown").Iterations).To(Equal(100))
	})

	It("should let the register file unit target x0", func() {
		Expect(harness.Defaults(harness.UnitRegFile).Rd.Lo).To(Equal(int64(0)))
		Expect(harness.Defaults(harness.UnitALU).Rd.Lo).To(Equal(int64(1)))
	})
})
