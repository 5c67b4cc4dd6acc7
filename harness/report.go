package harness

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/felipedavid/lx32check/isa"
)

// Report logs the full diagnostic for err. Errors that are not a
// *MismatchError are logged as they are.
func Report(log logrus.FieldLogger, err error) {
	var merr *MismatchError
	if !errors.As(err, &merr) {
		log.WithError(err).Error("run aborted")
		return
	}

	rec := merr.Record
	st := rec.Stimulus
	f := isa.Decode(st.Instr)
	entry := log.WithFields(logrus.Fields{
		"unit":      rec.Unit,
		"kind":      merr.Kind.Error(),
		"iteration": rec.Iteration,
		"instr":     fmt.Sprintf("0x%08x", st.Instr),
		"opcode":    f.Opcode.String(),
		"imm":       fmt.Sprintf("0x%08x", isa.Immediate(st.Instr)),
		"reset":     st.Reset,
		"mem_rdata": fmt.Sprintf("0x%08x", st.MemRData),
		"pre_pc":    fmt.Sprintf("0x%08x", rec.PrePC),
	})
	entry.Errorf("%s mismatch detected: %s", rec.Unit, merr.Detail)

	side := func(name string, s Snapshot) {
		entry.WithFields(logrus.Fields{
			"side":      name,
			"pc":        fmt.Sprintf("0x%08x", s.PC),
			"mem":       s.Mem.String(),
			"read_back": fmt.Sprintf("0x%08x", s.ReadBack),
		}).Error("state")
	}
	side("golden", rec.Golden)
	side("reference", rec.Reference)

	for i, g := range rec.Golden.Regs {
		if i >= len(rec.Reference.Regs) {
			break
		}
		r := rec.Reference.Regs[i]
		status := "match"
		if g != r {
			status = "MISMATCH"
		}
		entry.WithFields(logrus.Fields{
			"reg":       fmt.Sprintf("x%d", g.Index),
			"golden":    fmt.Sprintf("0x%08x", g.Value),
			"reference": fmt.Sprintf("0x%08x", r.Value),
		}).Error(status)
	}
}
