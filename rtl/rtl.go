// Package rtl adapts the Verilator-built LX32 RTL to the harness core
// contract. The bridge library is linked only when building with the
// verilator tag; without it New reports ErrUnavailable.
package rtl

import (
	"errors"

	"github.com/felipedavid/lx32check/harness"
)

var ErrUnavailable = errors.New("rtl: built without the verilator bridge (use -tags verilator)")

// Factory returns a harness.Factory creating one RTL instance per call.
func Factory() harness.Factory {
	return func() (harness.Core, error) {
		c, err := New()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
