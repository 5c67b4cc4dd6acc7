package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory(DefaultWords)
	m.Write(0x100, 0xDEADBEEF, true)
	require.Equal(t, uint32(0xDEADBEEF), m.ReadData(0x100))
	require.Equal(t, uint32(0xDEADBEEF), m.ReadInstr(0x100), "ports share storage")

	m.Write(0x100, 1, false)
	require.Equal(t, uint32(0xDEADBEEF), m.ReadData(0x100))
}

func TestMemoryAddressing(t *testing.T) {
	m := NewMemory(DefaultWords)
	m.Write(0x0FFC, 7, true)
	require.Equal(t, uint32(7), m.ReadData(0x1FFC), "addresses wrap at capacity")
	require.Equal(t, uint32(7), m.ReadData(0x0FFE), "low address bits are ignored")
	require.Equal(t, DefaultWords, m.Words())
}

func TestMemoryLoad(t *testing.T) {
	m := NewMemory(4)
	m.Load([]uint32{1, 2, 3, 4, 5})
	require.Equal(t, uint32(1), m.ReadInstr(0))
	require.Equal(t, uint32(4), m.ReadInstr(12))
	require.Equal(t, uint32(1), m.ReadInstr(16))
}

func TestMemoryBadSize(t *testing.T) {
	require.Panics(t, func() { NewMemory(1000) })
	require.Panics(t, func() { NewMemory(0) })
}

func TestLSU(t *testing.T) {
	require.Equal(t, MemInterface{Addr: 8, WData: 9, WE: true}, LSU(8, 9, true))
	require.Equal(t, "addr=0x00000008 wdata=0x00000009 we=false", LSU(8, 9, false).String())
}
