package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/types"
)

func newTestTimer(t *testing.T) (*Controller, *interrupts.Service, *scheduler.Scheduler, types.HardwareRegisters) {
	t.Helper()
	irq := interrupts.NewService()
	sch := scheduler.NewScheduler()
	ctl := NewController(irq, sch)
	return ctl, irq, sch, types.CollectHardwareRegisters()
}

func TestDIVIncrements(t *testing.T) {
	_, _, sch, regs := newTestTimer(t)

	assert.EqualValues(t, 0, regs.Read(types.DIV))
	sch.Tick(256)
	assert.EqualValues(t, 1, regs.Read(types.DIV))
	sch.Tick(256 * 4)
	assert.EqualValues(t, 5, regs.Read(types.DIV))
}

func TestDIVWriteResets(t *testing.T) {
	_, _, sch, regs := newTestTimer(t)

	sch.Tick(1000)
	require.NotZero(t, regs.Read(types.DIV))

	regs.Write(types.DIV, 0xFF) // the written value is irrelevant
	assert.EqualValues(t, 0, regs.Read(types.DIV))
}

func TestTIMAIncrementRate(t *testing.T) {
	_, _, sch, regs := newTestTimer(t)

	// enable at 262144 Hz: one increment every 16 cycles
	regs.Write(types.TAC, 0x05)

	sch.Tick(16)
	assert.EqualValues(t, 1, regs.Read(types.TIMA))
	sch.Tick(16 * 9)
	assert.EqualValues(t, 10, regs.Read(types.TIMA))
}

func TestTIMADisabled(t *testing.T) {
	_, _, sch, regs := newTestTimer(t)

	regs.Write(types.TAC, 0x01) // rate selected but not enabled
	sch.Tick(1024)
	assert.Zero(t, regs.Read(types.TIMA))
}

func TestTIMAOverflowReload(t *testing.T) {
	_, irq, sch, regs := newTestTimer(t)

	regs.Write(types.TMA, 0xAB)
	regs.Write(types.TIMA, 0xFF)
	regs.Write(types.TAC, 0x05)

	// the overflow increment plus the 4-cycle reload delay
	sch.Tick(16 + 4)
	assert.EqualValues(t, 0xAB, regs.Read(types.TIMA), "TIMA reloads from TMA")
	assert.NotZero(t, irq.Flag&(1<<interrupts.TimerFlag), "timer interrupt requested")
}

func TestSaveRestoreKeepsTicking(t *testing.T) {
	src, _, sch, regs := newTestTimer(t)
	dst, _, sch2, regs2 := newTestTimer(t)

	regs.Write(types.TAC, 0x05)
	sch.Tick(32)
	require.EqualValues(t, 2, regs.Read(types.TIMA))

	// capture, then restore into a fresh controller on its own
	// scheduler: the restored timer must resume incrementing
	s := types.NewState()
	src.Save(s)
	dst.Load(types.StateFromBytes(s.Bytes()))

	assert.EqualValues(t, 2, regs2.Read(types.TIMA), "TIMA restored")
	assert.EqualValues(t, 0x05, regs2.Read(types.TAC), "TAC restored")
	sch2.Tick(16)
	assert.EqualValues(t, 3, regs2.Read(types.TIMA), "restored timer keeps ticking")
}

func TestTACReadBack(t *testing.T) {
	_, _, _, regs := newTestTimer(t)

	regs.Write(types.TAC, 0x06)
	assert.EqualValues(t, 0x06, regs.Read(types.TAC)&0x07)
}
