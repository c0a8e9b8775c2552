package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// regBus adapts the collected hardware-register table to the IOBus shape
// the APU expects for its power-off register sweep.
type regBus struct {
	regs types.HardwareRegisters
}

func (b *regBus) Read(address uint16) uint8         { return b.regs.Read(address) }
func (b *regBus) Write(address uint16, value uint8) { b.regs.Write(address, value) }

func newTestAPU(t *testing.T) (*APU, types.HardwareRegisters) {
	t.Helper()
	a := NewAPU()
	a.SetModel(types.DMGABC)
	regs := types.CollectHardwareRegisters()
	a.AttachBus(&regBus{regs: regs})
	return a, regs
}

// tickFrameStep advances the APU by one frame-sequencer step (8192
// T-cycles).
func tickFrameStep(a *APU) {
	for i := 0; i < 8192; i++ {
		a.Tick()
	}
}

func TestLengthCounterAutoDisable(t *testing.T) {
	a, regs := newTestAPU(t)

	regs.Write(types.NR52, 0x80) // power on
	regs.Write(types.NR12, 0xF0) // DAC on, full volume
	regs.Write(types.NR11, 0x3F) // length load 63 -> counter 1
	regs.Write(types.NR14, 0xC0) // trigger with length enabled

	require.NotZero(t, regs.Read(types.NR52)&0x01, "channel 1 on after trigger")

	// the first even frame-sequencer step clocks the length counter
	// from 1 to 0, disabling the channel
	tickFrameStep(a)
	assert.Zero(t, regs.Read(types.NR52)&0x01, "channel 1 off after one length clock")
}

func TestLengthClocksOnEvenStepsOnly(t *testing.T) {
	a, regs := newTestAPU(t)

	regs.Write(types.NR52, 0x80)
	regs.Write(types.NR12, 0xF0)
	regs.Write(types.NR11, 0x3E) // counter 2
	regs.Write(types.NR14, 0xC0)

	// step 0 (even): 2 -> 1, still audible
	tickFrameStep(a)
	assert.NotZero(t, regs.Read(types.NR52)&0x01)

	// step 1 (odd): length does not clock
	tickFrameStep(a)
	assert.NotZero(t, regs.Read(types.NR52)&0x01)

	// step 2 (even): 1 -> 0, channel dies
	tickFrameStep(a)
	assert.Zero(t, regs.Read(types.NR52)&0x01)
}

func TestTriggerReloadsZeroLength(t *testing.T) {
	a, regs := newTestAPU(t)

	regs.Write(types.NR52, 0x80)
	regs.Write(types.NR12, 0xF0)
	regs.Write(types.NR11, 0x3F) // counter 1
	regs.Write(types.NR14, 0xC0)
	tickFrameStep(a) // counter hits 0, channel off

	// re-trigger: a zero counter reloads to the 64 maximum, so the
	// channel stays audible through the next length clock
	regs.Write(types.NR14, 0xC0)
	require.NotZero(t, regs.Read(types.NR52)&0x01)
	tickFrameStep(a)
	assert.NotZero(t, regs.Read(types.NR52)&0x01)
}

func TestPowerOffZeroesRegisters(t *testing.T) {
	_, regs := newTestAPU(t)

	regs.Write(types.NR52, 0x80)
	regs.Write(types.NR50, 0x77)
	regs.Write(types.NR51, 0xFF)

	regs.Write(types.NR52, 0x00)
	assert.Zero(t, regs.Read(types.NR52)&0x80, "power bit reads back off")
	assert.Zero(t, regs.Read(types.NR50))
	assert.Zero(t, regs.Read(types.NR51))

	// writes while powered off are ignored
	regs.Write(types.NR50, 0x77)
	assert.Zero(t, regs.Read(types.NR50))
}
