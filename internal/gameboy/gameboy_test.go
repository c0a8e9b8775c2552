package gameboy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/internal/serial/accessories"
)

// newTestROM builds a minimal, header-valid 32KiB ROM-only cartridge (no
// MBC, no RAM) suitable for exercising a Device without depending on any
// real game ROM.
func newTestROM() []byte {
	rom := make([]byte, 32*1024)
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = 0x00 // ROM, no MBC
	rom[0x148] = 0x00 // 32KiB
	rom[0x149] = 0x00 // no RAM

	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestNewClassic(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.EqualValues(t, 0x0100, d.CPU.PC)
	assert.EqualValues(t, 0xFFFE, d.CPU.SP)
	assert.EqualValues(t, 0x01, d.CPU.A)
}

func TestNewColor(t *testing.T) {
	d, err := NewColor(newTestROM())
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.True(t, d.MMU.IsGBC())
	// the test ROM never sets the CGB-support flag, so a CGB Device
	// falls back to DMG compatibility mode.
	assert.True(t, d.MMU.IsGBCCompat())
}

func TestClassicRejectsCGBOnlyCartridge(t *testing.T) {
	rom := newTestROM()
	rom[0x143] = 0xC0
	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum

	_, err := NewClassic(rom)
	assert.ErrorIs(t, err, cartridge.ErrModeMismatch)

	_, err = NewColor(rom)
	assert.NoError(t, err)
}

func TestStepAdvancesPC(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)

	startPC := d.CPU.PC
	cycles := d.Step()
	assert.Greater(t, cycles, uint8(0))
	assert.NotEqual(t, startPC, d.CPU.PC)
}

func TestKeypadRowSelect(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)

	d.KeyDown(joypad.ButtonRight)

	d.MMU.Write(0xFF00, 0x20) // select the direction row
	assert.EqualValues(t, 0xEE, d.MMU.Read(0xFF00), "Right visible on bit 0")

	d.MMU.Write(0xFF00, 0x10) // select the action row
	assert.EqualValues(t, 0xDF, d.MMU.Read(0xFF00), "no action button held")

	d.KeyUp(joypad.ButtonRight)
	d.MMU.Write(0xFF00, 0x20)
	assert.EqualValues(t, 0xEF, d.MMU.Read(0xFF00))
}

func TestSerialCallbackSwap(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)

	var got uint8
	d.SetSerialCallback(func(out uint8) (uint8, bool) {
		got = out
		return ^out, true
	})

	d.MMU.Write(0xFF01, 0x3C)
	d.MMU.Write(0xFF02, 0x81)

	assert.EqualValues(t, 0x3C, got)
	assert.EqualValues(t, 0xC3, d.MMU.Read(0xFF01), "peer byte swapped into SB")

	d.ClearSerialCallback()
	d.MMU.Write(0xFF02, 0x81)
	assert.EqualValues(t, 0xC3, d.MMU.Read(0xFF01), "no peer, SB unchanged")
}

func TestPrinterOption(t *testing.T) {
	printer := accessories.NewPrinter()
	d, err := NewClassic(newTestROM(), WithPrinter(printer))
	require.NoError(t, err)

	// shift the init packet through the serial port the way a game
	// would, one byte at a time
	send := func(b uint8) uint8 {
		d.MMU.Write(0xFF01, b)
		d.MMU.Write(0xFF02, 0x81)
		return d.MMU.Read(0xFF01)
	}
	for _, b := range []uint8{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00} {
		send(b)
	}
	assert.EqualValues(t, 0x81, send(0x00), "keep-alive ack")
	assert.EqualValues(t, 0x00, send(0x00), "clean status after init")
}

func TestSerializeRoundTrip(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		d.Step()
	}
	pc := d.CPU.PC
	sp := d.CPU.SP

	state := d.Serialize()
	require.NotEmpty(t, state)

	for i := 0; i < 100; i++ {
		d.Step()
	}
	require.NotEqual(t, pc, d.CPU.PC)

	require.NoError(t, d.Deserialize(state))
	assert.Equal(t, pc, d.CPU.PC)
	assert.Equal(t, sp, d.CPU.SP)
}

func TestCheckAndResetRAMUpdatedNoBattery(t *testing.T) {
	d, err := NewClassic(newTestROM())
	require.NoError(t, err)

	// the test ROM has no battery-backed RAM, so the flag is always false
	assert.False(t, d.CheckAndResetRAMUpdated())
	assert.Nil(t, d.DumpRAM())
}

func TestWithRTCNow(t *testing.T) {
	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	d, err := NewClassic(newTestROM(), WithRTCNow(func() time.Time { return fixed }))
	require.NoError(t, err)
	require.NotNil(t, d)
}

func TestSkipChecksum(t *testing.T) {
	rom := newTestROM()
	rom[0x14D] ^= 0xFF // corrupt the checksum

	_, err := NewClassic(rom)
	assert.Error(t, err)

	d, err := NewClassic(rom, SkipChecksum())
	require.NoError(t, err)
	require.NotNil(t, d)
}
