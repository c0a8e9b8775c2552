package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptDispatchPriority(t *testing.T) {
	c := newTestCPU(t)

	// Timer (bit 2) and Joypad (bit 4) both pending; the lower bit wins
	c.IRQ.Enable = 0x1F
	c.IRQ.Flag = 0x14
	c.IRQ.IME = true
	c.mode = ModeHalt
	c.PC = 0x1234
	c.SP = 0xD000

	c.Step()

	assert.EqualValues(t, 0x0050, c.PC, "jumps to the timer vector")
	assert.EqualValues(t, 0x10, c.IRQ.Flag, "only the timer flag is cleared")
	assert.False(t, c.IRQ.IME, "dispatch disables IME")
	assert.EqualValues(t, 0xCFFE, c.SP)
	assert.EqualValues(t, 0x12, c.mmu.Read(0xCFFF), "old PC high byte pushed")
	assert.EqualValues(t, 0x34, c.mmu.Read(0xCFFE), "old PC low byte pushed")
	assert.EqualValues(t, ModeNormal, c.mode)
}

func TestUpperInterruptBitsNeverDispatch(t *testing.T) {
	c := newTestCPU(t)

	// bits 5-7 of IE and IF are writable but are not interrupt sources;
	// they must neither dispatch nor wake a halted CPU
	c.IRQ.Enable = 0xE0
	c.IRQ.Flag = 0xE0
	c.IRQ.IME = true
	c.mode = ModeHalt
	c.PC = 0x1234

	c.Step()

	assert.EqualValues(t, 0x1234, c.PC)
	assert.True(t, c.IRQ.IME)
	assert.EqualValues(t, ModeHalt, c.mode)
}

func TestHaltWithoutIMEJustWakes(t *testing.T) {
	c := newTestCPU(t)

	c.IRQ.Enable = 0x04
	c.IRQ.Flag = 0x04
	c.IRQ.IME = false
	c.mode = ModeHalt
	c.PC = 0x1234

	c.Step()

	assert.EqualValues(t, 0x1234, c.PC, "no vector taken without IME")
	assert.EqualValues(t, 0x04, c.IRQ.Flag, "flag left pending")
	assert.EqualValues(t, ModeNormal, c.mode, "but the CPU wakes")
}

func TestHaltIdles(t *testing.T) {
	c := newTestCPU(t)

	c.IRQ.IME = true
	step0(t, c, 0x76) // HALT
	require.EqualValues(t, ModeHalt, c.mode)

	pc := c.PC
	ticks := c.Step()
	assert.NotZero(t, ticks)
	assert.EqualValues(t, pc, c.PC, "no fetch while halted")
}

func TestHLAutoIncDec(t *testing.T) {
	c := newTestCPU(t)

	c.HL.SetUint16(0xD234)
	c.writeByte(0xD234, 0x11)

	step0(t, c, 0x3A) // LD A, (HL-)
	assert.EqualValues(t, 0x11, c.A)
	assert.EqualValues(t, 0xD233, c.HL.Uint16())

	step0(t, c, 0x3A)
	assert.EqualValues(t, 0xD232, c.HL.Uint16())

	step0(t, c, 0x2A) // LD A, (HL+)
	assert.EqualValues(t, 0xD233, c.HL.Uint16())

	step0(t, c, 0x2A)
	assert.EqualValues(t, 0xD234, c.HL.Uint16())
}

func TestPopAFMasksLowNibble(t *testing.T) {
	c := newTestCPU(t)

	c.SP = 0xD100
	c.writeByte(0xD100, 0xFF)
	c.writeByte(0xD101, 0xFF)

	step0(t, c, 0xF1) // POP AF
	assert.EqualValues(t, 0xFF, c.A)
	assert.EqualValues(t, 0xF0, c.F, "low nibble of F always reads zero")
}

func TestFlagLowNibbleInvariant(t *testing.T) {
	c := newTestCPU(t)

	for _, program := range [][]uint8{
		{0xC6, 0x0F}, // ADD A, 0x0F
		{0xD6, 0x01}, // SUB 0x01
		{0xE6, 0xAA}, // AND 0xAA
		{0x37},       // SCF
		{0x3F},       // CCF
		{0x07},       // RLCA
	} {
		step0(t, c, program...)
		assert.Zero(t, c.F&0x0F, "opcode %#02x left flag residue", program[0])
	}
}

func TestDAA(t *testing.T) {
	c := newTestCPU(t)

	c.A = 0x15
	step0(t, c, 0xC6, 0x27) // ADD A, 0x27
	require.EqualValues(t, 0x3C, c.A)

	step0(t, c, 0x27) // DAA
	assert.EqualValues(t, 0x42, c.A, "BCD-adjusted 0x15 + 0x27")
	assert.False(t, c.isFlagSet(FlagCarry))
}

func TestADCCarryChain(t *testing.T) {
	c := newTestCPU(t)

	c.A = 0x00
	step0(t, c, 0x37)       // SCF
	step0(t, c, 0xCE, 0xFF) // ADC A, 0xFF

	assert.EqualValues(t, 0x00, c.A)
	assert.True(t, c.isFlagSet(FlagZero))
	assert.True(t, c.isFlagSet(FlagCarry))
	assert.True(t, c.isFlagSet(FlagHalfCarry))
}

func TestSBCBorrowChain(t *testing.T) {
	c := newTestCPU(t)

	c.A = 0x00
	step0(t, c, 0x37)       // SCF
	step0(t, c, 0xDE, 0x00) // SBC A, 0x00

	assert.EqualValues(t, 0xFF, c.A)
	assert.True(t, c.isFlagSet(FlagCarry))
	assert.True(t, c.isFlagSet(FlagHalfCarry))
	assert.True(t, c.isFlagSet(FlagSubtract))
}

func TestEIIsDelayedOneInstruction(t *testing.T) {
	c := newTestCPU(t)

	step0(t, c, 0xFB) // EI
	assert.False(t, c.IRQ.IME, "EI does not take effect immediately")

	step0(t, c, 0x00) // NOP
	assert.True(t, c.IRQ.IME, "IME enabled after the following instruction")
}

func TestCBRoundTrip(t *testing.T) {
	c := newTestCPU(t)

	c.B = 0x80
	step0(t, c, 0xCB, 0x00) // RLC B
	assert.EqualValues(t, 0x01, c.B)
	assert.True(t, c.isFlagSet(FlagCarry))

	step0(t, c, 0xCB, 0x40) // BIT 0, B
	assert.False(t, c.isFlagSet(FlagZero))

	step0(t, c, 0xCB, 0x80) // RES 0, B
	assert.EqualValues(t, 0x00, c.B)

	step0(t, c, 0xCB, 0xF8) // SET 7, B
	assert.EqualValues(t, 0x80, c.B)
}

func TestRelativeJump(t *testing.T) {
	c := newTestCPU(t)

	start := c.PC
	step0(t, c, 0x18, 0x05) // JR +5
	assert.EqualValues(t, start+2+5, c.PC)

	start = c.PC
	step0(t, c, 0x18, 0xFB) // JR -5
	assert.EqualValues(t, start+2-5, c.PC)
}

func TestCallAndReturn(t *testing.T) {
	c := newTestCPU(t)
	c.SP = 0xD200

	start := c.PC
	step0(t, c, 0xCD, 0x00, 0xD1) // CALL 0xD100
	require.EqualValues(t, 0xD100, c.PC)
	require.EqualValues(t, 0xD1FE, c.SP)

	step0(t, c, 0xC9) // RET
	assert.EqualValues(t, start+3, c.PC)
	assert.EqualValues(t, 0xD200, c.SP)
}
