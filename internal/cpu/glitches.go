package cpu

import (
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// skipHALT parks the CPU in low-power mode until an interrupt is
// pending. The next calls to Step tick the clock without fetching
// instructions; interrupt dispatch (or, with IME disabled, the mere
// presence of a pending interrupt) resumes normal execution.
func (c *CPU) skipHALT() {
	if c.IRQ.IME {
		c.mode = ModeHalt
	} else {
		c.mode = ModeHaltDI
	}
}

// doHALTBug is invoked when HALT is executed with IME disabled while an
// interrupt is already pending: the CPU fails to increment PC for the
// following fetch, so the next instruction byte is executed twice.
func (c *CPU) doHALTBug() {
	// read the next instruction
	instr := c.readOperand()

	// decrement the PC to execute the instruction again
	c.PC--

	// execute the instruction
	c.runInstruction(instr)
}

// handleOAMCorruption models the DMG "OAM bug": a 16-bit increment or
// decrement of a value in the 0xFE00-0xFEFF range while the PPU is
// scanning OAM corrupts the sprite row being scanned. CGB hardware does
// not exhibit the bug.
func (c *CPU) handleOAMCorruption(address uint16) {
	if c.mmu.IsGBC() {
		return
	}
	if address >= 0xFE00 && address <= 0xFEFF && c.mmu.Read(types.STAT)&0b11 == ppu.ModeOAM {
		c.ppu.WriteCorruptionOAM()
	}
}
