package cpu

import (
	"testing"

	"github.com/thelolagemann/gomeboy/internal/apu"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/serial"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// newTestCPU builds a CPU wired to a real MMU backed by a minimal
// ROM-only cartridge, the same way gameboy.Device wires one up. Tests
// write opcode bytes into WRAM (0xC000) rather than ROM, since the test
// cartridge has no mapper to make ROM writable.
func newTestCPU(t *testing.T) *CPU {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x134:], "CPUTEST")
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum

	cart, err := cartridge.NewCartridge(rom, func() int64 { return 0 }, false)
	if err != nil {
		t.Fatalf("building test cartridge: %v", err)
	}

	irq := interrupts.NewService()
	sch := scheduler.NewScheduler()
	snd := apu.NewAPU()
	snd.SetModel(types.DMGABC)
	m := mmu.NewMMU(cart, snd, false, false)
	tim := timer.NewController(irq, sch)
	ser := serial.NewController(irq)
	p := ppu.New(m, irq)
	hdma := ppu.NewHDMA(m, p, sch)
	p.AttachHDMA(hdma)
	m.AttachVideo(p)
	m.AttachRegisters(types.CollectHardwareRegisters())
	snd.AttachBus(m)

	c := NewCPU(m, irq, tim, p, snd, ser, sch)
	c.PC = 0xC000
	c.SP = 0xFFFE
	return c
}

// step0 writes opcode (and any operand bytes) at the CPU's current PC,
// resets PC back to that address and executes a single instruction.
func step0(t *testing.T, c *CPU, bytes ...uint8) uint8 {
	t.Helper()
	start := c.PC
	for i, b := range bytes {
		c.writeByte(start+uint16(i), b)
	}
	c.PC = start
	return c.Step()
}
