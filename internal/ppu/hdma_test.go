package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/types"
)

func newTestHDMA(t *testing.T) (*HDMA, types.HardwareRegisters) {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x134:], "HDMATEST")
	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum

	cart, err := cartridge.NewCartridge(rom, func() int64 { return 0 }, false)
	require.NoError(t, err)

	irq := interrupts.NewService()
	sch := scheduler.NewScheduler()
	m := mmu.NewMMU(cart, nil, true, false)
	p := New(m, irq)
	h := NewHDMA(m, p, sch)
	p.AttachHDMA(h)
	m.AttachVideo(p)
	regs := types.CollectHardwareRegisters()
	m.AttachRegisters(regs)
	return h, regs
}

func TestHDMAIllegalSourcePanics(t *testing.T) {
	_, regs := newTestHDMA(t)

	regs.Write(types.HDMA1, 0xE5) // echo RAM is not a legal source
	regs.Write(types.HDMA2, 0x00)
	regs.Write(types.HDMA3, 0x00)
	regs.Write(types.HDMA4, 0x00)

	assert.Panics(t, func() {
		regs.Write(types.HDMA5, 0x80)
	})
}

func TestHDMALegalSourceTransfers(t *testing.T) {
	h, regs := newTestHDMA(t)

	regs.Write(types.HDMA1, 0x00) // ROM source
	regs.Write(types.HDMA2, 0x40)
	regs.Write(types.HDMA3, 0x00)
	regs.Write(types.HDMA4, 0x00)

	// the LCD starts enabled and in HBlank, so arming an HBlank DMA
	// performs one 16-byte block immediately
	assert.NotPanics(t, func() {
		regs.Write(types.HDMA5, 0x81)
	})
	assert.EqualValues(t, 1, h.hdmaRemaining, "one of two blocks consumed")
}

func TestHDMACartRAMSourceIsLegal(t *testing.T) {
	_, regs := newTestHDMA(t)

	regs.Write(types.HDMA1, 0xA0)
	regs.Write(types.HDMA2, 0x00)
	regs.Write(types.HDMA3, 0x00)
	regs.Write(types.HDMA4, 0x00)

	assert.NotPanics(t, func() {
		regs.Write(types.HDMA5, 0x80)
	})
}
