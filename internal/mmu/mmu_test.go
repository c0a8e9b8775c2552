package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"

	"github.com/thelolagemann/gomeboy/internal/scheduler"
)

// newTestMMU wires an MMU to a ROM-only cartridge plus the interrupt
// and timer registers, the smallest register set that exercises the
// FF00-FF7F routing.
func newTestMMU(t *testing.T, isGBC bool) (*MMU, *interrupts.Service) {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x134:], "MMUTEST")
	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum

	cart, err := cartridge.NewCartridge(rom, func() int64 { return 0 }, false)
	require.NoError(t, err)

	irq := interrupts.NewService()
	sch := scheduler.NewScheduler()
	m := NewMMU(cart, nil, isGBC, false)
	timer.NewController(irq, sch)
	m.AttachRegisters(types.CollectHardwareRegisters())
	return m, irq
}

func TestWRAMEcho(t *testing.T) {
	m, _ := newTestMMU(t, false)

	m.Write(0xC123, 0xAB)
	assert.EqualValues(t, 0xAB, m.Read(0xE123), "0xE000 echoes 0xC000")

	m.Write(0xF042, 0xCD)
	assert.EqualValues(t, 0xCD, m.Read(0xD042), "0xF000 echoes 0xD000")
}

func TestHRAM(t *testing.T) {
	m, _ := newTestMMU(t, false)

	// HRAM addresses alias I/O register slots under the &0x7F mask;
	// 0xFF85 must hit HRAM, not TIMA at 0xFF05
	m.Write(0xFF85, 0x5A)
	assert.EqualValues(t, 0x5A, m.Read(0xFF85))
	assert.Zero(t, m.Read(0xFF05), "TIMA untouched by an HRAM write")

	for addr := uint16(0xFF80); addr <= 0xFFFE; addr++ {
		m.Write(addr, uint8(addr))
	}
	for addr := uint16(0xFF80); addr <= 0xFFFE; addr++ {
		assert.EqualValues(t, uint8(addr), m.Read(addr))
	}
}

func TestInterruptRegisters(t *testing.T) {
	m, irq := newTestMMU(t, false)

	m.Write(0xFF0F, 0x04)
	assert.EqualValues(t, 0xE4, m.Read(0xFF0F), "IF reads back with bits 5-7 high")
	assert.EqualValues(t, 0x04, irq.Flag)

	m.Write(0xFFFF, 0x1F)
	assert.EqualValues(t, 0x1F, m.Read(0xFFFF))
}

func TestUnmappedReads(t *testing.T) {
	m, _ := newTestMMU(t, false)

	assert.EqualValues(t, 0xFF, m.Read(0xFEA0), "unusable region")
	assert.EqualValues(t, 0xFF, m.Read(0xFF7F), "unmapped I/O")
	assert.EqualValues(t, 0xFF, m.Read(0xFF4D), "KEY1 on DMG hardware")

	// writes to unmapped addresses are dropped, not crashes
	m.Write(0xFEA5, 0x12)
	m.Write(0xFF7F, 0x12)
}

func TestWRAMBankingCGB(t *testing.T) {
	m, _ := newTestMMU(t, true)

	m.Write(0xFF70, 0x02)
	m.Write(0xD000, 0x22)
	m.Write(0xFF70, 0x03)
	m.Write(0xD000, 0x33)

	m.Write(0xFF70, 0x02)
	assert.EqualValues(t, 0x22, m.Read(0xD000))

	// bank select 0 coerces to 1
	m.Write(0xFF70, 0x00)
	assert.EqualValues(t, 0x01, m.Read(0xFF70))
}

func TestSpeedSwitchRegister(t *testing.T) {
	m, _ := newTestMMU(t, true)

	// unarmed: bits 1-6 read high, bits 0 and 7 low
	assert.EqualValues(t, 0x7E, m.Read(0xFF4D))

	m.Write(0xFF4D, 0x01)
	assert.EqualValues(t, 0x7F, m.Read(0xFF4D), "armed bit reads back")
}

func TestUndocumentedCGBRegisters(t *testing.T) {
	m, _ := newTestMMU(t, true)

	m.Write(0xFF72, 0x5A)
	assert.EqualValues(t, 0x5A, m.Read(0xFF72))
	m.Write(0xFF73, 0xA5)
	assert.EqualValues(t, 0xA5, m.Read(0xFF73))

	// only bits 4-6 of 0xFF75 are backed by storage
	m.Write(0xFF75, 0x00)
	assert.EqualValues(t, 0x8F, m.Read(0xFF75))

	m.Write(0xFF76, 0x12)
	assert.EqualValues(t, 0x00, m.Read(0xFF76))
	assert.EqualValues(t, 0x00, m.Read(0xFF77))

	// none of them exist on DMG hardware
	dmg, _ := newTestMMU(t, false)
	assert.EqualValues(t, 0xFF, dmg.Read(0xFF72))
	assert.EqualValues(t, 0xFF, dmg.Read(0xFF75))
}

func TestBusRoundTrip(t *testing.T) {
	m, _ := newTestMMU(t, false)

	// writing back the value just read must not change what any
	// address reads as
	for _, addr := range []uint16{0x0000, 0x4000, 0xC000, 0xD800, 0xE000, 0xFF85, 0xFFFF} {
		before := m.Read(addr)
		m.Write(addr, before)
		assert.EqualValues(t, before, m.Read(addr), "address %#04x", addr)
	}
}
