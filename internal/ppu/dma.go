package ppu

import "github.com/thelolagemann/gomeboy/internal/mmu"

// DMA is the OAM DMA controller at 0xFF46. A write starts a transfer of
// 160 bytes from (value << 8) into OAM; the copy completes synchronously
// within the write, so sprite data is fully in place before the CPU's
// next bus access.
type DMA struct {
	value uint8

	bus mmu.IOBus
	oam *OAM
}

func NewDMA(bus mmu.IOBus, oam *OAM) *DMA {
	return &DMA{
		bus: bus,
		oam: oam,
	}
}

// Read returns the last value written to the DMA register.
func (d *DMA) Read(address uint16) uint8 {
	return d.value
}

// Write latches the source page and copies 160 bytes into OAM.
func (d *DMA) Write(address uint16, value uint8) {
	d.value = value
	source := uint16(value) << 8

	for i := uint16(0); i < 0xA0; i++ {
		currentSource := source + i

		// OAM can't read from itself; sources at 0xFE00 and above wrap
		// back into WRAM
		if currentSource >= 0xFE00 {
			currentSource -= 0x2000
		}

		d.oam.Write(i, d.bus.Read(currentSource))
	}
}
