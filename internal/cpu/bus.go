package cpu

import "github.com/thelolagemann/gomeboy/internal/types"

// Model returns the hardware model the CPU is currently emulating. It is
// a coarse approximation used only by instructions (e.g. KEY1 speed
// switch) that branch on whether they're running on CGB hardware.
func (c *CPU) Model() types.Model {
	if c.mmu.IsGBC() {
		return types.CGBABC
	}
	return types.DMGABC
}

// setBit sets the given bit of the byte at addr, going through the bus
// so that any side effects of the read/write are observed.
func (c *CPU) setBit(addr uint16, bit types.Bit) {
	c.mmu.Write(addr, types.SetBit(c.mmu.Read(addr), bit))
}

// clearBit resets the given bit of the byte at addr.
func (c *CPU) clearBit(addr uint16, bit types.Bit) {
	c.mmu.Write(addr, types.ResetBit(c.mmu.Read(addr), bit))
}
