package ppu

// ModeOAM is the STAT mode-bit value for the OAM scan period, as read
// back from the low two bits of the STAT register.
const ModeOAM uint8 = 2

// WriteCorruptionOAM implements the write half of the DMG "OAM bug": a
// 16-bit increment or decrement through the OAM address range during
// the OAM scan corrupts the row of sprites currently being scanned. The
// first word of the row is replaced by a bitwise blend of itself and
// the two words read just before it, and the rest of the row is
// overwritten with the preceding row.
func (p *PPU) WriteCorruptionOAM() {
	if !p.Enabled {
		return
	}

	// each 8-byte OAM row is scanned in 4 dots; row 0 has no preceding
	// row to blend with
	row := int(p.currentCycle >> 2)
	if row < 1 || row > 19 {
		return
	}

	readWord := func(offset int) uint16 {
		return uint16(p.oam.Read(uint16(offset)))<<8 | uint16(p.oam.Read(uint16(offset)+1))
	}
	writeWord := func(offset int, v uint16) {
		p.oam.Write(uint16(offset), uint8(v>>8))
		p.oam.Write(uint16(offset)+1, uint8(v))
	}

	cur := row * 8
	prev := cur - 8

	a := readWord(cur)
	b := readWord(prev)
	c := readWord(prev + 4)
	writeWord(cur, ((a^c)&(b^c))^c)

	for i := 2; i < 8; i += 2 {
		writeWord(cur+i, readWord(prev+i))
	}
}
