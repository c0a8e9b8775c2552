package cartridge

// mbc2 has a 4-bit ROM bank register and 512x4-bit built-in RAM. Which
// register a 0x0000-0x3FFF write targets is selected by address bit 8:
// clear toggles RAM-enable, set selects the ROM bank.
type mbc2 struct {
	rom []byte
	ram [512]byte // low nibble only; high nibble always reads as 1s

	ramEnabled bool
	romBank    uint8

	battery bool
	dirty   bool

	banks int
}

func newMBC2(rom []byte, battery bool) *mbc2 {
	return &mbc2{
		rom:     rom,
		romBank: 1,
		battery: battery,
		banks:   romBankCount(rom),
	}
}

func (m *mbc2) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address]
	}
	bank := int(m.romBank)
	if m.banks > 0 {
		bank %= m.banks
	}
	return m.rom[bank*0x4000+int(address-0x4000)]
}

func (m *mbc2) WriteROM(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x100 != 0 {
		value &= 0x0F
		if value == 0 {
			value = 1
		}
		m.romBank = value
	} else {
		m.ramEnabled = value&0x0F == 0x0A
	}
}

func (m *mbc2) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[address%512] | 0xF0
}

func (m *mbc2) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	m.ram[address%512] = value & 0x0F
	m.dirty = true
}

func (m *mbc2) IsBatteryBacked() bool { return m.battery }
func (m *mbc2) DumpRAM() []byte       { return append([]byte(nil), m.ram[:]...) }

func (m *mbc2) LoadRAM(data []byte) error {
	if len(data) != len(m.ram) {
		return ErrSaveLengthMismatch
	}
	copy(m.ram[:], data)
	return nil
}

func (m *mbc2) CheckAndResetRAMUpdated() bool {
	v := m.dirty
	m.dirty = false
	return v
}
