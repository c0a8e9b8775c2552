package cartridge

// mbc1 implements the MBC1 shape: a 5-bit primary ROM bank register and a
// 2-bit secondary register that either extends the ROM bank (mode 0) or
// selects the RAM bank / high ROM bits of the 0x0000-0x3FFF window
// (mode 1).
type mbc1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	bank1      uint8 // 5 bits, 0x2000-0x3FFF
	bank2      uint8 // 2 bits, 0x4000-0x5FFF
	mode       bool  // 0x6000-0x7FFF, true selects "mode 1"

	battery bool
	dirty   bool

	banks int
}

func newMBC1(rom []byte, ramSize uint, battery bool) *mbc1 {
	return &mbc1{
		rom:     rom,
		ram:     make([]byte, ramSize),
		bank1:   1,
		battery: battery,
		banks:   romBankCount(rom),
	}
}

func (m *mbc1) romBank() int {
	bank := int(m.bank1)
	if !m.mode {
		bank |= int(m.bank2) << 5
	}
	if m.banks > 0 {
		bank %= m.banks
	}
	return bank
}

func (m *mbc1) zeroBank() int {
	if !m.mode {
		return 0
	}
	banks := m.banks
	if banks == 0 {
		banks = 1
	}
	return (int(m.bank2) << 5) % banks
}

func (m *mbc1) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		bank := m.zeroBank()
		return m.rom[bank*0x4000+int(address)]
	}
	return m.rom[m.romBank()*0x4000+int(address-0x4000)]
}

func (m *mbc1) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x1F
		if value == 0 {
			value = 1
		}
		m.bank1 = value
	case address < 0x6000:
		m.bank2 = value & 0x03
	default:
		m.mode = value&0x01 != 0
	}
}

func (m *mbc1) ramBank() int {
	if !m.mode || len(m.ram) == 0 {
		return 0
	}
	banks := ramBankCount(uint(len(m.ram)))
	if banks == 0 {
		return 0
	}
	return int(m.bank2) % banks
}

func (m *mbc1) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0xFF
	}
	off := m.ramBank()*0x2000 + int(address)
	if off >= len(m.ram) {
		return 0xFF
	}
	return m.ram[off]
}

func (m *mbc1) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return
	}
	off := m.ramBank()*0x2000 + int(address)
	if off >= len(m.ram) {
		return
	}
	m.ram[off] = value
	m.dirty = true
}

func (m *mbc1) IsBatteryBacked() bool { return m.battery }
func (m *mbc1) DumpRAM() []byte      { return append([]byte(nil), m.ram...) }

func (m *mbc1) LoadRAM(data []byte) error {
	if len(data) != len(m.ram) {
		return ErrSaveLengthMismatch
	}
	copy(m.ram, data)
	return nil
}

func (m *mbc1) CheckAndResetRAMUpdated() bool {
	v := m.dirty
	m.dirty = false
	return v
}
