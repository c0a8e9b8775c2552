package cartridge

// mbc0 is a fixed 32KiB ROM with no external RAM and no banking.
type mbc0 struct {
	rom [0x8000]byte
}

func newMBC0(rom []byte) *mbc0 {
	m := &mbc0{}
	copy(m.rom[:], rom)
	return m
}

func (m *mbc0) ReadROM(address uint16) uint8  { return m.rom[address] }
func (m *mbc0) WriteROM(uint16, uint8)        {}
func (m *mbc0) ReadRAM(uint16) uint8          { return 0 }
func (m *mbc0) WriteRAM(uint16, uint8)        {}
func (m *mbc0) IsBatteryBacked() bool         { return false }
func (m *mbc0) DumpRAM() []byte               { return nil }
func (m *mbc0) LoadRAM([]byte) error          { return nil }
func (m *mbc0) CheckAndResetRAMUpdated() bool { return false }
