package cartridge

import "encoding/binary"

// rtcHaltFlag, rtcDayMSBFlag and rtcOverflowFlag are the meaningful bits of
// the DH register (rtc[4]).
const (
	rtcDayMSBFlag   = 0x01
	rtcHaltFlag     = 0x40
	rtcOverflowFlag = 0x80
)

// mbc3 implements MBC1-like banking (without the dual-mode quirk) plus,
// for cartridge types that carry one, a 5-byte real-time clock. The clock
// is referenced against a "zero" wall-clock timestamp rather than ticking
// on its own, so it survives being paused between sessions; nowFunc is
// injectable so tests can run the RTC deterministically.
type mbc3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint8
	ramBank    uint8 // 0-3 selects RAM bank, 0x08-0x0C selects an RTC register

	hasRTC     bool
	rtc        [5]byte // S, M, H, DL, DH (live registers)
	rtcLatch   [5]byte
	rtcZero    int64
	latchPrev  uint8

	nowFunc func() int64

	battery bool
	dirty   bool

	banks int
}

func newMBC3(rom []byte, ramSize uint, battery, hasRTC bool, now func() int64) *mbc3 {
	return &mbc3{
		rom:     rom,
		ram:     make([]byte, ramSize),
		romBank: 1,
		hasRTC:  hasRTC,
		battery: battery,
		nowFunc: now,
		banks:   romBankCount(rom),
	}
}

func (m *mbc3) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address]
	}
	bank := int(m.romBank)
	if m.banks > 0 {
		bank %= m.banks
	}
	return m.rom[bank*0x4000+int(address-0x4000)]
}

func (m *mbc3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x7F
		if value == 0 {
			value = 1
		}
		m.romBank = value
	case address < 0x6000:
		m.ramBank = value
	default:
		if m.hasRTC && m.latchPrev == 0 && value == 1 {
			m.computeDifftime(m.nowFunc())
			m.rtcLatch = m.rtc
		}
		m.latchPrev = value
	}
}

// isRTCSelect reports whether the current ramBank selects an RTC register
// rather than a RAM bank.
func (m *mbc3) isRTCSelect() bool {
	return m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C
}

func (m *mbc3) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	if m.isRTCSelect() {
		return m.rtcLatch[m.ramBank-0x08]
	}
	if len(m.ram) == 0 {
		return 0xFF
	}
	banks := ramBankCount(uint(len(m.ram)))
	bank := 0
	if banks > 0 {
		bank = int(m.ramBank) % banks
	}
	off := bank*0x2000 + int(address)
	if off >= len(m.ram) {
		return 0xFF
	}
	return m.ram[off]
}

func (m *mbc3) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	if m.isRTCSelect() {
		m.computeDifftime(m.nowFunc())
		m.rtc[m.ramBank-0x08] = value
		m.rtcZero = m.nowFunc()
		m.dirty = true
		return
	}
	if len(m.ram) == 0 {
		return
	}
	banks := ramBankCount(uint(len(m.ram)))
	bank := 0
	if banks > 0 {
		bank = int(m.ramBank) % banks
	}
	off := bank*0x2000 + int(address)
	if off >= len(m.ram) {
		return
	}
	m.ram[off] = value
	m.dirty = true
}

// computeDifftime folds elapsed wall-clock seconds since rtcZero into the
// live registers, carrying seconds into minutes, hours and days, and
// setting the sticky day-overflow flag at a 512-day rollover. A halted
// clock, or a now that hasn't moved since the last recompute, is a no-op.
func (m *mbc3) computeDifftime(now int64) {
	if m.rtc[4]&rtcHaltFlag != 0 {
		return
	}
	diff := now - m.rtcZero
	if diff <= 0 {
		return
	}
	m.rtcZero = now

	s := int(m.rtc[0]) + int(diff)
	addMin := s / 60
	s %= 60
	m.rtc[0] = uint8(s)

	mnt := int(m.rtc[1]) + addMin
	addHr := mnt / 60
	mnt %= 60
	m.rtc[1] = uint8(mnt)

	hrs := int(m.rtc[2]) + addHr
	addDay := hrs / 24
	hrs %= 24
	m.rtc[2] = uint8(hrs)

	days := ((int(m.rtc[4]&rtcDayMSBFlag) << 8) | int(m.rtc[3])) + addDay
	if days >= 512 {
		m.rtc[4] |= rtcOverflowFlag
		days %= 512
	}
	m.rtc[3] = uint8(days & 0xFF)
	m.rtc[4] = (m.rtc[4] &^ rtcDayMSBFlag) | uint8((days>>8)&0x01)
}

func (m *mbc3) IsBatteryBacked() bool { return m.battery }

func (m *mbc3) DumpRAM() []byte {
	if !m.hasRTC {
		return append([]byte(nil), m.ram...)
	}
	out := make([]byte, 8+len(m.ram))
	binary.BigEndian.PutUint64(out[:8], uint64(m.rtcZero))
	copy(out[8:], m.ram)
	return out
}

func (m *mbc3) LoadRAM(data []byte) error {
	if !m.hasRTC {
		if len(data) != len(m.ram) {
			return ErrSaveLengthMismatch
		}
		copy(m.ram, data)
		return nil
	}
	if len(data) < 8 {
		return ErrSaveReadFailed
	}
	if len(data) != 8+len(m.ram) {
		return ErrSaveLengthMismatch
	}
	m.rtcZero = int64(binary.BigEndian.Uint64(data[:8]))
	copy(m.ram, data[8:])
	return nil
}

func (m *mbc3) CheckAndResetRAMUpdated() bool {
	v := m.dirty
	m.dirty = false
	return v
}
