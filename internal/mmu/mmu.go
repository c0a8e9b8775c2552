// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and handles all the memory
// reads and writes via the IOBus interface.
package mmu

import (
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/ram"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU represents the memory management unit of the Game Boy.
// It contains the whole 64kB address space of the Game, separated into
// 12 different memory banks.
type MMU struct {
	isMocking bool

	// 64kB address space
	// (0x0000-0x3FFF) - ROM bank 0
	Cart *cartridge.Cartridge
	// (0x4000-0x7FFF) - ROM bank 1, switched by Cart

	// (0x8000-0x9FFF) - VRAM, owned by Video
	// (0xA000-0xBFFF) - external RAM, owned by Cart

	// (0xC000-0xCFFF) - internal RAM bank 0 fixed

	// (0xD000-0xDFFF) - internal switchable RAM bank 1 - 7
	wRAM     [8]*ram.Ram
	wRAMBank uint8

	// (0xFE00-0xFE9F) - sprite attribute table (OAM), owned by Video

	// (0xFF10-0xFF3F) - Sound, waveform RAM is not self-registered so
	// it is routed here directly
	Sound IOBus
	// (0xFF40-0xFF4B) - Video
	Video IOBus

	// (0xFF80-0xFFFE) - internal RAM
	zRAM *ram.Ram

	// (0xFFFF) - interrupt enable register, self-registered by
	// interrupts.Service

	mockBank ram.RAM

	Log log.Logger

	// hwRegs holds every hardware register that self-registered via
	// types.RegisterHardware by the time AttachRegisters is called. The
	// MMU doesn't know what's in it - joypad, serial, timer, sound, PPU
	// and HDMA each claim their own addresses.
	hwRegs types.HardwareRegisters

	key0 uint8
	key1 uint8

	// scratch holds the undocumented CGB registers 0xFF72, 0xFF73 and
	// 0xFF75; they have no hardware function but are readable/writable
	scratch [3]uint8

	isGBC bool

	// gbcCompat is true when running on CGB hardware (isGBC) but in DMG
	// compatibility mode - a CGB console booting a DMG-only cartridge,
	// or a cartridge explicitly booted in ColorAsClassic mode.
	gbcCompat bool
}

func (m *MMU) init() {
	// CGB-only registers
	if m.IsGBC() {
		types.RegisterHardware(
			types.KEY0,
			func(v uint8) {
				m.key0 = v & 0xf // only lower nibble is writable
			}, func() uint8 {
				return m.key0
			})
		types.RegisterHardware(
			types.SVBK,
			func(v uint8) {
				v &= 0x07 // only 3 bits are used
				if v == 0 {
					v = 1
				}
				m.wRAMBank = v
			},
			func() uint8 {
				return m.wRAMBank
			},
		)
		types.RegisterHardware(0xFF72, func(v uint8) {
			m.scratch[0] = v
		}, func() uint8 {
			return m.scratch[0]
		})
		types.RegisterHardware(0xFF73, func(v uint8) {
			m.scratch[1] = v
		}, func() uint8 {
			return m.scratch[1]
		})
		types.RegisterHardware(0xFF75, func(v uint8) {
			m.scratch[2] = v
		}, func() uint8 {
			return m.scratch[2] | 0b1000_1111
		})
		types.RegisterHardware(0xFF76, types.NoWrite, func() uint8 { return 0 })
		types.RegisterHardware(0xFF77, types.NoWrite, func() uint8 { return 0 })
	}
}

// AttachRegisters binds the set of self-registered hardware registers
// gathered from every component to this MMU. It must be called once all
// components (joypad, serial, timer, sound, PPU, HDMA) have been
// constructed, so that Read/Write can route FF00-FFFF I/O through them
// instead of the bespoke switch below.
func (m *MMU) AttachRegisters(h types.HardwareRegisters) {
	m.hwRegs = h
}

// NewMMU returns a new MMU for the given cartridge, booting under the
// given hardware mode. isGBC selects CGB hardware (banked WRAM/VRAM,
// double speed, palette registers); gbcCompat additionally puts that
// CGB hardware into DMG compatibility mode. sound is consulted only for
// waveform RAM (0xFF30-0xFF3F), which the APU does not self-register.
func NewMMU(cart *cartridge.Cartridge, sound IOBus, isGBC, gbcCompat bool) *MMU {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	m := &MMU{
		Cart: cart,
		wRAM: [8]*ram.Ram{
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
			ram.NewRAM(0x1000),
		},
		wRAMBank: 1,

		zRAM: ram.NewRAM(0x80), // 128 bytes

		Sound:     sound,
		Log:       l,
		isGBC:     isGBC,
		gbcCompat: gbcCompat,
	}

	m.init()

	return m
}

func (m *MMU) Key() uint8 {
	return m.key1
}

func (m *MMU) SetKey(key uint8) {
	m.key1 = key
}

// AttachVideo attaches the video component to the MMU.
func (m *MMU) AttachVideo(video IOBus) {
	m.Video = video
}

func (m *MMU) IsGBC() bool {
	return m.isGBC
}

// IsGBCCompat reports whether the console is CGB hardware running in
// DMG compatibility mode (e.g. the compatibility palette should be used
// instead of the CGB color palette).
func (m *MMU) IsGBCCompat() bool {
	return m.gbcCompat
}

// EnableMock enables the mock bank.
func (m *MMU) EnableMock() {
	m.isMocking = true
	m.mockBank = ram.NewRAM(0xFFFF)
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc. A read from an address with no backing
// component never fails - it returns 0xFF, matching the floating data
// bus of real hardware.
func (m *MMU) Read(address uint16) uint8 {
	if m.isMocking {
		return m.mockBank.Read(address)
	}
	// I/O registers live at 0xFF00-0xFF7F plus IE at 0xFFFF; HRAM sits
	// between them and must not alias into the register table
	if (address >= 0xFF00 && address < 0xFF80 || address == 0xFFFF) && m.hwRegs[address&0x007F] != nil {
		return m.hwRegs.Read(address)
	}
	switch {
	// ROM (0x0000-0x7FFF)
	case address <= 0x7FFF:
		return m.Cart.Read(address)
	// VRAM (0x8000-0x9FFF)
	case address >= 0x8000 && address <= 0x9FFF:
		if m.Video == nil {
			return 0xFF
		}
		return m.Video.Read(address)
	// External RAM (0xA000-0xBFFF)
	case address >= 0xA000 && address <= 0xBFFF:
		return m.Cart.Read(address)
	// WRAM (Bank 0) (0xC000-0xCFFF)
	case address >= 0xC000 && address <= 0xCFFF:
		return m.wRAM[0].Read(address - 0xC000)
	// WRAM (Bank 1 / 1-7 (CGB)) (0xD000-0xDFFF)
	case address >= 0xD000 && address <= 0xDFFF:
		if m.IsGBC() {
			return m.wRAM[m.wRAMBank].Read(address - 0xD000)
		}
		return m.wRAM[1].Read(address - 0xD000)
	// WRAM (Bank 0 / Echo) (0xE000-0xFDFF)
	case address >= 0xE000 && address <= 0xFDFF:
		if address <= 0xEFFF {
			return m.wRAM[0].Read(address & 0x0FFF)
		}
		if m.IsGBC() {
			return m.wRAM[m.wRAMBank].Read(address & 0x0FFF)
		}
		return m.wRAM[1].Read(address & 0x0FFF)
	// OAM (0xFE00-0xFE9F)
	case address >= 0xFE00 && address <= 0xFE9F:
		if m.Video == nil {
			return 0xFF
		}
		return m.Video.Read(address)
	// Unusable memory (0xFEA0-0xFEFF)
	case address >= 0xFEA0 && address <= 0xFEFF:
		return 0xFF
	// Sound (0xFF10-0xFF3F), waveform RAM is not self-registered
	case address >= 0xFF10 && address <= 0xFF3F:
		if m.Sound == nil {
			return 0xFF
		}
		return m.Sound.Read(address)
	case address == 0xFF4D:
		if m.IsGBC() {
			return m.key1 | 0x7e
		}
		return 0xFF
	// Zero page RAM (0xFF80-0xFFFE)
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.zRAM.Read(address - 0xFF80)
	default:
		// any unmapped GPU/IO/CGB register falls back to the floating
		// data bus value rather than failing the access
		return 0xFF
	}
}

// Write writes the given value to the given address. It handles all the
// memory banks, mirroring, I/O, etc. A write to an address with no
// backing component is silently ignored.
func (m *MMU) Write(address uint16, value uint8) {
	if m.isMocking {
		m.mockBank.Write(address, value)
		return
	}
	if (address >= 0xFF00 && address < 0xFF80 || address == 0xFFFF) && m.hwRegs[address&0x007F] != nil {
		m.hwRegs.Write(address, value)
		return
	}
	switch {
	// ROM (0x0000-0x7FFF)
	case address <= 0x7FFF:
		m.Cart.Write(address, value)
	// VRAM (0x8000-0x9FFF)
	case address <= 0x9FFF:
		if m.Video != nil {
			m.Video.Write(address, value)
		}
	// External RAM (0xA000-0xBFFF)
	case address <= 0xBFFF:
		m.Cart.Write(address, value)
	// Working RAM (0xC000-0xCFFF)
	case address >= 0xC000 && address <= 0xCFFF:
		m.wRAM[0].Write(address-0xC000, value)
	// Working RAM (0xD000-0xDFFF) (switchable bank 1-7)
	case address >= 0xD000 && address <= 0xDFFF:
		if m.IsGBC() {
			m.wRAM[m.wRAMBank].Write(address-0xD000, value)
		} else {
			m.wRAM[1].Write(address-0xD000, value)
		}
	// Working RAM shadow (0xE000-0xFDFF)
	case address >= 0xE000 && address <= 0xFDFF:
		if address <= 0xEFFF {
			m.wRAM[0].Write(address&0x0FFF, value)
		} else if m.IsGBC() {
			m.wRAM[m.wRAMBank].Write(address&0x0FFF, value)
		} else {
			m.wRAM[1].Write(address&0x0FFF, value)
		}
	// OAM (0xFE00-0xFE9F)
	case address >= 0xFE00 && address <= 0xFE9F:
		if m.Video != nil {
			m.Video.Write(address, value)
		}
	// Sound (0xFF10-0xFF3F), waveform RAM is not self-registered
	case address >= 0xFF10 && address <= 0xFF3F:
		if m.Sound != nil {
			m.Sound.Write(address, value)
		}
	case address == 0xFF4D:
		if m.IsGBC() {
			// bit 0 arms a speed switch, bit 7 reports the current
			// speed (written back by the CPU when STOP completes the
			// switch); the bits in between are unimplemented
			m.key1 = value & 0x81
		}
	// Zero page RAM (0xFF80-0xFFFE)
	case address >= 0xFF80 && address <= 0xFFFE:
		m.zRAM.Write(address-0xFF80, value)
	default:
		// unmapped GPU/IO/CGB register write, quietly dropped
	}
}

var _ types.Stater = (*MMU)(nil)

// Save writes WRAM, HRAM and the CGB bank-select registers to state.
// ROM/cartridge RAM is not included - that is the host's responsibility
// via DumpRAM/LoadRAM, since it is persisted independently of a save
// state.
func (m *MMU) Save(state *types.State) {
	for _, bank := range m.wRAM {
		for i := uint16(0); i < 0x1000; i++ {
			state.Write8(bank.Read(i))
		}
	}
	for i := uint16(0); i < 0x80; i++ {
		state.Write8(m.zRAM.Read(i))
	}
	state.Write8(m.wRAMBank)
	state.Write8(m.key0)
	state.Write8(m.key1)
	state.WriteData(m.scratch[:])
}

// Load restores WRAM, HRAM and the CGB bank-select registers from state.
func (m *MMU) Load(state *types.State) {
	for _, bank := range m.wRAM {
		for i := uint16(0); i < 0x1000; i++ {
			bank.Write(i, state.Read8())
		}
	}
	for i := uint16(0); i < 0x80; i++ {
		m.zRAM.Write(i, state.Read8())
	}
	m.wRAMBank = state.Read8()
	m.key0 = state.Read8()
	m.key1 = state.Read8()
	state.ReadData(m.scratch[:])
}
