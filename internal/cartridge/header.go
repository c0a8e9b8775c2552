package cartridge

import "fmt"

// Flag describes a cartridge's Game Boy Color support, derived from the
// byte at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// ramBanks maps the RAM size code at 0x0149 to a bank count of 8KiB banks.
var ramBanks = map[uint8]uint{
	0x00: 0,
	0x01: 1,
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Type is the cartridge type byte at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
	}
}

// hasBattery reports whether the cartridge type byte implies battery-backed
// RAM that should be preserved across sessions.
func (t Type) hasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT,
		MBC5RAMBATT, MBC5RUMBLERAMBATT, ROMRAMBATT, MMM01RAMBATT:
		return true
	}
	return false
}

// hasRTC reports whether the cartridge type byte implies an MBC3 real-time
// clock.
func (t Type) hasRTC() bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT
}

// Header represents the cartridge header located at 0x0100-0x014F.
type Header struct {
	Title            string
	ManufacturerCode string
	CartridgeGBMode  Flag
	NewLicenseeCode  string
	SGBFlag          bool
	CartridgeType    Type
	ROMSize          uint
	RAMSize          uint
	CountryCode      uint8
	OldLicenseeCode  uint8
	MaskROMVersion   uint8
	HeaderChecksum   uint8
	GlobalChecksum   uint16
}

// parseHeader parses the 0x0134-0x014F region of a ROM image. rom must be
// at least 0x150 bytes long; callers are expected to have already checked
// ErrRomTooSmall.
func parseHeader(rom []byte) Header {
	h := Header{}

	switch rom[0x143] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// 0x134-0x142/0x143 title, trimmed at the first NUL.
	titleEnd := 0x143
	if h.CartridgeGBMode == FlagOnlyDMG {
		titleEnd = 0x144
	}
	title := rom[0x134:titleEnd]
	for i, b := range title {
		if b == 0 {
			title = title[:i]
			break
		}
	}
	h.Title = string(title)

	h.ManufacturerCode = string(rom[0x13F:0x143])
	h.NewLicenseeCode = string(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03
	h.CartridgeType = Type(rom[0x147])
	h.ROMSize = (32 * 1024) << rom[0x148]
	h.RAMSize = ramBanks[rom[0x149]] * 8 * 1024
	h.CountryCode = rom[0x14A]
	h.OldLicenseeCode = rom[0x14B]
	h.MaskROMVersion = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E]) | uint16(rom[0x14F])<<8

	return h
}

// checkChecksum recomputes the header checksum (sum of -data[i]-1 for
// i in [0x134,0x14D)) and compares it against the stored byte at 0x14D.
func checkChecksum(rom []byte) bool {
	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	return sum == rom[0x14D]
}

func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

// GameboyColorOnly reports whether the cartridge refuses to run on DMG
// hardware (the CGB flag byte is 0xC0 rather than 0x80).
func (h *Header) GameboyColorOnly() bool {
	return h.CartridgeGBMode == FlagOnlyCGB
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	default:
		return "CGB"
	}
}

// TitleChecksum sums the raw bytes of the cartridge title, the same way the
// CGB boot ROM does to pick a compatibility palette for original Game Boy
// titles.
func (h *Header) TitleChecksum() uint8 {
	var sum uint8
	for i := 0; i < len(h.Title); i++ {
		sum += h.Title[i]
	}
	return sum
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM: %dkB | RAM: %dkB",
		h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
