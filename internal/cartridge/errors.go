package cartridge

import "errors"

// Errors returned while constructing a Cartridge or exchanging battery
// saves with the host. These are the only cartridge-level failures that
// are recoverable by the host; anything else (illegal opcode, illegal
// HDMA source, ...) is a fatal condition handled elsewhere.
var (
	// ErrRomTooSmall is returned when a ROM image is too short to contain
	// a valid header (it must be at least 0x150 bytes).
	ErrRomTooSmall = errors.New("cartridge: rom too small")
	// ErrBadChecksum is returned when the header checksum at 0x14D does
	// not match the computed checksum, and checksum verification has not
	// been disabled.
	ErrBadChecksum = errors.New("cartridge: bad header checksum")
	// ErrUnsupportedCartridge is returned when the cartridge type byte at
	// 0x147 does not correspond to a supported MBC.
	ErrUnsupportedCartridge = errors.New("cartridge: unsupported cartridge type")
	// ErrModeMismatch is returned when a CGB-only cartridge is booted in
	// classic mode.
	ErrModeMismatch = errors.New("cartridge: does not work in classic mode")
	// ErrSaveLengthMismatch is returned by LoadRAM when the supplied save
	// data does not exactly match the length the cartridge expects.
	ErrSaveLengthMismatch = errors.New("cartridge: save length mismatch")
	// ErrSaveReadFailed is returned when a save payload cannot be decoded
	// (e.g. a truncated MBC3 RTC prefix).
	ErrSaveReadFailed = errors.New("cartridge: save read failed")
)
