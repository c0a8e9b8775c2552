package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow returns a clock function pinned to the given UNIX timestamp.
func fixedNow(at int64) func() int64 {
	return func() int64 { return at }
}

// testROM builds a header-valid ROM image of the given bank count with
// the given cartridge-type and RAM-size bytes. The first byte of every
// bank holds the bank number so banking tests can identify which bank a
// read was served from.
func testROM(t *testing.T, banks int, cartType Type, ramSizeCode uint8) []byte {
	t.Helper()

	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = uint8(b)
		rom[b*0x4000+1] = uint8(b >> 8)
	}
	copy(rom[0x134:], "BANKTEST")
	rom[0x147] = uint8(cartType)

	sizeCode := uint8(0)
	for 2<<sizeCode < banks {
		sizeCode++
	}
	rom[0x148] = sizeCode
	rom[0x149] = ramSizeCode

	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestCheckChecksum(t *testing.T) {
	// 0x150 zero bytes sum to 0xE7 over the header region
	rom := make([]byte, 0x150)
	rom[0x14D] = 0xE7
	assert.True(t, checkChecksum(rom))

	for _, wrong := range []uint8{0x00, 0x01, 0xE6, 0xE8, 0xFF} {
		rom[0x14D] = wrong
		assert.False(t, checkChecksum(rom), "checksum byte %#02x should fail", wrong)
	}
}

func TestChecksumRightInverse(t *testing.T) {
	// whatever the header contents, writing the computed checksum into
	// 0x14D must make verification pass
	rom := make([]byte, 0x150)
	copy(rom[0x134:], "SOME TITLE")
	rom[0x147] = 0x01
	rom[0x148] = 0x02

	var sum uint8
	for i := 0x134; i < 0x14D; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	assert.True(t, checkChecksum(rom))
}

func TestNewCartridgeErrors(t *testing.T) {
	_, err := NewCartridge(make([]byte, 0x100), fixedNow(0), false)
	assert.ErrorIs(t, err, ErrRomTooSmall)

	rom := testROM(t, 2, ROM, 0)
	rom[0x14D] ^= 0xFF
	_, err = NewCartridge(rom, fixedNow(0), false)
	assert.ErrorIs(t, err, ErrBadChecksum)

	// ...unless verification is skipped
	_, err = NewCartridge(rom, fixedNow(0), true)
	assert.NoError(t, err)

	rom = testROM(t, 2, Type(0xFD), 0) // BANDAI TAMA5, unsupported
	_, err = NewCartridge(rom, fixedNow(0), false)
	assert.ErrorIs(t, err, ErrUnsupportedCartridge)
}

func TestDefaultBanks(t *testing.T) {
	// every MBC maps bank 0 at 0x0000 and bank 1 at 0x4000 after reset
	for _, cartType := range []Type{ROM, MBC1, MBC2, MBC3, MBC5} {
		cart, err := NewCartridge(testROM(t, 2, cartType, 0), fixedNow(0), false)
		require.NoError(t, err, "type %s", cartType)

		assert.EqualValues(t, 0, cart.ReadROM(0x0000), "type %s bank 0", cartType)
		assert.EqualValues(t, 1, cart.ReadROM(0x4000), "type %s bank 1", cartType)
	}
}

func TestMBC1Banking(t *testing.T) {
	cart, err := NewCartridge(testROM(t, 128, MBC1RAM, 0x03), fixedNow(0), false)
	require.NoError(t, err)

	// bank 0 is zero-coerced to 1
	cart.WriteROM(0x2000, 0x00)
	assert.EqualValues(t, 1, cart.ReadROM(0x4000))

	// the secondary register contributes bits 5-6
	cart.WriteROM(0x4000, 0x01)
	assert.EqualValues(t, 1|1<<5, cart.ReadROM(0x4000))

	// in mode 1 the secondary register also affects the 0x0000 window
	assert.EqualValues(t, 0, cart.ReadROM(0x0000))
	cart.WriteROM(0x6000, 0x01)
	assert.EqualValues(t, 1<<5, cart.ReadROM(0x0000))
}

func TestMBC1RAMEnable(t *testing.T) {
	cart, err := NewCartridge(testROM(t, 4, MBC1RAMBATT, 0x03), fixedNow(0), false)
	require.NoError(t, err)

	// disabled RAM reads back 0xFF and swallows writes
	assert.EqualValues(t, 0xFF, cart.ReadRAM(0x0000))
	cart.WriteRAM(0x0000, 0x42)
	assert.EqualValues(t, 0xFF, cart.ReadRAM(0x0000))

	// only a low nibble of 0xA enables
	cart.WriteROM(0x0000, 0x0B)
	assert.EqualValues(t, 0xFF, cart.ReadRAM(0x0000))
	cart.WriteROM(0x0000, 0x0A)
	cart.WriteRAM(0x0000, 0x42)
	assert.EqualValues(t, 0x42, cart.ReadRAM(0x0000))

	assert.True(t, cart.CheckAndResetRAMUpdated())
	assert.False(t, cart.CheckAndResetRAMUpdated())
}

func TestMBC2RAM(t *testing.T) {
	cart, err := NewCartridge(testROM(t, 4, MBC2BATT, 0), fixedNow(0), false)
	require.NoError(t, err)

	// address bit 8 selects between RAM enable and ROM bank
	cart.WriteROM(0x0000, 0x0A) // bit 8 clear: RAM enable
	cart.WriteRAM(0x0000, 0xA5)

	// only the low nibble is stored; the high nibble reads as 1s
	assert.EqualValues(t, 0xF5, cart.ReadRAM(0x0000))

	// the 512-byte RAM wraps
	assert.EqualValues(t, 0xF5, cart.ReadRAM(512))

	cart.WriteROM(0x0100, 0x00) // bit 8 set: ROM bank, zero-coerced
	assert.EqualValues(t, 1, cart.ReadROM(0x4000))
}

func TestMBC3RTCLatch(t *testing.T) {
	now := int64(0)
	clock := &now
	cart, err := NewCartridge(testROM(t, 4, MBC3TIMERRAMBATT, 0x03), func() int64 { return *clock }, false)
	require.NoError(t, err)

	cart.WriteROM(0x0000, 0x0A) // enable RAM/RTC

	// latch the clock, then advance wall time by 1h 1m 1s
	cart.WriteROM(0x6000, 0x00)
	cart.WriteROM(0x6000, 0x01)
	now += 3661
	cart.WriteROM(0x6000, 0x00)
	cart.WriteROM(0x6000, 0x01)

	readRTC := func(reg uint8) uint8 {
		cart.WriteROM(0x4000, reg)
		return cart.ReadRAM(0)
	}
	assert.EqualValues(t, 1, readRTC(0x08), "seconds")
	assert.EqualValues(t, 1, readRTC(0x09), "minutes")
	assert.EqualValues(t, 1, readRTC(0x0A), "hours")
}

func TestMBC3RTCHalt(t *testing.T) {
	now := int64(0)
	clock := &now
	cart, err := NewCartridge(testROM(t, 4, MBC3TIMERRAMBATT, 0x03), func() int64 { return *clock }, false)
	require.NoError(t, err)

	cart.WriteROM(0x0000, 0x0A)
	cart.WriteROM(0x4000, 0x0C) // DH register
	cart.WriteRAM(0, 0x40)      // halt the clock

	now += 3600
	cart.WriteROM(0x6000, 0x00)
	cart.WriteROM(0x6000, 0x01)

	cart.WriteROM(0x4000, 0x08)
	assert.EqualValues(t, 0, cart.ReadRAM(0), "halted clock should not advance")
}

func TestMBC3SaveRoundTrip(t *testing.T) {
	cart, err := NewCartridge(testROM(t, 4, MBC3TIMERRAMBATT, 0x03), fixedNow(42), false)
	require.NoError(t, err)

	cart.WriteROM(0x0000, 0x0A)
	cart.WriteROM(0x4000, 0x00)
	cart.WriteRAM(0x0123, 0x99)

	dump := cart.DumpRAM()
	// the RTC variant prefixes the dump with the 8-byte rtcZero seconds
	require.Len(t, dump, 8+4*0x2000)

	restored, err := NewCartridge(testROM(t, 4, MBC3TIMERRAMBATT, 0x03), fixedNow(42), false)
	require.NoError(t, err)
	require.NoError(t, restored.LoadRAM(dump))
	assert.Equal(t, dump, restored.DumpRAM())

	assert.ErrorIs(t, restored.LoadRAM(dump[1:]), ErrSaveLengthMismatch)
}

func TestMBC5Banking(t *testing.T) {
	cart, err := NewCartridge(testROM(t, 512, MBC5RAMBATT, 0x04), fixedNow(0), false)
	require.NoError(t, err)

	// unlike the other MBCs, bank 0 is addressable at 0x4000
	cart.WriteROM(0x2000, 0x00)
	assert.EqualValues(t, 0, cart.ReadROM(0x4000))

	// bit 8 of the bank number lives in its own write window
	cart.WriteROM(0x2000, 0x05)
	cart.WriteROM(0x3000, 0x01)
	assert.EqualValues(t, 0x05, cart.ReadROM(0x4000))
	assert.EqualValues(t, 0x01, cart.ReadROM(0x4001)) // bank 0x105
	cart.WriteROM(0x3000, 0x00)
	assert.EqualValues(t, 0x05, cart.ReadROM(0x4000))
	assert.EqualValues(t, 0x00, cart.ReadROM(0x4001)) // bank 0x005

	// disabled RAM reads back 0, not 0xFF
	assert.EqualValues(t, 0, cart.ReadRAM(0x0000))
}

func TestHeaderParsing(t *testing.T) {
	rom := testROM(t, 4, MBC1, 0x02)
	cart, err := NewCartridge(rom, fixedNow(0), false)
	require.NoError(t, err)

	h := cart.Header()
	assert.Equal(t, "BANKTEST", h.Title)
	assert.Equal(t, MBC1, h.CartridgeType)
	assert.EqualValues(t, 4*0x4000, h.ROMSize)
	assert.EqualValues(t, 0x2000, h.RAMSize)
	assert.False(t, h.GameboyColor())
}
