package accessories

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedPacket shifts a complete packet through the printer: sync bytes,
// header, payload, checksum and the two acknowledge bytes. It returns
// the final status byte the printer shifted back.
func feedPacket(p *Printer, command, compression uint8, data []byte) uint8 {
	p.Feed(0x88)
	p.Feed(0x33)

	header := []byte{command, compression, uint8(len(data)), uint8(len(data) >> 8)}
	var sum uint16
	for _, b := range header {
		sum += uint16(b)
		p.Feed(b)
	}
	for _, b := range data {
		sum += uint16(b)
		p.Feed(b)
	}

	p.Feed(uint8(sum))
	p.Feed(uint8(sum >> 8))

	keepalive := p.Feed(0x00)
	if keepalive != 0x81 {
		return keepalive
	}
	return p.Feed(0x00)
}

func TestInitPacket(t *testing.T) {
	p := NewPrinter()

	// the canonical init sequence: magic, command 0x01, no data, valid
	// checksum, then the two ack bytes
	for _, b := range []uint8{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00} {
		p.Feed(b)
	}
	assert.EqualValues(t, 0x81, p.Feed(0x00), "keep-alive ack")
	assert.EqualValues(t, 0x00, p.Feed(0x00), "status after init is clean")
	assert.Zero(t, p.Status())
}

func TestChecksumError(t *testing.T) {
	p := NewPrinter()

	for _, b := range []uint8{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0xBA, 0xAD} {
		p.Feed(b)
	}
	p.Feed(0x00)
	status := p.Feed(0x00)
	assert.EqualValues(t, 0x01, status&0x01, "checksum error bit set")
}

func TestBadMagicResets(t *testing.T) {
	p := NewPrinter()

	p.Feed(0x88)
	p.Feed(0x00) // not the second magic byte

	// the machine must be back at idle, accepting a fresh packet
	assert.EqualValues(t, 0x00, feedPacket(p, 0x01, 0, nil))
}

func TestPrintRendersPGM(t *testing.T) {
	p := NewPrinter()

	require.EqualValues(t, 0, feedPacket(p, 0x01, 0, nil))

	// one full tile row: 20 tiles of 16 bytes, all zero (colour 0)
	require.EqualValues(t, 0, feedPacket(p, 0x04, 0, make([]byte, 320)))

	// print with palette 0xE4 (identity): colour 0 maps to shade 3
	feedPacket(p, 0x02, 0, []byte{0x01, 0x00, 0xE4, 0x40})

	require.True(t, p.HasImage())
	img := p.Image()
	assert.True(t, bytes.HasPrefix(img, []byte("P5\n160 8\n3\n")), "PGM header, 160x8")
	pixels := img[len("P5\n160 8\n3\n"):]
	require.Len(t, pixels, 160*8)
	for _, px := range pixels {
		require.EqualValues(t, 3, px)
	}

	assert.False(t, p.HasImage(), "collecting the image clears the flag")
}

func TestRLEDecode(t *testing.T) {
	p := NewPrinter()

	require.EqualValues(t, 0, feedPacket(p, 0x01, 0, nil))

	// compressed payload decoding to one 0xFF-filled tile followed by
	// 19 zero tiles: a 16-byte run of 0xFF, then 129+129+46 zeros
	payload := []byte{
		0x8E, 0xFF, // run: 0x0E+2 = 16 copies of 0xFF
		0xFF, 0x00, // run: 0x7F+2 = 129 copies of 0x00
		0xFF, 0x00,
		0xAC, 0x00, // run: 0x2C+2 = 46 copies of 0x00
	}
	require.EqualValues(t, 0, feedPacket(p, 0x04, 1, payload))

	feedPacket(p, 0x02, 0, []byte{0x01, 0x00, 0xE4, 0x40})
	require.True(t, p.HasImage())

	img := p.Image()
	header := "P5\n160 8\n3\n"
	require.True(t, bytes.HasPrefix(img, []byte(header)))
	pixels := img[len(header):]
	require.Len(t, pixels, 160*8)

	// tile 0 is colour 3 (shade 0 under the identity palette), the rest
	// colour 0 (shade 3)
	for row := 0; row < 8; row++ {
		for col := 0; col < 160; col++ {
			want := uint8(3)
			if col < 8 {
				want = 0
			}
			require.EqualValues(t, want, pixels[row*160+col], "row %d col %d", row, col)
		}
	}
}
